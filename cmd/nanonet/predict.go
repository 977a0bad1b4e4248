package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/BigHat-Biosciences/NanoNet/internal/archive"
	"github.com/BigHat-Biosciences/NanoNet/internal/fasta"
	"github.com/BigHat-Biosciences/NanoNet/internal/log"
	"github.com/BigHat-Biosciences/NanoNet/internal/ncbi"
	"github.com/BigHat-Biosciences/NanoNet/internal/output"
	"github.com/BigHat-Biosciences/NanoNet/internal/pipeline"
)

// runPredict implements the "predict" subcommand: the full pipeline from
// input sequences to PDB files on disk.
func runPredict(args []string) int {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	var (
		sequence   string
		accession  string
		name       string
		outputDir  string
		singleFile bool
		tcr        bool
		scwrl      string
		modeller   bool
		zipOut     string
		configPath string
		format     string
		quiet      bool
		noColor    bool
		verbose    bool
	)

	fs.StringVar(&sequence, "sequence", "", "Predict one raw amino-acid sequence instead of reading files")
	fs.StringVar(&accession, "accession", "", "Fetch the sequence for an NCBI protein accession")
	fs.StringVar(&name, "name", "", "Record name for --sequence or --accession")
	fs.StringVarP(&outputDir, "output-dir", "o", "", "Directory for predicted structures")
	fs.BoolVarP(&singleFile, "single-file", "s", false, "Write all models into one multi-model PDB file")
	fs.BoolVarP(&tcr, "tcr", "t", false, "Use the TCR V-beta weights")
	fs.StringVar(&scwrl, "scwrl", "", "Path to the Scwrl4 executable for side-chain reconstruction")
	fs.BoolVar(&modeller, "modeller", false, "Reconstruct side chains with modeller")
	fs.StringVar(&zipOut, "zip", "", "Zip the output directory after the run")
	fs.Lookup("zip").NoOptDefVal = "auto"
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&format, "format", "f", "text", "Summary format: text, json")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Suppress the run summary")
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log pipeline stages to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanonet predict [flags] [files...]\n\n"+
			"Predict backbone structures for antibody VH or TCR VB sequences.\n\n"+
			"Files can be FASTA paths, directories (walked recursively) or glob\n"+
			"patterns. Alternatively give one sequence with --sequence or fetch\n"+
			"one by NCBI accession with --accession.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	inputs := fs.Args()

	modes := 0
	if len(inputs) > 0 {
		modes++
	}
	if sequence != "" {
		modes++
	}
	if accession != "" {
		modes++
	}
	if modes == 0 {
		fmt.Fprintf(os.Stderr, "nanonet: no input given; pass FASTA files, --sequence or --accession\n")
		return 2
	}
	if modes > 1 {
		fmt.Fprintf(os.Stderr, "nanonet: choose one of FASTA files, --sequence or --accession\n")
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	// The flag wins over the configured Scwrl4 path; --scwrl= disables a
	// configured one for this run.
	scwrlPath := cfg.Scwrl
	if fs.Changed("scwrl") {
		scwrlPath = scwrl
	}

	logger := &log.Logger{Enabled: verbose, W: os.Stderr}
	ctx := context.Background()

	opts := pipeline.Options{
		Inputs:     inputs,
		Sequence:   sequence,
		Name:       name,
		OutputDir:  outputDir,
		SingleFile: singleFile,
		TCR:        tcr,
		Scwrl:      scwrlPath,
		Modeller:   modeller,
		Config:     cfg,
		Log:        logger,
	}

	if accession != "" {
		fetchDone := logger.Step("fetch accession")
		rec, err := ncbi.NewClient().FetchProtein(ctx, accession)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
			return 2
		}
		fetchDone()
		if name != "" {
			rec.Name = name
		}
		opts.Records = []fasta.Record{rec}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	if zipOut != "" {
		out := zipOut
		if out == "auto" {
			out = result.OutputDir + ".zip"
		}
		n, err := archive.Zip(result.OutputDir, out, archive.Options{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
			return 2
		}
		logger.Printf("archived %d files to %s", n, out)
	}

	if !quiet {
		var formatter output.Formatter
		switch format {
		case "json":
			formatter = &output.JSONFormatter{}
		default:
			formatter = &output.TextFormatter{Color: !noColor}
		}

		if err := formatter.Format(os.Stderr, result); err != nil {
			fmt.Fprintf(os.Stderr, "nanonet: error writing output: %v\n", err)
			return 2
		}
	}

	if result.Report.Skipped > 0 {
		return 1
	}
	return 0
}
