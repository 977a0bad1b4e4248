package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/BigHat-Biosciences/NanoNet/internal/archive"
)

// runArchive implements the "archive" subcommand: zip a results directory.
func runArchive(args []string) int {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	var (
		out     string
		include []string
		exclude []string
	)

	fs.StringVarP(&out, "out", "o", "", "Archive file to write (default <dir>.zip)")
	fs.StringArrayVar(&include, "include", nil, "Only archive files matching this pattern (repeatable)")
	fs.StringArrayVar(&exclude, "exclude", nil, "Skip files matching this pattern (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanonet archive [flags] <results-dir>\n\n"+
			"Package a results directory into a zip archive.\n\n"+
			"Patterns use '**' to cross directories and match paths relative to\n"+
			"the archived directory, for example '**/*.pdb'.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "nanonet: archive takes exactly one results directory\n")
		return 2
	}
	dir := fs.Arg(0)

	if out == "" {
		out = filepath.Base(filepath.Clean(dir)) + ".zip"
	}

	n, err := archive.Zip(dir, out, archive.Options{Include: include, Exclude: exclude})
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "nanonet: archived %d files to %s\n", n, out)
	return 0
}
