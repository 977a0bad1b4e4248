// Package pipeline orchestrates a full prediction run: inputs gathered,
// model resolved, runner invoked once for the whole batch, PDB files and
// a report written.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BigHat-Biosciences/NanoNet/internal/config"
	"github.com/BigHat-Biosciences/NanoNet/internal/encode"
	"github.com/BigHat-Biosciences/NanoNet/internal/fasta"
	"github.com/BigHat-Biosciences/NanoNet/internal/log"
	"github.com/BigHat-Biosciences/NanoNet/internal/model"
	"github.com/BigHat-Biosciences/NanoNet/internal/pdb"
	"github.com/BigHat-Biosciences/NanoNet/internal/predict"
	"github.com/BigHat-Biosciences/NanoNet/internal/sidechain"
)

// ErrSingleFileSideChains rejects the single-file and side-chain
// combination: reconstruction tools need one backbone file per record.
var ErrSingleFileSideChains = errors.New("can't reconstruct side chains with the single-file option, remove flag -s")

// Options control a prediction run. Exactly one of Inputs, Sequence or
// Records selects the input mode.
type Options struct {
	// Inputs are FASTA files, directories or doublestar glob patterns.
	Inputs []string
	// Sequence is a raw sequence given directly; Name labels it.
	Sequence string
	Name     string
	// Records are pre-fetched records, for example from NCBI.
	Records []fasta.Record

	// OutputDir overrides the configured output directory.
	OutputDir string
	// SingleFile writes every model into one multi-model PDB file.
	SingleFile bool
	// TCR selects the TCR V-beta weights instead of the nanobody ones.
	TCR bool

	// Scwrl enables Scwrl4 side-chain reconstruction when non-empty.
	Scwrl string
	// Modeller enables modeller reconstruction, configured via config.
	Modeller bool

	Config *config.Config
	// Runner overrides the configured external runner; used by tests and
	// the HTTP server.
	Runner predict.Runner
	Log    *log.Logger
}

// Run executes a full prediction pass. Records that cannot be encoded are
// skipped and reported; infrastructure failures (missing model, missing
// tools, runner errors) abort the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	recons, err := reconstructors(opts, cfg)
	if err != nil {
		return nil, err
	}

	records, err := gatherRecords(opts, cfg)
	if err != nil {
		return nil, err
	}
	opts.Log.Printf("records: %d", len(records))

	resolveDone := opts.Log.Step("resolve model")
	repoDir, err := model.Resolve(model.Source{
		Repository: cfg.Model.Repository,
		CommitSHA:  cfg.Model.CommitSHA,
	}, cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	weightsName := cfg.Model.Weights
	if opts.TCR {
		weightsName = cfg.Model.TCRWeights
	}
	weightsDir, err := model.WeightsDir(repoDir, weightsName)
	if err != nil {
		return nil, err
	}
	resolveDone()

	for _, rc := range recons {
		if err := rc.Check(); err != nil {
			return nil, err
		}
	}

	runner := opts.Runner
	if runner == nil {
		execRunner := &predict.ExecRunner{Command: cfg.Runner}
		if err := execRunner.Check(); err != nil {
			return nil, err
		}
		runner = execRunner
	}

	type job struct {
		idx      int
		rec      fasta.Record
		matrix   [][]float64
		warnings []string
	}
	var jobs []job
	statuses := make([]RecordStatus, len(records))
	for i, rec := range records {
		statuses[i] = RecordStatus{Name: rec.Name, Length: len(rec.Seq)}
		matrix, err := encode.Matrix(rec.Seq)
		if err != nil {
			statuses[i].Status = StatusSkipped
			statuses[i].Reason = err.Error()
			opts.Log.Printf("skip %s: %v", rec.Name, err)
			continue
		}
		statuses[i].Status = StatusPredicted
		var warnings []string
		if encode.HasUnknown(rec.Seq) {
			warnings = append(warnings, "sequence contains unknown residue X")
		}
		jobs = append(jobs, job{idx: i, rec: rec, matrix: matrix, warnings: warnings})
	}
	if len(jobs) == 0 {
		if len(statuses) == 1 {
			return nil, fmt.Errorf("%s: %s", statuses[0].Name, statuses[0].Reason)
		}
		return nil, fmt.Errorf("no usable sequences in %d records", len(statuses))
	}

	req := &predict.Request{
		ModelDir: weightsDir,
		Inputs:   make([]predict.Input, len(jobs)),
	}
	for i, j := range jobs {
		req.Inputs[i] = predict.Input{Name: j.rec.Name, Matrix: j.matrix}
	}
	predictDone := opts.Log.Step("predict")
	resp, err := runner.Predict(ctx, req)
	if err != nil {
		return nil, err
	}
	predictDone()

	outDir, err := prepareOutputDir(opts.OutputDir, cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	if opts.SingleFile {
		models := make([]pdb.Model, len(jobs))
		for i, j := range jobs {
			models[i] = pdb.Model{Name: j.rec.Name, Seq: j.rec.Seq, Coords: resp.Predictions[i].Coords}
		}
		path := filepath.Join(outDir, pdb.SingleFileName)
		if err := writeFile(path, func(w io.Writer) error {
			return pdb.WriteMultiModel(w, models)
		}); err != nil {
			return nil, err
		}
		for _, j := range jobs {
			statuses[j.idx].Files = []string{pdb.SingleFileName}
			statuses[j.idx].Warnings = j.warnings
		}
	} else {
		for i, j := range jobs {
			name := j.rec.Name
			coords := resp.Predictions[i].Coords
			backbone := pdb.BackboneFile(name)
			if err := writeFile(filepath.Join(outDir, backbone), func(w io.Writer) error {
				return pdb.WriteBackbone(w, j.rec.Seq, coords)
			}); err != nil {
				return nil, err
			}
			statuses[j.idx].Files = []string{backbone}
			statuses[j.idx].Warnings = j.warnings

			for _, rc := range recons {
				rebuilt, err := rc.Rebuild(outDir, name, j.rec.Seq)
				if err != nil {
					opts.Log.Printf("%s failed for %s: %v", rc.Name(), name, err)
					statuses[j.idx].Warnings = append(statuses[j.idx].Warnings,
						fmt.Sprintf("%s reconstruction failed: %v", rc.Name(), err))
					continue
				}
				statuses[j.idx].Files = append(statuses[j.idx].Files, rebuilt)
			}
		}
	}

	predicted, skipped := 0, 0
	for _, st := range statuses {
		if st.Status == StatusPredicted {
			predicted++
		} else {
			skipped++
		}
	}
	report := &Report{
		Repository:     cfg.Model.Repository,
		CommitSHA:      cfg.Model.CommitSHA,
		Weights:        weightsName,
		TCR:            opts.TCR,
		SingleFile:     opts.SingleFile,
		OutputDir:      outDir,
		StartedAt:      started.UTC().Format(time.RFC3339),
		ElapsedSeconds: time.Since(started).Seconds(),
		Total:          len(statuses),
		Predicted:      predicted,
		Skipped:        skipped,
		Records:        statuses,
	}
	if err := WriteReport(filepath.Join(outDir, ReportFileName), report); err != nil {
		return nil, err
	}
	return &Result{OutputDir: outDir, Report: report}, nil
}

// reconstructors builds the enabled side-chain backends. Modeller runs
// before Scwrl4, matching the order results have always been produced in.
func reconstructors(opts Options, cfg *config.Config) ([]sidechain.Reconstructor, error) {
	var out []sidechain.Reconstructor
	if opts.Modeller {
		out = append(out, sidechain.Modeller{
			Python: cfg.Modeller.Python,
			Script: cfg.Modeller.Script,
		})
	}
	if opts.Scwrl != "" {
		out = append(out, sidechain.Scwrl{Path: opts.Scwrl})
	}
	if opts.SingleFile && len(out) > 0 {
		return nil, ErrSingleFileSideChains
	}
	return out, nil
}

// prepareOutputDir picks the output directory, sanitizes its final path
// element and creates it. Only the base name is cleaned so parent paths
// like results/run1 stay usable.
func prepareOutputDir(override, configured string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		dir = "NanoNetResults"
	}
	base := fasta.CleanName(filepath.Base(dir))
	if base == "" {
		return "", fmt.Errorf("output directory name %q is empty after cleanup", filepath.Base(dir))
	}
	dir = filepath.Join(filepath.Dir(dir), base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return dir, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
