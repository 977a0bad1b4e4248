package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/BigHat-Biosciences/NanoNet/internal/config"
	"github.com/BigHat-Biosciences/NanoNet/internal/fasta"
)

// fastaExtensions are recognized when walking a directory for inputs.
var fastaExtensions = map[string]bool{".fasta": true, ".fa": true, ".faa": true}

// gatherRecords turns the configured input mode into a list of cleaned,
// uniquely named records. Exactly one of Inputs, Sequence or Records must
// be set. Every record name gets its batch index appended, which both
// matches the historical output naming and keeps duplicate FASTA names
// from overwriting each other.
func gatherRecords(opts Options, cfg *config.Config) ([]fasta.Record, error) {
	modes := 0
	if len(opts.Inputs) > 0 {
		modes++
	}
	if opts.Sequence != "" {
		modes++
	}
	if len(opts.Records) > 0 {
		modes++
	}
	if modes == 0 {
		return nil, errors.New("no input: provide a fasta path, a raw sequence or fetched records")
	}
	if modes > 1 {
		return nil, errors.New("choose one input: a fasta path, a raw sequence or fetched records")
	}

	var records []fasta.Record
	switch {
	case opts.Sequence != "":
		records = []fasta.Record{{Name: opts.Name, Seq: opts.Sequence}}
	case len(opts.Records) > 0:
		records = opts.Records
	default:
		paths, err := resolveInputs(opts.Inputs, cfg)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			parsed, err := fasta.ParseFile(path)
			if err != nil {
				return nil, err
			}
			records = append(records, parsed...)
		}
	}

	cleaned := make([]fasta.Record, 0, len(records))
	for i, rec := range records {
		name := fasta.CleanName(rec.Name)
		if name == "" {
			name = "seq"
		}
		cleaned = append(cleaned, fasta.Record{
			Name: name + strconv.Itoa(i),
			Seq:  fasta.CleanSequence(rec.Seq),
		})
	}
	return cleaned, nil
}

// resolveInputs expands the input arguments into FASTA file paths.
// Arguments may be files, directories (walked for FASTA extensions) or
// doublestar glob patterns. Config ignore patterns filter walked and
// globbed files, never explicit ones.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[{") {
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					return nil, fmt.Errorf("cannot access %q: %w", match, err)
				}
				if info.IsDir() {
					if err := walkForFasta(match, cfg, add); err != nil {
						return nil, err
					}
					continue
				}
				if fastaExtensions[strings.ToLower(filepath.Ext(match))] && !cfg.Ignored(match) {
					add(match)
				}
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("can't find fasta file %q", arg)
			}
			return nil, fmt.Errorf("cannot access %q: %w", arg, err)
		}
		if info.IsDir() {
			if err := walkForFasta(arg, cfg, add); err != nil {
				return nil, err
			}
			continue
		}
		add(arg)
	}

	sort.Strings(result)
	if len(result) == 0 {
		return nil, errors.New("no fasta files found")
	}
	return result, nil
}

func walkForFasta(dir string, cfg *config.Config, add func(string)) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !fastaExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if cfg.Ignored(rel) {
			return nil
		}
		add(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}
	return nil
}
