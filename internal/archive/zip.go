// Package archive packages a results directory into a zip file for
// download or sharing.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Options selects which files enter the archive. Patterns use doublestar
// syntax ('**' crosses directories) and match slash-separated paths
// relative to the archived directory.
type Options struct {
	// Include patterns; empty means every file.
	Include []string
	// Exclude patterns are applied after Include.
	Exclude []string
}

// Zip writes the files under dir into a zip archive at out and returns
// the number of files archived. Entries are sorted by path so the same
// inputs produce the same archive.
func Zip(dir, out string, opts Options) (int, error) {
	for _, pattern := range append(append([]string(nil), opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return 0, fmt.Errorf("invalid pattern %q", pattern)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", dir)
	}

	absOut, err := filepath.Abs(out)
	if err != nil {
		return 0, fmt.Errorf("resolve archive path: %w", err)
	}

	var files []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// The archive itself may land inside the walked directory.
		if abs, absErr := filepath.Abs(path); absErr == nil && abs == absOut {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchAny(opts.Include, rel, true) {
			return nil
		}
		if matchAny(opts.Exclude, rel, false) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return 0, fmt.Errorf("walk %s: %w", dir, walkErr)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return 0, errors.New("no files matched")
	}

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}
	zw := zip.NewWriter(f)
	for _, rel := range files {
		if err := addFile(zw, dir, rel); err != nil {
			f.Close()
			return 0, err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("finish archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close archive: %w", err)
	}
	return len(files), nil
}

// matchAny reports whether rel matches any pattern; empty reports the
// result for an empty pattern list.
func matchAny(patterns []string, rel string, empty bool) bool {
	if len(patterns) == 0 {
		return empty
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func addFile(zw *zip.Writer, dir, rel string) error {
	src, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	defer src.Close()

	w, err := zw.Create(rel)
	if err != nil {
		return fmt.Errorf("add %s: %w", rel, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}
