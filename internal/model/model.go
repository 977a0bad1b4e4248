// Package model locates the separately hosted trained-model repository and
// exposes its weights and metadata to the prediction pipeline.
package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source identifies where the trained model lives. Repository may be a git
// remote (github.com shorthand included) or an absolute local path.
// CommitSHA pins remote sources to an exact commit; when empty the default
// branch is used.
type Source struct {
	Repository string
	CommitSHA  string
}

// WeightsDir returns the directory holding the named trained weights
// inside a resolved model repository. A missing directory is reported as a
// missing trained model, which is the error users see when the clone
// succeeded but the weights are absent.
func WeightsDir(repoDir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("weights name is required")
	}
	dir := filepath.Join(repoDir, name)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("can't find trained model %q in %s", name, repoDir)
		}
		return "", fmt.Errorf("stat weights %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("weights path %s is not a directory", dir)
	}
	return dir, nil
}
