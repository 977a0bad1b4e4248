// Package config defines the .nanonet.yml configuration file: where the
// trained model lives, how the runner is invoked and where results go.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Config is the top-level configuration.
type Config struct {
	Model     Model    `yaml:"model"`
	Runner    []string `yaml:"runner"`
	CacheDir  string   `yaml:"cache_dir"`
	OutputDir string   `yaml:"output_dir"`
	Scwrl     string   `yaml:"scwrl"`
	Modeller  Modeller `yaml:"modeller"`
	Server    Server   `yaml:"server"`
	// Ignore holds glob patterns for FASTA files to skip when a
	// directory is given as input.
	Ignore []string `yaml:"ignore"`
}

// Model locates the hosted trained-model repository and names the weights
// directories inside it.
type Model struct {
	Repository string `yaml:"repository"`
	CommitSHA  string `yaml:"commit_sha"`
	Weights    string `yaml:"weights"`
	TCRWeights string `yaml:"tcr_weights"`
}

// Modeller configures the optional modeller reconstruction backend.
type Modeller struct {
	Python string `yaml:"python"`
	Script string `yaml:"script"`
}

// Server configures HTTP serving mode.
type Server struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

const (
	defaultRepository = "github.com/dina-lab3D/NanoNet"
	defaultWeights    = "NanoNetWeights"
	defaultTCRWeights = "NanoNetTCRWeights"
	defaultOutputDir  = "NanoNetResults"
	defaultAddr       = ":8080"
)

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Model: Model{
			Repository: defaultRepository,
			Weights:    defaultWeights,
			TCRWeights: defaultTCRWeights,
		},
		Runner:    []string{"nanonet-runner"},
		CacheDir:  defaultCacheDir(),
		OutputDir: defaultOutputDir,
		Server: Server{
			Addr:         defaultAddr,
			AllowOrigins: []string{"*"},
		},
	}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", ".nanonet-cache")
	}
	return filepath.Join(base, "nanonet")
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Model.Repository == "" {
		return errors.New("model.repository is required")
	}
	if c.Model.Weights == "" {
		return errors.New("model.weights is required")
	}
	if len(c.Runner) == 0 {
		return errors.New("runner command is required")
	}
	for _, pattern := range c.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Ignored reports whether path matches any configured ignore pattern.
// Patterns match the slash-separated path and the base name, so "draft*"
// skips draft.fasta anywhere in the tree.
func (c *Config) Ignored(path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range c.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			// Validate reports these; match nothing here.
			continue
		}
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}
