package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `model:
  repository: github.com/dina-lab3D/NanoNet
  commit_sha: 0123456789abcdef0123456789abcdef01234567
  weights: NanoNetWeights
runner: [python3, runner.py]
output_dir: MyResults
scwrl: /opt/scwrl4/Scwrl4
modeller:
  python: python3
  script: scripts/relax.py
server:
  addr: ":9090"
  allow_origins:
    - https://lab.example.com
ignore:
  - "draft*"
  - "archive/**"
`

func TestLoadValidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model.Repository != "github.com/dina-lab3D/NanoNet" {
		t.Errorf("got repository %q", cfg.Model.Repository)
	}
	if cfg.Model.CommitSHA != "0123456789abcdef0123456789abcdef01234567" {
		t.Errorf("got commit %q", cfg.Model.CommitSHA)
	}
	if len(cfg.Runner) != 2 || cfg.Runner[0] != "python3" {
		t.Errorf("got runner %v", cfg.Runner)
	}
	if cfg.OutputDir != "MyResults" {
		t.Errorf("got output dir %q", cfg.OutputDir)
	}
	if cfg.Modeller.Script != "scripts/relax.py" {
		t.Errorf("got modeller script %q", cfg.Modeller.Script)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("got server addr %q", cfg.Server.Addr)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "draft*" {
		t.Errorf("got ignore %v", cfg.Ignore)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, []byte("model: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), configFileName)); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	if cfg.Model.Repository != defaultRepository {
		t.Errorf("got repository %q", cfg.Model.Repository)
	}
	if cfg.Model.Weights != "NanoNetWeights" || cfg.Model.TCRWeights != "NanoNetTCRWeights" {
		t.Errorf("got weights %q / %q", cfg.Model.Weights, cfg.Model.TCRWeights)
	}
	if cfg.OutputDir != "NanoNetResults" {
		t.Errorf("got output dir %q", cfg.OutputDir)
	}
	if cfg.CacheDir == "" {
		t.Error("defaults must pick a cache directory")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	loaded := &Config{
		Model:     Model{Repository: "github.com/acme/weights", CommitSHA: "abc123"},
		OutputDir: "Elsewhere",
		Ignore:    []string{"draft*"},
	}
	merged := Merge(Defaults(), loaded)

	if merged.Model.Repository != "github.com/acme/weights" {
		t.Errorf("loaded repository must win, got %q", merged.Model.Repository)
	}
	if merged.Model.CommitSHA != "abc123" {
		t.Errorf("loaded commit must win, got %q", merged.Model.CommitSHA)
	}
	if merged.Model.Weights != defaultWeights {
		t.Errorf("unset weights must keep the default, got %q", merged.Model.Weights)
	}
	if merged.OutputDir != "Elsewhere" {
		t.Errorf("loaded output dir must win, got %q", merged.OutputDir)
	}
	if merged.Server.Addr != defaultAddr {
		t.Errorf("unset server addr must keep the default, got %q", merged.Server.Addr)
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("got ignore %v", merged.Ignore)
	}
}

func TestMergeNilLoaded(t *testing.T) {
	t.Parallel()

	merged := Merge(Defaults(), nil)
	if merged.Model.Repository != defaultRepository {
		t.Errorf("got repository %q", merged.Model.Repository)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing repository", func(c *Config) { c.Model.Repository = "" }},
		{"missing weights", func(c *Config) { c.Model.Weights = "" }},
		{"missing runner", func(c *Config) { c.Runner = nil }},
		{"bad ignore pattern", func(c *Config) { c.Ignore = []string{"[oops"} }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Defaults()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted a broken config")
			}
		})
	}
}

func TestIgnored(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.Ignore = []string{"draft*", "archive/**"}

	cases := []struct {
		path string
		want bool
	}{
		{"draft.fasta", true},
		{filepath.Join("sub", "draft2.fasta"), true},
		{filepath.Join("archive", "old", "ab.fasta"), true},
		{"ab.fasta", false},
	}
	for _, tc := range cases {
		if got := cfg.Ignored(tc.path); got != tc.want {
			t.Errorf("Ignored(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestDumpRoundTrips(t *testing.T) {
	t.Parallel()

	data, err := Dump(Defaults())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of dumped config: %v", err)
	}
	if cfg.Model.Repository != defaultRepository {
		t.Errorf("got repository %q after round trip", cfg.Model.Repository)
	}
	if cfg.OutputDir != defaultOutputDir {
		t.Errorf("got output dir %q after round trip", cfg.OutputDir)
	}
}
