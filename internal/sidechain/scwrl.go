package sidechain

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/BigHat-Biosciences/NanoNet/internal/pdb"
)

// Scwrl drives the Scwrl4 executable.
type Scwrl struct {
	Path string
}

func (s Scwrl) Name() string { return "scwrl" }

// Check verifies the Scwrl4 executable exists. Users point at the binary
// explicitly, so a bad path is reported before any prediction work runs.
func (s Scwrl) Check() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("scwrl path is empty")
	}
	if _, err := os.Stat(s.Path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("can't find Scwrl4 %q", s.Path)
		}
		return fmt.Errorf("stat Scwrl4: %w", err)
	}
	return nil
}

// Rebuild runs Scwrl4 against the record's backbone file and returns the
// full-atom output name.
func (s Scwrl) Rebuild(dir, name, seq string) (string, error) {
	in := pdb.BackboneFile(name)
	out := pdb.FullAtomFile(name)

	cmd := exec.Command(s.Path, "-i", in, "-o", out)
	cmd.Dir = dir
	if combined, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("scwrl failed for %s: %w: %s", name, err, strings.TrimSpace(string(combined)))
	}
	return out, nil
}
