package sidechain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BigHat-Biosciences/NanoNet/internal/pdb"
)

// Modeller drives a modeller automodel script that aligns the backbone
// against the sequence, rebuilds side chains and relaxes the result.
type Modeller struct {
	// Python is the interpreter with modeller installed; python3 when
	// empty.
	Python string
	// Script is the automodel driver, invoked as: python script <name>.
	Script string
}

// alignmentFile is the PIR alignment the driver script reads.
const alignmentFile = "temp_alignment.ali"

// tempSuffixes are the last three characters of the intermediate files
// modeller scatters next to its output.
var tempSuffixes = map[string]bool{
	"001": true, "rsr": true, "csh": true, "ini": true, "ali": true, "sch": true,
}

func (m Modeller) Name() string { return "modeller" }

func (m Modeller) python() string {
	if m.Python != "" {
		return m.Python
	}
	return "python3"
}

// Check verifies both the driver script and the interpreter exist.
func (m Modeller) Check() error {
	if strings.TrimSpace(m.Script) == "" {
		return fmt.Errorf("modeller script is not configured")
	}
	if _, err := os.Stat(m.Script); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("can't find modeller script %q", m.Script)
		}
		return fmt.Errorf("stat modeller script: %w", err)
	}
	if _, err := exec.LookPath(m.python()); err != nil {
		return fmt.Errorf("can't find python interpreter %q: %w", m.python(), err)
	}
	return nil
}

// Rebuild writes the PIR alignment for the record, runs the driver, drops
// modeller's intermediate files and renames the first generated model to
// the relaxed output name.
func (m Modeller) Rebuild(dir, name, seq string) (string, error) {
	pir := fmt.Sprintf(">P1;%s\nsequence:%s:::::::0.00: 0.00\n%s*\n", name, name, seq)
	if err := os.WriteFile(filepath.Join(dir, alignmentFile), []byte(pir), 0o644); err != nil {
		return "", fmt.Errorf("write alignment: %w", err)
	}

	script, err := filepath.Abs(m.Script)
	if err != nil {
		return "", fmt.Errorf("resolve modeller script: %w", err)
	}
	cmd := exec.Command(m.python(), script, name)
	cmd.Dir = dir
	if combined, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("modeller failed for %s: %w: %s", name, err, strings.TrimSpace(string(combined)))
	}

	if err := removeTempFiles(dir); err != nil {
		return "", err
	}

	generated := name + ".B99990001.pdb"
	relaxed := pdb.RelaxedFile(name)
	if err := os.Rename(filepath.Join(dir, generated), filepath.Join(dir, relaxed)); err != nil {
		return "", fmt.Errorf("rename modeller output: %w", err)
	}
	return relaxed, nil
}

func removeTempFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list output directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		nm := e.Name()
		if len(nm) < 3 || !tempSuffixes[nm[len(nm)-3:]] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, nm)); err != nil {
			return fmt.Errorf("remove temp file %s: %w", nm, err)
		}
	}
	return nil
}
