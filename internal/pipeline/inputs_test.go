package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BigHat-Biosciences/NanoNet/internal/config"
	"github.com/BigHat-Biosciences/NanoNet/internal/fasta"
)

func TestGatherRecordsSequence(t *testing.T) {
	t.Parallel()

	records, err := gatherRecords(Options{Sequence: "qvql vesg", Name: "my nb!"}, config.Defaults())
	if err != nil {
		t.Fatalf("gatherRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "mynb0" {
		t.Errorf("got name %q, want cleaned name with batch index", records[0].Name)
	}
	if records[0].Seq != "QVQLVESG" {
		t.Errorf("got seq %q, want cleaned sequence", records[0].Seq)
	}
}

func TestGatherRecordsDefaultName(t *testing.T) {
	t.Parallel()

	records, err := gatherRecords(Options{Sequence: "QVQL"}, config.Defaults())
	if err != nil {
		t.Fatalf("gatherRecords: %v", err)
	}
	if records[0].Name != "seq0" {
		t.Errorf("got name %q, want seq0", records[0].Name)
	}
}

func TestGatherRecordsOrdinalSuffixes(t *testing.T) {
	t.Parallel()

	records, err := gatherRecords(Options{Records: []fasta.Record{
		{Name: "nb", Seq: "QVQL"},
		{Name: "nb", Seq: "EVQL"},
	}}, config.Defaults())
	if err != nil {
		t.Fatalf("gatherRecords: %v", err)
	}
	if records[0].Name != "nb0" || records[1].Name != "nb1" {
		t.Errorf("got names %q and %q, want nb0 and nb1", records[0].Name, records[1].Name)
	}
}

func TestGatherRecordsModeRequired(t *testing.T) {
	t.Parallel()

	if _, err := gatherRecords(Options{}, config.Defaults()); err == nil {
		t.Error("gatherRecords accepted empty options")
	}
	_, err := gatherRecords(Options{Sequence: "QVQL", Inputs: []string{"x.fasta"}}, config.Defaults())
	if err == nil || !strings.Contains(err.Error(), "choose one input") {
		t.Errorf("got %v, want exclusivity error", err)
	}
}

func TestResolveInputsWalksDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.fa":        ">b\nQVQL\n",
		"a.fasta":     ">a\nQVQL\n",
		"draft.fasta": ">d\nQVQL\n",
		"notes.txt":   "not fasta",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Defaults()
	cfg.Ignore = []string{"draft*"}

	paths, err := resolveInputs([]string{dir}, cfg)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %v, want a.fasta and b.fa", paths)
	}
	if filepath.Base(paths[0]) != "a.fasta" || filepath.Base(paths[1]) != "b.fa" {
		t.Errorf("got %v, want sorted fasta files", paths)
	}
}

func TestResolveInputsGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "batch")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{
		filepath.Join(dir, "top.fasta"),
		filepath.Join(sub, "deep.fasta"),
	} {
		if err := os.WriteFile(path, []byte(">x\nQVQL\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := resolveInputs([]string{filepath.Join(dir, "**", "*.fasta")}, config.Defaults())
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %v, want both fasta files", paths)
	}
}

func TestResolveInputsExplicitFileBypassesIgnore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "draft.fasta")
	if err := os.WriteFile(path, []byte(">d\nQVQL\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Defaults()
	cfg.Ignore = []string{"draft*"}

	paths, err := resolveInputs([]string{path}, cfg)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("explicit file was ignored: %v", paths)
	}
}

func TestResolveInputsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := resolveInputs([]string{filepath.Join(t.TempDir(), "no.fasta")}, config.Defaults())
	if err == nil || !strings.Contains(err.Error(), "can't find fasta file") {
		t.Fatalf("got %v, want missing fasta error", err)
	}
}

func TestResolveInputsDeduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.fasta")
	if err := os.WriteFile(path, []byte(">a\nQVQL\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := resolveInputs([]string{path, dir}, config.Defaults())
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %v, want one deduplicated path", paths)
	}
}
