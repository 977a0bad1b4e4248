package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCardFrontMatter(t *testing.T) {
	t.Parallel()

	data := []byte(`---
name: NanoNet
version: "1.1"
license: MIT
description: Rapid nanobody structure prediction.
---

# NanoNet weights

Trained weights for VH and TCR VB domains.
`)
	card, err := parseCard(data)
	if err != nil {
		t.Fatalf("parseCard: %v", err)
	}
	if card.Name != "NanoNet" {
		t.Errorf("got name %q, want NanoNet", card.Name)
	}
	if card.Version != "1.1" {
		t.Errorf("got version %q, want 1.1", card.Version)
	}
	if card.License != "MIT" {
		t.Errorf("got license %q, want MIT", card.License)
	}
	if card.Title != "NanoNet weights" {
		t.Errorf("got title %q, want heading fallback", card.Title)
	}
}

func TestParseCardHeadingOnly(t *testing.T) {
	t.Parallel()

	card, err := parseCard([]byte("# *NanoNet* model\n\nNo front matter here.\n"))
	if err != nil {
		t.Fatalf("parseCard: %v", err)
	}
	if card.Title != "NanoNet model" {
		t.Errorf("got title %q, want inline markup stripped", card.Title)
	}
	if card.Name != "NanoNet model" {
		t.Errorf("got name %q, want title fallback", card.Name)
	}
}

func TestParseCardEmptyDocument(t *testing.T) {
	t.Parallel()

	card, err := parseCard([]byte("plain text, no heading\n"))
	if err != nil {
		t.Fatalf("parseCard: %v", err)
	}
	if card.Title != "" || card.Name != "" {
		t.Errorf("got %+v, want empty card", card)
	}
}

func TestReadCard(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	if err := os.WriteFile(filepath.Join(repo, "README.md"), []byte("# NanoNet\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	card, err := ReadCard(repo)
	if err != nil {
		t.Fatalf("ReadCard: %v", err)
	}
	if card.Title != "NanoNet" {
		t.Errorf("got title %q", card.Title)
	}

	if _, err := ReadCard(t.TempDir()); err == nil {
		t.Error("ReadCard accepted a repository without a README")
	}
}
