package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// Card holds the metadata a model repository advertises in its README.
// Fields come from YAML front matter; Title falls back to the first
// level-1 heading when the front matter has no title.
type Card struct {
	Title       string `yaml:"title"`
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	License     string `yaml:"license"`
	Description string `yaml:"description"`
}

// ReadCard parses the model card (README.md) at the root of a resolved
// model repository.
func ReadCard(repoDir string) (Card, error) {
	data, err := os.ReadFile(filepath.Join(repoDir, "README.md"))
	if err != nil {
		return Card{}, fmt.Errorf("read model card: %w", err)
	}
	return parseCard(data)
}

func parseCard(data []byte) (Card, error) {
	md := goldmark.New(goldmark.WithExtensions(&frontmatter.Extender{}))
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(data), parser.WithContext(ctx))

	var card Card
	if d := frontmatter.Get(ctx); d != nil {
		if err := d.Decode(&card); err != nil {
			return Card{}, fmt.Errorf("decode model card front matter: %w", err)
		}
	}

	if card.Title == "" {
		for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
			h, ok := n.(*ast.Heading)
			if !ok || h.Level != 1 {
				continue
			}
			card.Title = headingText(h, data)
			break
		}
	}
	if card.Name == "" {
		card.Name = card.Title
	}
	return card, nil
}

// headingText collects the raw text of a heading, descending through
// inline nodes such as emphasis or links.
func headingText(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, &buf)
	}
	return strings.TrimSpace(buf.String())
}

func collectText(n ast.Node, source []byte, buf *bytes.Buffer) {
	if t, ok := n.(*ast.Text); ok {
		buf.Write(t.Segment.Value(source))
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, buf)
	}
}
