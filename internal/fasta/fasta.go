// Package fasta reads and writes FASTA sequence files and normalizes
// user-supplied sequences and record names.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a single named amino-acid sequence.
type Record struct {
	Name string
	Seq  string
}

// Parse reads FASTA records from r. The record name is the first
// whitespace-separated token after '>'; the rest of the header line is
// dropped. Lines before the first header are ignored.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	var current *Record
	var seq strings.Builder
	flush := func() {
		if current == nil {
			return
		}
		current.Seq = seq.String()
		records = append(records, *current)
		current = nil
		seq.Reset()
	}

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, ">") {
			flush()
			fields := strings.Fields(text[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("line %d: header without a name", line)
			}
			current = &Record{Name: fields[0]}
			continue
		}
		if current == nil {
			continue
		}
		seq.WriteString(text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	flush()

	if len(records) == 0 {
		return nil, errors.New("no sequences found")
	}
	return records, nil
}

// ParseFile reads FASTA records from the file at path.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

const lineWidth = 80

// Write writes records in FASTA format, wrapping sequences at 80 columns.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		fmt.Fprintf(bw, ">%s\n", rec.Name)
		for start := 0; start < len(rec.Seq); start += lineWidth {
			end := start + lineWidth
			if end > len(rec.Seq) {
				end = len(rec.Seq)
			}
			fmt.Fprintf(bw, "%s\n", rec.Seq[start:end])
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write fasta: %w", err)
	}
	return nil
}
