package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReportFileName is written into the output directory next to the models.
const ReportFileName = "nanonet_report.json"

// Record outcomes.
const (
	StatusPredicted = "predicted"
	StatusSkipped   = "skipped"
)

// RecordStatus describes the outcome for one input record.
type RecordStatus struct {
	Name     string   `json:"name"`
	Length   int      `json:"length,omitempty"`
	Status   string   `json:"status"`
	Files    []string `json:"files,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Report is the machine-readable summary of one prediction run.
type Report struct {
	Repository     string         `json:"repository"`
	CommitSHA      string         `json:"commit_sha,omitempty"`
	Weights        string         `json:"weights"`
	TCR            bool           `json:"tcr"`
	SingleFile     bool           `json:"single_file"`
	OutputDir      string         `json:"output_dir"`
	StartedAt      string         `json:"started_at"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
	Total          int            `json:"total"`
	Predicted      int            `json:"predicted"`
	Skipped        int            `json:"skipped"`
	Records        []RecordStatus `json:"records"`
}

// WriteReport writes the report as indented JSON at path.
func WriteReport(path string, report *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// Result is the outcome of a Run: where the models were written and what
// happened to each record.
type Result struct {
	OutputDir string
	Report    *Report
}
