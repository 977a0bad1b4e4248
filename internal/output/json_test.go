package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BigHat-Biosciences/NanoNet/internal/pipeline"
)

func TestJSONFormatter_ValidJSON(t *testing.T) {
	f := &JSONFormatter{}
	var buf bytes.Buffer

	if err := f.Format(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var report pipeline.Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if report.Total != 2 || report.Predicted != 1 {
		t.Errorf("got counts %d/%d, want 2/1", report.Total, report.Predicted)
	}
	if len(report.Records) != 2 || report.Records[1].Status != pipeline.StatusSkipped {
		t.Errorf("got records %+v", report.Records)
	}
}

func TestJSONFormatter_FieldNames(t *testing.T) {
	f := &JSONFormatter{}
	var buf bytes.Buffer

	if err := f.Format(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, field := range []string{`"repository"`, `"weights"`, `"output_dir"`, `"records"`, `"status"`, `"reason"`} {
		if !strings.Contains(out, field) {
			t.Errorf("output missing field %s", field)
		}
	}
}

func TestJSONFormatter_Indented(t *testing.T) {
	f := &JSONFormatter{}
	var buf bytes.Buffer

	if err := f.Format(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented JSON output")
	}
}

func TestJSONFormatter_ImplementsFormatter(t *testing.T) {
	var _ Formatter = &JSONFormatter{}
}
