package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/BigHat-Biosciences/NanoNet/internal/pipeline"
)

// TextFormatter renders the run summary in human-readable text.
// When Color is true, record names are printed in cyan and skip markers
// in yellow.
type TextFormatter struct {
	Color bool
}

// Format writes one line per record followed by a totals line:
//
//	name length files...
//	name skipped: reason
func (f *TextFormatter) Format(w io.Writer, result *pipeline.Result) error {
	report := result.Report
	for _, rec := range report.Records {
		var err error
		switch {
		case rec.Status == pipeline.StatusSkipped && f.Color:
			_, err = fmt.Fprintf(w, "\033[36m%s\033[0m \033[33mskipped:\033[0m %s\n", rec.Name, rec.Reason)
		case rec.Status == pipeline.StatusSkipped:
			_, err = fmt.Fprintf(w, "%s skipped: %s\n", rec.Name, rec.Reason)
		case f.Color:
			_, err = fmt.Fprintf(w, "\033[36m%s\033[0m %d aa %s\n", rec.Name, rec.Length, strings.Join(rec.Files, " "))
		default:
			_, err = fmt.Fprintf(w, "%s %d aa %s\n", rec.Name, rec.Length, strings.Join(rec.Files, " "))
		}
		if err != nil {
			return err
		}
		for _, warn := range rec.Warnings {
			if _, err := fmt.Fprintf(w, "  warning: %s\n", warn); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d of %d predicted in %s (%.2fs)\n",
		report.Predicted, report.Total, report.OutputDir, report.ElapsedSeconds)
	return err
}
