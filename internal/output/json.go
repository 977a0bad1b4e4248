package output

import (
	"encoding/json"
	"io"

	"github.com/BigHat-Biosciences/NanoNet/internal/pipeline"
)

// JSONFormatter renders the run report as pretty-printed JSON, identical
// in shape to the report file written into the output directory.
type JSONFormatter struct{}

// Format writes the report as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Report)
}
