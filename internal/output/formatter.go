package output

import (
	"io"

	"github.com/BigHat-Biosciences/NanoNet/internal/pipeline"
)

// Formatter defines the interface for rendering a run summary.
type Formatter interface {
	Format(w io.Writer, result *pipeline.Result) error
}
