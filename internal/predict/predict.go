// Package predict defines the wire contract with the external process that
// evaluates the trained network, and runs that process.
package predict

import (
	"context"
	"fmt"

	"github.com/BigHat-Biosciences/NanoNet/internal/encode"
)

// CoordsPerResidue is the expected width of each coordinate row: x, y and
// z for the five backbone atoms.
const CoordsPerResidue = 15

// Input is one encoded sequence submitted for prediction.
type Input struct {
	Name   string      `json:"name"`
	Matrix [][]float64 `json:"matrix"`
}

// Request is the JSON document written to the runner's stdin.
type Request struct {
	ModelDir string  `json:"model_dir"`
	Inputs   []Input `json:"inputs"`
}

// Prediction carries the coordinate matrix for one input.
type Prediction struct {
	Name   string      `json:"name"`
	Coords [][]float64 `json:"coords"`
}

// Response is the JSON document the runner writes to stdout. A non-empty
// Error means the run failed and Predictions must be ignored.
type Response struct {
	Predictions []Prediction `json:"predictions"`
	Error       string       `json:"error,omitempty"`
}

// Runner evaluates encoded inputs against the trained model.
type Runner interface {
	Predict(ctx context.Context, req *Request) (*Response, error)
}

// validate checks the response against the request: one prediction per
// input, in order, each a full coordinate matrix.
func (resp *Response) validate(req *Request) error {
	if len(resp.Predictions) != len(req.Inputs) {
		return fmt.Errorf("runner returned %d predictions for %d inputs", len(resp.Predictions), len(req.Inputs))
	}
	for i, p := range resp.Predictions {
		if p.Name != req.Inputs[i].Name {
			return fmt.Errorf("prediction %d is for %q, want %q", i, p.Name, req.Inputs[i].Name)
		}
		if len(p.Coords) != encode.MaxLength {
			return fmt.Errorf("prediction %s has %d coordinate rows, want %d", p.Name, len(p.Coords), encode.MaxLength)
		}
		for j, row := range p.Coords {
			if len(row) != CoordsPerResidue {
				return fmt.Errorf("prediction %s row %d has %d values, want %d", p.Name, j, len(row), CoordsPerResidue)
			}
		}
	}
	return nil
}
