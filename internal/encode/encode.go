// Package encode turns cleaned amino-acid sequences into the fixed-size
// one-hot matrices the trained network consumes.
package encode

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxLength is the residue window the network was trained on. Longer
	// sequences cannot be predicted.
	MaxLength = 140

	// FeatureCount is the width of the one-hot alphabet: twenty standard
	// amino acids, X for unknown and '-' for padding.
	FeatureCount = 22
)

// alphabetIndex maps a residue to its one-hot column. The order is fixed
// by the trained weights; do not reorder.
var alphabetIndex = map[byte]int{
	'A': 0, 'C': 1, 'D': 2, 'E': 3, 'F': 4,
	'G': 5, 'H': 6, 'I': 7, 'K': 8, 'L': 9,
	'M': 10, 'N': 11, 'P': 12, 'Q': 13, 'R': 14,
	'S': 15, 'T': 16, 'W': 17, 'Y': 18, 'V': 19,
	'X': 20, '-': 21,
}

// Pad centers seq in a MaxLength window, filling both sides with '-'.
func Pad(seq string) (string, error) {
	if len(seq) > MaxLength {
		return "", fmt.Errorf("sequence length %d exceeds the %d residue limit", len(seq), MaxLength)
	}
	up := (MaxLength - len(seq)) / 2
	down := MaxLength - up - len(seq)
	return strings.Repeat("-", up) + seq + strings.Repeat("-", down), nil
}

// Validate checks that every residue of seq is in the model alphabet.
func Validate(seq string) error {
	if seq == "" {
		return errors.New("empty sequence")
	}
	var bad []string
	for i := 0; i < len(seq); i++ {
		if _, ok := alphabetIndex[seq[i]]; !ok {
			bad = append(bad, fmt.Sprintf("%q at position %d", seq[i], i+1))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("unsupported residues: %s", strings.Join(bad, ", "))
	}
	return nil
}

// HasUnknown reports whether seq contains the X placeholder. Predictions
// still run but tend to degrade around unknown residues.
func HasUnknown(seq string) bool {
	return strings.ContainsRune(seq, 'X')
}

// Matrix builds the MaxLength by FeatureCount one-hot input for seq.
func Matrix(seq string) ([][]float64, error) {
	if err := Validate(seq); err != nil {
		return nil, err
	}
	padded, err := Pad(seq)
	if err != nil {
		return nil, err
	}
	m := make([][]float64, MaxLength)
	for i := 0; i < MaxLength; i++ {
		row := make([]float64, FeatureCount)
		row[alphabetIndex[padded[i]]] = 1
		m[i] = row
	}
	return m, nil
}
