// Package pdb serializes predicted backbone coordinate matrices into PDB
// files. The column layout is fixed; downstream tools (Scwrl4, modeller,
// viewers) parse these files by position.
package pdb

import (
	"fmt"

	"github.com/BigHat-Biosciences/NanoNet/internal/encode"
)

// CoordsPerResidue is the width of one coordinate row: x, y and z for each
// of the five backbone atoms.
const CoordsPerResidue = 15

// backboneAtoms is the atom order within a residue. CB is skipped for
// glycine.
var backboneAtoms = [...]string{"N", "CA", "C", "O", "CB"}

// threeLetter maps one-letter residue codes to PDB residue names. X maps
// to UNK.
var threeLetter = map[byte]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE",
	'G': "GLY", 'H': "HIS", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN", 'R': "ARG",
	'S': "SER", 'T': "THR", 'W': "TRP", 'Y': "TYR", 'V': "VAL",
	'X': "UNK",
}

// Model pairs a record with its predicted coordinate matrix.
type Model struct {
	Name   string
	Seq    string
	Coords [][]float64
}

func checkCoords(coords [][]float64) error {
	if len(coords) != encode.MaxLength {
		return fmt.Errorf("coordinate matrix has %d rows, want %d", len(coords), encode.MaxLength)
	}
	for i, row := range coords {
		if len(row) != CoordsPerResidue {
			return fmt.Errorf("coordinate row %d has %d values, want %d", i, len(row), CoordsPerResidue)
		}
	}
	return nil
}
