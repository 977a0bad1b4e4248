package pdb

import (
	"bufio"
	"fmt"
	"io"

	"github.com/BigHat-Biosciences/NanoNet/internal/encode"
)

// fileHeader and the ATOM line layout are kept byte-compatible with the
// files the trained pipeline has always produced, trailing spaces included.
const fileHeader = "HEADER    IMMUNE SYSTEM - NANOBODY                           \n" +
	"TITLE     COMPUTATIONAL MODELING     \n" +
	"REMARK 777 MODEL GENERATED BY NANONET \n"

const atomLine = "ATOM%7d  %-4s%3s H%4d%12.3f%8.3f%8.3f  1.00%6.2f           %s\n"

const endRecord = "END\n"

// WriteBackbone writes one predicted structure as a standalone PDB file.
func WriteBackbone(w io.Writer, seq string, coords [][]float64) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fileHeader)
	if err := writeAtoms(bw, seq, coords); err != nil {
		return err
	}
	bw.WriteString(endRecord)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pdb: %w", err)
	}
	return nil
}

// WriteMultiModel writes all models into one PDB file, one MODEL block per
// record, with a single END record at the end of the file.
func WriteMultiModel(w io.Writer, models []Model) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fileHeader)
	for _, m := range models {
		fmt.Fprintf(bw, "MODEL %s\n", m.Name)
		if err := writeAtoms(bw, m.Seq, m.Coords); err != nil {
			return fmt.Errorf("model %s: %w", m.Name, err)
		}
		bw.WriteString("ENDMDL\n")
	}
	bw.WriteString(endRecord)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pdb: %w", err)
	}
	return nil
}

// writeAtoms emits the ATOM records for one sequence. The coordinate
// matrix is indexed by padded window position, so the sequence is centered
// the same way the network input was.
func writeAtoms(w io.Writer, seq string, coords [][]float64) error {
	if err := checkCoords(coords); err != nil {
		return err
	}
	padded, err := encode.Pad(seq)
	if err != nil {
		return err
	}

	serial := 1
	residue := 1
	for pos := 0; pos < len(padded); pos++ {
		aa := padded[pos]
		if aa == '-' {
			continue
		}
		resName, ok := threeLetter[aa]
		if !ok {
			return fmt.Errorf("residue %q has no three-letter code", aa)
		}
		for j, atom := range backboneAtoms {
			if aa == 'G' && atom == "CB" {
				continue
			}
			x := coords[pos][3*j]
			y := coords[pos][3*j+1]
			z := coords[pos][3*j+2]
			element := atom[:1]
			fmt.Fprintf(w, atomLine, serial, atom, resName, residue, x, y, z, 0.0, element)
			serial++
		}
		residue++
	}
	return nil
}
