// Package loader reads molecular structure files into atom snapshots for
// the selection core. Only the fixed-column PDB format is supported; the
// reader takes ATOM/HETATM coordinate records and assigns secondary
// structure from HELIX/SHEET records.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/molviz-labs/molsel/pkg/atom"
)

// Structure is one loaded model: an ordered atom snapshot plus its
// identifier.
type Structure struct {
	Model string
	Atoms []atom.Atom
}

// ssRange is a secondary-structure assignment covering an inclusive
// residue range on one chain.
type ssRange struct {
	chain    string
	from, to int
	code     string
}

// Load reads a PDB file. The model identifier is the file stem.
func Load(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open structure file: %w", err)
	}
	defer func() { _ = f.Close() }()

	model := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := Parse(f, model)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads PDB records from r. Only the first model of a multi-model
// file is read; parsing stops at ENDMDL or END.
func Parse(r io.Reader, model string) (*Structure, error) {
	s := &Structure{Model: model}
	var ranges []ssRange

	scanner := bufio.NewScanner(r)
	lineNo := 0
scan:
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < 6 {
			continue
		}

		switch strings.TrimSpace(line[:6]) {
		case "ATOM", "HETATM":
			a, err := parseAtomRecord(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			a.Model = model
			s.Atoms = append(s.Atoms, a)

		case "HELIX":
			if rng, ok := parseHelixRecord(line); ok {
				ranges = append(ranges, rng)
			}

		case "SHEET":
			if rng, ok := parseSheetRecord(line); ok {
				ranges = append(ranges, rng)
			}

		case "ENDMDL", "END":
			break scan
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read structure: %w", err)
	}

	applySecondaryStructure(s.Atoms, ranges)
	return s, nil
}

// parseAtomRecord parses one ATOM/HETATM line using the fixed PDB columns.
func parseAtomRecord(line string) (atom.Atom, error) {
	// Pad short lines so column slicing is safe; trailing columns
	// (element) are optional in the wild.
	if len(line) < 80 {
		line += strings.Repeat(" ", 80-len(line))
	}

	serial, err := strconv.Atoi(field(line, 6, 11))
	if err != nil {
		return atom.Atom{}, fmt.Errorf("bad atom serial %q", field(line, 6, 11))
	}
	resi, err := strconv.Atoi(field(line, 22, 26))
	if err != nil {
		return atom.Atom{}, fmt.Errorf("bad residue number %q", field(line, 22, 26))
	}

	x, err := parseCoord(line, 30, 38)
	if err != nil {
		return atom.Atom{}, err
	}
	y, err := parseCoord(line, 38, 46)
	if err != nil {
		return atom.Atom{}, err
	}
	z, err := parseCoord(line, 46, 54)
	if err != nil {
		return atom.Atom{}, err
	}

	name := field(line, 12, 16)
	elem := field(line, 76, 78)
	if elem == "" {
		elem = elementFromName(name)
	}

	return atom.Atom{
		Serial: serial,
		Name:   name,
		Resn:   field(line, 17, 20),
		Resi:   resi,
		Chain:  field(line, 21, 22),
		Elem:   elem,
		X:      x,
		Y:      y,
		Z:      z,
	}, nil
}

func parseCoord(line string, from, to int) (float64, error) {
	v, err := strconv.ParseFloat(field(line, from, to), 64)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q", field(line, from, to))
	}
	return v, nil
}

// parseHelixRecord extracts the chain and residue range of a HELIX record.
func parseHelixRecord(line string) (ssRange, bool) {
	return parseRange(line, 19, 21, 25, 33, 37, atom.SSHelix)
}

// parseSheetRecord extracts the chain and residue range of a SHEET record.
func parseSheetRecord(line string) (ssRange, bool) {
	return parseRange(line, 21, 22, 26, 33, 37, atom.SSSheet)
}

func parseRange(line string, chainCol, fromStart, fromEnd, toStart, toEnd int, code string) (ssRange, bool) {
	if len(line) < toEnd {
		return ssRange{}, false
	}
	from, err1 := strconv.Atoi(field(line, fromStart, fromEnd))
	to, err2 := strconv.Atoi(field(line, toStart, toEnd))
	if err1 != nil || err2 != nil {
		return ssRange{}, false
	}
	return ssRange{
		chain: field(line, chainCol, chainCol+1),
		from:  from,
		to:    to,
		code:  code,
	}, true
}

// applySecondaryStructure marks atoms inside helix/sheet ranges. Atoms not
// covered by any range keep an empty code, which the evaluator reads as
// loop.
func applySecondaryStructure(atoms []atom.Atom, ranges []ssRange) {
	if len(ranges) == 0 {
		return
	}
	for i := range atoms {
		for _, rng := range ranges {
			if atoms[i].Chain == rng.chain && atoms[i].Resi >= rng.from && atoms[i].Resi <= rng.to {
				atoms[i].SecStruct = rng.code
				break
			}
		}
	}
}

// field returns the trimmed column slice [from, to) of a record line.
func field(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return strings.TrimSpace(line[from:to])
}

// elementFromName guesses the element when the element columns are blank:
// strip leading digits, take the first letter. Good enough for the common
// C/N/O/S/H organic set this fallback exists for.
func elementFromName(name string) string {
	trimmed := strings.TrimLeft(name, "0123456789")
	if trimmed == "" {
		return ""
	}
	return strings.ToUpper(trimmed[:1])
}
