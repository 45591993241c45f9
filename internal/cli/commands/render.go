package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/molviz-labs/molsel/pkg/atom"
)

// atomRow is the JSON shape of one rendered atom.
type atomRow struct {
	Serial int     `json:"serial"`
	Name   string  `json:"name"`
	Resn   string  `json:"resn"`
	Resi   int     `json:"resi"`
	Chain  string  `json:"chain"`
	Elem   string  `json:"elem"`
	SS     string  `json:"ss,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Model  string  `json:"model,omitempty"`
}

func toRows(atoms []atom.Atom) []atomRow {
	rows := make([]atomRow, len(atoms))
	for i, a := range atoms {
		rows[i] = atomRow{
			Serial: a.Serial,
			Name:   a.Name,
			Resn:   a.Resn,
			Resi:   a.Resi,
			Chain:  a.Chain,
			Elem:   a.Elem,
			SS:     a.SecStruct,
			X:      a.X,
			Y:      a.Y,
			Z:      a.Z,
			Model:  a.Model,
		}
	}
	return rows
}

// renderAtoms writes the matched atoms in the requested format. limit
// bounds table output only; json and csv always emit everything.
func renderAtoms(w io.Writer, atoms []atom.Atom, format string, limit int) error {
	switch format {
	case "json":
		return renderJSON(w, atoms)
	case "csv":
		return renderCSV(w, atoms)
	case "count":
		_, err := fmt.Fprintf(w, "%d\n", len(atoms))
		return err
	default:
		return renderTable(w, atoms, limit)
	}
}

func renderTable(w io.Writer, atoms []atom.Atom, limit int) error {
	if len(atoms) == 0 {
		_, _ = fmt.Fprintln(w, "(0 atoms)")
		return nil
	}

	shown := atoms
	if limit > 0 && len(atoms) > limit {
		shown = atoms[:limit]
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Serial", "Name", "Resn", "Resi", "Chain", "Elem", "SS", "X", "Y", "Z"})

	for _, a := range shown {
		t.AppendRow(table.Row{
			a.Serial, a.Name, a.Resn, a.Resi, a.Chain, a.Elem, a.SecStruct,
			fmt.Sprintf("%.3f", a.X),
			fmt.Sprintf("%.3f", a.Y),
			fmt.Sprintf("%.3f", a.Z),
		})
	}

	t.Render()
	if len(shown) < len(atoms) {
		_, _ = fmt.Fprintf(w, "(showing %d of %d atoms)\n", len(shown), len(atoms))
	} else {
		_, _ = fmt.Fprintf(w, "(%d atoms)\n", len(atoms))
	}
	return nil
}

func renderJSON(w io.Writer, atoms []atom.Atom) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toRows(atoms))
}

func renderCSV(w io.Writer, atoms []atom.Atom) error {
	_, _ = fmt.Fprintln(w, "serial,name,resn,resi,chain,elem,ss,x,y,z,model")
	for _, a := range atoms {
		values := []string{
			fmt.Sprintf("%d", a.Serial),
			escapeCSV(a.Name),
			escapeCSV(a.Resn),
			fmt.Sprintf("%d", a.Resi),
			escapeCSV(a.Chain),
			escapeCSV(a.Elem),
			escapeCSV(a.SecStruct),
			fmt.Sprintf("%.3f", a.X),
			fmt.Sprintf("%.3f", a.Y),
			fmt.Sprintf("%.3f", a.Z),
			escapeCSV(a.Model),
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
