// Package atom defines the read-only atom snapshot consumed by the
// selection evaluator, plus the static classification tables used to decide
// what counts as protein, water, solvent or metal.
package atom

// Secondary-structure codes. Loop is encoded as either SSLoop or an empty
// string; everything else is a single lowercase letter.
const (
	SSHelix = "h"
	SSSheet = "s"
	SSTurn  = "t"
	SSLoop  = "c"
)

// Atom is one atom of a loaded structure. Atoms are externally owned
// snapshots: the selection core never mutates them and always returns
// filtered subsequences of the slices it is given.
type Atom struct {
	Serial    int     // unique non-negative id within a session
	Name      string  // atom name, e.g. CA, OXT
	Resn      string  // residue name, e.g. ALA, HOH
	Resi      int     // residue sequence number
	Chain     string  // chain identifier, possibly empty
	Elem      string  // element symbol, e.g. C, N, FE
	SecStruct string  // one of SSHelix/SSSheet/SSTurn/SSLoop or empty
	X, Y, Z   float64 // coordinates in Angstrom
	Model     string  // owning model/object identifier
}

// DistSq returns the squared Euclidean distance to another atom.
// Callers compare against radius*radius to avoid the square root.
func (a Atom) DistSq(b Atom) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

// ResidueKey identifies the residue an atom belongs to.
type ResidueKey struct {
	Chain string
	Resi  int
}

// Residue returns the atom's residue key.
func (a Atom) Residue() ResidueKey {
	return ResidueKey{Chain: a.Chain, Resi: a.Resi}
}
