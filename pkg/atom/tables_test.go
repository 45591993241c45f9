package atom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/molviz-labs/molsel/pkg/atom"
)

func TestClassificationPredicates(t *testing.T) {
	assert.True(t, atom.IsStandardResidue("ALA"))
	assert.True(t, atom.IsStandardResidue("ala"))
	assert.False(t, atom.IsStandardResidue("HOH"))
	assert.False(t, atom.IsStandardResidue("HEM"))

	assert.True(t, atom.IsWater("HOH"))
	assert.True(t, atom.IsWater("tip3"))
	assert.False(t, atom.IsWater("GOL"))

	// Water counts as solvent; the converse does not hold.
	assert.True(t, atom.IsSolvent("HOH"))
	assert.True(t, atom.IsSolvent("GOL"))
	assert.False(t, atom.IsWater("SOL"))
	assert.True(t, atom.IsSolvent("SOL"))

	assert.True(t, atom.IsBackboneAtom("CA"))
	assert.True(t, atom.IsBackboneAtom("n"))
	assert.False(t, atom.IsBackboneAtom("CB"))
	assert.False(t, atom.IsBackboneAtom(atom.TerminalOxygen))

	assert.True(t, atom.IsMetalElement("FE"))
	assert.True(t, atom.IsMetalElement("zn"))
	assert.False(t, atom.IsMetalElement("C"))
	assert.False(t, atom.IsMetalElement("H"))
}

func TestDistSq(t *testing.T) {
	a := atom.Atom{X: 0, Y: 0, Z: 0}
	b := atom.Atom{X: 3, Y: 4, Z: 0}
	assert.InDelta(t, 25.0, a.DistSq(b), 1e-12)
	assert.InDelta(t, 25.0, b.DistSq(a), 1e-12)
	assert.Zero(t, a.DistSq(a))
}

func TestResidueKey(t *testing.T) {
	a := atom.Atom{Chain: "A", Resi: 42, Name: "CA"}
	b := atom.Atom{Chain: "A", Resi: 42, Name: "CB"}
	c := atom.Atom{Chain: "B", Resi: 42, Name: "CA"}

	assert.Equal(t, a.Residue(), b.Residue())
	assert.NotEqual(t, a.Residue(), c.Residue())
}
