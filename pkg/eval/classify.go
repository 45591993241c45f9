package eval

import (
	"strings"

	"github.com/molviz-labs/molsel/pkg/atom"
	"github.com/molviz-labs/molsel/pkg/parser"
)

// Atom-type classification. Some selectors are documented approximations:
// no bond graph is available, so polar_hydrogen and nonpolar_hydrogen both
// collapse to "any hydrogen", and organic is inferred per (chain, resi)
// group instead of by bonding analysis.

// evalClass evaluates a bare classification selector. ok is false when the
// class value is outside the known set.
func evalClass(c parser.Class, atoms []atom.Atom) ([]atom.Atom, bool) {
	var keep func(atom.Atom) bool

	switch c {
	case parser.ClassProtein:
		keep = isProtein
	case parser.ClassWater:
		keep = isWater
	case parser.ClassSolvent:
		keep = isSolvent
	case parser.ClassBackbone:
		keep = isBackbone
	case parser.ClassSidechain:
		keep = isSidechain
	case parser.ClassMetal:
		keep = isMetal
	case parser.ClassLigand:
		keep = isLigand
	case parser.ClassOrganic:
		groups := ligandCarbonGroups(atoms)
		keep = func(a atom.Atom) bool {
			return !isProtein(a) && !isSolvent(a) && groups[a.Residue()]
		}
	case parser.ClassHydrogen, parser.ClassPolarHydrogen, parser.ClassNonpolarHydrogen:
		keep = isHydrogen
	case parser.ClassHeavy:
		keep = func(a atom.Atom) bool { return !isHydrogen(a) }
	case parser.ClassHelix:
		keep = hasSS(atom.SSHelix)
	case parser.ClassSheet:
		keep = hasSS(atom.SSSheet)
	case parser.ClassTurn:
		keep = hasSS(atom.SSTurn)
	case parser.ClassLoop:
		keep = func(a atom.Atom) bool {
			ss := strings.ToLower(a.SecStruct)
			return ss == "" || ss == atom.SSLoop
		}
	default:
		return nil, false
	}

	return filter(atoms, keep), true
}

func isProtein(a atom.Atom) bool {
	return atom.IsStandardResidue(a.Resn)
}

func isWater(a atom.Atom) bool {
	return atom.IsWater(a.Resn)
}

// isSolvent includes water.
func isSolvent(a atom.Atom) bool {
	return atom.IsSolvent(a.Resn)
}

func isMetal(a atom.Atom) bool {
	return atom.IsMetalElement(a.Elem)
}

func isBackbone(a atom.Atom) bool {
	return isProtein(a) && atom.IsBackboneAtom(a.Name)
}

func isSidechain(a atom.Atom) bool {
	return isProtein(a) &&
		!atom.IsBackboneAtom(a.Name) &&
		!strings.EqualFold(a.Name, atom.TerminalOxygen)
}

func isLigand(a atom.Atom) bool {
	return !isProtein(a) && !isSolvent(a) && !isMetal(a)
}

func isHydrogen(a atom.Atom) bool {
	return strings.EqualFold(a.Elem, "H")
}

func hasSS(code string) func(atom.Atom) bool {
	return func(a atom.Atom) bool {
		return strings.ToLower(a.SecStruct) == code
	}
}

// ligandCarbonGroups maps each (chain, resi) group to whether it contains
// at least one carbon atom meeting the ligand criterion.
func ligandCarbonGroups(atoms []atom.Atom) map[atom.ResidueKey]bool {
	groups := make(map[atom.ResidueKey]bool)
	for _, a := range atoms {
		if isLigand(a) && strings.EqualFold(a.Elem, "C") {
			groups[a.Residue()] = true
		}
	}
	return groups
}
