package atom

import "strings"

// Classification tables. These are fixed reference data, initialized once
// and never mutated; changing what counts as water or metal is a data edit
// here, never a logic change in the evaluator.

// standardResidues holds the three-letter codes of the standard amino acids.
var standardResidues = makeSet(
	"ALA", "ARG", "ASN", "ASP", "CYS",
	"GLN", "GLU", "GLY", "HIS", "ILE",
	"LEU", "LYS", "MET", "PHE", "PRO",
	"SER", "THR", "TRP", "TYR", "VAL",
)

// waterResidues holds residue names that denote water.
var waterResidues = makeSet("HOH", "WAT", "H2O", "DOD", "TIP", "TIP3", "TIP4", "SPC")

// solventResidues holds non-water solvent and cryoprotectant residue names.
var solventResidues = makeSet("SOL", "EOH", "GOL", "EDO", "DMS", "PEG", "MPD")

// backboneAtoms holds the protein backbone atom names.
var backboneAtoms = makeSet("N", "CA", "C", "O")

// TerminalOxygen is the C-terminal carboxylate oxygen label. It is neither
// backbone (not in the N/CA/C/O set) nor sidechain.
const TerminalOxygen = "OXT"

// metalElements holds element symbols classified as metals.
var metalElements = makeSet(
	"LI", "NA", "K", "RB", "CS",
	"MG", "CA", "SR", "BA",
	"MN", "FE", "CO", "NI", "CU", "ZN",
	"MO", "W", "V", "CR", "CD", "HG", "PT", "AU", "AG", "AL",
)

func makeSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// IsStandardResidue reports whether resn is a standard amino-acid residue
// name. Matching is case-insensitive.
func IsStandardResidue(resn string) bool {
	_, ok := standardResidues[strings.ToUpper(resn)]
	return ok
}

// IsWater reports whether resn is a water residue name.
func IsWater(resn string) bool {
	_, ok := waterResidues[strings.ToUpper(resn)]
	return ok
}

// IsSolvent reports whether resn is a water or non-water solvent residue
// name. Water counts as solvent.
func IsSolvent(resn string) bool {
	if IsWater(resn) {
		return true
	}
	_, ok := solventResidues[strings.ToUpper(resn)]
	return ok
}

// IsBackboneAtom reports whether name is one of the protein backbone atom
// names (N, CA, C, O).
func IsBackboneAtom(name string) bool {
	_, ok := backboneAtoms[strings.ToUpper(name)]
	return ok
}

// IsMetalElement reports whether elem is a metal element symbol.
func IsMetalElement(elem string) bool {
	_, ok := metalElements[strings.ToUpper(elem)]
	return ok
}
