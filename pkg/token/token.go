// Package token defines the token types for the selection expression grammar.
//
// All tokens are defined as constants; the selection grammar is closed and
// has no dialect or extension mechanism.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // TOKEN names follow the grammar keyword spelling
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // atom/residue word, may contain glob characters (* ?)
	NUMBER // 1, 100, 2.5

	// Operators and punctuation
	PLUS   // + (value-list separator)
	MINUS  // - (range separator)
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	EQEQ   // ==
	LPAREN // (
	RPAREN // )

	// Logical keywords
	AND
	OR
	NOT
	XOR

	// Property predicate keywords
	NAME
	RESN
	CHAIN
	ELEM
	RESI
	INDEX

	// Distance and expansion keywords
	AROUND
	XAROUND
	BEYOND
	BYRES
	BYCHAIN

	// Bare selector keywords
	ALL
	NONE
	PROTEIN
	WATER
	SOLVENT
	BACKBONE
	SIDECHAIN
	METAL
	LIGAND
	ORGANIC
	HYDROGEN
	HEAVY
	POLARH
	NONPOLARH
	HELIX
	SHEET
	TURN
	LOOP
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	PLUS:   "+",
	MINUS:  "-",
	LT:     "<",
	GT:     ">",
	LE:     "<=",
	GE:     ">=",
	EQEQ:   "==",
	LPAREN: "(",
	RPAREN: ")",

	AND: "and",
	OR:  "or",
	NOT: "not",
	XOR: "xor",

	NAME:  "name",
	RESN:  "resn",
	CHAIN: "chain",
	ELEM:  "elem",
	RESI:  "resi",
	INDEX: "index",

	AROUND:  "around",
	XAROUND: "xaround",
	BEYOND:  "beyond",
	BYRES:   "byres",
	BYCHAIN: "bychain",

	ALL:       "all",
	NONE:      "none",
	PROTEIN:   "protein",
	WATER:     "water",
	SOLVENT:   "solvent",
	BACKBONE:  "backbone",
	SIDECHAIN: "sidechain",
	METAL:     "metal",
	LIGAND:    "ligand",
	ORGANIC:   "organic",
	HYDROGEN:  "hydrogen",
	HEAVY:     "heavy",
	POLARH:    "polar_hydrogen",
	NONPOLARH: "nonpolar_hydrogen",
	HELIX:     "helix",
	SHEET:     "sheet",
	TURN:      "turn",
	LOOP:      "loop",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and": AND,
	"or":  OR,
	"not": NOT,
	"xor": XOR,

	"name":  NAME,
	"resn":  RESN,
	"chain": CHAIN,
	"elem":  ELEM,
	"resi":  RESI,
	"index": INDEX,

	"around":  AROUND,
	"xaround": XAROUND,
	"beyond":  BEYOND,
	"byres":   BYRES,
	"bychain": BYCHAIN,

	"all":               ALL,
	"none":              NONE,
	"protein":           PROTEIN,
	"water":             WATER,
	"solvent":           SOLVENT,
	"backbone":          BACKBONE,
	"sidechain":         SIDECHAIN,
	"metal":             METAL,
	"ligand":            LIGAND,
	"organic":           ORGANIC,
	"hydrogen":          HYDROGEN,
	"heavy":             HEAVY,
	"polar_hydrogen":    POLARH,
	"nonpolar_hydrogen": NONPOLARH,
	"helix":             HELIX,
	"sheet":             SHEET,
	"turn":              TURN,
	"loop":              LOOP,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword (matched on its lowercase form), the
// keyword token type is returned. Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a grammar keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= LOOP
}

// Keywords returns every keyword spelling of the grammar in no particular
// order. Used by the shell for completion.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
