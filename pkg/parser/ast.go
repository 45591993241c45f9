package parser

// Expr represents a node of a parsed selection expression. The node set is
// closed: the evaluator switches exhaustively over these types and treats
// anything else as an invariant violation.
type Expr interface {
	selNode()
}

// ---------- Atomic Selectors ----------

// AllExpr matches every atom.
type AllExpr struct{}

func (*AllExpr) selNode() {}

// NoneExpr matches no atom.
type NoneExpr struct{}

func (*NoneExpr) selNode() {}

// NameExpr matches atoms whose name is in Values. A value containing the
// glob characters * or ? is matched as an anchored, case-insensitive
// pattern; any other value is matched case-insensitively verbatim.
type NameExpr struct {
	Values []string
}

func (*NameExpr) selNode() {}

// ResnExpr matches atoms whose residue name is in Values, with the same
// glob semantics as NameExpr.
type ResnExpr struct {
	Values []string
}

func (*ResnExpr) selNode() {}

// ChainExpr matches atoms by exact chain identifier.
type ChainExpr struct {
	Value string
}

func (*ChainExpr) selNode() {}

// ElemExpr matches atoms by element symbol, case-insensitively.
type ElemExpr struct {
	Value string
}

func (*ElemExpr) selNode() {}

// CompareOp is the comparison form of a numeric predicate.
type CompareOp int

// Comparison forms for resi/index predicates.
const (
	CmpEQ    CompareOp = iota // == n (also bare "resi n")
	CmpGE                     // >= n
	CmpLE                     // <= n
	CmpGT                     // > n
	CmpLT                     // < n
	CmpRange                  // low-high, inclusive on both ends
)

// NumPred describes a numeric comparison: exact equality, an inclusive
// range, or a relational comparison against a single operand.
type NumPred struct {
	Op        CompareOp
	Value     int // operand for all forms except CmpRange
	Low, High int // bounds for CmpRange
}

// Matches reports whether n satisfies the predicate.
func (p NumPred) Matches(n int) bool {
	switch p.Op {
	case CmpEQ:
		return n == p.Value
	case CmpGE:
		return n >= p.Value
	case CmpLE:
		return n <= p.Value
	case CmpGT:
		return n > p.Value
	case CmpLT:
		return n < p.Value
	case CmpRange:
		return n >= p.Low && n <= p.High
	}
	return false
}

// ResiExpr matches atoms by residue sequence number.
type ResiExpr struct {
	Pred NumPred
}

func (*ResiExpr) selNode() {}

// IndexExpr matches atoms by serial number.
type IndexExpr struct {
	Pred NumPred
}

func (*IndexExpr) selNode() {}

// Class is a built-in atom classification selector.
type Class int

// Classification selectors recognized as bare keywords.
const (
	ClassProtein Class = iota
	ClassWater
	ClassSolvent
	ClassBackbone
	ClassSidechain
	ClassMetal
	ClassLigand
	ClassOrganic
	ClassHydrogen
	ClassHeavy
	ClassPolarHydrogen
	ClassNonpolarHydrogen
	ClassHelix
	ClassSheet
	ClassTurn
	ClassLoop
)

// ClassExpr matches atoms belonging to a built-in classification.
type ClassExpr struct {
	Class Class
}

func (*ClassExpr) selNode() {}

// ---------- Boolean Combinators ----------

// AndExpr is the n-ary intersection of its children.
type AndExpr struct {
	Exprs []Expr
}

func (*AndExpr) selNode() {}

// OrExpr is the n-ary union of its children.
type OrExpr struct {
	Exprs []Expr
}

func (*OrExpr) selNode() {}

// XorExpr matches atoms present in exactly one child's result.
type XorExpr struct {
	Exprs []Expr
}

func (*XorExpr) selNode() {}

// NotExpr is the complement relative to the evaluated atom sequence.
type NotExpr struct {
	Expr Expr
}

func (*NotExpr) selNode() {}

// ---------- Distance and Expansion Operators ----------

// AroundExpr selects atoms within Radius of any atom matched by Expr.
// With Exclusive false (around) the reference atoms are part of the result;
// with Exclusive true (xaround) they are removed from it.
type AroundExpr struct {
	Radius    float64
	Expr      Expr
	Exclusive bool
}

func (*AroundExpr) selNode() {}

// BeyondExpr selects atoms with no reference atom within Radius. An atom at
// distance exactly Radius is not beyond.
type BeyondExpr struct {
	Radius float64
	Expr   Expr
}

func (*BeyondExpr) selNode() {}

// ByResExpr expands the match to every atom sharing a (chain, resi) pair
// with a matched atom.
type ByResExpr struct {
	Expr Expr
}

func (*ByResExpr) selNode() {}

// ByChainExpr expands the match to every atom sharing a chain identifier
// with a matched atom.
type ByChainExpr struct {
	Expr Expr
}

func (*ByChainExpr) selNode() {}
