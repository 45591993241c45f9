// Package selspec compiles simple selection ASTs into a flat
// attribute-conjunction Spec that a host renderer can filter natively,
// bypassing full evaluation.
//
// Compilation is best-effort: only ASTs built exclusively from all,
// glob-free name/resn lists, chain, elem, resi exact equality, and
// conjunctions of those convert. Everything else reports "not convertible",
// which is a normal outcome; callers always keep the evaluator as
// fallback. A produced Spec denotes exactly the same atom set as
// evaluating the source AST.
package selspec

import (
	"strings"

	"github.com/molviz-labs/molsel/pkg/atom"
	"github.com/molviz-labs/molsel/pkg/parser"
)

// Spec is a pure conjunction of per-attribute constraints. A nil slice
// leaves the attribute unconstrained; a non-nil empty slice is an
// unsatisfiable constraint (the Spec matches nothing). Name, Resn and Elem
// values are stored uppercased; Chain values are verbatim, matching the
// evaluator's exact chain comparison.
type Spec struct {
	Name  []string `json:"name,omitempty"`
	Resn  []string `json:"resn,omitempty"`
	Chain []string `json:"chain,omitempty"`
	Elem  []string `json:"elem,omitempty"`
	Resi  []int    `json:"resi,omitempty"`
}

// Compile rewrites expr into a Spec. ok is false when the AST contains any
// node outside the convertible subset; that is not an error.
func Compile(expr parser.Expr) (*Spec, bool) {
	switch e := expr.(type) {
	case *parser.AllExpr:
		return &Spec{}, true

	case *parser.NameExpr:
		if hasGlob(e.Values) {
			// The host fast path matches values literally; compiling a
			// glob would break spec/evaluator agreement.
			return nil, false
		}
		return &Spec{Name: upperAll(e.Values)}, true

	case *parser.ResnExpr:
		if hasGlob(e.Values) {
			return nil, false
		}
		return &Spec{Resn: upperAll(e.Values)}, true

	case *parser.ChainExpr:
		return &Spec{Chain: []string{e.Value}}, true

	case *parser.ElemExpr:
		return &Spec{Elem: []string{strings.ToUpper(e.Value)}}, true

	case *parser.ResiExpr:
		if e.Pred.Op != parser.CmpEQ {
			return nil, false
		}
		return &Spec{Resi: []int{e.Pred.Value}}, true

	case *parser.AndExpr:
		spec := &Spec{}
		for _, child := range e.Exprs {
			s, ok := Compile(child)
			if !ok {
				return nil, false
			}
			spec = spec.merge(s)
		}
		return spec, true

	default:
		return nil, false
	}
}

// merge intersects two conjunctions attribute by attribute.
func (s *Spec) merge(o *Spec) *Spec {
	return &Spec{
		Name:  intersectStr(s.Name, o.Name),
		Resn:  intersectStr(s.Resn, o.Resn),
		Chain: intersectStr(s.Chain, o.Chain),
		Elem:  intersectStr(s.Elem, o.Elem),
		Resi:  intersectInt(s.Resi, o.Resi),
	}
}

// Matches reports whether the atom satisfies every constraint.
func (s *Spec) Matches(a atom.Atom) bool {
	if s.Name != nil && !containsStr(s.Name, strings.ToUpper(a.Name)) {
		return false
	}
	if s.Resn != nil && !containsStr(s.Resn, strings.ToUpper(a.Resn)) {
		return false
	}
	if s.Chain != nil && !containsStr(s.Chain, a.Chain) {
		return false
	}
	if s.Elem != nil && !containsStr(s.Elem, strings.ToUpper(a.Elem)) {
		return false
	}
	if s.Resi != nil && !containsInt(s.Resi, a.Resi) {
		return false
	}
	return true
}

// Filter returns the atoms matching the Spec, in input order.
func (s *Spec) Filter(atoms []atom.Atom) []atom.Atom {
	result := make([]atom.Atom, 0, len(atoms))
	for _, a := range atoms {
		if s.Matches(a) {
			result = append(result, a)
		}
	}
	return result
}

func hasGlob(values []string) bool {
	for _, v := range values {
		if strings.ContainsAny(v, "*?") {
			return true
		}
	}
	return false
}

func upperAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(v)
	}
	return out
}

func containsStr(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, n := range values {
		if n == v {
			return true
		}
	}
	return false
}

func intersectStr(a, b []string) []string {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := []string{}
	for _, v := range a {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func intersectInt(a, b []int) []int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	set := make(map[int]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := []int{}
	for _, v := range a {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
