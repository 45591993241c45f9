// Package eval evaluates parsed selection expressions against an in-memory
// atom snapshot.
//
// Evaluate is a pure function: it never mutates its input and always
// returns an order-preserving, duplicate-free subsequence of it. Boolean
// set algebra is keyed by atom serial and realized by re-filtering the
// original input sequence, so ordering holds for every node type.
//
// Distance operators use a brute-force all-pairs scan over squared
// distances; the boundary is inclusive.
package eval

import (
	"fmt"
	"strings"

	"github.com/molviz-labs/molsel/pkg/atom"
	"github.com/molviz-labs/molsel/pkg/parser"
)

// UnsupportedNodeError reports an AST node the evaluator cannot classify.
// The parser never produces one; seeing this error means a programming
// invariant was violated, so it is propagated rather than absorbed.
type UnsupportedNodeError struct {
	Node parser.Expr
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("evaluator: unsupported AST node %T", e.Node)
}

// Evaluate applies the selection expression to atoms and returns the
// matching subsequence in input order.
func Evaluate(expr parser.Expr, atoms []atom.Atom) ([]atom.Atom, error) {
	switch e := expr.(type) {
	case *parser.AllExpr:
		return filter(atoms, func(atom.Atom) bool { return true }), nil

	case *parser.NoneExpr:
		return []atom.Atom{}, nil

	case *parser.NameExpr:
		m := newValueMatcher(e.Values)
		return filter(atoms, func(a atom.Atom) bool { return m.match(a.Name) }), nil

	case *parser.ResnExpr:
		m := newValueMatcher(e.Values)
		return filter(atoms, func(a atom.Atom) bool { return m.match(a.Resn) }), nil

	case *parser.ChainExpr:
		return filter(atoms, func(a atom.Atom) bool { return a.Chain == e.Value }), nil

	case *parser.ElemExpr:
		return filter(atoms, func(a atom.Atom) bool { return strings.EqualFold(a.Elem, e.Value) }), nil

	case *parser.ResiExpr:
		return filter(atoms, func(a atom.Atom) bool { return e.Pred.Matches(a.Resi) }), nil

	case *parser.IndexExpr:
		return filter(atoms, func(a atom.Atom) bool { return e.Pred.Matches(a.Serial) }), nil

	case *parser.ClassExpr:
		result, ok := evalClass(e.Class, atoms)
		if !ok {
			return nil, &UnsupportedNodeError{Node: expr}
		}
		return result, nil

	case *parser.AndExpr:
		sets, err := childSets(e.Exprs, atoms)
		if err != nil {
			return nil, err
		}
		return filter(atoms, func(a atom.Atom) bool {
			for _, s := range sets {
				if _, ok := s[a.Serial]; !ok {
					return false
				}
			}
			return true
		}), nil

	case *parser.OrExpr:
		sets, err := childSets(e.Exprs, atoms)
		if err != nil {
			return nil, err
		}
		return filter(atoms, func(a atom.Atom) bool {
			for _, s := range sets {
				if _, ok := s[a.Serial]; ok {
					return true
				}
			}
			return false
		}), nil

	case *parser.XorExpr:
		sets, err := childSets(e.Exprs, atoms)
		if err != nil {
			return nil, err
		}
		// Exactly one child matches, not an odd number of them.
		return filter(atoms, func(a atom.Atom) bool {
			n := 0
			for _, s := range sets {
				if _, ok := s[a.Serial]; ok {
					n++
					if n > 1 {
						return false
					}
				}
			}
			return n == 1
		}), nil

	case *parser.NotExpr:
		inner, err := Evaluate(e.Expr, atoms)
		if err != nil {
			return nil, err
		}
		set := serialSet(inner)
		return filter(atoms, func(a atom.Atom) bool {
			_, ok := set[a.Serial]
			return !ok
		}), nil

	case *parser.AroundExpr:
		ref, err := Evaluate(e.Expr, atoms)
		if err != nil {
			return nil, err
		}
		refSet := serialSet(ref)
		r2 := e.Radius * e.Radius
		return filter(atoms, func(a atom.Atom) bool {
			if _, isRef := refSet[a.Serial]; isRef {
				// around keeps its reference atoms, xaround drops them
				// even when they satisfy their own radius test.
				return !e.Exclusive
			}
			return withinAny(a, ref, r2)
		}), nil

	case *parser.BeyondExpr:
		ref, err := Evaluate(e.Expr, atoms)
		if err != nil {
			return nil, err
		}
		r2 := e.Radius * e.Radius
		// An atom at distance exactly Radius is not beyond; reference
		// atoms sit at distance zero from themselves and never qualify.
		return filter(atoms, func(a atom.Atom) bool {
			return !withinAny(a, ref, r2)
		}), nil

	case *parser.ByResExpr:
		inner, err := Evaluate(e.Expr, atoms)
		if err != nil {
			return nil, err
		}
		keys := make(map[atom.ResidueKey]struct{}, len(inner))
		for _, a := range inner {
			keys[a.Residue()] = struct{}{}
		}
		return filter(atoms, func(a atom.Atom) bool {
			_, ok := keys[a.Residue()]
			return ok
		}), nil

	case *parser.ByChainExpr:
		inner, err := Evaluate(e.Expr, atoms)
		if err != nil {
			return nil, err
		}
		chains := make(map[string]struct{}, len(inner))
		for _, a := range inner {
			chains[a.Chain] = struct{}{}
		}
		return filter(atoms, func(a atom.Atom) bool {
			_, ok := chains[a.Chain]
			return ok
		}), nil

	default:
		return nil, &UnsupportedNodeError{Node: expr}
	}
}

// childSets evaluates every child and returns their results as serial sets.
func childSets(exprs []parser.Expr, atoms []atom.Atom) ([]map[int]struct{}, error) {
	sets := make([]map[int]struct{}, len(exprs))
	for i, child := range exprs {
		result, err := Evaluate(child, atoms)
		if err != nil {
			return nil, err
		}
		sets[i] = serialSet(result)
	}
	return sets, nil
}

// serialSet builds a membership set keyed by atom serial.
func serialSet(atoms []atom.Atom) map[int]struct{} {
	set := make(map[int]struct{}, len(atoms))
	for _, a := range atoms {
		set[a.Serial] = struct{}{}
	}
	return set
}

// filter returns the atoms satisfying keep, in input order.
func filter(atoms []atom.Atom, keep func(atom.Atom) bool) []atom.Atom {
	result := make([]atom.Atom, 0, len(atoms))
	for _, a := range atoms {
		if keep(a) {
			result = append(result, a)
		}
	}
	return result
}

// withinAny reports whether a is within the squared radius r2 of any
// reference atom. The boundary is inclusive.
func withinAny(a atom.Atom, ref []atom.Atom, r2 float64) bool {
	for _, r := range ref {
		if a.DistSq(r) <= r2 {
			return true
		}
	}
	return false
}
