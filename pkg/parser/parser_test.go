package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molviz-labs/molsel/pkg/parser"
)

// ---------- Primary Selectors ----------

func TestParsePrimarySelectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  parser.Expr
	}{
		{
			name:  "all",
			input: "all",
			want:  &parser.AllExpr{},
		},
		{
			name:  "none",
			input: "none",
			want:  &parser.NoneExpr{},
		},
		{
			name:  "single name",
			input: "name CA",
			want:  &parser.NameExpr{Values: []string{"CA"}},
		},
		{
			name:  "name list",
			input: "name CA+CB+N",
			want:  &parser.NameExpr{Values: []string{"CA", "CB", "N"}},
		},
		{
			name:  "name glob",
			input: "name C*",
			want:  &parser.NameExpr{Values: []string{"C*"}},
		},
		{
			name:  "resn list",
			input: "resn ALA+GLY",
			want:  &parser.ResnExpr{Values: []string{"ALA", "GLY"}},
		},
		{
			name:  "chain",
			input: "chain A",
			want:  &parser.ChainExpr{Value: "A"},
		},
		{
			name:  "elem",
			input: "elem Fe",
			want:  &parser.ElemExpr{Value: "Fe"},
		},
		{
			name:  "resi exact",
			input: "resi 42",
			want:  &parser.ResiExpr{Pred: parser.NumPred{Op: parser.CmpEQ, Value: 42}},
		},
		{
			name:  "resi range",
			input: "resi 10-40",
			want:  &parser.ResiExpr{Pred: parser.NumPred{Op: parser.CmpRange, Low: 10, High: 40}},
		},
		{
			name:  "resi relational",
			input: "resi >= 100",
			want:  &parser.ResiExpr{Pred: parser.NumPred{Op: parser.CmpGE, Value: 100}},
		},
		{
			name:  "index equality",
			input: "index == 7",
			want:  &parser.IndexExpr{Pred: parser.NumPred{Op: parser.CmpEQ, Value: 7}},
		},
		{
			name:  "index strict less",
			input: "index < 100",
			want:  &parser.IndexExpr{Pred: parser.NumPred{Op: parser.CmpLT, Value: 100}},
		},
		{
			name:  "class keyword",
			input: "backbone",
			want:  &parser.ClassExpr{Class: parser.ClassBackbone},
		},
		{
			name:  "numeric chain value",
			input: "chain 1",
			want:  &parser.ChainExpr{Value: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr)
		})
	}
}

// ---------- Boolean Combinators ----------

func TestParseBooleanOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  parser.Expr
	}{
		{
			name:  "and",
			input: "chain A and name CA",
			want: &parser.AndExpr{Exprs: []parser.Expr{
				&parser.ChainExpr{Value: "A"},
				&parser.NameExpr{Values: []string{"CA"}},
			}},
		},
		{
			name:  "or",
			input: "water or solvent",
			want: &parser.OrExpr{Exprs: []parser.Expr{
				&parser.ClassExpr{Class: parser.ClassWater},
				&parser.ClassExpr{Class: parser.ClassSolvent},
			}},
		},
		{
			name:  "xor",
			input: "chain A xor chain B",
			want: &parser.XorExpr{Exprs: []parser.Expr{
				&parser.ChainExpr{Value: "A"},
				&parser.ChainExpr{Value: "B"},
			}},
		},
		{
			name:  "not",
			input: "not water",
			want:  &parser.NotExpr{Expr: &parser.ClassExpr{Class: parser.ClassWater}},
		},
		{
			name:  "double negation",
			input: "not not water",
			want: &parser.NotExpr{
				Expr: &parser.NotExpr{Expr: &parser.ClassExpr{Class: parser.ClassWater}},
			},
		},
		{
			name:  "same-operator runs collapse to one n-ary node",
			input: "chain A or chain B or chain C",
			want: &parser.OrExpr{Exprs: []parser.Expr{
				&parser.ChainExpr{Value: "A"},
				&parser.ChainExpr{Value: "B"},
				&parser.ChainExpr{Value: "C"},
			}},
		},
		{
			name:  "and binds tighter than or",
			input: "chain A and name CA or water",
			want: &parser.OrExpr{Exprs: []parser.Expr{
				&parser.AndExpr{Exprs: []parser.Expr{
					&parser.ChainExpr{Value: "A"},
					&parser.NameExpr{Values: []string{"CA"}},
				}},
				&parser.ClassExpr{Class: parser.ClassWater},
			}},
		},
		{
			name:  "not binds tighter than and",
			input: "not water and chain A",
			want: &parser.AndExpr{Exprs: []parser.Expr{
				&parser.NotExpr{Expr: &parser.ClassExpr{Class: parser.ClassWater}},
				&parser.ChainExpr{Value: "A"},
			}},
		},
		{
			name:  "or and xor mix left-associatively",
			input: "chain A or chain B xor chain C",
			want: &parser.XorExpr{Exprs: []parser.Expr{
				&parser.OrExpr{Exprs: []parser.Expr{
					&parser.ChainExpr{Value: "A"},
					&parser.ChainExpr{Value: "B"},
				}},
				&parser.ChainExpr{Value: "C"},
			}},
		},
		{
			name:  "parentheses override precedence",
			input: "chain A and (name CA or water)",
			want: &parser.AndExpr{Exprs: []parser.Expr{
				&parser.ChainExpr{Value: "A"},
				&parser.OrExpr{Exprs: []parser.Expr{
					&parser.NameExpr{Values: []string{"CA"}},
					&parser.ClassExpr{Class: parser.ClassWater},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr)
		})
	}
}

// ---------- Distance and Expansion Operators ----------

func TestParsePrefixOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  parser.Expr
	}{
		{
			name:  "around",
			input: "around 4.5 resn HEM",
			want: &parser.AroundExpr{
				Radius: 4.5,
				Expr:   &parser.ResnExpr{Values: []string{"HEM"}},
			},
		},
		{
			name:  "xaround",
			input: "xaround 5 water",
			want: &parser.AroundExpr{
				Radius:    5,
				Expr:      &parser.ClassExpr{Class: parser.ClassWater},
				Exclusive: true,
			},
		},
		{
			name:  "beyond",
			input: "beyond 8.0 ligand",
			want: &parser.BeyondExpr{
				Radius: 8.0,
				Expr:   &parser.ClassExpr{Class: parser.ClassLigand},
			},
		},
		{
			name:  "byres",
			input: "byres name CB",
			want:  &parser.ByResExpr{Expr: &parser.NameExpr{Values: []string{"CB"}}},
		},
		{
			name:  "bychain",
			input: "bychain resn HEM",
			want:  &parser.ByChainExpr{Expr: &parser.ResnExpr{Values: []string{"HEM"}}},
		},
		{
			name:  "prefix operators nest",
			input: "byres around 4.5 resn HEM",
			want: &parser.ByResExpr{Expr: &parser.AroundExpr{
				Radius: 4.5,
				Expr:   &parser.ResnExpr{Values: []string{"HEM"}},
			}},
		},
		{
			name:  "prefix binds tighter than and",
			input: "around 3 water and chain A",
			want: &parser.AndExpr{Exprs: []parser.Expr{
				&parser.AroundExpr{
					Radius: 3,
					Expr:   &parser.ClassExpr{Class: parser.ClassWater},
				},
				&parser.ChainExpr{Value: "A"},
			}},
		},
		{
			name:  "not applies to the whole prefix expression",
			input: "not byres name CB",
			want: &parser.NotExpr{
				Expr: &parser.ByResExpr{Expr: &parser.NameExpr{Values: []string{"CB"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr)
		})
	}
}

// ---------- Errors ----------

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "empty input",
			input:   "",
			wantMsg: "empty selection expression",
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantMsg: "empty selection expression",
		},
		{
			name:    "missing value after name",
			input:   "name",
			wantMsg: "expected a value after name",
		},
		{
			name:    "missing value after chain",
			input:   "chain and water",
			wantMsg: "expected a value after chain",
		},
		{
			name:    "missing value in list",
			input:   "name CA+",
			wantMsg: "expected a value after name",
		},
		{
			name:    "missing radius",
			input:   "around water",
			wantMsg: "expected a non-negative radius after around",
		},
		{
			name:    "missing integer after resi",
			input:   "resi CA",
			wantMsg: "expected an integer",
		},
		{
			name:    "missing range end",
			input:   "resi 10-",
			wantMsg: "expected an integer",
		},
		{
			name:    "unclosed parenthesis",
			input:   "(chain A",
			wantMsg: "unexpected",
		},
		{
			name:    "trailing input",
			input:   "chain A chain B",
			wantMsg: "unexpected trailing input",
		},
		{
			name:    "dangling operator",
			input:   "chain A and",
			wantMsg: "expected a selection term",
		},
		{
			name:    "bare equals",
			input:   "resi = 5",
			wantMsg: "expected an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, expr, "a failed parse must not yield a partial AST")

			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

// ---------- NumPred ----------

func TestNumPredMatches(t *testing.T) {
	tests := []struct {
		name string
		pred parser.NumPred
		n    int
		want bool
	}{
		{name: "eq hit", pred: parser.NumPred{Op: parser.CmpEQ, Value: 5}, n: 5, want: true},
		{name: "eq miss", pred: parser.NumPred{Op: parser.CmpEQ, Value: 5}, n: 6, want: false},
		{name: "ge boundary", pred: parser.NumPred{Op: parser.CmpGE, Value: 5}, n: 5, want: true},
		{name: "le boundary", pred: parser.NumPred{Op: parser.CmpLE, Value: 5}, n: 5, want: true},
		{name: "gt boundary excluded", pred: parser.NumPred{Op: parser.CmpGT, Value: 5}, n: 5, want: false},
		{name: "lt boundary excluded", pred: parser.NumPred{Op: parser.CmpLT, Value: 5}, n: 5, want: false},
		{name: "range low end inclusive", pred: parser.NumPred{Op: parser.CmpRange, Low: 10, High: 40}, n: 10, want: true},
		{name: "range high end inclusive", pred: parser.NumPred{Op: parser.CmpRange, Low: 10, High: 40}, n: 40, want: true},
		{name: "range outside", pred: parser.NumPred{Op: parser.CmpRange, Low: 10, High: 40}, n: 41, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Matches(tt.n))
		})
	}
}
