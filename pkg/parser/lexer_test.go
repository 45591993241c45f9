package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molviz-labs/molsel/pkg/parser"
	"github.com/molviz-labs/molsel/pkg/token"
)

func tokenTypes(input string) []token.TokenType {
	tokens := parser.Tokenize(input)
	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{
			name:  "bare keyword",
			input: "protein",
			want:  []token.TokenType{token.PROTEIN, token.EOF},
		},
		{
			name:  "name list with plus",
			input: "name CA+CB",
			want:  []token.TokenType{token.NAME, token.IDENT, token.PLUS, token.IDENT, token.EOF},
		},
		{
			name:  "resi range",
			input: "resi 10-40",
			want:  []token.TokenType{token.RESI, token.NUMBER, token.MINUS, token.NUMBER, token.EOF},
		},
		{
			name:  "relational operators",
			input: "resi >= 5 and index <= 100",
			want: []token.TokenType{
				token.RESI, token.GE, token.NUMBER,
				token.AND,
				token.INDEX, token.LE, token.NUMBER,
				token.EOF,
			},
		},
		{
			name:  "equality and strict comparisons",
			input: "resi == 7 or resi > 1 or resi < 9",
			want: []token.TokenType{
				token.RESI, token.EQEQ, token.NUMBER,
				token.OR,
				token.RESI, token.GT, token.NUMBER,
				token.OR,
				token.RESI, token.LT, token.NUMBER,
				token.EOF,
			},
		},
		{
			name:  "parenthesized boolean",
			input: "not (water or solvent)",
			want: []token.TokenType{
				token.NOT, token.LPAREN, token.WATER, token.OR, token.SOLVENT,
				token.RPAREN, token.EOF,
			},
		},
		{
			name:  "distance operator with decimal radius",
			input: "around 4.5 resn HEM",
			want:  []token.TokenType{token.AROUND, token.NUMBER, token.RESN, token.IDENT, token.EOF},
		},
		{
			name:  "keywords are case-insensitive",
			input: "NAME ca AND Chain A",
			want: []token.TokenType{
				token.NAME, token.IDENT, token.AND, token.CHAIN, token.IDENT,
				token.EOF,
			},
		},
		{
			name:  "illegal bare equals",
			input: "resi = 5",
			want:  []token.TokenType{token.RESI, token.ILLEGAL, token.NUMBER, token.EOF},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  []token.TokenType{token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenTypes(tt.input))
		})
	}
}

// Atom and residue values may carry globs and primes; those lex as one
// IDENT token rather than splitting at the punctuation.
func TestLexerWordCharacters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
	}{
		{name: "star glob", input: "C*", literal: "C*"},
		{name: "question glob", input: "CB?", literal: "CB?"},
		{name: "nucleic acid prime", input: "O5'", literal: "O5'"},
		{name: "underscore", input: "polar_hydrogen", literal: "polar_hydrogen"},
		{name: "digits inside word", input: "HB1", literal: "HB1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parser.Tokenize(tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.literal, tokens[0].Literal)
			assert.Equal(t, token.EOF, tokens[1].Type)
		})
	}
}

func TestLexerDigitInitialRunsAreNumbers(t *testing.T) {
	tokens := parser.Tokenize("123")
	require.Len(t, tokens, 2)
	assert.Equal(t, token.NUMBER, tokens[0].Type)
	assert.Equal(t, "123", tokens[0].Literal)
}

func TestLexerPositions(t *testing.T) {
	tokens := parser.Tokenize("name CA")
	require.Len(t, tokens, 3)

	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[0].Pos.Column)
	assert.Equal(t, 0, tokens[0].Pos.Offset)

	assert.Equal(t, 1, tokens[1].Pos.Line)
	assert.Equal(t, 6, tokens[1].Pos.Column)
	assert.Equal(t, 5, tokens[1].Pos.Offset)
}
