package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{name: "star matches any run", pattern: "C*", input: "CB", want: true},
		{name: "star matches empty run", pattern: "C*", input: "C", want: true},
		{name: "anchored at start", pattern: "C*", input: "OC", want: false},
		{name: "question matches one char", pattern: "?B", input: "CB", want: true},
		{name: "question needs exactly one", pattern: "?B", input: "B", want: false},
		{name: "case-insensitive", pattern: "c*", input: "CA", want: true},
		{name: "prime is literal", pattern: "O?'", input: "O5'", want: true},
		{name: "no metacharacter leakage", pattern: "C.A", input: "CXA", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compileGlob(tt.pattern).MatchString(tt.input))
		})
	}
}

func TestCompileGlobCaches(t *testing.T) {
	assert.Same(t, compileGlob("C*"), compileGlob("C*"))
}

func TestValueMatcherSplitsExactAndGlob(t *testing.T) {
	m := newValueMatcher([]string{"CA", "O?'"})

	assert.True(t, m.match("ca"))
	assert.True(t, m.match("O5'"))
	assert.False(t, m.match("CB"))
}
