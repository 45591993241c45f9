package eval

import (
	"regexp"
	"strings"
	"sync"
)

// Compiled glob patterns are cached per distinct pattern string. This is a
// pure performance optimization; correctness never depends on the cache.
var (
	globMu    sync.Mutex
	globCache = make(map[string]*regexp.Regexp)
)

// compileGlob converts a selection glob into an anchored, case-insensitive
// regular expression: * matches any run of characters, ? matches a single
// character, every other regexp metacharacter is escaped.
func compileGlob(pattern string) *regexp.Regexp {
	globMu.Lock()
	defer globMu.Unlock()

	if re, ok := globCache[pattern]; ok {
		return re
	}

	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re := regexp.MustCompile(b.String())
	globCache[pattern] = re
	return re
}

// valueMatcher matches a string against a value list: verbatim values
// case-insensitively, glob values via their compiled pattern.
type valueMatcher struct {
	exact []string
	globs []*regexp.Regexp
}

func newValueMatcher(values []string) *valueMatcher {
	m := &valueMatcher{}
	for _, v := range values {
		if strings.ContainsAny(v, "*?") {
			m.globs = append(m.globs, compileGlob(v))
		} else {
			m.exact = append(m.exact, v)
		}
	}
	return m
}

func (m *valueMatcher) match(s string) bool {
	for _, v := range m.exact {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	for _, re := range m.globs {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
