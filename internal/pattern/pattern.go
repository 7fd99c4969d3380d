// Package pattern compiles the restriction wildcard language into
// matchers. The language has literals plus `*` (any run of zero or
// more characters) and `?` (exactly one character); there is no escape
// mechanism. Matching is case-insensitive and accent-sensitive.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher tests candidates against one compiled pattern.
type Matcher struct {
	source string
	re     *regexp.Regexp
}

// Compile translates a wildcard pattern into an anchored,
// case-insensitive matcher. The start is anchored unless the pattern
// begins with `*`, the end unless it ends with `*`, so a pattern with
// no wildcards requires an exact end-to-end match ("MELO" never
// matches "ANGELO").
func Compile(p string) (*Matcher, error) {
	// An empty pattern matches any candidate.
	if p == "" {
		return &Matcher{source: p}, nil
	}

	var b strings.Builder
	b.WriteString("(?i)")
	if !strings.HasPrefix(p, "*") {
		b.WriteByte('^')
	}
	for _, r := range p {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if !strings.HasSuffix(p, "*") {
		b.WriteByte('$')
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", p, err)
	}

	return &Matcher{source: p, re: re}, nil
}

// Matches reports whether the candidate satisfies the pattern.
func (m *Matcher) Matches(candidate string) bool {
	if m.re == nil {
		return true
	}
	return m.re.MatchString(candidate)
}

// Source returns the original wildcard pattern.
func (m *Matcher) Source() string {
	return m.source
}
