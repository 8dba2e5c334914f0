// Package pattern compiles fnmatch-style wildcards into anchored,
// case-insensitive matchers.
//
// Patterns are compiled once, when a configuration is loaded, so the
// per-line cost of a match is a single regexp evaluation.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher is one compiled wildcard. "*" matches any run of characters,
// "?" matches exactly one character and everything else is literal.
// The whole input must match; comparisons are case-insensitive.
type Matcher struct {
	src string
	re  *regexp.Regexp
}

// Compile translates a wildcard into a Matcher.
func Compile(wildcard string) (*Matcher, error) {
	var b strings.Builder
	b.WriteString(`(?i)\A`)
	for _, r := range wildcard {
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\z`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("wildcard %q: %w", wildcard, err)
	}
	return &Matcher{src: wildcard, re: re}, nil
}

// Match reports whether s matches the wildcard in full.
func (m *Matcher) Match(s string) bool {
	return m.re.MatchString(s)
}

// String returns the original wildcard source.
func (m *Matcher) String() string {
	return m.src
}

// Set is an ordered group of matchers.
type Set struct {
	matchers []*Matcher
}

// CompileSet compiles every wildcard, preserving order.
func CompileSet(wildcards []string) (*Set, error) {
	s := &Set{}
	for _, w := range wildcards {
		m, err := Compile(w)
		if err != nil {
			return nil, err
		}
		s.matchers = append(s.matchers, m)
	}
	return s, nil
}

// MatchAny reports whether any matcher in the set matches s.
// A nil or empty set matches nothing.
func (s *Set) MatchAny(text string) bool {
	if s == nil {
		return false
	}
	for _, m := range s.matchers {
		if m.Match(text) {
			return true
		}
	}
	return false
}

// Len returns the number of matchers in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.matchers)
}
