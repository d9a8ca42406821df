// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pattern matches tokenized queries against literal/wildcard
// token templates and returns the tokens bound by the wildcards.
package pattern

import "strings"

// Wildcard is the pattern-source token that matches one or more
// contiguous query tokens.
const Wildcard = "%"

// Pattern is an ordered token template. Each element is either a
// literal word (matched exactly) or the Wildcard marker. Patterns are
// built once at startup and never mutated.
type Pattern []string

// Parse splits a pattern source string on whitespace, so
// Parse("when was % born") yields Pattern{"when", "was", "%", "born"}.
func Parse(src string) Pattern {
	return strings.Fields(src)
}

// String returns the pattern in source form.
func (p Pattern) String() string {
	return strings.Join(p, " ")
}

// Literals returns the literal tokens of p, wildcards removed.
func (p Pattern) Literals() []string {
	out := make([]string, 0, len(p))
	for _, tok := range p {
		if tok != Wildcard {
			out = append(out, tok)
		}
	}
	return out
}

// Match matches p against tokens. On success it returns the tokens
// consumed by the wildcard portions of p, in order of appearance, and
// true. A wildcard binds at least one token; the shortest viable span
// is tried first, growing until the remainder of the pattern matches
// the remaining tokens. Literals compare exactly, so both sides must
// be pre-normalized (Tokenize lower-cases query input).
func Match(p Pattern, tokens []string) ([]string, bool) {
	switch {
	case len(p) == 0:
		if len(tokens) == 0 {
			return []string{}, true
		}
		return nil, false
	case p[0] == Wildcard:
		for n := 1; n <= len(tokens); n++ {
			rest, ok := Match(p[1:], tokens[n:])
			if !ok {
				continue
			}
			capture := make([]string, 0, n+len(rest))
			capture = append(capture, tokens[:n]...)
			capture = append(capture, rest...)
			return capture, true
		}
		return nil, false
	case len(tokens) == 0:
		return nil, false
	case p[0] == tokens[0]:
		return Match(p[1:], tokens[1:])
	default:
		return nil, false
	}
}

// Tokenize normalizes one line of user input into query tokens:
// "?" characters are stripped, the line is lower-cased, and the rest
// is split on whitespace.
func Tokenize(raw string) []string {
	cleaned := strings.ReplaceAll(raw, "?", "")
	return strings.Fields(strings.ToLower(cleaned))
}
