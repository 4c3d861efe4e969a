package lexer

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/squint/pkg/token"
)

// Pattern is a single named matcher in a dialect's lexer pattern list.
//
// Patterns are tried in declaration order and the first one that matches at
// the current offset wins. Ordering is the dialect author's contract: longer
// fixed literals must be listed before looser regex fallbacks.
type Pattern struct {
	Name string
	Kind token.Kind

	literal string
	re      *regexp.Regexp
}

// Literal creates a pattern that matches a fixed string.
// Matching is case-sensitive; keyword recognition happens in the grammar,
// not here, so literals are used for symbols and punctuation.
func Literal(name, lit string, kind token.Kind) Pattern {
	return Pattern{Name: name, Kind: kind, literal: lit}
}

// Regex creates a pattern from a regular expression. The expression is
// anchored to the current offset. Invalid expressions panic: patterns are
// built at dialect construction time, never from user input.
func Regex(name, expr string, kind token.Kind) Pattern {
	return Pattern{
		Name: name,
		Kind: kind,
		re:   regexp.MustCompile(`\A(?:` + expr + `)`),
	}
}

// matchAt returns the length of the match at the start of rest, or 0.
func (p Pattern) matchAt(rest string) int {
	if p.literal != "" {
		if strings.HasPrefix(rest, p.literal) {
			return len(p.literal)
		}
		return 0
	}
	if p.re != nil {
		if loc := p.re.FindStringIndex(rest); loc != nil {
			return loc[1]
		}
	}
	return 0
}
