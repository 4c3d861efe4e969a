// Package lexer tokenizes SQL source text using an ordered list of named
// patterns supplied by a dialect.
//
// The lexer is total: every byte of input ends up in some token. Bytes no
// pattern claims become single-rune tokens of kind Unknown, so lexing never
// fails on malformed input.
package lexer

import (
	"unicode/utf8"

	"github.com/leapstack-labs/squint/pkg/token"
)

// Lexer turns source text into a token stream.
type Lexer struct {
	patterns []Pattern
}

// New creates a Lexer with the given pattern list.
func New(patterns []Pattern) *Lexer {
	return &Lexer{patterns: patterns}
}

// Lex tokenizes src in a single left-to-right pass. It never backtracks
// and never fails; the concatenation of all returned Raw fields is src.
func (l *Lexer) Lex(src string) []token.Token {
	var tokens []token.Token

	pos := token.Position{Line: 1, Column: 1, Offset: 0}
	for pos.Offset < len(src) {
		rest := src[pos.Offset:]

		matched := false
		for _, p := range l.patterns {
			n := p.matchAt(rest)
			if n == 0 {
				continue
			}
			tokens = append(tokens, l.emit(p.Kind, rest[:n], &pos))
			matched = true
			break
		}
		if matched {
			continue
		}

		// No pattern claimed this byte. Consume one rune as Unknown so the
		// stream still covers the whole input.
		_, n := utf8.DecodeRuneInString(rest)
		if n == 0 {
			n = 1
		}
		tokens = append(tokens, l.emit(token.Unknown, rest[:n], &pos))
	}

	return tokens
}

// emit builds a token at *pos and advances pos past raw.
func (l *Lexer) emit(kind token.Kind, raw string, pos *token.Position) token.Token {
	start := *pos
	// Decode explicitly rather than ranging: a range loop replaces invalid
	// bytes with U+FFFD, whose rune length is 3, and the offset would drift
	// off the bytes actually consumed.
	for i := 0; i < len(raw); {
		r, n := utf8.DecodeRuneInString(raw[i:])
		i += n
		pos.Offset += n
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return token.Token{
		Kind: kind,
		Raw:  raw,
		Span: token.Span{Start: start, End: *pos},
	}
}
