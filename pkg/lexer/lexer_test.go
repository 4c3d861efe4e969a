package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/squint/pkg/token"
)

func testPatterns() []Pattern {
	return []Pattern{
		Regex("whitespace", `[ \t]+`, token.Whitespace),
		Regex("newline", `\r?\n`, token.Newline),
		Regex("inline_comment", `--[^\n]*`, token.InlineComment),
		Regex("block_comment", `/\*[\s\S]*?\*/`, token.BlockComment),
		Regex("single_quote", `'([^'\\]|\\.|'')*'`, token.String),
		Regex("double_quote", `"([^"\\]|\\.)*"`, token.QuotedIdent),
		Regex("number", `\d+(\.\d+)?`, token.Number),
		Literal("not_equal", "!=", token.Symbol),
		Literal("less_equal", "<=", token.Symbol),
		Literal("equals", "=", token.Symbol),
		Literal("less_than", "<", token.Symbol),
		Literal("comma", ",", token.Symbol),
		Literal("dot", ".", token.Symbol),
		Literal("semicolon", ";", token.Symbol),
		Literal("star", "*", token.Symbol),
		Regex("word", `[a-zA-Z_][a-zA-Z0-9_]*`, token.Word),
	}
}

func TestLexRoundTrip(t *testing.T) {
	l := New(testPatterns())

	sources := []string{
		"SELECT a, b FROM t WHERE x != 1;",
		"select\n\t'it''s'\n-- comment\n/* block\ncomment */ \"quoted id\"",
		"",
		"   \n\n  ",
		"1.5 <= 2",
	}
	for _, src := range sources {
		toks := l.Lex(src)
		var b strings.Builder
		for _, tok := range toks {
			b.WriteString(tok.Raw)
		}
		assert.Equal(t, src, b.String(), "concatenated tokens must reproduce the source")
	}
}

func TestLexFirstMatchWins(t *testing.T) {
	l := New(testPatterns())

	// "!=" must lex as one symbol, not Unknown('!') then "=".
	toks := l.Lex("a != b")
	require.Len(t, toks, 5)
	assert.Equal(t, "!=", toks[2].Raw)
	assert.Equal(t, token.Symbol, toks[2].Kind)

	// "<=" is listed before "<" so it wins at the same offset.
	toks = l.Lex("a<=b")
	require.Len(t, toks, 3)
	assert.Equal(t, "<=", toks[1].Raw)
}

func TestLexUnknownBytes(t *testing.T) {
	l := New(testPatterns())

	toks := l.Lex("a ?? b")
	require.Len(t, toks, 6)
	assert.Equal(t, token.Unknown, toks[2].Kind)
	assert.Equal(t, "?", toks[2].Raw)
	assert.Equal(t, token.Unknown, toks[3].Kind)

	// Multi-byte runes are consumed whole.
	toks = l.Lex("é")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Unknown, toks[0].Kind)
	assert.Equal(t, "é", toks[0].Raw)
}

func TestLexInvalidUTF8(t *testing.T) {
	l := New(testPatterns())

	// Bytes that are not valid UTF-8 still get covered, one byte per
	// Unknown token, and nothing around them is skipped.
	src := "\xff\xfeab\x80cd"
	toks := l.Lex(src)

	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Raw)
	}
	assert.Equal(t, src, b.String())

	require.Len(t, toks, 5)
	assert.Equal(t, "\xff", toks[0].Raw)
	assert.Equal(t, token.Unknown, toks[0].Kind)
	assert.Equal(t, "\xfe", toks[1].Raw)
	assert.Equal(t, "ab", toks[2].Raw)
	assert.Equal(t, "\x80", toks[3].Raw)
	assert.Equal(t, "cd", toks[4].Raw)

	// Offsets track consumed bytes exactly.
	assert.Equal(t, 1, toks[0].Span.End.Offset)
	assert.Equal(t, 2, toks[1].Span.End.Offset)
	assert.Equal(t, 4, toks[2].Span.End.Offset)
	assert.Equal(t, 5, toks[3].Span.End.Offset)
	assert.Equal(t, 7, toks[4].Span.End.Offset)
}

func TestLexKinds(t *testing.T) {
	l := New(testPatterns())

	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"SELECT 1", []token.Kind{token.Word, token.Whitespace, token.Number}},
		{"-- note\nx", []token.Kind{token.InlineComment, token.Newline, token.Word}},
		{"'s'", []token.Kind{token.String}},
		{`"q"`, []token.Kind{token.QuotedIdent}},
		{"a.b", []token.Kind{token.Word, token.Symbol, token.Word}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := l.Lex(tt.src)
			require.Len(t, toks, len(tt.want))
			for i, k := range tt.want {
				assert.Equal(t, k, toks[i].Kind)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	l := New(testPatterns())

	toks := l.Lex("ab\ncd")
	require.Len(t, toks, 3)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Span.Start)
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2}, toks[0].Span.End)

	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2}, toks[1].Span.Start)
	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 3}, toks[1].Span.End)

	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 3}, toks[2].Span.Start)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 5}, toks[2].Span.End)
}

func TestLexDeterminism(t *testing.T) {
	l := New(testPatterns())
	src := "SELECT a FROM t -- tail\n"

	first := l.Lex(src)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, l.Lex(src))
	}
}
