package ansi

import (
	"github.com/leapstack-labs/squint/pkg/lexer"
	"github.com/leapstack-labs/squint/pkg/token"
)

// lexerPatterns is the ordered ANSI pattern list. Order is load-bearing:
// comments before the slash symbol, multi-character operators before the
// single-character symbol fallback. Derived dialects patch entries by name
// or insert before a named entry.
func lexerPatterns() []lexer.Pattern {
	return []lexer.Pattern{
		lexer.Regex("whitespace", `[ \t]+`, token.Whitespace),
		lexer.Regex("newline", `\r?\n`, token.Newline),
		lexer.Regex("inline_comment", `--[^\n]*`, token.InlineComment),
		lexer.Regex("block_comment", `/\*[\s\S]*?\*/`, token.BlockComment),
		lexer.Regex("single_quote", `'(?:[^']|'')*'`, token.String),
		lexer.Regex("double_quote", `"(?:[^"]|"")*"`, token.QuotedIdent),
		lexer.Regex("numeric_literal", `[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?|\.[0-9]+`, token.Number),
		lexer.Regex("word", `[a-zA-Z_][a-zA-Z0-9_]*`, token.Word),
		lexer.Literal("not_equal", "<>", token.Symbol),
		lexer.Literal("bang_equal", "!=", token.Symbol),
		lexer.Literal("less_equal", "<=", token.Symbol),
		lexer.Literal("greater_equal", ">=", token.Symbol),
		lexer.Literal("concat", "||", token.Symbol),
		lexer.Regex("symbol", `[%&()*+,\-./:;<=>?\[\]^|]`, token.Symbol),
	}
}
