// Package postgres derives the PostgreSQL dialect: the :: cast operator,
// dollar-quoted strings, ILIKE, and RETURNING clauses on DML statements.
package postgres

import (
	"strings"

	"github.com/leapstack-labs/squint/pkg/dialect"
	"github.com/leapstack-labs/squint/pkg/dialects/ansi"
	"github.com/leapstack-labs/squint/pkg/grammar"
	"github.com/leapstack-labs/squint/pkg/lexer"
	"github.com/leapstack-labs/squint/pkg/token"
)

func init() {
	dialect.MustRegister(Dialect())
}

func kw(name string) grammar.Node {
	return grammar.Ref(strings.ToUpper(name))
}

// Dialect builds the PostgreSQL dialect from the ANSI base.
func Dialect() *dialect.Dialect {
	d := ansi.Dialect().Derive("postgres")

	// :: must lex as one token, otherwise it falls apart into two colon
	// symbols and the cast grammar never sees it.
	d.MustInsertLexerBefore("not_equal",
		lexer.Literal("casting_operator", "::", token.Symbol))
	// Dollar-quoted strings, before single_quote so $$...$$ bodies that
	// contain quotes stay one token.
	d.MustInsertLexerBefore("single_quote",
		lexer.Regex("dollar_quote", `\$\$[\s\S]*?\$\$`, token.String))

	d.AddReservedKeywords("ilike", "returning")

	d.MustAdd("cast_operator", grammar.Literal("::", "casting_operator"))

	// Postfix :: casts sit alongside binary operators inside a flat
	// expression, so "a::int + 1" stays one expression segment.
	d.MustReplace("expression", grammar.Wrap("expression", grammar.Seq(
		grammar.Ref("term"),
		grammar.AnyNumberOf(grammar.OneOf(
			grammar.Seq(grammar.Ref("binary_operator"), grammar.Ref("term")),
			grammar.Seq(grammar.Ref("cast_operator"), grammar.Ref("data_type")),
		)),
	)))

	d.MustReplace("binary_operator", grammar.OneOf(append(
		ansi.BinaryOperators(),
		grammar.Seq(grammar.Opt(kw("not")), kw("ilike")),
	)...))

	d.MustAdd("returning_clause", grammar.Wrap("returning_clause", grammar.Seq(
		kw("returning"),
		grammar.OneOf(grammar.Ref("wildcard_expression"), grammar.Ref("expression_list")),
	)))

	d.MustReplace("insert_statement", grammar.Wrap("insert_statement", grammar.Seq(
		kw("insert"), kw("into"),
		grammar.Ref("table_reference"),
		grammar.Opt(grammar.Bracketed("(",
			grammar.Delimited(grammar.Ref("column_reference"), grammar.Ref("comma")), ")")),
		grammar.OneOf(grammar.Ref("values_clause"), grammar.Ref("select_statement")),
		grammar.Opt(grammar.Ref("returning_clause")),
	)))

	d.MustReplace("update_statement", grammar.Wrap("update_statement", grammar.Seq(
		kw("update"),
		grammar.Ref("table_reference"),
		kw("set"),
		grammar.Delimited(grammar.Ref("set_clause"), grammar.Ref("comma")),
		grammar.Opt(grammar.Ref("from_clause")),
		grammar.Opt(grammar.Ref("where_clause")),
		grammar.Opt(grammar.Ref("returning_clause")),
	)))

	d.MustReplace("delete_statement", grammar.Wrap("delete_statement", grammar.Seq(
		kw("delete"), kw("from"),
		grammar.Ref("table_reference"),
		grammar.Opt(grammar.Ref("alias_expression")),
		grammar.Opt(grammar.Ref("where_clause")),
		grammar.Opt(grammar.Ref("returning_clause")),
	)))

	return d
}
