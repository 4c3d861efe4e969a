// Package tsql derives the Transact-SQL dialect: GO batch separators,
// bracket-quoted identifiers, and TOP in the select clause.
package tsql

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

// Dialect builds the T-SQL dialect from the ANSI base.
func Dialect() *dialect.Dialect {
	d := ansi.Dialect().Derive("tsql")

	// [quoted identifier] syntax. Inserted before the symbol fallback so
	// "[" never lexes as a bare symbol when it opens a quoted name.
	d.MustInsertLexerBefore("not_equal",
		lexer.Regex("bracket_quote", `\[[^\]]*\]`, token.QuotedIdent))

	// GO is a batch separator, not a statement. Reserving it keeps the
	// word out of identifier position; the separator rule is matched by
	// the parser before any statement alternative.
	d.AddReservedKeywords("go", "top")
	d.MustAdd(dialect.RuleBatchSeparator,
		grammar.Wrap("batch_separator", kw("go")))

	// TOP n after SELECT [DISTINCT|ALL].
	d.MustReplace("select_clause", grammar.Wrap("select_clause", grammar.Seq(
		kw("select"),
		grammar.Indent(),
		grammar.Opt(grammar.OneOf(kw("distinct"), kw("all"))),
		grammar.Opt(grammar.Wrap("top_clause", grammar.Seq(
			kw("top"),
			grammar.Typed(token.Number, "numeric_literal"),
		))),
		grammar.Delimited(grammar.Ref("select_clause_element"), grammar.Ref("comma")),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	return d
}
