// Package duckdb derives the DuckDB dialect: QUALIFY clauses, GROUP BY
// ALL, and the EXCLUDE star modifier.
package duckdb

import (
	"strings"

	"github.com/leapstack-labs/squint/pkg/dialect"
	"github.com/leapstack-labs/squint/pkg/dialects/ansi"
	"github.com/leapstack-labs/squint/pkg/grammar"
)

func init() {
	dialect.MustRegister(Dialect())
}

func kw(name string) grammar.Node {
	return grammar.Ref(strings.ToUpper(name))
}

// Dialect builds the DuckDB dialect from the ANSI base.
func Dialect() *dialect.Dialect {
	d := ansi.Dialect().Derive("duckdb")

	d.AddReservedKeywords("qualify")
	d.AddUnreservedKeywords("exclude")

	// QUALIFY filters on window function results, after HAVING.
	d.MustAdd("qualify_clause", grammar.Wrap("qualify_clause", grammar.Seq(
		kw("qualify"),
		grammar.Indent(),
		grammar.Ref("expression"),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	d.MustReplace("select_body", grammar.Seq(
		grammar.Ref("select_clause"),
		grammar.Opt(grammar.Ref("from_clause")),
		grammar.Opt(grammar.Ref("where_clause")),
		grammar.Opt(grammar.Ref("group_by_clause")),
		grammar.Opt(grammar.Ref("having_clause")),
		grammar.Opt(grammar.Ref("qualify_clause")),
	))

	d.MustReplace("clause_terminator", grammar.OneOf(
		kw("from"), kw("where"), kw("group"), kw("having"), kw("qualify"),
		kw("order"), kw("limit"), kw("offset"), kw("union"), kw("intersect"),
		kw("except"),
	))

	// GROUP BY ALL groups on every non-aggregate select item.
	d.MustReplace("group_by_clause", grammar.Wrap("group_by_clause", grammar.Seq(
		kw("group"), kw("by"),
		grammar.Indent(),
		grammar.OneOf(kw("all"), grammar.Ref("expression_list")),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	// SELECT * EXCLUDE (a, b) drops named columns from the star expansion.
	d.MustReplace("wildcard_expression", grammar.Wrap("wildcard_expression", grammar.Seq(
		grammar.OneOf(
			grammar.Ref("star"),
			grammar.Seq(grammar.Ref("identifier"), grammar.Ref("dot"), grammar.Ref("star")),
		),
		grammar.Opt(grammar.Wrap("exclude_modifier", grammar.Seq(
			kw("exclude"),
			grammar.OneOf(
				grammar.Bracketed("(",
					grammar.Delimited(grammar.Ref("identifier"), grammar.Ref("comma")), ")"),
				grammar.Ref("identifier"),
			),
		))),
	)))

	return d
}
