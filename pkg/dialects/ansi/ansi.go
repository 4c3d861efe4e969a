// Package ansi defines the base SQL dialect every other dialect derives
// from. It supplies the lexer pattern list, the reserved/unreserved
// keyword sets, and the full statement grammar.
//
// Context-dependent tokenization is handled entirely in the grammar: the
// lexer emits generic word tokens and rules pair a specific keyword
// matcher with a generic identifier fallback, letting OneOf longest-match
// and terminators decide. The lexer itself stays context-free.
package ansi

import (
	"strings"

	"github.com/leapstack-labs/squint/pkg/dialect"
	"github.com/leapstack-labs/squint/pkg/grammar"
	"github.com/leapstack-labs/squint/pkg/token"
)

func init() {
	dialect.MustRegister(Dialect())
}

// kw references the leaf matcher a keyword gets during dialect expansion.
func kw(name string) grammar.Node {
	return grammar.Ref(strings.ToUpper(name))
}

// Dialect builds a fresh, unexpanded ANSI dialect. Derived dialects call
// this and apply their overrides before registration.
func Dialect() *dialect.Dialect {
	d := dialect.New("ansi")
	d.SetLexerPatterns(lexerPatterns())
	d.AddReservedKeywords(reservedKeywords...)
	d.AddUnreservedKeywords(unreservedKeywords...)

	addCoreRules(d)
	addExpressionRules(d)
	addSelectRules(d)
	addStatementRules(d)

	return d
}

// addCoreRules defines punctuation, identifiers, and references.
func addCoreRules(d *dialect.Dialect) {
	d.MustAdd(dialect.RuleDelimiter, grammar.Literal(";", "statement_terminator"))

	d.MustAdd("comma", grammar.Literal(",", "comma"))
	d.MustAdd("dot", grammar.Literal(".", "dot"))
	d.MustAdd("star", grammar.Literal("*", "star"))
	d.MustAdd("sign_operator", grammar.OneOf(
		grammar.Literal("+", "sign_operator"),
		grammar.Literal("-", "sign_operator"),
	))

	// A naked identifier is any word token that is not a reserved keyword.
	// Unreserved keywords deliberately pass: "SELECT first FROM t" must
	// parse with first as a column name.
	d.MustAdd("naked_identifier", grammar.Exclude(
		grammar.Typed(token.Word, "naked_identifier"),
		grammar.Ref("reserved_keyword"),
	))
	d.MustAdd("quoted_identifier", grammar.Typed(token.QuotedIdent, "quoted_identifier"))
	d.MustAdd("identifier", grammar.OneOf(
		grammar.Ref("naked_identifier"),
		grammar.Ref("quoted_identifier"),
	))

	d.MustAdd("column_reference", grammar.Wrap("column_reference",
		grammar.Delimited(grammar.Ref("identifier"), grammar.Ref("dot"))))
	d.MustAdd("table_reference", grammar.Wrap("table_reference",
		grammar.Delimited(grammar.Ref("identifier"), grammar.Ref("dot"))))

	d.MustAdd("wildcard_expression", grammar.Wrap("wildcard_expression", grammar.OneOf(
		grammar.Ref("star"),
		grammar.Seq(grammar.Ref("identifier"), grammar.Ref("dot"), grammar.Ref("star")),
	)))

	d.MustAdd("alias_expression", grammar.Wrap("alias_expression", grammar.OneOf(
		grammar.Seq(kw("as"), grammar.Ref("identifier")),
		grammar.Ref("identifier"),
	)))

	// Keywords that begin the next clause at the same nesting level. Pushed
	// as terminators so greedy inner grammars stop at clause boundaries
	// instead of consuming into them. Keywords that appear inside a clause
	// body (ON, JOIN, the CASE family) must not be listed here, or the
	// clauses containing them could never be matched.
	d.MustAdd("clause_terminator", grammar.OneOf(
		kw("from"), kw("where"), kw("group"), kw("having"), kw("order"),
		kw("limit"), kw("offset"), kw("union"), kw("intersect"), kw("except"),
	))
}

// addExpressionRules defines the expression grammar. Expressions are kept
// flat: operators and operands are siblings under one expression segment,
// which is what lint rules want to crawl. Operator precedence is a
// semantic concern and out of scope for a CST.
func addExpressionRules(d *dialect.Dialect) {
	d.MustAdd("literal_value", grammar.OneOf(
		grammar.Typed(token.Number, "numeric_literal"),
		grammar.Typed(token.String, "quoted_literal"),
		kw("null"),
		kw("true"),
		kw("false"),
	))

	d.MustAdd("binary_operator", grammar.OneOf(binaryOperators()...))

	d.MustAdd("expression", grammar.Wrap("expression", grammar.Seq(
		grammar.Ref("term"),
		grammar.AnyNumberOf(grammar.Seq(
			grammar.Ref("binary_operator"),
			grammar.Ref("term"),
		)),
	)))

	d.MustAdd("expression_list",
		grammar.Delimited(grammar.Ref("expression"), grammar.Ref("comma")))

	d.MustAdd("term", grammar.OneOf(
		grammar.Seq(kw("not"), grammar.Ref("term")),
		grammar.Seq(grammar.Ref("sign_operator"), grammar.Ref("term")),
		grammar.Seq(kw("exists"), grammar.Ref("bracketed_expression")),
		grammar.Ref("case_expression"),
		grammar.Ref("cast_expression"),
		grammar.Ref("function_call"),
		grammar.Ref("literal_value"),
		grammar.Ref("column_reference"),
		grammar.Ref("bracketed_expression"),
	))

	d.MustAdd("bracketed_expression", grammar.Wrap("bracketed", grammar.Bracketed(
		"(",
		grammar.OneOf(grammar.Ref("select_statement"), grammar.Ref("expression_list")),
		")",
	)))

	d.MustAdd("function_name", grammar.Exclude(
		grammar.Typed(token.Word, "function_name"),
		grammar.Ref("reserved_keyword"),
	))
	d.MustAdd("function_call", grammar.Wrap("function", grammar.Seq(
		grammar.Ref("function_name"),
		grammar.Bracketed("(", grammar.Opt(grammar.OneOf(
			grammar.Ref("star"),
			grammar.Seq(grammar.Opt(kw("distinct")), grammar.Ref("expression_list")),
		)), ")"),
		grammar.Opt(grammar.Ref("over_clause")),
	)))

	d.MustAdd("over_clause", grammar.Wrap("over_clause", grammar.Seq(
		kw("over"),
		grammar.Bracketed("(", grammar.Opt(grammar.Ref("window_specification")), ")"),
	)))
	d.MustAdd("window_specification", grammar.Seq(
		grammar.Opt(grammar.Seq(kw("partition"), kw("by"), grammar.Ref("expression_list"))),
		grammar.Opt(grammar.Seq(kw("order"), kw("by"),
			grammar.Delimited(grammar.Ref("order_by_element"), grammar.Ref("comma")))),
		grammar.Opt(grammar.Ref("frame_clause")),
	))
	d.MustAdd("frame_clause", grammar.Wrap("frame_clause", grammar.Seq(
		grammar.OneOf(kw("rows"), kw("range")),
		kw("between"), grammar.Ref("frame_bound"), kw("and"), grammar.Ref("frame_bound"),
	)))
	d.MustAdd("frame_bound", grammar.OneOf(
		grammar.Seq(kw("unbounded"), grammar.OneOf(kw("preceding"), kw("following"))),
		grammar.Seq(kw("current"), kw("row")),
		grammar.Seq(grammar.Typed(token.Number, "numeric_literal"),
			grammar.OneOf(kw("preceding"), kw("following"))),
	))

	d.MustAdd("case_expression", grammar.Wrap("case_expression", grammar.Seq(
		kw("case"),
		grammar.Indent(),
		grammar.Opt(grammar.Ref("expression")),
		grammar.AnyNumberOf(grammar.Ref("when_clause")).MinTimes(1),
		grammar.Opt(grammar.Wrap("else_clause", grammar.Seq(kw("else"), grammar.Ref("expression")))),
		grammar.Dedent(),
		kw("end"),
	)))
	d.MustAdd("when_clause", grammar.Wrap("when_clause", grammar.Seq(
		kw("when"), grammar.Ref("expression"), kw("then"), grammar.Ref("expression"),
	)))

	d.MustAdd("cast_expression", grammar.Wrap("cast_expression", grammar.Seq(
		kw("cast"),
		grammar.Bracketed("(", grammar.Seq(
			grammar.Ref("expression"), kw("as"), grammar.Ref("data_type"),
		), ")"),
	)))

	d.MustAdd("data_type", grammar.Wrap("data_type", grammar.Seq(
		grammar.Typed(token.Word, "data_type_identifier"),
		grammar.Opt(grammar.Bracketed("(",
			grammar.Delimited(grammar.Typed(token.Number, "numeric_literal"), grammar.Ref("comma")),
			")")),
	)))
}

// binaryOperators returns the ANSI operator alternatives. Exported to
// derived dialects via BinaryOperators so they can extend the set without
// restating it.
func binaryOperators() []grammar.Node {
	return []grammar.Node{
		grammar.Literal("+", "binary_operator"),
		grammar.Literal("-", "binary_operator"),
		grammar.Literal("*", "binary_operator"),
		grammar.Literal("/", "binary_operator"),
		grammar.Literal("%", "binary_operator"),
		grammar.Literal("||", "binary_operator"),
		grammar.Literal("=", "comparison_operator"),
		grammar.Literal("<>", "comparison_operator"),
		grammar.Literal("!=", "comparison_operator"),
		grammar.Literal("<=", "comparison_operator"),
		grammar.Literal(">=", "comparison_operator"),
		grammar.Literal("<", "comparison_operator"),
		grammar.Literal(">", "comparison_operator"),
		kw("and"),
		kw("or"),
		grammar.Seq(kw("is"), grammar.Opt(kw("not"))),
		grammar.Seq(grammar.Opt(kw("not")), kw("like")),
		grammar.Seq(grammar.Opt(kw("not")), kw("in")),
		grammar.Seq(grammar.Opt(kw("not")), kw("between")),
	}
}

// BinaryOperators returns a copy of the ANSI binary operator alternatives.
func BinaryOperators() []grammar.Node {
	return binaryOperators()
}

// addSelectRules defines the SELECT statement grammar.
func addSelectRules(d *dialect.Dialect) {
	d.MustAdd("select_statement", grammar.Wrap("select_statement", grammar.Seq(
		grammar.Opt(grammar.Ref("with_clause")),
		grammar.Ref("select_body"),
		grammar.AnyNumberOf(grammar.Seq(
			grammar.Ref("set_operator"),
			grammar.Ref("select_body"),
		)),
		grammar.Opt(grammar.Ref("order_by_clause")),
		grammar.Opt(grammar.Ref("limit_clause")),
		grammar.Opt(grammar.Ref("offset_clause")),
	)))

	d.MustAdd("set_operator", grammar.Wrap("set_operator", grammar.Seq(
		grammar.OneOf(kw("union"), kw("intersect"), kw("except")),
		grammar.Opt(grammar.OneOf(kw("all"), kw("distinct"))),
	)))

	d.MustAdd("with_clause", grammar.Wrap("with_clause", grammar.Seq(
		kw("with"),
		grammar.Opt(kw("recursive")),
		grammar.Delimited(grammar.Ref("common_table_expression"), grammar.Ref("comma")),
	)))
	d.MustAdd("common_table_expression", grammar.Wrap("common_table_expression", grammar.Seq(
		grammar.Ref("identifier"),
		grammar.Opt(grammar.Bracketed("(",
			grammar.Delimited(grammar.Ref("identifier"), grammar.Ref("comma")), ")")),
		kw("as"),
		grammar.Bracketed("(", grammar.Ref("select_statement"), ")"),
	)))

	d.MustAdd("select_body", grammar.Seq(
		grammar.Ref("select_clause"),
		grammar.Opt(grammar.Ref("from_clause")),
		grammar.Opt(grammar.Ref("where_clause")),
		grammar.Opt(grammar.Ref("group_by_clause")),
		grammar.Opt(grammar.Ref("having_clause")),
	))

	d.MustAdd("select_clause", grammar.Wrap("select_clause", grammar.Seq(
		kw("select"),
		grammar.Indent(),
		grammar.Opt(grammar.OneOf(kw("distinct"), kw("all"))),
		grammar.Delimited(grammar.Ref("select_clause_element"), grammar.Ref("comma")),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	d.MustAdd("select_clause_element", grammar.Wrap("select_clause_element", grammar.OneOf(
		grammar.Ref("wildcard_expression"),
		grammar.Seq(grammar.Ref("expression"), grammar.Opt(grammar.Ref("alias_expression"))),
	)))

	d.MustAdd("from_clause", grammar.Wrap("from_clause", grammar.Seq(
		kw("from"),
		grammar.Indent(),
		grammar.Delimited(grammar.Ref("table_expression"), grammar.Ref("comma")),
		grammar.AnyNumberOf(grammar.Ref("join_clause")),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	d.MustAdd("table_expression", grammar.Wrap("table_expression", grammar.Seq(
		grammar.OneOf(
			grammar.Bracketed("(", grammar.Ref("select_statement"), ")"),
			grammar.Ref("function_call"),
			grammar.Ref("table_reference"),
		),
		grammar.Opt(grammar.Ref("alias_expression")),
	)))

	d.MustAdd("join_clause", grammar.Wrap("join_clause", grammar.Seq(
		grammar.OneOf(
			grammar.Seq(grammar.Opt(kw("inner")), kw("join")),
			grammar.Seq(
				grammar.OneOf(kw("left"), kw("right"), kw("full")),
				grammar.Opt(kw("outer")),
				kw("join"),
			),
			grammar.Seq(kw("cross"), kw("join")),
		),
		grammar.Indent(),
		grammar.Ref("table_expression"),
		grammar.Opt(grammar.OneOf(
			grammar.Wrap("join_on_condition", grammar.Seq(kw("on"), grammar.Ref("expression"))),
			grammar.Seq(kw("using"), grammar.Bracketed("(",
				grammar.Delimited(grammar.Ref("identifier"), grammar.Ref("comma")), ")")),
		)),
		grammar.Dedent(),
	)))

	d.MustAdd("where_clause", grammar.Wrap("where_clause", grammar.Seq(
		kw("where"),
		grammar.Indent(),
		grammar.Ref("expression"),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	d.MustAdd("group_by_clause", grammar.Wrap("group_by_clause", grammar.Seq(
		kw("group"), kw("by"),
		grammar.Indent(),
		grammar.Ref("expression_list"),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	d.MustAdd("having_clause", grammar.Wrap("having_clause", grammar.Seq(
		kw("having"),
		grammar.Indent(),
		grammar.Ref("expression"),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))

	d.MustAdd("order_by_clause", grammar.Wrap("order_by_clause", grammar.Seq(
		kw("order"), kw("by"),
		grammar.Indent(),
		grammar.Delimited(grammar.Ref("order_by_element"), grammar.Ref("comma")),
		grammar.Dedent(),
	).Terminate(grammar.Ref("clause_terminator"))))
	d.MustAdd("order_by_element", grammar.Seq(
		grammar.Ref("expression"),
		grammar.Opt(grammar.OneOf(kw("asc"), kw("desc"))),
		grammar.Opt(grammar.Seq(kw("nulls"), grammar.OneOf(kw("first"), kw("last")))),
	))

	d.MustAdd("limit_clause", grammar.Wrap("limit_clause", grammar.Seq(
		kw("limit"),
		grammar.OneOf(grammar.Typed(token.Number, "numeric_literal"), kw("all")),
	)))
	d.MustAdd("offset_clause", grammar.Wrap("offset_clause", grammar.Seq(
		kw("offset"),
		grammar.Typed(token.Number, "numeric_literal"),
		grammar.Opt(grammar.OneOf(kw("row"), kw("rows"))),
	)))
}

// addStatementRules defines DML/DDL statements and the statement root.
func addStatementRules(d *dialect.Dialect) {
	d.MustAdd("insert_statement", grammar.Wrap("insert_statement", grammar.Seq(
		kw("insert"), kw("into"),
		grammar.Ref("table_reference"),
		grammar.Opt(grammar.Bracketed("(",
			grammar.Delimited(grammar.Ref("column_reference"), grammar.Ref("comma")), ")")),
		grammar.OneOf(grammar.Ref("values_clause"), grammar.Ref("select_statement")),
	)))
	d.MustAdd("values_clause", grammar.Wrap("values_clause", grammar.Seq(
		kw("values"),
		grammar.Delimited(
			grammar.Bracketed("(", grammar.Ref("expression_list"), ")"),
			grammar.Ref("comma")),
	)))

	d.MustAdd("update_statement", grammar.Wrap("update_statement", grammar.Seq(
		kw("update"),
		grammar.Ref("table_reference"),
		kw("set"),
		grammar.Delimited(grammar.Ref("set_clause"), grammar.Ref("comma")),
		grammar.Opt(grammar.Ref("from_clause")),
		grammar.Opt(grammar.Ref("where_clause")),
	)))
	d.MustAdd("set_clause", grammar.Wrap("set_clause", grammar.Seq(
		grammar.Ref("column_reference"),
		grammar.Literal("=", "comparison_operator"),
		grammar.Ref("expression"),
	)))

	d.MustAdd("delete_statement", grammar.Wrap("delete_statement", grammar.Seq(
		kw("delete"), kw("from"),
		grammar.Ref("table_reference"),
		grammar.Opt(grammar.Ref("alias_expression")),
		grammar.Opt(grammar.Ref("where_clause")),
	)))

	d.MustAdd("create_table_statement", grammar.Wrap("create_table_statement", grammar.Seq(
		kw("create"),
		grammar.Opt(kw("temporary")),
		kw("table"),
		grammar.Opt(grammar.Seq(kw("if"), kw("not"), kw("exists"))),
		grammar.Ref("table_reference"),
		grammar.OneOf(
			grammar.Bracketed("(", grammar.Delimited(
				grammar.OneOf(grammar.Ref("table_constraint"), grammar.Ref("column_definition")),
				grammar.Ref("comma")), ")"),
			grammar.Seq(kw("as"), grammar.Ref("select_statement")),
		),
	)))
	d.MustAdd("column_definition", grammar.Wrap("column_definition", grammar.Seq(
		grammar.Ref("identifier"),
		grammar.Ref("data_type"),
		grammar.AnyNumberOf(grammar.Ref("column_constraint")),
	)))
	d.MustAdd("column_constraint", grammar.Wrap("column_constraint", grammar.OneOf(
		grammar.Seq(kw("not"), kw("null")),
		kw("null"),
		grammar.Seq(kw("primary"), kw("key")),
		kw("unique"),
		grammar.Seq(kw("default"), grammar.Ref("term")),
		grammar.Seq(kw("references"), grammar.Ref("table_reference"),
			grammar.Opt(grammar.Bracketed("(",
				grammar.Delimited(grammar.Ref("identifier"), grammar.Ref("comma")), ")"))),
		grammar.Seq(kw("check"), grammar.Bracketed("(", grammar.Ref("expression"), ")")),
	)))
	d.MustAdd("table_constraint", grammar.Wrap("table_constraint", grammar.Seq(
		grammar.Opt(grammar.Seq(kw("constraint"), grammar.Ref("identifier"))),
		grammar.OneOf(
			grammar.Seq(kw("primary"), kw("key"), grammar.Ref("bracketed_column_list")),
			grammar.Seq(kw("unique"), grammar.Ref("bracketed_column_list")),
			grammar.Seq(kw("foreign"), kw("key"), grammar.Ref("bracketed_column_list"),
				kw("references"), grammar.Ref("table_reference"),
				grammar.Opt(grammar.Ref("bracketed_column_list"))),
		),
	)))
	d.MustAdd("bracketed_column_list", grammar.Bracketed("(",
		grammar.Delimited(grammar.Ref("identifier"), grammar.Ref("comma")), ")"))

	d.MustAdd("create_view_statement", grammar.Wrap("create_view_statement", grammar.Seq(
		kw("create"),
		grammar.Opt(grammar.Seq(kw("or"), kw("replace"))),
		kw("view"),
		grammar.Ref("table_reference"),
		kw("as"),
		grammar.Ref("select_statement"),
	)))

	d.MustAdd("drop_statement", grammar.Wrap("drop_statement", grammar.Seq(
		kw("drop"),
		grammar.OneOf(kw("table"), kw("view")),
		grammar.Opt(grammar.Seq(kw("if"), kw("exists"))),
		grammar.Delimited(grammar.Ref("table_reference"), grammar.Ref("comma")),
		grammar.Opt(grammar.OneOf(kw("cascade"), kw("restrict"))),
	)))

	// The statement root: every registered alternative competes under
	// longest-match. Derived dialects Replace this to add statement kinds.
	d.MustAdd(dialect.RuleStatement, grammar.Wrap("statement", grammar.OneOf(
		grammar.Ref("select_statement"),
		grammar.Ref("insert_statement"),
		grammar.Ref("update_statement"),
		grammar.Ref("delete_statement"),
		grammar.Ref("create_table_statement"),
		grammar.Ref("create_view_statement"),
		grammar.Ref("drop_statement"),
	)))
}
