// Package ambiguous contains rules about queries whose results depend on
// schema details not visible in the query text.
package ambiguous

import (
	"github.com/leapstack-labs/squint/pkg/lint"
	"github.com/leapstack-labs/squint/pkg/parser"
)

func init() {
	lint.Register(SelectStar)
}

// SelectStar reports wildcard projections, which produce a column set that
// changes whenever the underlying table does.
var SelectStar = lint.RuleDef{
	ID:          "AM04",
	Name:        "ambiguous.select_star",
	Group:       "ambiguous",
	Description: "Query produces an unknown number of result columns.",
	Severity:    lint.SeverityWarning,
	Check:       checkSelectStar,
}

func checkSelectStar(tree *parser.Tree, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, wc := range tree.Root.FindAll("wildcard_expression") {
		span := wc.Span()
		diags = append(diags, lint.Diagnostic{
			RuleID:   "AM04",
			Severity: lint.SeverityWarning,
			Message:  "Query produces an unknown number of result columns.",
			Pos:      span.Start,
			EndPos:   span.End,
		})
	}
	return diags
}
