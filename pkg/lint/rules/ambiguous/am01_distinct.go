package ambiguous

import (
	"strings"

	"github.com/leapstack-labs/squint/pkg/lint"
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/segment"
)

func init() {
	lint.Register(Distinct)
}

// Distinct reports DISTINCT followed by a parenthesised expression list.
// The brackets read like a function call, but DISTINCT always applies to
// the whole projected row, so `DISTINCT(a), b` rarely means what it looks
// like it means.
var Distinct = lint.RuleDef{
	ID:          "AM01",
	Name:        "ambiguous.distinct",
	Group:       "ambiguous",
	Description: "DISTINCT used with parentheses.",
	Severity:    lint.SeverityWarning,
	Check:       checkDistinct,
}

func checkDistinct(tree *parser.Tree, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, sc := range tree.Root.FindAll("select_clause") {
		kw := distinctKeyword(sc)
		if kw == nil || !firstElementIsBracketed(sc) {
			continue
		}
		span := kw.Span()
		diags = append(diags, lint.Diagnostic{
			RuleID:   "AM01",
			Severity: lint.SeverityWarning,
			Message:  "DISTINCT used with parentheses.",
			Pos:      span.Start,
			EndPos:   span.End,
		})
	}
	return diags
}

// distinctKeyword returns the DISTINCT modifier that is a direct child of
// the select clause. DISTINCT inside aggregate calls lives deeper in the
// tree and is fine.
func distinctKeyword(sc *segment.Segment) *segment.Segment {
	for _, child := range sc.Children {
		if child.Kind == "keyword" && strings.EqualFold(child.Raw(), "distinct") {
			return child
		}
	}
	return nil
}

func firstElementIsBracketed(sc *segment.Segment) bool {
	elem, ok := sc.FirstChild("select_clause_element")
	if !ok {
		return false
	}
	leaves := elem.Leaves()
	return len(leaves) > 0 && leaves[0].Raw() == "("
}
