// Package parsing contains rules about whether the source parsed at all.
package parsing

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/squint/pkg/lint"
	"github.com/leapstack-labs/squint/pkg/parser"
)

func init() {
	lint.Register(Unparsable)
}

// Unparsable reports spans the parser could not match against the dialect
// grammar.
var Unparsable = lint.RuleDef{
	ID:          "PR01",
	Name:        "parsing.unparsable",
	Group:       "parsing",
	Description: "Found unparsable section.",
	Severity:    lint.SeverityError,
	Check:       checkUnparsable,
}

func checkUnparsable(tree *parser.Tree, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, seg := range tree.Unparsable() {
		span := seg.Span()
		diags = append(diags, lint.Diagnostic{
			RuleID:   "PR01",
			Severity: lint.SeverityError,
			Message:  fmt.Sprintf("Found unparsable section: %s", snippet(seg.Raw())),
			Pos:      span.Start,
			EndPos:   span.End,
		})
	}
	return diags
}

func snippet(raw string) string {
	raw = strings.Join(strings.Fields(raw), " ")
	if len(raw) > 40 {
		raw = raw[:40] + "..."
	}
	return fmt.Sprintf("%q", raw)
}
