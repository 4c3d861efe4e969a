// Package layout contains rules about whitespace and file layout.
package layout

import (
	"github.com/leapstack-labs/squint/pkg/lint"
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/token"
)

func init() {
	lint.Register(TrailingWhitespace)
}

// TrailingWhitespace reports whitespace runs at the end of a line.
var TrailingWhitespace = lint.RuleDef{
	ID:          "LT01",
	Name:        "layout.trailing_whitespace",
	Group:       "layout",
	Description: "Unnecessary trailing whitespace.",
	Severity:    lint.SeverityWarning,
	Check:       checkTrailingWhitespace,
}

func checkTrailingWhitespace(tree *parser.Tree, _ map[string]any) []lint.Diagnostic {
	leaves := tree.Root.Leaves()

	var diags []lint.Diagnostic
	for i, leaf := range leaves {
		if leaf.Tok.Kind != token.Whitespace {
			continue
		}
		atLineEnd := i == len(leaves)-1 || leaves[i+1].Tok.Kind == token.Newline
		if atLineEnd {
			diags = append(diags, lint.Diagnostic{
				RuleID:   "LT01",
				Severity: lint.SeverityWarning,
				Message:  "Unnecessary trailing whitespace.",
				Pos:      leaf.Tok.Span.Start,
				EndPos:   leaf.Tok.Span.End,
			})
		}
	}
	return diags
}
