// Package convention contains rules enforcing stylistic conventions.
package convention

import (
	"github.com/leapstack-labs/squint/pkg/lint"
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/segment"
)

func init() {
	lint.Register(StatementTerminator)
}

// StatementTerminator requires every statement to end with a semicolon.
var StatementTerminator = lint.RuleDef{
	ID:          "CV06",
	Name:        "convention.terminator",
	Group:       "convention",
	Description: "Statements must end with a semicolon.",
	Severity:    lint.SeverityWarning,
	Check:       checkStatementTerminator,
}

func checkStatementTerminator(tree *parser.Tree, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, child := range tree.Root.Children {
		if child.Kind != segment.KindBatch {
			continue
		}
		diags = append(diags, checkBatch(child)...)
	}
	return diags
}

// checkBatch scans a batch's direct children: after each statement, the
// next code sibling must be its terminator.
func checkBatch(batch *segment.Segment) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for i, child := range batch.Children {
		if child.Kind != parser.KindStatement {
			continue
		}
		if !terminatorFollows(batch.Children[i+1:]) {
			span := child.Span()
			diags = append(diags, lint.Diagnostic{
				RuleID:   "CV06",
				Severity: lint.SeverityWarning,
				Message:  "Statements must end with a semicolon.",
				Pos:      span.End,
				EndPos:   span.End,
			})
		}
	}
	return diags
}

func terminatorFollows(rest []*segment.Segment) bool {
	for _, s := range rest {
		if !s.IsCode() {
			continue
		}
		return s.IsLeaf() && s.Kind == "statement_terminator"
	}
	return false
}
