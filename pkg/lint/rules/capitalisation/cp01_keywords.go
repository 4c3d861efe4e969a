// Package capitalisation contains rules about letter case consistency.
package capitalisation

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/squint/pkg/lint"
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/segment"
)

func init() {
	lint.Register(KeywordCase)
}

// KeywordCase enforces a single capitalisation policy for keywords.
var KeywordCase = lint.RuleDef{
	ID:          "CP01",
	Name:        "capitalisation.keywords",
	Group:       "capitalisation",
	Description: "Inconsistent capitalisation of keywords.",
	Severity:    lint.SeverityWarning,
	Check:       checkKeywordCase,
	ConfigKeys:  []string{"capitalisation_policy"},
}

func checkKeywordCase(tree *parser.Tree, opts map[string]any) []lint.Diagnostic {
	policy := "upper"
	if v, ok := opts["capitalisation_policy"].(string); ok && v != "" {
		policy = v
	}

	var diags []lint.Diagnostic
	tree.Walk(func(s *segment.Segment) bool {
		if s.Kind != segment.KindKeyword {
			return true
		}
		want := applyPolicy(s.Tok.Raw, policy)
		if s.Tok.Raw != want {
			diags = append(diags, lint.Diagnostic{
				RuleID:   "CP01",
				Severity: lint.SeverityWarning,
				Message:  fmt.Sprintf("Keywords must be %s case. Found %q, expected %q.", policy, s.Tok.Raw, want),
				Pos:      s.Tok.Span.Start,
				EndPos:   s.Tok.Span.End,
			})
		}
		return true
	})
	return diags
}

func applyPolicy(word, policy string) string {
	switch policy {
	case "lower":
		return strings.ToLower(word)
	default:
		return strings.ToUpper(word)
	}
}
