package layout

import (
	"github.com/leapstack-labs/squint/pkg/lint"
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/token"
)

func init() {
	lint.Register(EndOfFile)
}

// EndOfFile requires files to end with a single newline.
var EndOfFile = lint.RuleDef{
	ID:          "LT12",
	Name:        "layout.end_of_file",
	Group:       "layout",
	Description: "Files must end with a single trailing newline.",
	Severity:    lint.SeverityWarning,
	Check:       checkEndOfFile,
}

func checkEndOfFile(tree *parser.Tree, _ map[string]any) []lint.Diagnostic {
	leaves := tree.Root.Leaves()
	if len(leaves) == 0 {
		return nil
	}
	last := leaves[len(leaves)-1]
	if last.Tok.Kind == token.Newline {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "LT12",
		Severity: lint.SeverityWarning,
		Message:  "Files must end with a single trailing newline.",
		Pos:      last.Tok.Span.End,
		EndPos:   last.Tok.Span.End,
	}}
}
