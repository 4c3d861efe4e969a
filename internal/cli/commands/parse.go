package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squint/internal/cli/output"
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/segment"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [path]",
		Short: "Parse SQL and print the syntax tree",
		Long: `Parse SQL and print the resulting syntax tree.

With no path, reads from stdin. Unparsable sections appear in the tree as
"unparsable" segments; the command still succeeds so the tree can be
inspected.`,
		Example: `  # Parse a file
  squint parse query.sql

  # Parse from stdin
  echo 'SELECT 1' | squint parse

  # Parse with a specific dialect
  squint parse --dialect tsql batch.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	r := GetRenderer(ctx)

	var src []byte
	var err error
	if len(args) == 1 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	tree, err := parser.Parse(string(src), cfg.Dialect)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(treeToJSON(tree.Root))
	}

	r.Printf("%s", tree.Dump())
	if unparsable := tree.Unparsable(); len(unparsable) > 0 {
		r.Errorf("%d unparsable sections", len(unparsable))
	}
	return nil
}

// segmentJSON mirrors the tree shape for --output json.
type segmentJSON struct {
	Kind     string        `json:"kind"`
	Raw      string        `json:"raw,omitempty"`
	Line     int           `json:"line,omitempty"`
	Column   int           `json:"column,omitempty"`
	Children []segmentJSON `json:"children,omitempty"`
}

func treeToJSON(s *segment.Segment) segmentJSON {
	out := segmentJSON{Kind: s.Kind}
	if s.IsMeta() {
		return out
	}
	if s.IsLeaf() {
		out.Raw = s.Tok.Raw
		out.Line = s.Tok.Span.Start.Line
		out.Column = s.Tok.Span.Start.Column
		return out
	}
	for _, c := range s.Children {
		out.Children = append(out.Children, treeToJSON(c))
	}
	return out
}
