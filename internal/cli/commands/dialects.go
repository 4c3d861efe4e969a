package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squint/internal/cli/output"
	"github.com/leapstack-labs/squint/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered SQL dialects",
		RunE:  runDialects,
	}
}

type dialectJSON struct {
	Name     string `json:"name"`
	Rules    int    `json:"rules"`
	Reserved int    `json:"reserved_keywords"`
}

func runDialects(cmd *cobra.Command, _ []string) error {
	r := GetRenderer(cmd.Context())

	names := dialect.List()

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]dialectJSON, 0, len(names))
		for _, name := range names {
			d, _ := dialect.Get(name)
			out = append(out, dialectJSON{
				Name:     d.Name,
				Rules:    len(d.RuleNames()),
				Reserved: len(d.ReservedKeywords()),
			})
		}
		return r.JSON(out)
	}

	rows := make([]table.Row, 0, len(names))
	for _, name := range names {
		d, _ := dialect.Get(name)
		rows = append(rows, table.Row{d.Name, len(d.RuleNames()), len(d.ReservedKeywords())})
	}
	r.Table(table.Row{"Dialect", "Rules", "Reserved Keywords"}, rows)
	return nil
}
