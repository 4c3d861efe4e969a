package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squint/internal/cli/output"
	"github.com/leapstack-labs/squint/pkg/lint"
	_ "github.com/leapstack-labs/squint/pkg/lint/rules" // register built-in rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group string // Filter by group
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Example: `  # List all rules
  squint rules

  # Show a single rule
  squint rules CP01

  # List layout rules only
  squint rules --group layout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0])
			}
			return listRules(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by rule group")
	return cmd
}

type ruleJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	ConfigKeys  []string `json:"config_keys,omitempty"`
	Dialects    []string `json:"dialects,omitempty"`
}

func toRuleJSON(r lint.RuleDef) ruleJSON {
	return ruleJSON{
		ID:          r.ID,
		Name:        r.Name,
		Group:       r.Group,
		Description: r.Description,
		Severity:    string(r.Severity),
		ConfigKeys:  r.ConfigKeys,
		Dialects:    r.Dialects,
	}
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := GetRenderer(cmd.Context())

	rules := lint.GetAll()
	if opts.Group != "" {
		rules = lint.GetByGroup(opts.Group)
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]ruleJSON, 0, len(rules))
		for _, rule := range rules {
			out = append(out, toRuleJSON(rule))
		}
		return r.JSON(out)
	}

	rows := make([]table.Row, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, table.Row{rule.ID, rule.Name, string(rule.Severity), rule.Description})
	}
	r.Table(table.Row{"ID", "Name", "Severity", "Description"}, rows)
	return nil
}

func showRule(cmd *cobra.Command, id string) error {
	r := GetRenderer(cmd.Context())

	rule, ok := lint.GetByID(id)
	if !ok {
		return fmt.Errorf("unknown rule %q", id)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(toRuleJSON(rule))
	}

	r.Println(r.Styles().Bold.Render(rule.ID) + "  " + rule.Name)
	r.Printf("Group:       %s\n", rule.Group)
	r.Printf("Severity:    %s\n", rule.Severity)
	r.Printf("Description: %s\n", rule.Description)
	if len(rule.ConfigKeys) > 0 {
		r.Printf("Config keys: %s\n", strings.Join(rule.ConfigKeys, ", "))
	}
	if len(rule.Dialects) > 0 {
		r.Printf("Dialects:    %s\n", strings.Join(rule.Dialects, ", "))
	}
	return nil
}
