package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squint/internal/cli/output"
	"github.com/leapstack-labs/squint/pkg/lint"
	_ "github.com/leapstack-labs/squint/pkg/lint/rules" // register built-in rules
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format  string   // Output format override: text, json
	Rules   []string // Run only specific rules
	Exclude []string // Rule IDs to skip
	Watch   bool     // Re-lint on file changes
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Run lint rules on SQL files",
		Long: `Analyze SQL files for issues.

Files are parsed with the configured dialect and every enabled rule runs
against the resulting tree. Unparsable syntax is itself a finding (PR01),
never a crash.`,
		Example: `  # Lint a file
  squint lint query.sql

  # Lint a directory tree with the postgres dialect
  squint lint --dialect postgres ./sql

  # Run specific rules only
  squint lint --rule CP01,LT01 ./sql

  # Re-lint whenever files change
  squint lint --watch ./sql`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Rule IDs to skip")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint on file changes")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	r := GetRenderer(ctx)
	log := GetLogger(ctx)

	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rules := opts.Rules
	if len(rules) == 0 {
		rules = cfg.Lint.Rules
	}
	exclude := append(append([]string{}, cfg.Lint.Exclude...), opts.Exclude...)

	linter, err := lint.New(lint.Options{
		Dialect:     cfg.Dialect,
		Rules:       rules,
		Exclude:     exclude,
		RuleOptions: cfg.Lint.RuleOptions,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchAndLint(ctx, r, log, linter, args)
	}

	files, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no SQL files found in %s", strings.Join(args, ", "))
	}

	results, err := linter.LintPaths(ctx, files)
	if err != nil {
		return err
	}
	if renderLintResults(r, results) {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// watchAndLint re-runs the linter whenever a watched SQL file changes.
func watchAndLint(ctx context.Context, r *output.Renderer, log *slog.Logger, linter *lint.Linter, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	files, err := expandPaths(args)
	if err != nil {
		return err
	}
	watched := make(map[string]bool)
	for _, f := range files {
		dir := filepath.Dir(f)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			watched[dir] = true
		}
	}

	lintOnce := func() {
		files, err := expandPaths(args)
		if err != nil || len(files) == 0 {
			return
		}
		results, err := linter.LintPaths(ctx, files)
		if err != nil {
			r.Errorf("lint failed: %v", err)
			return
		}
		renderLintResults(r, results)
	}

	lintOnce()
	r.Println("Watching for changes. Ctrl-C to stop.")

	// Editors often emit bursts of events per save. Debounce them.
	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".sql") {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			lintOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Errorf("watch error: %v", err)
		}
	}
}

// lintJSONOutput is the machine-readable lint report shape.
type lintJSONOutput struct {
	Files   []lintJSONFile `json:"files"`
	Summary lintJSONTotals `json:"summary"`
}

type lintJSONFile struct {
	Path        string           `json:"path"`
	Diagnostics []lintJSONFinding `json:"diagnostics"`
}

type lintJSONFinding struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type lintJSONTotals struct {
	FilesAnalyzed int `json:"files_analyzed"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
}

// renderLintResults writes the report and reports whether any issues were
// found.
func renderLintResults(r *output.Renderer, results []*lint.FileResult) bool {
	total, errs, warns := 0, 0, 0
	for _, res := range results {
		total += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				errs++
			case lint.SeverityWarning:
				warns++
			}
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := lintJSONOutput{
			Summary: lintJSONTotals{
				FilesAnalyzed: len(results),
				TotalIssues:   total,
				Errors:        errs,
				Warnings:      warns,
			},
		}
		for _, res := range results {
			if len(res.Diagnostics) == 0 {
				continue
			}
			file := lintJSONFile{Path: res.Path}
			for _, d := range res.Diagnostics {
				file.Diagnostics = append(file.Diagnostics, lintJSONFinding{
					RuleID:   d.RuleID,
					Severity: string(d.Severity),
					Message:  d.Message,
					Line:     d.Pos.Line,
					Column:   d.Pos.Column,
				})
			}
			out.Files = append(out.Files, file)
		}
		_ = r.JSON(out)
		return total > 0
	}

	if total == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", len(results)))
		return false
	}

	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(r.Styles().FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityLabel(r, d.Severity),
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	parts := []string{fmt.Sprintf("%d issues", total)}
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", errs))
	}
	if warns > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", warns))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(parts, ", "), len(results))
	return true
}

func severityLabel(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	default:
		return r.Styles().Info.Render("info   ")
	}
}
