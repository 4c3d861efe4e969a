package lint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/squint/pkg/parser"
)

// Options configures a Linter.
type Options struct {
	// Dialect names the registered dialect to parse with.
	Dialect string

	// Rules selects rule IDs to run. Empty means all registered rules.
	Rules []string

	// Exclude lists rule IDs to skip, applied after Rules.
	Exclude []string

	// RuleOptions carries per-rule configuration, keyed by rule ID.
	RuleOptions map[string]map[string]any

	// Logger receives per-file progress at debug level. Nil disables it.
	Logger *slog.Logger
}

// FileResult holds the findings for one linted file.
type FileResult struct {
	Path        string
	Diagnostics []Diagnostic
}

// ErrorCount returns the number of error-severity findings.
func (r *FileResult) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Linter runs a selected rule set over SQL sources.
type Linter struct {
	opts  Options
	rules []RuleDef
	log   *slog.Logger
}

// New builds a Linter from the global rule registry.
func New(opts Options) (*Linter, error) {
	if opts.Dialect == "" {
		opts.Dialect = "ansi"
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	rules, err := selectRules(opts)
	if err != nil {
		return nil, err
	}
	return &Linter{opts: opts, rules: rules, log: log}, nil
}

func selectRules(opts Options) ([]RuleDef, error) {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, id := range opts.Exclude {
		excluded[id] = true
	}

	var rules []RuleDef
	if len(opts.Rules) == 0 {
		for _, r := range GetAll() {
			if !excluded[r.ID] {
				rules = append(rules, r)
			}
		}
		return rules, nil
	}

	for _, id := range opts.Rules {
		r, ok := GetByID(id)
		if !ok {
			return nil, fmt.Errorf("lint: unknown rule %q", id)
		}
		if !excluded[r.ID] {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// Rules returns the resolved rule set this linter runs.
func (l *Linter) Rules() []RuleDef {
	return l.rules
}

// LintSource lints a single source string. The path is only used to label
// the result.
func (l *Linter) LintSource(path, src string) (*FileResult, error) {
	tree, err := parser.Parse(src, l.opts.Dialect)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	for _, rule := range l.rules {
		if !ruleApplies(rule, l.opts.Dialect) {
			continue
		}
		diags = append(diags, rule.Check(tree, l.opts.RuleOptions[rule.ID])...)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Pos.Offset != diags[j].Pos.Offset {
			return diags[i].Pos.Offset < diags[j].Pos.Offset
		}
		return diags[i].RuleID < diags[j].RuleID
	})

	l.log.Debug("linted file", "path", path, "findings", len(diags))
	return &FileResult{Path: path, Diagnostics: diags}, nil
}

// LintPaths lints files concurrently and returns results in path order.
// A file that cannot be read fails the whole run.
func (l *Linter) LintPaths(ctx context.Context, paths []string) ([]*FileResult, error) {
	results := make([]*FileResult, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("lint: %w", err)
			}
			res, err := l.LintSource(path, string(src))
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func ruleApplies(rule RuleDef, dialectName string) bool {
	if len(rule.Dialects) == 0 {
		return true
	}
	for _, d := range rule.Dialects {
		if d == dialectName {
			return true
		}
	}
	return false
}
