package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/squint/internal/testutil"
	_ "github.com/leapstack-labs/squint/pkg/dialects" // register built-in dialects
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/token"
)

// withRules swaps the global registry for the given synthetic rules.
func withRules(t *testing.T, defs ...RuleDef) {
	t.Helper()
	Clear()
	for _, d := range defs {
		Register(d)
	}
	t.Cleanup(Clear)
}

// stmtRule flags every statement in the tree.
func stmtRule(id string) RuleDef {
	return RuleDef{
		ID:       id,
		Name:     "test." + id,
		Group:    "test",
		Severity: SeverityWarning,
		Check: func(tree *parser.Tree, _ map[string]any) []Diagnostic {
			var out []Diagnostic
			for _, s := range tree.Statements() {
				span := s.Span()
				out = append(out, Diagnostic{
					RuleID:   id,
					Severity: SeverityWarning,
					Message:  "statement found",
					Pos:      span.Start,
					EndPos:   span.End,
				})
			}
			return out
		},
	}
}

// fixedRule emits a single diagnostic at the given offset.
func fixedRule(id string, offset int) RuleDef {
	return RuleDef{
		ID:       id,
		Name:     "test." + id,
		Group:    "test",
		Severity: SeverityInfo,
		Check: func(_ *parser.Tree, _ map[string]any) []Diagnostic {
			return []Diagnostic{{
				RuleID:   id,
				Severity: SeverityInfo,
				Pos:      token.Position{Offset: offset},
			}}
		},
	}
}

func TestRegistry(t *testing.T) {
	withRules(t,
		RuleDef{ID: "B20", Group: "beta"},
		RuleDef{ID: "A10", Group: "alpha"},
	)

	assert.Equal(t, 2, Count())

	all := GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "A10", all[0].ID, "GetAll sorts by ID")

	_, ok := GetByID("A10")
	assert.True(t, ok)
	_, ok = GetByID("Z99")
	assert.False(t, ok)

	beta := GetByGroup("beta")
	require.Len(t, beta, 1)
	assert.Equal(t, "B20", beta[0].ID)
}

func TestNewUnknownRule(t *testing.T) {
	withRules(t, stmtRule("XX01"))

	_, err := New(Options{Rules: []string{"XX99"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rule")
}

func TestNewExclude(t *testing.T) {
	withRules(t, stmtRule("XX01"), stmtRule("XX02"))

	l, err := New(Options{Exclude: []string{"XX01"}})
	require.NoError(t, err)
	require.Len(t, l.Rules(), 1)
	assert.Equal(t, "XX02", l.Rules()[0].ID)

	// Exclude also applies to an explicit selection.
	l, err = New(Options{Rules: []string{"XX01", "XX02"}, Exclude: []string{"XX02"}})
	require.NoError(t, err)
	require.Len(t, l.Rules(), 1)
	assert.Equal(t, "XX01", l.Rules()[0].ID)
}

func TestLintSource(t *testing.T) {
	withRules(t, stmtRule("XX01"))

	l, err := New(Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	res, err := l.LintSource("q.sql", "SELECT 1; SELECT 2;")
	require.NoError(t, err)
	assert.Equal(t, "q.sql", res.Path)
	assert.Len(t, res.Diagnostics, 2)
}

func TestLintSourceUnknownDialect(t *testing.T) {
	withRules(t, stmtRule("XX01"))

	l, err := New(Options{Dialect: "db2"})
	require.NoError(t, err)

	_, err = l.LintSource("q.sql", "SELECT 1;")
	assert.ErrorIs(t, err, parser.ErrUnknownDialect)
}

func TestLintSourceOrdersDiagnostics(t *testing.T) {
	withRules(t,
		fixedRule("ZZ01", 3),
		fixedRule("AA01", 7),
		fixedRule("MM01", 3),
	)

	l, err := New(Options{})
	require.NoError(t, err)

	res, err := l.LintSource("q.sql", "SELECT 1;")
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 3)

	// Position first, rule ID as tie-break.
	assert.Equal(t, "MM01", res.Diagnostics[0].RuleID)
	assert.Equal(t, "ZZ01", res.Diagnostics[1].RuleID)
	assert.Equal(t, "AA01", res.Diagnostics[2].RuleID)
}

func TestDialectRestrictedRule(t *testing.T) {
	r := stmtRule("PG01")
	r.Dialects = []string{"postgres"}
	withRules(t, r)

	l, err := New(Options{Dialect: "ansi"})
	require.NoError(t, err)
	res, err := l.LintSource("q.sql", "SELECT 1;")
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	l, err = New(Options{Dialect: "postgres"})
	require.NoError(t, err)
	res, err = l.LintSource("q.sql", "SELECT 1;")
	require.NoError(t, err)
	assert.Len(t, res.Diagnostics, 1)
}

func TestErrorCount(t *testing.T) {
	res := &FileResult{Diagnostics: []Diagnostic{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityError},
	}}
	assert.Equal(t, 2, res.ErrorCount())
}

func TestLintPaths(t *testing.T) {
	withRules(t, stmtRule("XX01"))

	dir := t.TempDir()
	a := filepath.Join(dir, "a.sql")
	b := filepath.Join(dir, "b.sql")
	require.NoError(t, os.WriteFile(a, []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("SELECT 1; SELECT 2;"), 0o644))

	l, err := New(Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	results, err := l.LintPaths(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, a, results[0].Path, "results come back in input order")
	assert.Len(t, results[0].Diagnostics, 1)
	assert.Len(t, results[1].Diagnostics, 2)
}

func TestLintPathsMissingFile(t *testing.T) {
	withRules(t, stmtRule("XX01"))

	l, err := New(Options{})
	require.NoError(t, err)

	_, err = l.LintPaths(context.Background(), []string{filepath.Join(t.TempDir(), "missing.sql")})
	assert.Error(t, err)
}
