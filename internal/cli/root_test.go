package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/squint/pkg/dialects" // register built-in dialects
)

// execute runs the CLI with args and captures stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "squint "+Version)

	out, _, err = execute(t, nil, "version", "-o", "json")
	require.NoError(t, err)
	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, Version, v["version"])
	assert.NotEmpty(t, v["go_version"])
}

func TestDialectsCommand(t *testing.T) {
	out, _, err := execute(t, nil, "dialects", "-o", "json")
	require.NoError(t, err)

	var dialects []struct {
		Name     string `json:"name"`
		Rules    int    `json:"rules"`
		Reserved int    `json:"reserved_keywords"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &dialects))

	names := make([]string, 0, len(dialects))
	for _, d := range dialects {
		names = append(names, d.Name)
		assert.Positive(t, d.Rules)
		assert.Positive(t, d.Reserved)
	}
	assert.ElementsMatch(t, []string{"ansi", "duckdb", "postgres", "tsql"}, names)
}

func TestRulesCommand(t *testing.T) {
	out, _, err := execute(t, nil, "rules", "-o", "json")
	require.NoError(t, err)

	var rules []struct {
		ID    string `json:"id"`
		Group string `json:"group"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))

	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	assert.Subset(t, ids, []string{"AM04", "CP01", "CV06", "LT01", "LT12", "PR01"})
}

func TestRulesGroupFilter(t *testing.T) {
	out, _, err := execute(t, nil, "rules", "--group", "layout", "-o", "json")
	require.NoError(t, err)

	var rules []struct {
		ID    string `json:"id"`
		Group string `json:"group"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.Equal(t, "layout", r.Group)
	}
}

func TestRulesShowSingle(t *testing.T) {
	out, _, err := execute(t, nil, "rules", "CP01", "-o", "json")
	require.NoError(t, err)

	var rule struct {
		ID         string   `json:"id"`
		ConfigKeys []string `json:"config_keys"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rule))
	assert.Equal(t, "CP01", rule.ID)
	assert.Contains(t, rule.ConfigKeys, "capitalisation_policy")

	_, _, err = execute(t, nil, "rules", "XX99")
	assert.Error(t, err)
}

func TestParseCommandStdin(t *testing.T) {
	out, _, err := execute(t, strings.NewReader("SELECT 1;"), "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "select_clause:")
}

func TestParseCommandJSON(t *testing.T) {
	path := writeFile(t, "q.sql", "SELECT a FROM t;")
	out, _, err := execute(t, nil, "parse", path, "-o", "json")
	require.NoError(t, err)

	var tree struct {
		Kind     string            `json:"kind"`
		Children []json.RawMessage `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "file", tree.Kind)
	assert.NotEmpty(t, tree.Children)
}

func TestParseCommandReportsUnparsable(t *testing.T) {
	path := writeFile(t, "bad.sql", "SELEC nope;")
	out, errOut, err := execute(t, nil, "parse", path)
	require.NoError(t, err, "an unparsable file is a finding, not a command failure")
	assert.Contains(t, out, "unparsable:")
	assert.Contains(t, errOut, "1 unparsable sections")
}

func TestLintCommandFindings(t *testing.T) {
	path := writeFile(t, "q.sql", "select a   \nFROM t")

	out, _, err := execute(t, nil, "lint", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lint issues found")
	assert.Contains(t, out, "CP01")
	assert.Contains(t, out, "LT01")
	assert.Contains(t, out, "CV06")
	assert.Contains(t, out, "LT12")
}

func TestLintCommandClean(t *testing.T) {
	path := writeFile(t, "q.sql", "SELECT a FROM t;\n")
	out, _, err := execute(t, nil, "lint", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues")
}

func TestLintCommandRuleSelection(t *testing.T) {
	path := writeFile(t, "q.sql", "select a   \nFROM t")

	out, _, err := execute(t, nil, "lint", "--rule", "CP01", path)
	require.Error(t, err)
	assert.Contains(t, out, "CP01")
	assert.NotContains(t, out, "LT01")

	out, _, err = execute(t, nil, "lint", "--exclude", "CP01,LT01,LT12,CV06", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues")
}

func TestLintCommandJSON(t *testing.T) {
	path := writeFile(t, "q.sql", "select 1;\n")

	out, _, err := execute(t, nil, "lint", "-o", "json", path)
	require.Error(t, err)

	var report struct {
		Files []struct {
			Path        string `json:"path"`
			Diagnostics []struct {
				RuleID string `json:"rule_id"`
				Line   int    `json:"line"`
			} `json:"diagnostics"`
		} `json:"files"`
		Summary struct {
			FilesAnalyzed int `json:"files_analyzed"`
			TotalIssues   int `json:"total_issues"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Summary.FilesAnalyzed)
	require.Len(t, report.Files, 1)
	assert.Equal(t, path, report.Files[0].Path)
	assert.Equal(t, "CP01", report.Files[0].Diagnostics[0].RuleID)
}

func TestLintCommandDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sql"), []byte("SELECT 1;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.SQL"), []byte("SELECT 2;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not sql"), 0o644))

	out, _, err := execute(t, nil, "lint", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 files")
}

func TestFormatCommandPrints(t *testing.T) {
	path := writeFile(t, "q.sql", "select a from t;")
	out, _, err := execute(t, nil, "format", path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t;\n", out)
}

func TestFormatCommandCheck(t *testing.T) {
	dirty := writeFile(t, "dirty.sql", "select 1;")
	_, _, err := execute(t, nil, "format", "--check", dirty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would be reformatted")

	clean := writeFile(t, "clean.sql", "SELECT 1;\n")
	out, _, err := execute(t, nil, "format", "--check", clean)
	require.NoError(t, err)
	assert.Contains(t, out, "already formatted")
}

func TestFormatCommandWrite(t *testing.T) {
	path := writeFile(t, "q.sql", "select a from t;")

	out, _, err := execute(t, nil, "format", "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Formatted 1 of 1 files")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t;\n", string(got))
}

func TestFormatCommandKeywordCaseFlag(t *testing.T) {
	path := writeFile(t, "q.sql", "SELECT a FROM t;\n")
	out, _, err := execute(t, nil, "format", "--keyword-case", "lower", path)
	require.NoError(t, err)
	assert.Equal(t, "select a from t;\n", out)
}

func TestDialectFlag(t *testing.T) {
	path := writeFile(t, "q.sql", "SELECT TOP 3 a FROM t;\n")

	// TOP is not ANSI: the default dialect reports an unparsable section.
	_, _, err := execute(t, nil, "lint", "--rule", "PR01", path)
	assert.Error(t, err)

	// Under tsql it parses clean.
	out, _, err := execute(t, nil, "lint", "-d", "tsql", "--rule", "PR01", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues")
}
