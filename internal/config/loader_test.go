package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultKeywordCase, cfg.Format.KeywordCase)
	assert.True(t, cfg.Format.TrimTrailingWhitespace)
	assert.True(t, cfg.Format.EnsureTrailingNewline)
	assert.Empty(t, cfg.Lint.Rules)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "squint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dialect: postgres
verbose: true
lint:
  rules:
    - CP01
    - LT01
  exclude:
    - AM04
  rule_options:
    CP01:
      capitalisation_policy: lower
format:
  keyword_case: lower
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"CP01", "LT01"}, cfg.Lint.Rules)
	assert.Equal(t, []string{"AM04"}, cfg.Lint.Exclude)
	assert.Equal(t, "lower", cfg.Lint.RuleOptions["CP01"]["capitalisation_policy"])
	assert.Equal(t, "lower", cfg.Format.KeywordCase)
	assert.Equal(t, path, FileUsed())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SQUINT_DIALECT", "duckdb")
	t.Setenv("SQUINT_FORMAT__KEYWORD_CASE", "lower")
	t.Setenv("SQUINT_LINT__RULES", "CP01,LT12")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "duckdb", cfg.Dialect)
	assert.Equal(t, "lower", cfg.Format.KeywordCase)
	assert.Equal(t, []string{"CP01", "LT12"}, cfg.Lint.Rules,
		"comma-separated env values decode into slices")
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "squint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: postgres\n"), 0o644))
	t.Setenv("SQUINT_DIALECT", "tsql")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "tsql", cfg.Dialect)
}

func TestFlagsOverrideEverything(t *testing.T) {
	t.Setenv("SQUINT_DIALECT", "tsql")
	t.Setenv("SQUINT_NO_COLOR", "false")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dialect", DefaultDialect, "")
	fs.Bool("no-color", false, "")
	fs.String("output", DefaultOutput, "")
	require.NoError(t, fs.Set("dialect", "duckdb"))
	require.NoError(t, fs.Set("no-color", "true"))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "duckdb", cfg.Dialect, "a changed flag beats the env var")
	assert.True(t, cfg.NoColor, "kebab-case flags map to snake_case keys")
	assert.Equal(t, DefaultOutput, cfg.OutputFormat, "unchanged flags never override")
}
