package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/squint/pkg/dialects" // register built-in dialects
	"github.com/leapstack-labs/squint/pkg/parser"
)

func TestFormatKeywordCase(t *testing.T) {
	tests := []struct {
		name string
		kc   KeywordCase
		want string
	}{
		{"upper", KeywordUpper, "SELECT a FROM t;\n"},
		{"lower", KeywordLower, "select a from t;\n"},
		{"keep", KeywordKeep, "select a FROM t;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.KeywordCase = tt.kc
			out, err := Format("select a FROM t;", opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatTrimsTrailingWhitespace(t *testing.T) {
	out, err := Format("SELECT a   \nFROM t;  ", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "SELECT a\nFROM t;\n", out)
}

func TestFormatTrailingNewline(t *testing.T) {
	out, err := Format("SELECT 1;", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", out)

	// Already present: not doubled.
	out, err = Format("SELECT 1;\n", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", out)

	// Empty input stays empty.
	out, err = Format("", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "", out)

	opts := DefaultOptions()
	opts.EnsureTrailingNewline = false
	out, err = Format("SELECT 1;", opts)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", out)
}

func TestFormatIsIdempotent(t *testing.T) {
	sources := []string{
		"select a, b from t where x = 1;",
		"SELECT a   \n  FROM t;",
		"insert into t (a) values (1);",
	}
	for _, src := range sources {
		once, err := Format(src, DefaultOptions())
		require.NoError(t, err)
		twice, err := Format(once, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestFormatPreservesUnparsable(t *testing.T) {
	// The broken span keeps its casing; the clean statement is formatted.
	out, err := Format("selec broken from x; select a from t;", DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "selec broken from x")
	assert.Contains(t, out, "SELECT a FROM t;")
}

func TestFormatUnknownDialect(t *testing.T) {
	opts := DefaultOptions()
	opts.Dialect = "sybase"
	_, err := Format("SELECT 1", opts)
	assert.ErrorIs(t, err, parser.ErrUnknownDialect)
}

func TestFormatDialectSyntax(t *testing.T) {
	opts := DefaultOptions()
	opts.Dialect = "postgres"
	out, err := Format("select a::int from t returning_nothing;", opts)
	require.NoError(t, err)
	assert.Contains(t, out, "::")

	opts.Dialect = "tsql"
	out, err = Format("select top 3 a from t;", opts)
	require.NoError(t, err)
	assert.Equal(t, "SELECT TOP 3 a FROM t;\n", out)
}

func TestFormatTreeComments(t *testing.T) {
	tree, err := parser.Parse("select a -- keep me\nfrom t;", "ansi")
	require.NoError(t, err)

	out := FormatTree(tree, DefaultOptions())
	assert.Equal(t, "SELECT a -- keep me\nFROM t;\n", out)
}
