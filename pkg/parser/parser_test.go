package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/squint/pkg/dialects" // register built-in dialects
	"github.com/leapstack-labs/squint/pkg/segment"
)

func TestParseUnknownDialect(t *testing.T) {
	_, err := Parse("SELECT 1", "oracle9i")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestParseRoundTrip(t *testing.T) {
	sources := []string{
		"SELECT a, b FROM t WHERE x = 1;",
		"-- leading comment\nSELECT 1;\n\n/* block */ SELECT 2;\n",
		"select *\nfrom orders o\njoin customers c on o.customer_id = c.id;",
		"",
		"   \n\t\n",
		"this is not sql at all ???",
		"\xff\xfeab\x80cd",
		"SELECT a FROM t; \xff\xfe",
	}

	for _, src := range sources {
		tree, err := Parse(src, "ansi")
		require.NoError(t, err)
		assert.Equal(t, src, tree.Raw(), "the tree must be lossless")
	}
}

func TestParseStatements(t *testing.T) {
	tree, err := Parse("SELECT 1; SELECT 2;\nSELECT 3", "ansi")
	require.NoError(t, err)

	stmts := tree.Statements()
	assert.Len(t, stmts, 3)
	assert.Empty(t, tree.Unparsable())
}

func TestParseDelimiterLeaves(t *testing.T) {
	tree, err := Parse("SELECT 1;", "ansi")
	require.NoError(t, err)

	var terms int
	tree.Walk(func(s *segment.Segment) bool {
		if s.Kind == "statement_terminator" {
			terms++
		}
		return true
	})
	assert.Equal(t, 1, terms)
}

func TestParseBatchWrapping(t *testing.T) {
	tree, err := Parse("SELECT 1;", "ansi")
	require.NoError(t, err)

	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, segment.KindBatch, tree.Root.Children[0].Kind)

	// Pure whitespace never forms a batch.
	tree, err = Parse("  \n\n", "ansi")
	require.NoError(t, err)
	for _, c := range tree.Root.Children {
		assert.NotEqual(t, segment.KindBatch, c.Kind)
	}
}

func TestParseRecovery(t *testing.T) {
	src := "SELEC oops FROM t; SELECT 1;"
	tree, err := Parse(src, "ansi")
	require.NoError(t, err)

	bad := tree.Unparsable()
	require.Len(t, bad, 1)
	assert.Equal(t, "SELEC oops FROM t", bad[0].Raw(),
		"the span ends at the next recognizable boundary, trailing whitespace excluded")

	stmts := tree.Statements()
	require.Len(t, stmts, 1)
	assert.Equal(t, "SELECT 1", stmts[0].Raw())

	assert.Equal(t, src, tree.Raw())
}

func TestParseRecoveryBetweenStatements(t *testing.T) {
	src := "SELECT 1; FROB x y z; SELECT 2;"
	tree, err := Parse(src, "ansi")
	require.NoError(t, err)

	bad := tree.Unparsable()
	require.Len(t, bad, 1)
	assert.Equal(t, "FROB x y z", bad[0].Raw())

	stmts := tree.Statements()
	require.Len(t, stmts, 2)
	assert.Equal(t, "SELECT 1", stmts[0].Raw())
	assert.Equal(t, "SELECT 2", stmts[1].Raw())

	assert.Equal(t, src, tree.Raw())
}

func TestParseRecoveryAtEnd(t *testing.T) {
	tree, err := Parse("SELECT 1; ???", "ansi")
	require.NoError(t, err)

	require.Len(t, tree.Statements(), 1)
	bad := tree.Unparsable()
	require.Len(t, bad, 1)
	assert.Equal(t, "???", bad[0].Raw())
}

func TestParseBatchSeparator(t *testing.T) {
	src := "SELECT 1\nGO\nSELECT 2\n"
	tree, err := Parse(src, "tsql")
	require.NoError(t, err)

	assert.Equal(t, src, tree.Raw())
	assert.Len(t, tree.Statements(), 2)

	var batches int
	for _, c := range tree.Root.Children {
		if c.Kind == segment.KindBatch {
			batches++
		}
	}
	assert.Equal(t, 2, batches, "the separator closes the current batch")

	seps := tree.Root.FindAll("batch_separator")
	require.Len(t, seps, 1)
	assert.Equal(t, "GO", seps[0].Raw())
}

func TestTreeDump(t *testing.T) {
	tree, err := Parse("SELECT a;", "ansi")
	require.NoError(t, err)

	dump := tree.Dump()
	assert.Contains(t, dump, "file:")
	assert.Contains(t, dump, "select_clause:")
	assert.Contains(t, dump, `keyword: "SELECT"`)
	assert.Contains(t, dump, "[indent]")
}
