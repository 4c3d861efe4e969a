package tsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/segment"
)

func parse(t *testing.T, src string) *parser.Tree {
	t.Helper()
	tree, err := parser.Parse(src, "tsql")
	require.NoError(t, err)
	return tree
}

func TestBatchSeparator(t *testing.T) {
	src := "CREATE TABLE t (id int);\nGO\nSELECT id FROM t;\nGO\n"
	tree := parse(t, src)

	assert.Equal(t, src, tree.Raw())
	assert.Empty(t, tree.Unparsable())
	assert.Len(t, tree.Statements(), 2)
	assert.Len(t, tree.Root.FindAll("batch_separator"), 2)

	var batches int
	for _, c := range tree.Root.Children {
		if c.Kind == segment.KindBatch {
			batches++
		}
	}
	assert.Equal(t, 2, batches)
}

func TestSeparatorIsCaseInsensitive(t *testing.T) {
	tree := parse(t, "SELECT 1\ngo\nSELECT 2\n")
	assert.Empty(t, tree.Unparsable())
	assert.Len(t, tree.Root.FindAll("batch_separator"), 1)
}

func TestTopClause(t *testing.T) {
	tree := parse(t, "SELECT TOP 5 name FROM users;")

	assert.Empty(t, tree.Unparsable())
	top := tree.Root.FindAll("top_clause")
	require.Len(t, top, 1)
	assert.Equal(t, "TOP 5", top[0].Raw())
}

func TestBracketQuotedIdentifiers(t *testing.T) {
	src := "SELECT [first name] FROM [user table];"
	tree := parse(t, src)

	assert.Equal(t, src, tree.Raw())
	assert.Empty(t, tree.Unparsable())

	quoted := tree.Root.FindAll("quoted_identifier")
	require.Len(t, quoted, 2)
	assert.Equal(t, "[first name]", quoted[0].Raw())
}

func TestAnsiBaseSurvivesDerivation(t *testing.T) {
	tree := parse(t, "SELECT a FROM t WHERE a IN (1, 2) ORDER BY a;")
	assert.Empty(t, tree.Unparsable())
	assert.NotEmpty(t, tree.Root.FindAll("order_by_clause"))
}

func TestGoIsReserved(t *testing.T) {
	d, err := Dialect().Expand()
	require.NoError(t, err)
	assert.True(t, d.IsReservedKeyword("go"))
	assert.True(t, d.IsReservedKeyword("top"))
}
