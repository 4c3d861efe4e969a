package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Whitespace, "whitespace"},
		{Newline, "newline"},
		{InlineComment, "inline_comment"},
		{BlockComment, "block_comment"},
		{Word, "word"},
		{Number, "number"},
		{String, "string"},
		{QuotedIdent, "quoted_identifier"},
		{Symbol, "symbol"},
		{Unknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestKindIsCode(t *testing.T) {
	code := []Kind{Word, Number, String, QuotedIdent, Symbol, Unknown}
	for _, k := range code {
		assert.True(t, k.IsCode(), "%s should be code", k)
	}

	nonCode := []Kind{Whitespace, Newline, InlineComment, BlockComment}
	for _, k := range nonCode {
		assert.False(t, k.IsCode(), "%s should not be code", k)
	}
}

func TestSpanLen(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 7, Offset: 6},
	}
	assert.Equal(t, 6, s.Len())
}
