package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/squint/pkg/segment"
)

// KindStatement is the wrapper kind every dialect statement alternative is
// nested under, so consumers can find statements without knowing the
// dialect's specific statement kinds.
const KindStatement = "statement"

// Tree is the result of a parse: a lossless CST spanning the whole input.
type Tree struct {
	Root    *segment.Segment
	Dialect string
}

// Raw reconstructs the original source text exactly.
func (t *Tree) Raw() string {
	return t.Root.Raw()
}

// Statements returns all statement segments in document order.
func (t *Tree) Statements() []*segment.Segment {
	return t.Root.FindAll(KindStatement)
}

// Unparsable returns all recovery spans, in document order. An empty
// result means the whole file parsed cleanly.
func (t *Tree) Unparsable() []*segment.Segment {
	return t.Root.FindAll(segment.KindUnparsable)
}

// Walk visits every segment in document order.
func (t *Tree) Walk(fn func(*segment.Segment) bool) {
	t.Root.Walk(fn)
}

// Dump renders the tree structure for debugging and the parse command.
// Leaves show their raw text; meta segments show their marker kind.
func (t *Tree) Dump() string {
	var b strings.Builder
	dumpSegment(&b, t.Root, 0)
	return b.String()
}

func dumpSegment(b *strings.Builder, s *segment.Segment, depth int) {
	indent := strings.Repeat("    ", depth)
	switch {
	case s.IsMeta():
		fmt.Fprintf(b, "%s[%s]\n", indent, s.Kind)
	case s.IsLeaf():
		fmt.Fprintf(b, "%s%s: %q\n", indent, s.Kind, s.Tok.Raw)
	default:
		fmt.Fprintf(b, "%s%s:\n", indent, s.Kind)
		for _, c := range s.Children {
			dumpSegment(b, c, depth+1)
		}
	}
}
