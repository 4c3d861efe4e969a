package grammar

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/squint/pkg/segment"
	"github.com/leapstack-labs/squint/pkg/token"
)

// literal matches a single token by case-insensitive raw text.
type literal struct {
	text string
	kind string
}

// Literal creates a matcher for a fixed token text, producing a leaf
// segment of the given kind. Matching is case-insensitive.
func Literal(text, kind string) Node {
	return &literal{text: text, kind: kind}
}

func (l *literal) Match(ctx *Context, pos int) (Result, bool) {
	tok, ok := ctx.Token(pos)
	if !ok || !strings.EqualFold(tok.Raw, l.text) {
		return Result{}, false
	}
	return Result{Consumed: 1, Segments: []*segment.Segment{segment.NewLeaf(l.kind, tok)}}, true
}

// typed matches a single token by lexical kind.
type typed struct {
	tokKind token.Kind
	kind    string
}

// Typed creates a matcher for a token kind, producing a leaf segment of
// the given segment kind.
func Typed(k token.Kind, kind string) Node {
	return &typed{tokKind: k, kind: kind}
}

func (t *typed) Match(ctx *Context, pos int) (Result, bool) {
	tok, ok := ctx.Token(pos)
	if !ok || tok.Kind != t.tokKind {
		return Result{}, false
	}
	return Result{Consumed: 1, Segments: []*segment.Segment{segment.NewLeaf(t.kind, tok)}}, true
}

// ref is a lazy indirection to a named rule, resolved at match time so
// mutually recursive rules work without cyclic construction.
type ref struct {
	name string
}

// Ref creates a reference to a named dialect rule.
func Ref(name string) Node {
	return &ref{name: name}
}

func (r *ref) Match(ctx *Context, pos int) (Result, bool) {
	node, ok := ctx.rules.Rule(r.name)
	if !ok {
		// Dialect expansion validates every reachable reference, so an
		// unresolved name here is a construction bug, not bad input.
		panic(fmt.Sprintf("grammar: unresolved rule reference %q", r.name))
	}
	return node.Match(ctx, pos)
}

// Meta is a zero-width structural marker inserted into the output segment
// stream. It never consumes tokens.
type Meta struct {
	Kind segment.MetaKind
}

// Indent marks the start of a nested body for layout tooling.
func Indent() Node { return &Meta{Kind: segment.MetaIndent} }

// Dedent marks the end of a nested body.
func Dedent() Node { return &Meta{Kind: segment.MetaDedent} }

func (m *Meta) Match(_ *Context, _ int) (Result, bool) {
	return Result{Segments: []*segment.Segment{segment.NewMeta(m.Kind)}}, true
}
