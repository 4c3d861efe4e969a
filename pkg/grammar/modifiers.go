package grammar

import "github.com/leapstack-labs/squint/pkg/segment"

// optional wraps a node so that failure consumes nothing instead of
// failing the enclosing construct.
type optional struct {
	inner Node
}

// Opt marks a grammar element as optional.
func Opt(inner Node) Node {
	return &optional{inner: inner}
}

func (o *optional) Match(ctx *Context, pos int) (Result, bool) {
	if r, ok := o.inner.Match(ctx, pos); ok {
		return r, true
	}
	return Result{}, true
}

// exclude rejects an otherwise successful match if another pattern also
// matches at the same position. Used to keep a generic rule (for example a
// naked identifier) from swallowing a token reserved for a specific
// construct.
type exclude struct {
	inner  Node
	unless Node
}

// Exclude matches inner only when unless does not match at the same
// starting position.
func Exclude(inner, unless Node) Node {
	return &exclude{inner: inner, unless: unless}
}

func (e *exclude) Match(ctx *Context, pos int) (Result, bool) {
	if _, ok := e.unless.Match(ctx, pos); ok {
		return Result{}, false
	}
	return e.inner.Match(ctx, pos)
}

// wrap packages the segments of a successful inner match into a single
// typed container segment.
type wrap struct {
	kind  string
	inner Node
}

// Wrap nests the inner match's segments under a new segment of the given
// kind. This is how named CST nodes (statements, clauses, expressions)
// come into existence.
func Wrap(kind string, inner Node) Node {
	return &wrap{kind: kind, inner: inner}
}

func (w *wrap) Match(ctx *Context, pos int) (Result, bool) {
	r, ok := w.inner.Match(ctx, pos)
	if !ok {
		return Result{}, false
	}
	return Result{
		Consumed: r.Consumed,
		Segments: []*segment.Segment{segment.NewNode(w.kind, r.Segments)},
	}, true
}

// canMatchEmpty reports whether a node can succeed without consuming any
// tokens. Used by Sequence to decide whether a terminator cleanly ends the
// sequence or fails it.
func canMatchEmpty(n Node) bool {
	switch v := n.(type) {
	case *optional, *Meta:
		return true
	case *wrap:
		return canMatchEmpty(v.inner)
	case *exclude:
		return canMatchEmpty(v.inner)
	case *Sequence:
		for _, c := range v.Children {
			if !canMatchEmpty(c) {
				return false
			}
		}
		return true
	case *Choice:
		for _, a := range v.Alts {
			if canMatchEmpty(a) {
				return true
			}
		}
		return false
	case *Repeat:
		return v.Min == 0
	}
	return false
}
