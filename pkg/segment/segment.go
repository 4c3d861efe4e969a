// Package segment defines the concrete syntax tree produced by parsing.
//
// Segments are a lossless representation of the source: every token,
// including whitespace and comments, appears as a leaf somewhere in the
// tree, and concatenating all leaves in order reconstructs the input
// exactly. Meta segments (indent/dedent) carry no text but mark structural
// nesting for layout tooling.
package segment

import (
	"strings"

	"github.com/leapstack-labs/squint/pkg/token"
)

// Well-known segment kinds used across the engine.
const (
	KindFile       = "file"
	KindBatch      = "batch"
	KindKeyword    = "keyword"
	KindUnparsable = "unparsable"
)

// MetaKind distinguishes non-text structural markers.
type MetaKind int

const (
	MetaNone MetaKind = iota
	MetaIndent
	MetaDedent
)

func (m MetaKind) String() string {
	switch m {
	case MetaIndent:
		return "indent"
	case MetaDedent:
		return "dedent"
	default:
		return "none"
	}
}

// Segment is a CST node. Exactly one of the following holds:
//   - leaf: Tok is set, Children is nil
//   - container: Children is set, Tok is nil
//   - meta: Meta != MetaNone, both Tok and Children nil
//
// Segments are never mutated after construction.
type Segment struct {
	Kind     string
	Tok      *token.Token
	Children []*Segment
	Meta     MetaKind
}

// NewLeaf creates a leaf segment holding a single token.
func NewLeaf(kind string, tok token.Token) *Segment {
	return &Segment{Kind: kind, Tok: &tok}
}

// NewToken creates a leaf whose kind is the token's own kind name.
// Used for whitespace, comments, and other pass-through tokens.
func NewToken(tok token.Token) *Segment {
	return NewLeaf(tok.Kind.String(), tok)
}

// NewNode creates a container segment.
func NewNode(kind string, children []*Segment) *Segment {
	return &Segment{Kind: kind, Children: children}
}

// NewMeta creates an indent or dedent marker.
func NewMeta(m MetaKind) *Segment {
	return &Segment{Kind: m.String(), Meta: m}
}

// NewUnparsable wraps raw tokens that could not be matched by any grammar
// rule. Downstream consumers detect partial parse failure by this kind.
func NewUnparsable(toks []token.Token) *Segment {
	children := make([]*Segment, len(toks))
	for i, t := range toks {
		children[i] = NewToken(t)
	}
	return NewNode(KindUnparsable, children)
}

// IsLeaf reports whether the segment holds a token.
func (s *Segment) IsLeaf() bool { return s.Tok != nil }

// IsMeta reports whether the segment is a non-text structural marker.
func (s *Segment) IsMeta() bool { return s.Meta != MetaNone }

// IsUnparsable reports whether the segment marks a recovery region.
func (s *Segment) IsUnparsable() bool { return s.Kind == KindUnparsable }

// IsCode reports whether the segment contains any syntactically meaningful
// text. Meta segments and whitespace/comment leaves are not code.
func (s *Segment) IsCode() bool {
	if s.IsMeta() {
		return false
	}
	if s.IsLeaf() {
		return s.Tok.IsCode()
	}
	for _, c := range s.Children {
		if c.IsCode() {
			return true
		}
	}
	return false
}

// Raw reconstructs the exact source text covered by this segment.
func (s *Segment) Raw() string {
	var b strings.Builder
	s.writeRaw(&b)
	return b.String()
}

func (s *Segment) writeRaw(b *strings.Builder) {
	if s.Tok != nil {
		b.WriteString(s.Tok.Raw)
		return
	}
	for _, c := range s.Children {
		c.writeRaw(b)
	}
}

// Span returns the source range covered by the segment. Meta segments and
// empty containers return a zero span.
func (s *Segment) Span() token.Span {
	first, ok := s.firstLeaf()
	if !ok {
		return token.Span{}
	}
	last, _ := s.lastLeaf()
	return token.Span{Start: first.Tok.Span.Start, End: last.Tok.Span.End}
}

func (s *Segment) firstLeaf() (*Segment, bool) {
	if s.Tok != nil {
		return s, true
	}
	for _, c := range s.Children {
		if leaf, ok := c.firstLeaf(); ok {
			return leaf, true
		}
	}
	return nil, false
}

func (s *Segment) lastLeaf() (*Segment, bool) {
	if s.Tok != nil {
		return s, true
	}
	for i := len(s.Children) - 1; i >= 0; i-- {
		if leaf, ok := s.Children[i].lastLeaf(); ok {
			return leaf, true
		}
	}
	return nil, false
}

// Walk visits the segment and all descendants in document order.
// Returning false from fn skips the segment's children.
func (s *Segment) Walk(fn func(*Segment) bool) {
	if !fn(s) {
		return
	}
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// FindAll returns all descendants (including s itself) of the given kind,
// in document order.
func (s *Segment) FindAll(kind string) []*Segment {
	var out []*Segment
	s.Walk(func(seg *Segment) bool {
		if seg.Kind == kind {
			out = append(out, seg)
		}
		return true
	})
	return out
}

// FirstChild returns the first direct child of the given kind.
func (s *Segment) FirstChild(kind string) (*Segment, bool) {
	for _, c := range s.Children {
		if c.Kind == kind {
			return c, true
		}
	}
	return nil, false
}

// Leaves returns all leaf segments in document order.
func (s *Segment) Leaves() []*Segment {
	var out []*Segment
	s.Walk(func(seg *Segment) bool {
		if seg.IsLeaf() {
			out = append(out, seg)
		}
		return true
	})
	return out
}
