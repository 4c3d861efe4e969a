package grammar

import "github.com/leapstack-labs/squint/pkg/segment"

// Sequence matches its children in order. A required child's failure fails
// the whole sequence; nothing is committed partially. Optional children
// that fail are skipped. Meta children are emitted at their structural
// position without consuming input or the gap before them.
type Sequence struct {
	Children    []Node
	Terminators []Node
}

// Seq creates a sequence of grammar elements.
func Seq(children ...Node) *Sequence {
	return &Sequence{Children: children}
}

// Terminate sets lookahead patterns that bound this sequence's optional
// tail: once a terminator matches, remaining optional children are skipped
// rather than attempted across the construct boundary.
func (s *Sequence) Terminate(terms ...Node) *Sequence {
	s.Terminators = terms
	return s
}

func (s *Sequence) Match(ctx *Context, pos int) (Result, bool) {
	if len(s.Terminators) > 0 {
		ctx.PushTerminators(s.Terminators)
		defer ctx.PopTerminators()
	}

	var segs []*segment.Segment
	cur := pos

	for i, child := range s.Children {
		if m, ok := child.(*Meta); ok {
			segs = append(segs, segment.NewMeta(m.Kind))
			continue
		}

		gap, next := ctx.skipGap(cur)

		// At end of stream, or at an active terminator once something has
		// been consumed, the sequence can only finish cleanly if everything
		// left is skippable. A terminator never aborts a sequence before its
		// first token: a clause may start with the same keyword that bounds
		// it in an enclosing scope.
		if next >= len(ctx.tokens) || (cur > pos && ctx.Terminated(next)) {
			if !allCanMatchEmpty(s.Children[i:]) {
				return Result{}, false
			}
			// Emit remaining metas; the trailing gap stays with the parent.
			for _, rest := range s.Children[i:] {
				if m, ok := rest.(*Meta); ok {
					segs = append(segs, segment.NewMeta(m.Kind))
				}
			}
			return Result{Consumed: cur - pos, Segments: segs}, true
		}

		r, ok := child.Match(ctx, next)
		if !ok {
			return Result{}, false
		}
		if r.Consumed == 0 {
			// Optional child that matched nothing: keep any meta output but
			// do not commit the gap yet.
			segs = append(segs, r.Segments...)
			continue
		}

		segs = append(segs, gap...)
		segs = append(segs, r.Segments...)
		cur = next + r.Consumed
	}

	return Result{Consumed: cur - pos, Segments: segs}, true
}

func allCanMatchEmpty(nodes []Node) bool {
	for _, n := range nodes {
		if !canMatchEmpty(n) {
			return false
		}
	}
	return true
}
