package grammar

import "github.com/leapstack-labs/squint/pkg/segment"

// BracketPair matches an explicit open bracket, inner content, and the
// matching close bracket. While inside the brackets the outer terminator
// stack is masked: only the close bracket bounds the content, so a
// statement terminator inside parentheses does not end the statement.
//
// An unmatched open bracket is a hard failure. It is never silently closed
// at end of input; recovery happens at the statement level instead.
type BracketPair struct {
	Open  Node
	Inner Node
	Close Node
}

// Bracketed creates a bracketed grammar with literal open/close symbols.
func Bracketed(open string, inner Node, close string) *BracketPair {
	return &BracketPair{
		Open:  Literal(open, "start_bracket"),
		Inner: inner,
		Close: Literal(close, "end_bracket"),
	}
}

func (b *BracketPair) Match(ctx *Context, pos int) (Result, bool) {
	ores, ok := b.Open.Match(ctx, pos)
	if !ok {
		return Result{}, false
	}
	segs := append([]*segment.Segment{}, ores.Segments...)
	cur := pos + ores.Consumed

	ctx.pushExclusive([]Node{b.Close})
	defer ctx.PopTerminators()

	gap, next := ctx.skipGap(cur)
	ires, iok := b.Inner.Match(ctx, next)
	if !iok {
		return Result{}, false
	}
	if ires.Consumed > 0 {
		segs = append(segs, gap...)
		segs = append(segs, ires.Segments...)
		cur = next + ires.Consumed
	} else {
		segs = append(segs, ires.Segments...)
	}

	gap2, next2 := ctx.skipGap(cur)
	cres, cok := b.Close.Match(ctx, next2)
	if !cok {
		return Result{}, false
	}
	segs = append(segs, gap2...)
	segs = append(segs, cres.Segments...)

	return Result{Consumed: next2 + cres.Consumed - pos, Segments: segs}, true
}
