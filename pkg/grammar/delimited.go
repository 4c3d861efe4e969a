package grammar

import "github.com/leapstack-labs/squint/pkg/segment"

// DelimitedList matches one or more inner elements separated by a
// delimiter. Unless AllowTrailing is set, a delimiter not followed by a
// further element is left unconsumed for the enclosing grammar rather than
// silently swallowed.
type DelimitedList struct {
	Inner         Node
	Delimiter     Node
	AllowTrailing bool
	Terminators   []Node
}

// Delimited creates a delimiter-separated list (at least one element).
func Delimited(inner, delimiter Node) *DelimitedList {
	return &DelimitedList{Inner: inner, Delimiter: delimiter}
}

// AllowTrailingDelimiter permits a dangling delimiter after the last
// element to be consumed by the list.
func (d *DelimitedList) AllowTrailingDelimiter() *DelimitedList {
	d.AllowTrailing = true
	return d
}

// Terminate sets the lookahead patterns that end the list.
func (d *DelimitedList) Terminate(terms ...Node) *DelimitedList {
	d.Terminators = terms
	return d
}

func (d *DelimitedList) Match(ctx *Context, pos int) (Result, bool) {
	if len(d.Terminators) > 0 {
		ctx.PushTerminators(d.Terminators)
		defer ctx.PopTerminators()
	}

	first, ok := d.Inner.Match(ctx, pos)
	if !ok {
		return Result{}, false
	}
	segs := append([]*segment.Segment{}, first.Segments...)
	cur := pos + first.Consumed

	for {
		gapD, nextD := ctx.skipGap(cur)
		if nextD >= len(ctx.tokens) || ctx.Terminated(nextD) {
			break
		}

		dres, dok := d.Delimiter.Match(ctx, nextD)
		if !dok {
			break
		}
		afterDelim := nextD + dres.Consumed

		gapI, nextI := ctx.skipGap(afterDelim)
		var ires Result
		iok := false
		if nextI < len(ctx.tokens) && !ctx.Terminated(nextI) {
			ires, iok = d.Inner.Match(ctx, nextI)
		}

		if !iok {
			if d.AllowTrailing {
				segs = append(segs, gapD...)
				segs = append(segs, dres.Segments...)
				cur = afterDelim
			}
			// Otherwise the dangling delimiter stays with the parent.
			break
		}

		segs = append(segs, gapD...)
		segs = append(segs, dres.Segments...)
		segs = append(segs, gapI...)
		segs = append(segs, ires.Segments...)
		cur = nextI + ires.Consumed
	}

	return Result{Consumed: cur - pos, Segments: segs}, true
}
