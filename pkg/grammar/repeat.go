package grammar

import "github.com/leapstack-labs/squint/pkg/segment"

// Repeat matches its inner grammar any number of times, bounded by Min and
// Max (Max == 0 means unbounded). Before each attempt the active
// terminator set is checked: a terminator match ends the repetition
// cleanly without the inner grammar ever being attempted across the
// boundary.
type Repeat struct {
	Inner       Node
	Min         int
	Max         int
	Terminators []Node
}

// AnyNumberOf creates an unbounded repetition (zero or more).
func AnyNumberOf(inner Node) *Repeat {
	return &Repeat{Inner: inner}
}

// MinTimes sets the minimum number of successful iterations.
func (r *Repeat) MinTimes(n int) *Repeat {
	r.Min = n
	return r
}

// MaxTimes caps the number of iterations. Zero means unbounded.
func (r *Repeat) MaxTimes(n int) *Repeat {
	r.Max = n
	return r
}

// Terminate sets the lookahead patterns that end this repetition.
func (r *Repeat) Terminate(terms ...Node) *Repeat {
	r.Terminators = terms
	return r
}

func (r *Repeat) Match(ctx *Context, pos int) (Result, bool) {
	if len(r.Terminators) > 0 {
		ctx.PushTerminators(r.Terminators)
		defer ctx.PopTerminators()
	}

	var segs []*segment.Segment
	cur := pos
	count := 0

	for {
		if r.Max > 0 && count >= r.Max {
			break
		}

		gap, next := ctx.skipGap(cur)
		if next >= len(ctx.tokens) || ctx.Terminated(next) {
			break
		}

		res, ok := r.Inner.Match(ctx, next)
		if !ok || res.Consumed == 0 {
			// A zero-width success would loop forever; treat it as a stop.
			break
		}

		segs = append(segs, gap...)
		segs = append(segs, res.Segments...)
		cur = next + res.Consumed
		count++
	}

	if count < r.Min {
		return Result{}, false
	}
	return Result{Consumed: cur - pos, Segments: segs}, true
}
