package grammar

// Choice is the ambiguity-resolution core: it attempts every alternative
// and keeps the one that consumed the most tokens. Ties are broken by
// declaration order. First-match-wins semantics are deliberately avoided —
// a short, eager alternative must never mask a longer, more specific one.
type Choice struct {
	Alts        []Node
	Terminators []Node
}

// OneOf creates an alternation over the given alternatives.
func OneOf(alts ...Node) *Choice {
	return &Choice{Alts: alts}
}

// Terminate sets terminators that scope the alternatives' nested
// repetitions while this alternation is being matched.
func (c *Choice) Terminate(terms ...Node) *Choice {
	c.Terminators = terms
	return c
}

func (c *Choice) Match(ctx *Context, pos int) (Result, bool) {
	if len(c.Terminators) > 0 {
		ctx.PushTerminators(c.Terminators)
		defer ctx.PopTerminators()
	}

	next, haveTok := ctx.Token(pos)

	var best Result
	found := false
	for _, alt := range c.Alts {
		// Cheap prefilter: skip alternatives whose required first token
		// cannot possibly match. An optimization only — alternatives with
		// no computable hint are always attempted.
		if haveTok {
			if h, ok := leadingHint(ctx, alt, 0); ok && !h.allows(next) {
				continue
			}
		}

		r, ok := alt.Match(ctx, pos)
		if !ok {
			continue
		}
		// Strict greater-than keeps the earliest declared alternative on a
		// tie. This policy is documented and relied on by dialects.
		if !found || r.Consumed > best.Consumed {
			best = r
			found = true
		}
	}

	return best, found
}
