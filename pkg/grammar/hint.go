package grammar

import (
	"strings"

	"github.com/leapstack-labs/squint/pkg/token"
)

// maxHintDepth bounds hint computation through Ref chains.
const maxHintDepth = 8

// hint describes the set of tokens a grammar could possibly start with.
// It exists purely to let Choice skip alternatives cheaply; when a hint
// cannot be computed the alternative is attempted unconditionally.
type hint struct {
	raws  map[string]struct{}
	kinds map[token.Kind]struct{}
}

func (h hint) allows(tok token.Token) bool {
	if _, ok := h.kinds[tok.Kind]; ok {
		return true
	}
	_, ok := h.raws[strings.ToLower(tok.Raw)]
	return ok
}

func (h *hint) merge(other hint) {
	for r := range other.raws {
		h.raws[r] = struct{}{}
	}
	for k := range other.kinds {
		h.kinds[k] = struct{}{}
	}
}

func newHint() hint {
	return hint{raws: map[string]struct{}{}, kinds: map[token.Kind]struct{}{}}
}

// leadingHint computes the possible first tokens of n. ok=false means the
// hint is undecidable (optional leading elements, unbounded recursion) and
// the caller must attempt a full match.
func leadingHint(ctx *Context, n Node, depth int) (hint, bool) {
	if depth > maxHintDepth {
		return hint{}, false
	}

	switch v := n.(type) {
	case *literal:
		h := newHint()
		h.raws[strings.ToLower(v.text)] = struct{}{}
		return h, true
	case *typed:
		h := newHint()
		h.kinds[v.tokKind] = struct{}{}
		return h, true
	case *ref:
		target, ok := ctx.rules.Rule(v.name)
		if !ok {
			return hint{}, false
		}
		return leadingHint(ctx, target, depth+1)
	case *wrap:
		return leadingHint(ctx, v.inner, depth+1)
	case *exclude:
		// The exclusion may reject a token the inner hint allows, but a
		// hint only has to be sound in the "cannot match" direction.
		return leadingHint(ctx, v.inner, depth+1)
	case *Sequence:
		for _, c := range v.Children {
			if _, isMeta := c.(*Meta); isMeta {
				continue
			}
			if canMatchEmpty(c) {
				return hint{}, false
			}
			return leadingHint(ctx, c, depth+1)
		}
		return hint{}, false
	case *Choice:
		h := newHint()
		for _, a := range v.Alts {
			ah, ok := leadingHint(ctx, a, depth+1)
			if !ok {
				return hint{}, false
			}
			h.merge(ah)
		}
		return h, true
	case *Repeat:
		if v.Min == 0 {
			return hint{}, false
		}
		return leadingHint(ctx, v.Inner, depth+1)
	case *DelimitedList:
		return leadingHint(ctx, v.Inner, depth+1)
	case *BracketPair:
		return leadingHint(ctx, v.Open, depth+1)
	}
	return hint{}, false
}
