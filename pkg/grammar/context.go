package grammar

import (
	"github.com/leapstack-labs/squint/pkg/segment"
	"github.com/leapstack-labs/squint/pkg/token"
)

// RuleSet resolves named rule references. Implemented by dialect.Dialect.
type RuleSet interface {
	Rule(name string) (Node, bool)
}

// Context is the ephemeral per-parse state: the token stream, the dialect
// rule table for Ref resolution, and the dynamically scoped terminator
// stack. A Context is owned by a single parse call and is never shared.
type Context struct {
	rules  RuleSet
	tokens []token.Token
	frames []termFrame
}

// termFrame is one scope of terminators. An exclusive frame (pushed by
// Bracketed) masks all outer frames: inside brackets, the enclosing
// statement's terminators do not apply.
type termFrame struct {
	terms     []Node
	exclusive bool
}

// NewContext creates a matching context over tokens.
func NewContext(rules RuleSet, tokens []token.Token) *Context {
	return &Context{rules: rules, tokens: tokens}
}

// Tokens returns the full token stream.
func (c *Context) Tokens() []token.Token { return c.tokens }

// Token returns the token at pos, if any.
func (c *Context) Token(pos int) (token.Token, bool) {
	if pos < 0 || pos >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[pos], true
}

// PushTerminators adds a terminator scope. Callers must Pop in LIFO order;
// combinators use defer.
func (c *Context) PushTerminators(terms []Node) {
	c.frames = append(c.frames, termFrame{terms: terms})
}

// pushExclusive adds a terminator scope that masks all outer scopes.
func (c *Context) pushExclusive(terms []Node) {
	c.frames = append(c.frames, termFrame{terms: terms, exclusive: true})
}

// PopTerminators removes the most recent terminator scope.
func (c *Context) PopTerminators() {
	c.frames = c.frames[:len(c.frames)-1]
}

// Terminated reports whether any active terminator matches at pos.
// pos must already be positioned at a code token (or end of stream).
func (c *Context) Terminated(pos int) bool {
	if pos >= len(c.tokens) {
		return false
	}
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		for _, t := range f.terms {
			if r, ok := t.Match(c, pos); ok && r.Consumed > 0 {
				return true
			}
		}
		if f.exclusive {
			break
		}
	}
	return false
}

// skipGap collects consecutive non-code tokens starting at pos as leaf
// segments and returns the position of the next code token. The caller
// decides whether to commit the gap; an uncommitted gap is simply dropped
// and re-lexed text stays with the enclosing construct.
func (c *Context) skipGap(pos int) ([]*segment.Segment, int) {
	var segs []*segment.Segment
	for pos < len(c.tokens) && !c.tokens[pos].IsCode() {
		segs = append(segs, segment.NewToken(c.tokens[pos]))
		pos++
	}
	return segs, pos
}
