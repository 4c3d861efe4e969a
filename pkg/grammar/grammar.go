// Package grammar implements the combinator matching engine.
//
// A grammar is a tree of immutable Node values (literals, sequences,
// alternations, repetitions, ...). Nodes hold no parse state: matching is
// non-mutating and backtracking, driven by a per-call Context that carries
// the token stream, the dialect rule table, and the active terminator stack.
//
// Disambiguation policy: OneOf selects the alternative consuming the most
// tokens; ties go to the earliest-declared alternative. Repeating
// constructs check the active terminator set before consuming further
// input, which is what keeps a clause from swallowing the construct that
// follows it.
package grammar

import "github.com/leapstack-labs/squint/pkg/segment"

// Node is a pure, immutable grammar description.
//
// Match attempts the node against the token stream at pos. A failed match
// returns ok=false and must leave no observable effect; only the caller
// commits consumption by advancing its own position.
type Node interface {
	Match(ctx *Context, pos int) (Result, bool)
}

// Result is a successful match: how many tokens were consumed starting at
// the match position, and the segments produced for them. Non-code tokens
// (whitespace, comments) consumed between elements appear as leaf segments
// so the output remains lossless.
type Result struct {
	Consumed int
	Segments []*segment.Segment
}
