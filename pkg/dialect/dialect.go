// Package dialect provides the grammar rule registry with inheritance and
// keyword-driven expansion.
//
// A dialect bundles named grammar rules, reserved/unreserved keyword sets,
// and the lexer pattern list. Dialects are built by deriving from a base
// and applying targeted add/replace/patch operations, then finalized with
// Expand. Expanded dialects are immutable and safely shared across
// concurrent parses. Concrete dialect definitions live in pkg/dialects/*.
package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/squint/pkg/grammar"
	"github.com/leapstack-labs/squint/pkg/lexer"
	"github.com/leapstack-labs/squint/pkg/segment"
)

// Rule names every dialect must define for the file/batch grammar.
const (
	RuleStatement      = "statement"
	RuleDelimiter      = "delimiter"
	RuleBatchSeparator = "batch_separator" // optional; absent means one batch per file
)

// Dialect is a named bundle of grammar rules, keyword sets, and lexer
// patterns. Mutating operations are only valid before Expand; an expanded
// dialect is treated as read-only.
type Dialect struct {
	Name string

	rules      map[string]grammar.Node
	reserved   map[string]struct{}
	unreserved map[string]struct{}
	patterns   []lexer.Pattern

	expanded bool
}

// New creates an empty base dialect.
func New(name string) *Dialect {
	return &Dialect{
		Name:       name,
		rules:      make(map[string]grammar.Node),
		reserved:   make(map[string]struct{}),
		unreserved: make(map[string]struct{}),
	}
}

// Derive creates a new dialect from this one: a shallow clone of the rule
// map, keyword sets, and lexer pattern list, ready for targeted overrides.
func (d *Dialect) Derive(name string) *Dialect {
	nd := New(name)
	for k, v := range d.rules {
		nd.rules[k] = v
	}
	for k := range d.reserved {
		nd.reserved[k] = struct{}{}
	}
	for k := range d.unreserved {
		nd.unreserved[k] = struct{}{}
	}
	nd.patterns = append([]lexer.Pattern{}, d.patterns...)
	return nd
}

// Add inserts a new rule. It fails if the name already exists: silently
// overwriting an inherited rule is the classic source of dialect bugs, so
// overrides must use Replace.
func (d *Dialect) Add(name string, node grammar.Node) error {
	if _, exists := d.rules[name]; exists {
		return fmt.Errorf("%w: %q in dialect %s", ErrDuplicateRule, name, d.Name)
	}
	d.rules[name] = node
	return nil
}

// Replace overrides an existing rule. It fails if the rule is not defined.
func (d *Dialect) Replace(name string, node grammar.Node) error {
	if _, exists := d.rules[name]; !exists {
		return fmt.Errorf("%w: %q in dialect %s", ErrMissingRule, name, d.Name)
	}
	d.rules[name] = node
	return nil
}

// MustAdd is Add for construction-time grammar tables; it panics on error.
func (d *Dialect) MustAdd(name string, node grammar.Node) *Dialect {
	if err := d.Add(name, node); err != nil {
		panic(err)
	}
	return d
}

// MustReplace is Replace for construction-time overrides; it panics on error.
func (d *Dialect) MustReplace(name string, node grammar.Node) *Dialect {
	if err := d.Replace(name, node); err != nil {
		panic(err)
	}
	return d
}

// AddReservedKeywords adds to the reserved keyword set. Reserved keywords
// may not be used as naked identifiers.
func (d *Dialect) AddReservedKeywords(words ...string) *Dialect {
	for _, w := range words {
		d.reserved[strings.ToLower(w)] = struct{}{}
	}
	return d
}

// AddUnreservedKeywords adds to the unreserved keyword set. Unreserved
// keywords get leaf matchers but remain usable as identifiers.
func (d *Dialect) AddUnreservedKeywords(words ...string) *Dialect {
	for _, w := range words {
		d.unreserved[strings.ToLower(w)] = struct{}{}
	}
	return d
}

// RemoveReservedKeyword demotes a keyword, for derived dialects where a
// base-reserved word is an ordinary identifier.
func (d *Dialect) RemoveReservedKeyword(word string) *Dialect {
	delete(d.reserved, strings.ToLower(word))
	return d
}

// SetLexerPatterns sets the full ordered pattern list (base dialects only).
func (d *Dialect) SetLexerPatterns(patterns []lexer.Pattern) *Dialect {
	d.patterns = append([]lexer.Pattern{}, patterns...)
	return d
}

// PatchLexer replaces a single pattern by name, preserving its position in
// the ordered list. It fails if no pattern with that name exists.
func (d *Dialect) PatchLexer(p lexer.Pattern) error {
	for i := range d.patterns {
		if d.patterns[i].Name == p.Name {
			d.patterns[i] = p
			return nil
		}
	}
	return fmt.Errorf("%w: %q in dialect %s", ErrUnknownPattern, p.Name, d.Name)
}

// MustPatchLexer is PatchLexer for construction time; it panics on error.
func (d *Dialect) MustPatchLexer(p lexer.Pattern) *Dialect {
	if err := d.PatchLexer(p); err != nil {
		panic(err)
	}
	return d
}

// InsertLexerBefore inserts a new pattern before the named one. Needed
// when a derived dialect adds a tokenization form (e.g. dollar-quoted
// strings) that must win over an existing looser pattern.
func (d *Dialect) InsertLexerBefore(name string, p lexer.Pattern) error {
	for i := range d.patterns {
		if d.patterns[i].Name == name {
			d.patterns = append(d.patterns[:i], append([]lexer.Pattern{p}, d.patterns[i:]...)...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q in dialect %s", ErrUnknownPattern, name, d.Name)
}

// MustInsertLexerBefore is InsertLexerBefore for construction time.
func (d *Dialect) MustInsertLexerBefore(name string, p lexer.Pattern) *Dialect {
	if err := d.InsertLexerBefore(name, p); err != nil {
		panic(err)
	}
	return d
}

// Rule resolves a named rule. Implements grammar.RuleSet.
func (d *Dialect) Rule(name string) (grammar.Node, bool) {
	n, ok := d.rules[name]
	return n, ok
}

// RuleNames returns the sorted names of all grammar rules, keyword
// matchers included once the dialect is expanded.
func (d *Dialect) RuleNames() []string {
	names := make([]string, 0, len(d.rules))
	for name := range d.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LexerPatterns returns a copy of the ordered pattern list.
func (d *Dialect) LexerPatterns() []lexer.Pattern {
	return append([]lexer.Pattern{}, d.patterns...)
}

// IsReservedKeyword reports whether word is reserved in this dialect.
func (d *Dialect) IsReservedKeyword(word string) bool {
	_, ok := d.reserved[strings.ToLower(word)]
	return ok
}

// ReservedKeywords returns the sorted reserved keyword set.
func (d *Dialect) ReservedKeywords() []string {
	return sortedKeys(d.reserved)
}

// UnreservedKeywords returns the sorted unreserved keyword set.
func (d *Dialect) UnreservedKeywords() []string {
	return sortedKeys(d.unreserved)
}

// Expanded reports whether the dialect has been finalized.
func (d *Dialect) Expanded() bool { return d.expanded }

// Expand finalizes the dialect into an immutable, shareable value:
//
//  1. Reserved and unreserved keyword sets must be disjoint — the same
//     word in both has undefined precedence and is a hard authoring error.
//  2. Every keyword gets a case-insensitive leaf matcher registered under
//     its own (uppercased) rule name, unless the author defined one.
//  3. A "reserved_keyword" alternation is synthesized so identifier rules
//     can exclude reserved words.
//  4. Every Ref reachable from any rule must resolve; unresolved names are
//     a construction-time error, never a parse-time surprise.
//
// Expanding an already-expanded dialect is a no-op.
func (d *Dialect) Expand() (*Dialect, error) {
	if d.expanded {
		return d, nil
	}

	if overlap := intersect(d.reserved, d.unreserved); len(overlap) > 0 {
		return nil, fmt.Errorf("%w: dialect %s: %s",
			ErrKeywordOverlap, d.Name, strings.Join(overlap, ", "))
	}

	nd := d.Derive(d.Name)

	for kw := range nd.reserved {
		name := strings.ToUpper(kw)
		if _, exists := nd.rules[name]; !exists {
			nd.rules[name] = grammar.Literal(kw, segment.KindKeyword)
		}
	}
	for kw := range nd.unreserved {
		name := strings.ToUpper(kw)
		if _, exists := nd.rules[name]; !exists {
			nd.rules[name] = grammar.Literal(kw, segment.KindKeyword)
		}
	}

	// Always regenerated so derived dialects that change the keyword sets
	// never see a stale alternation.
	words := sortedKeys(nd.reserved)
	alts := make([]grammar.Node, len(words))
	for i, w := range words {
		alts[i] = grammar.Literal(w, segment.KindKeyword)
	}
	nd.rules["reserved_keyword"] = grammar.OneOf(alts...)

	for name, node := range nd.rules {
		for _, refName := range grammar.Refs(node) {
			if _, ok := nd.rules[refName]; !ok {
				return nil, fmt.Errorf("%w: rule %q references undefined %q in dialect %s",
					ErrUnresolvedRef, name, refName, nd.Name)
			}
		}
	}

	nd.expanded = true
	return nd, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func intersect(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
