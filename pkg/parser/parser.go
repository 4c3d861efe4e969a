// Package parser turns SQL source text into a concrete syntax tree.
//
// # Usage
//
//	tree, err := parser.Parse("SELECT a FROM t", "ansi")
//	if err != nil {
//	    // unknown dialect — a configuration error, never a parse failure
//	}
//
// The parse itself cannot fail: unrecognized syntax is wrapped into
// bounded "unparsable" segments and the rest of the file still parses.
// The returned tree is lossless — Tree.Raw() reconstructs the input
// exactly, whitespace and comments included.
//
// # File/batch grammar
//
//	file      → (batch | batch_separator)*
//	batch     → (statement | delimiter)*
//	statement → dialect-registered alternatives, longest match wins
//
// The batch separator (e.g. GO in T-SQL) is checked before the statement
// alternatives, so a separator word can never be swallowed as the start of
// a statement.
package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/squint/pkg/dialect"
	"github.com/leapstack-labs/squint/pkg/grammar"
	"github.com/leapstack-labs/squint/pkg/lexer"
	"github.com/leapstack-labs/squint/pkg/segment"
	"github.com/leapstack-labs/squint/pkg/token"
)

// ErrUnknownDialect is returned when the requested dialect is not
// registered. It is the only error Parse can return.
var ErrUnknownDialect = errors.New("parser: unknown dialect")

// Parse parses src under the named dialect from the global registry.
func Parse(src, dialectName string) (*Tree, error) {
	d, ok := dialect.Get(dialectName)
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownDialect, dialectName, dialect.List())
	}
	return ParseWithDialect(src, d), nil
}

// ParseWithDialect parses src with an already-expanded dialect. The
// dialect is read-only here, so concurrent calls are safe.
func ParseWithDialect(src string, d *dialect.Dialect) *Tree {
	toks := lexer.New(d.LexerPatterns()).Lex(src)
	p := &fileParser{
		dialect: d,
		tokens:  toks,
		ctx:     grammar.NewContext(d, toks),
	}
	return &Tree{Root: p.parseFile(), Dialect: d.Name}
}

// fileParser drives the top-level parse: batches, statements, delimiters,
// and the recovery state machine.
type fileParser struct {
	dialect *dialect.Dialect
	tokens  []token.Token
	ctx     *grammar.Context

	statement grammar.Node
	delimiter grammar.Node
	separator grammar.Node // nil when the dialect has no batch separator
}

func (p *fileParser) parseFile() *segment.Segment {
	p.statement = grammar.Ref(dialect.RuleStatement)
	p.delimiter = grammar.Ref(dialect.RuleDelimiter)
	if _, ok := p.dialect.Rule(dialect.RuleBatchSeparator); ok {
		p.separator = grammar.Ref(dialect.RuleBatchSeparator)
	}

	// Statement-level terminators: a statement never consumes its own
	// delimiter or the batch separator that follows it.
	terms := []grammar.Node{p.delimiter}
	if p.separator != nil {
		terms = append(terms, p.separator)
	}
	p.ctx.PushTerminators(terms)
	defer p.ctx.PopTerminators()

	var file []*segment.Segment
	var batch []*segment.Segment

	closeBatch := func() {
		if len(batch) == 0 {
			return
		}
		hasCode := false
		for _, c := range batch {
			if c.IsCode() {
				hasCode = true
				break
			}
		}
		if hasCode {
			file = append(file, segment.NewNode(segment.KindBatch, batch))
		} else {
			// A run of pure whitespace/comments is not a batch.
			file = append(file, batch...)
		}
		batch = nil
	}

	pos := 0
	for pos < len(p.tokens) {
		if !p.tokens[pos].IsCode() {
			batch = append(batch, segment.NewToken(p.tokens[pos]))
			pos++
			continue
		}

		if p.separator != nil {
			if r, ok := p.separator.Match(p.ctx, pos); ok && r.Consumed > 0 {
				closeBatch()
				file = append(file, r.Segments...)
				pos += r.Consumed
				continue
			}
		}

		if r, ok := p.delimiter.Match(p.ctx, pos); ok && r.Consumed > 0 {
			batch = append(batch, r.Segments...)
			pos += r.Consumed
			continue
		}

		if r, ok := p.statement.Match(p.ctx, pos); ok && r.Consumed > 0 {
			batch = append(batch, r.Segments...)
			pos += r.Consumed
			continue
		}

		// Recovery: consume tokens until the stream again starts something
		// recognizable, then emit the span as a single unparsable segment.
		end := p.recover(pos)
		batch = append(batch, segment.NewUnparsable(p.tokens[pos:end]))
		pos = end
	}
	closeBatch()

	return segment.NewNode(segment.KindFile, file)
}

// recover scans forward from a failed position and returns the end of the
// minimal unparsable span: the first position at which a statement,
// delimiter, or batch separator is recognizable again. Trailing non-code
// tokens are left outside the span.
func (p *fileParser) recover(start int) int {
	pos := start + 1
	for pos < len(p.tokens) {
		if !p.tokens[pos].IsCode() {
			pos++
			continue
		}
		if p.isBoundary(pos) {
			break
		}
		pos++
	}

	end := pos
	for end > start+1 && !p.tokens[end-1].IsCode() {
		end--
	}
	return end
}

func (p *fileParser) isBoundary(pos int) bool {
	if p.separator != nil {
		if r, ok := p.separator.Match(p.ctx, pos); ok && r.Consumed > 0 {
			return true
		}
	}
	if r, ok := p.delimiter.Match(p.ctx, pos); ok && r.Consumed > 0 {
		return true
	}
	if r, ok := p.statement.Match(p.ctx, pos); ok && r.Consumed > 0 {
		return true
	}
	return false
}
