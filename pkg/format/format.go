// Package format rewrites SQL source into a normalized form.
//
// Formatting is built on the lossless parse tree: the formatter walks the
// leaf tokens, rewrites the ones a fix applies to, and concatenates the
// rest untouched. Anything inside an unparsable span is left exactly as
// written, so a file with syntax errors can still be partially formatted.
package format

import (
	"strings"

	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/segment"
	"github.com/leapstack-labs/squint/pkg/token"
)

// KeywordCase selects the capitalisation applied to keywords.
type KeywordCase string

const (
	KeywordUpper KeywordCase = "upper"
	KeywordLower KeywordCase = "lower"
	KeywordKeep  KeywordCase = "keep"
)

// Options configures the formatter.
type Options struct {
	// Dialect names the registered dialect to parse with.
	Dialect string

	// KeywordCase is applied to every keyword leaf. Defaults to upper.
	KeywordCase KeywordCase

	// TrimTrailingWhitespace removes whitespace runs at line ends.
	TrimTrailingWhitespace bool

	// EnsureTrailingNewline appends a final newline when missing.
	EnsureTrailingNewline bool
}

// DefaultOptions returns the formatting defaults: upper-case keywords,
// trimmed line ends, and a final newline.
func DefaultOptions() Options {
	return Options{
		Dialect:                "ansi",
		KeywordCase:            KeywordUpper,
		TrimTrailingWhitespace: true,
		EnsureTrailingNewline:  true,
	}
}

// Format parses src and returns the formatted text. The only possible
// error is an unknown dialect; malformed SQL formats fine, with its
// unparsable spans preserved verbatim.
func Format(src string, opts Options) (string, error) {
	if opts.Dialect == "" {
		opts.Dialect = "ansi"
	}
	tree, err := parser.Parse(src, opts.Dialect)
	if err != nil {
		return "", err
	}
	return FormatTree(tree, opts), nil
}

// FormatTree formats an already-parsed tree.
func FormatTree(tree *parser.Tree, opts Options) string {
	leaves := tree.Root.Leaves()
	protected := unparsableLeaves(tree)

	var b strings.Builder
	for i, leaf := range leaves {
		raw := leaf.Tok.Raw
		if !protected[leaf] {
			raw = rewriteLeaf(leaf, raw, leaves, i, opts)
		}
		b.WriteString(raw)
	}

	out := b.String()
	if opts.EnsureTrailingNewline && out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func rewriteLeaf(leaf *segment.Segment, raw string, leaves []*segment.Segment, i int, opts Options) string {
	if leaf.Kind == segment.KindKeyword {
		switch opts.KeywordCase {
		case KeywordLower:
			return strings.ToLower(raw)
		case KeywordKeep:
			return raw
		default:
			return strings.ToUpper(raw)
		}
	}

	if opts.TrimTrailingWhitespace && leaf.Tok.Kind == token.Whitespace {
		atLineEnd := i == len(leaves)-1 || leaves[i+1].Tok.Kind == token.Newline
		if atLineEnd {
			return ""
		}
	}
	return raw
}

// unparsableLeaves marks every leaf under an unparsable span so no fix
// touches text the grammar did not understand.
func unparsableLeaves(tree *parser.Tree) map[*segment.Segment]bool {
	protected := make(map[*segment.Segment]bool)
	for _, span := range tree.Unparsable() {
		for _, leaf := range span.Leaves() {
			protected[leaf] = true
		}
	}
	return protected
}
