// Package token defines the lexical token model shared by the lexer,
// grammar engine, and CST segments.
//
// Token kinds are deliberately generic (word, symbol, string, ...). Keyword
// recognition is a grammar-level concern: the lexer never decides whether a
// word is a keyword, so tokenization stays context-free across dialects.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int32

const (
	// Unknown is the catch-all kind. The lexer is total: any byte it cannot
	// otherwise classify becomes an Unknown token rather than an error.
	Unknown Kind = iota

	Whitespace // spaces and tabs
	Newline    // \n or \r\n

	InlineComment // -- to end of line
	BlockComment  // /* ... */

	Word        // unquoted identifier or keyword candidate
	Number      // 123, 45.67, 1e10
	String      // 'single quoted'
	QuotedIdent // "double quoted" (or dialect variants via pattern patching)
	Symbol      // operators, punctuation, brackets
)

// kindNames maps token kinds to their string representations.
var kindNames = map[Kind]string{
	Unknown:       "unknown",
	Whitespace:    "whitespace",
	Newline:       "newline",
	InlineComment: "inline_comment",
	BlockComment:  "block_comment",
	Word:          "word",
	Number:        "number",
	String:        "string",
	QuotedIdent:   "quoted_identifier",
	Symbol:        "symbol",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsCode returns true for kinds that carry syntactic meaning.
// Whitespace and comments are preserved in the tree but are not code.
func (k Kind) IsCode() bool {
	switch k {
	case Whitespace, Newline, InlineComment, BlockComment:
		return false
	}
	return true
}

// Token is an immutable lexical unit. Raw always holds the exact source
// bytes so that concatenating all tokens reconstructs the input.
type Token struct {
	Kind Kind
	Raw  string
	Span Span
}

// IsCode reports whether the token carries syntactic meaning.
func (t Token) IsCode() bool {
	return t.Kind.IsCode()
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Raw)
}
