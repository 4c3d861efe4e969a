package dialect

import "errors"

// Construction-time errors. All of these indicate a broken dialect
// definition, not bad input, and must fail fast at registration.
var (
	ErrDuplicateRule  = errors.New("dialect: rule already defined")
	ErrMissingRule    = errors.New("dialect: rule not defined")
	ErrKeywordOverlap = errors.New("dialect: keyword in both reserved and unreserved sets")
	ErrUnresolvedRef  = errors.New("dialect: unresolved rule reference")
	ErrUnknownPattern = errors.New("dialect: unknown lexer pattern")
)
