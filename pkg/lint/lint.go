// Package lint defines lint rules over parsed SQL trees and the engine
// that runs them.
//
// Rules are data-driven RuleDef values registered from init() functions in
// the rule packages under rules/. A rule receives the whole parse tree, so
// layout rules can see whitespace between statements, not just statement
// bodies.
package lint

import (
	"github.com/leapstack-labs/squint/pkg/parser"
	"github.com/leapstack-labs/squint/pkg/token"
)

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleDef is a data-driven rule definition.
// Rules are stateless. All context comes via the Check function parameters.
type RuleDef struct {
	ID          string    // Unique identifier, e.g. "AM04"
	Name        string    // Human-readable name, e.g. "ambiguous.select_star"
	Group       string    // Category, e.g. "ambiguous", "layout", "convention"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts
	Dialects    []string  // Restrict to specific dialects; nil/empty means all
}

// CheckFunc analyzes a parse tree and returns diagnostics.
// The opts parameter carries rule-specific options from configuration.
type CheckFunc func(tree *parser.Tree, opts map[string]any) []Diagnostic

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Pos      token.Position
	EndPos   token.Position
}
