// Package config loads squint configuration from file, environment
// variables, and CLI flags.
//
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string       `koanf:"dialect"`
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	NoColor      bool         `koanf:"no_color"`
	Lint         LintConfig   `koanf:"lint"`
	Format       FormatConfig `koanf:"format"`
}

// LintConfig selects and configures lint rules.
type LintConfig struct {
	// Rules restricts the run to these rule IDs. Empty means all.
	Rules []string `koanf:"rules"`

	// Exclude skips these rule IDs, applied after Rules.
	Exclude []string `koanf:"exclude"`

	// RuleOptions carries per-rule settings, keyed by rule ID, e.g.
	//
	//	rule_options:
	//	  CP01:
	//	    capitalisation_policy: lower
	RuleOptions map[string]map[string]any `koanf:"rule_options"`
}

// FormatConfig configures the formatter.
type FormatConfig struct {
	KeywordCase            string `koanf:"keyword_case"`
	TrimTrailingWhitespace bool   `koanf:"trim_trailing_whitespace"`
	EnsureTrailingNewline  bool   `koanf:"ensure_trailing_newline"`
}

// Default configuration values.
const (
	DefaultDialect     = "ansi"
	DefaultOutput      = "text"
	DefaultKeywordCase = "upper"
)
