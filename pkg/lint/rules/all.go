// Package rules registers every built-in rule group. Import it for side
// effects:
//
//	import _ "github.com/leapstack-labs/squint/pkg/lint/rules"
package rules

import (
	_ "github.com/leapstack-labs/squint/pkg/lint/rules/ambiguous"
	_ "github.com/leapstack-labs/squint/pkg/lint/rules/capitalisation"
	_ "github.com/leapstack-labs/squint/pkg/lint/rules/convention"
	_ "github.com/leapstack-labs/squint/pkg/lint/rules/layout"
	_ "github.com/leapstack-labs/squint/pkg/lint/rules/parsing"
)
