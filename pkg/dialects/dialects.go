// Package dialects registers every built-in dialect. Import it for side
// effects:
//
//	import _ "github.com/leapstack-labs/squint/pkg/dialects"
package dialects

import (
	_ "github.com/leapstack-labs/squint/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/squint/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/squint/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/squint/pkg/dialects/tsql"
)
