// Command squint is a multi-dialect SQL linter and formatter.
package main

import (
	"os"

	"github.com/leapstack-labs/squint/internal/cli"
	_ "github.com/leapstack-labs/squint/pkg/dialects" // register built-in dialects
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
