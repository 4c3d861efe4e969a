package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squint/internal/cli/output"
	"github.com/leapstack-labs/squint/pkg/dialect"
	"github.com/leapstack-labs/squint/pkg/lint"
	_ "github.com/leapstack-labs/squint/pkg/lint/rules" // register built-in rules
	"github.com/leapstack-labs/squint/pkg/parser"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive parse and lint shell",
		Long: `Start an interactive shell.

Type SQL terminated by a semicolon to parse and lint it. Dot-commands:

  .dialect <name>   switch dialect
  .tree             toggle printing the syntax tree
  .help             show help
  .quit             exit`,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	r := GetRenderer(ctx)

	linter, err := lint.New(lint.Options{
		Dialect:     cfg.Dialect,
		Rules:       cfg.Lint.Rules,
		Exclude:     cfg.Lint.Exclude,
		RuleOptions: cfg.Lint.RuleOptions,
	})
	if err != nil {
		return err
	}

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".squint_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "squint> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r.Printf("squint REPL (dialect: %s)\n", cfg.Dialect)
	r.Println("Type SQL ending with ; to parse and lint. .help for commands.")
	r.Println("")

	dialectName := cfg.Dialect
	showTree := false

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt("squint> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			quit, newDialect := handleDotCommand(r, line, dialectName, &showTree)
			if quit {
				return nil
			}
			if newDialect != "" {
				dialectName = newDialect
				var lerr error
				linter, lerr = lint.New(lint.Options{
					Dialect:     dialectName,
					Rules:       cfg.Lint.Rules,
					Exclude:     cfg.Lint.Exclude,
					RuleOptions: cfg.Lint.RuleOptions,
				})
				if lerr != nil {
					r.Errorf("%v", lerr)
				}
			}
			continue
		}

		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString("\n")
			rl.SetPrompt("   ...> ")
			continue
		}
		rl.SetPrompt("squint> ")

		src := buf.String()
		buf.Reset()

		res, err := linter.LintSource("(repl)", src)
		if err != nil {
			r.Errorf("%v", err)
			continue
		}
		if showTree {
			tree, _ := parser.Parse(src, dialectName)
			r.Printf("%s", tree.Dump())
		}
		if len(res.Diagnostics) == 0 {
			r.Success("No issues")
			continue
		}
		for _, d := range res.Diagnostics {
			r.Printf("  %d:%d  %s  %s  %s\n",
				d.Pos.Line, d.Pos.Column,
				severityLabel(r, d.Severity),
				r.Styles().Bold.Render(d.RuleID),
				d.Message)
		}
	}
}

// handleDotCommand processes a REPL dot-command. It returns whether the
// REPL should exit and, if the dialect changed, the new dialect name.
func handleDotCommand(r *output.Renderer, line, current string, showTree *bool) (quit bool, newDialect string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".quit", ".exit":
		return true, ""
	case ".help":
		r.Println(".dialect <name>   switch dialect (current: " + current + ")")
		r.Println(".tree             toggle syntax tree output")
		r.Println(".quit             exit")
	case ".tree":
		*showTree = !*showTree
		if *showTree {
			r.Println("Tree output on")
		} else {
			r.Println("Tree output off")
		}
	case ".dialect":
		if len(fields) < 2 {
			r.Printf("Registered dialects: %s\n", strings.Join(dialect.List(), ", "))
			return false, ""
		}
		if _, ok := dialect.Get(fields[1]); !ok {
			r.Errorf("unknown dialect %q (registered: %s)", fields[1], strings.Join(dialect.List(), ", "))
			return false, ""
		}
		r.Printf("Dialect set to %s\n", fields[1])
		return false, fields[1]
	default:
		r.Errorf("unknown command %s (.help for commands)", fields[0])
	}
	return false, ""
}
