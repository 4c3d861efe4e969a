package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squint/pkg/format"
)

// FormatOptions holds options for the format command.
type FormatOptions struct {
	Write       bool   // Rewrite files in place
	Check       bool   // Exit non-zero if any file would change
	KeywordCase string // upper, lower, keep
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}
	cmd := &cobra.Command{
		Use:   "format <path>...",
		Short: "Format SQL files",
		Long: `Rewrite SQL files into a consistent style.

Formatting is lossless outside the applied fixes: comments, spacing
choices, and anything the parser could not understand are preserved
exactly. By default the result is printed; use --write to update files
in place.`,
		Example: `  # Print formatted SQL
  squint format query.sql

  # Rewrite files in place
  squint format --write ./sql

  # Fail if anything would change (CI)
  squint format --check ./sql`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit non-zero if any file would change")
	cmd.Flags().StringVar(&opts.KeywordCase, "keyword-case", "", "Keyword case: upper, lower, keep")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	r := GetRenderer(ctx)
	log := GetLogger(ctx)

	fmtOpts := format.Options{
		Dialect:                cfg.Dialect,
		KeywordCase:            format.KeywordCase(cfg.Format.KeywordCase),
		TrimTrailingWhitespace: cfg.Format.TrimTrailingWhitespace,
		EnsureTrailingNewline:  cfg.Format.EnsureTrailingNewline,
	}
	if opts.KeywordCase != "" {
		fmtOpts.KeywordCase = format.KeywordCase(opts.KeywordCase)
	}

	files, err := expandPaths(args)
	if err != nil {
		return err
	}

	changed := 0
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		formatted, err := format.Format(string(src), fmtOpts)
		if err != nil {
			return err
		}
		if formatted == string(src) {
			continue
		}
		changed++

		switch {
		case opts.Check:
			r.Println(path)
		case opts.Write:
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return err
			}
			log.Debug("formatted file", "path", path)
		default:
			r.Printf("%s", formatted)
		}
	}

	switch {
	case opts.Check && changed > 0:
		return fmt.Errorf("%d files would be reformatted", changed)
	case opts.Check:
		r.Success("All files already formatted")
	case opts.Write:
		r.Success(fmt.Sprintf("Formatted %d of %d files", changed, len(files)))
	}
	return nil
}
