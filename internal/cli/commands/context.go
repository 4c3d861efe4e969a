// Package commands implements the squint subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/leapstack-labs/squint/internal/cli/output"
	"github.com/leapstack-labs/squint/internal/config"
)

type configKey struct{}
type rendererKey struct{}
type loggerKey struct{}

// WithConfig stores the loaded config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the context, falling back to
// defaults when the root command has not run (tests).
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Dialect:      config.DefaultDialect,
		OutputFormat: config.DefaultOutput,
		Format: config.FormatConfig{
			KeywordCase:            config.DefaultKeywordCase,
			TrimTrailingWhitespace: true,
			EnsureTrailingNewline:  true,
		},
	}
}

// WithRenderer stores the renderer in the context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// GetRenderer retrieves the renderer from the context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger retrieves the logger from the context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
