package cmd

import (
	"io"
	"log/slog"

	"thoreinstein.com/failedjobs/pkg/config"
)

// newLogger returns a text logger on w. Debug output is only enabled in
// verbose mode; otherwise only warnings and errors are emitted.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logOptions dumps the resolved options at debug level.
func logOptions(logger *slog.Logger, cfg *config.Config) {
	logger.Debug("resolved options",
		config.FlagInput, cfg.Input,
		config.FlagOutput, cfg.Output,
		config.FlagUser, cfg.User,
		config.FlagSince, cfg.Since,
		"window_seconds", cfg.Window,
		config.FlagFormat, cfg.Format,
		"config_file", cfg.Source,
	)
}
