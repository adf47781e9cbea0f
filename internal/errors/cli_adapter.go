package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// SetOutput redirects the user-facing message (stderr by default).
func (a *CLIErrorAdapter) SetOutput(w io.Writer) {
	if w != nil {
		a.out = w
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dce, ok := As(err); ok {
		return a.exitCodeFromDocConf(dce)
	}

	return 1
}

// exitCodeFromDocConf maps DocConfError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDocConf(err *DocConfError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryAPIDoc, CategoryRender:
		return 8 // External tool error
	case CategoryHook, CategoryFileSystem:
		return 11 // Processing error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if dce, ok := As(err); ok {
		return a.formatDocConf(dce)
	}

	return fmt.Sprintf("Error: %v", err)
}

func (a *CLIErrorAdapter) formatDocConf(err *DocConfError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	default:
		if err.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", err.Category, err.Message, err.Cause)
		}
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// Handle logs and prints err and returns the exit code the process should use.
func (a *CLIErrorAdapter) Handle(err error) int {
	if err == nil {
		return 0
	}
	a.logError(err)
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	return a.ExitCodeFor(err)
}

func (a *CLIErrorAdapter) logError(err error) {
	if dce, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(dce.Category)),
			slog.String("severity", string(dce.Severity)),
		}
		for k, v := range dce.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if dce.Cause != nil {
			attrs = append(attrs, slog.String("cause", dce.Cause.Error()))
		}
		a.logger.LogAttrs(context.Background(), levelFor(dce.Severity), dce.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func levelFor(severity ErrorSeverity) slog.Level {
	if severity == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}
