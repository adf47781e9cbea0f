package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/TileDB-Inc/docconf/internal/config"
	"github.com/TileDB-Inc/docconf/internal/metrics"
	"github.com/TileDB-Inc/docconf/internal/observability"

	prom "github.com/prometheus/client_golang/prometheus"
)

// EnvLogLevel overrides the configured log level unless --verbose is given.
const EnvLogLevel = "DOCCONF_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (defaults built in when empty)"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format (text|json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build      BuildCmd      `cmd:"" help:"Load the configuration, stage sources and optionally render them"`
	Env        EnvCmd        `cmd:"" help:"Print the resolved build environment"`
	Substitute SubstituteCmd `cmd:"" help:"Apply the text replacement table to files or stdin"`
	Sidebar    SidebarCmd    `cmd:"" help:"Generate the navigation sidebar include"`
	Init       InitCmd       `cmd:"" help:"Write a configuration file with the built-in defaults"`
	Validate   ValidateCmd   `cmd:"" help:"Validate the configuration file"`

	logOut io.Writer
	logger *slog.Logger
}

// AfterApply runs after flag parsing; set up logging once. The level comes
// from --verbose, then DOCCONF_LOG_LEVEL, then info until a configuration is
// loaded.
func (c *CLI) AfterApply() error {
	c.logger = observability.NewLogger(c.logWriter(), c.level(""), c.LogFormat)
	slog.SetDefault(c.logger)
	return nil
}

func (c *CLI) logWriter() io.Writer {
	if c.logOut == nil {
		return os.Stderr
	}
	return c.logOut
}

func (c *CLI) level(configured string) slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		return observability.ParseLevel(v)
	}
	return observability.ParseLevel(configured)
}

// loadConfig loads the configuration and re-applies logging settings from it.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	format := c.LogFormat
	if format == "" {
		format = cfg.Logging.Format
	}
	c.logger = observability.NewLogger(c.logWriter(), c.level(cfg.Logging.Level), format)
	slog.SetDefault(c.logger)
	return cfg, nil
}

// newRecorder returns a Prometheus recorder when a textfile is requested.
func newRecorder(textfile string) (metrics.Recorder, func() error) {
	if textfile == "" {
		return metrics.NoopRecorder{}, func() error { return nil }
	}
	rec := metrics.NewPrometheusRecorder(prom.NewRegistry())
	return rec, func() error { return rec.WriteTextfile(textfile) }
}
