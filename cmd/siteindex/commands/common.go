package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives command output; logs go to stderr.
	Out io.Writer
}

// NewGlobal returns the default global context writing to stdout.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Out: os.Stdout}
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"siteindex.yaml" env:"SITEINDEX_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init       InitCmd       `cmd:"" help:"Initialize a new configuration file"`
	Generate   GenerateCmd   `cmd:"" help:"Extract content slugs and write the site index snapshot"`
	Sitemap    SitemapCmd    `cmd:"" help:"Render the sitemap document"`
	Breadcrumb BreadcrumbCmd `cmd:"" help:"Render JSON-LD breadcrumb metadata for a page"`
	Routes     RoutesCmd     `cmd:"" help:"List the routes the sitemap is built from"`
	Serve      ServeCmd      `cmd:"" help:"Serve the sitemap, robots.txt and metadata API"`
	History    HistoryCmd    `cmd:"" help:"Show recent generation runs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	setupLogging(level, config.LogFormatText)
	return nil
}

// loadConfig loads the configuration and applies its logging settings.
// --verbose keeps debug logging regardless of the configured level.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Monitoring.Logging.Level.SlogLevel()
	if root.Verbose {
		level = slog.LevelDebug
	}
	setupLogging(level, cfg.Monitoring.Logging.Format)
	return cfg, nil
}

func setupLogging(level slog.Level, format config.LogFormat) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
