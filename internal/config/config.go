// Package config loads the siteindex YAML configuration.
//
// Loading runs four steps: environment expansion, normalization of
// enumerated values, defaults, and validation. Every relative path in the
// file is anchored to content.base_directory, which itself defaults to the
// directory holding the configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/content"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
)

// CurrentVersion is the only configuration version understood by Load.
const CurrentVersion = "1.0"

// Config is the root configuration document.
type Config struct {
	Version    string            `yaml:"version"`
	Site       SiteConfig        `yaml:"site"`
	Content    ContentConfig     `yaml:"content"`
	Snapshot   SnapshotConfig    `yaml:"snapshot"`
	Routes     RoutesConfig      `yaml:"routes"`
	Robots     *RobotsConfig     `yaml:"robots,omitempty"`
	Server     ServerConfig      `yaml:"server"`
	History    HistoryConfig     `yaml:"history"`
	Events     *EventsConfig     `yaml:"events,omitempty"`
	Monitoring *MonitoringConfig `yaml:"monitoring,omitempty"`

	// configDir is the directory of the loaded file; empty for in-memory configs.
	configDir string
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Name string `yaml:"name"`
	// Origin is the canonical scheme and host, used when no request is available.
	Origin string `yaml:"origin"`
}

// ContentConfig lists the content sources.
type ContentConfig struct {
	BaseDirectory string         `yaml:"base_directory,omitempty"`
	Primary       SourceConfig   `yaml:"primary"`
	Auxiliary     []SourceConfig `yaml:"auxiliary,omitempty"`
	Topics        []string       `yaml:"topics,omitempty"`
}

// SourceConfig is a single content source.
type SourceConfig struct {
	Kind content.Kind `yaml:"kind"`
	Path string       `yaml:"path"`
}

// SnapshotConfig locates the persisted site index.
type SnapshotConfig struct {
	Path string `yaml:"path"`
}

// RoutesConfig configures the route catalog.
type RoutesConfig struct {
	// Static replaces the built-in table when set.
	Static                 []routes.Entry         `yaml:"static,omitempty"`
	ContentPrefix          string                 `yaml:"content_prefix,omitempty"`
	ContentPriority        float64                `yaml:"content_priority,omitempty"`
	ContentChangeFrequency routes.ChangeFrequency `yaml:"content_change_frequency,omitempty"`
	OnCollision            routes.CollisionPolicy `yaml:"on_collision,omitempty"`
}

// RobotsConfig is the crawler policy rendered to /robots.txt.
type RobotsConfig struct {
	UserAgent string   `yaml:"user_agent"`
	Allow     []string `yaml:"allow,omitempty"`
	Disallow  []string `yaml:"disallow,omitempty"`
}

// ServerConfig configures `siteindex serve`.
type ServerConfig struct {
	// Addr serves the sitemap, robots.txt and breadcrumbs.
	Addr string `yaml:"addr"`
	// AdminAddr serves generation control, history, health and metrics.
	AdminAddr         string `yaml:"admin_addr"`
	TrustProxyHeaders bool   `yaml:"trust_proxy_headers"`
	ReadTimeout       string `yaml:"read_timeout,omitempty"`
	WriteTimeout      string `yaml:"write_timeout,omitempty"`
	IdleTimeout       string `yaml:"idle_timeout,omitempty"`
	ShutdownTimeout   string `yaml:"shutdown_timeout,omitempty"`
	GenerateOnStart   bool   `yaml:"generate_on_start"`
	Watch             bool   `yaml:"watch"`
	// WatchDebounce coalesces bursts of file events.
	WatchDebounce string `yaml:"watch_debounce,omitempty"`
	// RegenerateInterval enables periodic regeneration when non-empty.
	RegenerateInterval string `yaml:"regenerate_interval,omitempty"`
	// RegenerateCron is a five-field cron expression; mutually exclusive with RegenerateInterval.
	RegenerateCron string `yaml:"regenerate_cron,omitempty"`
}

// HistoryConfig configures the generation history database. An empty path disables it.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// EventsConfig configures NATS notifications. An empty URL disables them.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// MonitoringConfig represents monitoring and observability configuration.
type MonitoringConfig struct {
	Metrics MonitoringMetrics `yaml:"metrics"`
	Logging MonitoringLogging `yaml:"logging"`
}

// MonitoringMetrics represents metrics configuration.
type MonitoringMetrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MonitoringLogging represents logging configuration.
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads, normalizes, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext(ferrors.ContextKeyPath, configPath).
				Build()
		}
		return nil, ferrors.ConfigError("failed to read configuration file").
			WithCause(err).
			WithContext(ferrors.ContextKeyPath, configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		abs = configPath
	}
	cfg.configDir = filepath.Dir(abs)

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data after expanding environment variables. It does not
// normalize, default or validate; see Load.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, ferrors.ConfigError("failed to parse configuration").WithCause(err).Build()
	}
	if cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)).Build()
	}
	return &cfg, nil
}

// Finalize normalizes, defaults and validates an in-memory configuration.
// Relative paths resolve against baseDir.
func (c *Config) Finalize(baseDir string) error {
	c.configDir = baseDir
	return c.finish()
}

func (c *Config) finish() error {
	res, err := NormalizeConfig(c)
	if err != nil {
		return ferrors.ConfigError("normalize configuration").WithCause(err).Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", "detail", w)
	}
	if err := NewDefaultApplier().ApplyDefaults(c); err != nil {
		return ferrors.ConfigError("apply configuration defaults").WithCause(err).Build()
	}
	if err := ValidateConfig(c); err != nil {
		return ferrors.ConfigError("configuration validation failed").WithCause(err).Build()
	}
	return nil
}

// BaseDir returns the absolute content base directory.
func (c *Config) BaseDir() string {
	base := c.Content.BaseDirectory
	if base == "" {
		return c.configDir
	}
	if !filepath.IsAbs(base) && c.configDir != "" {
		base = filepath.Join(c.configDir, base)
	}
	return base
}

// ResolvePath anchors p to BaseDir unless it is absolute.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir(), p)
}

// SnapshotPath returns the resolved snapshot location.
func (c *Config) SnapshotPath() string { return c.ResolvePath(c.Snapshot.Path) }

// HistoryPath returns the resolved history database path, or "" when disabled.
func (c *Config) HistoryPath() string {
	if c.History.Path == "" || c.History.Path == ":memory:" {
		return c.History.Path
	}
	return c.ResolvePath(c.History.Path)
}

// PrimarySource returns the resolved primary source.
func (c *Config) PrimarySource() content.Source {
	return content.Resolve(c.BaseDir(), content.Source(c.Content.Primary))
}

// AuxiliarySources returns the resolved auxiliary sources in configuration order.
func (c *Config) AuxiliarySources() []content.Source {
	out := make([]content.Source, 0, len(c.Content.Auxiliary))
	for _, s := range c.Content.Auxiliary {
		out = append(out, content.Resolve(c.BaseDir(), content.Source(s)))
	}
	return out
}

// WatchPaths returns every content path, primary first.
func (c *Config) WatchPaths() []string {
	paths := []string{c.PrimarySource().Path}
	for _, s := range c.AuxiliarySources() {
		paths = append(paths, s.Path)
	}
	return paths
}

// OutputPaths lists the files regeneration writes: the snapshot and, when
// enabled, the history database.
func (c *Config) OutputPaths() []string {
	out := []string{c.SnapshotPath()}
	if h := c.HistoryPath(); h != "" && h != ":memory:" {
		out = append(out, h)
	}
	return out
}

// Catalog builds the route catalog with its robots policy.
func (c *Config) Catalog() (*routes.Catalog, error) {
	var policy *routes.Policy
	if c.Robots != nil {
		p, err := routes.NewPolicy(c.Robots.UserAgent, c.Robots.Allow, c.Robots.Disallow)
		if err != nil {
			return nil, ferrors.ConfigError("invalid robots policy").WithCause(err).Build()
		}
		policy = p
	}
	return routes.NewCatalog(routes.Config{
		Static:                 c.Routes.Static,
		ContentPrefix:          c.Routes.ContentPrefix,
		ContentPriority:        c.Routes.ContentPriority,
		ContentChangeFrequency: c.Routes.ContentChangeFrequency,
		Robots:                 policy,
	})
}

// Durations parsed from ServerConfig. Validation guarantees they parse.

func (s ServerConfig) ReadTimeoutDuration() time.Duration     { return mustDuration(s.ReadTimeout) }
func (s ServerConfig) WriteTimeoutDuration() time.Duration    { return mustDuration(s.WriteTimeout) }
func (s ServerConfig) IdleTimeoutDuration() time.Duration     { return mustDuration(s.IdleTimeout) }
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration { return mustDuration(s.ShutdownTimeout) }
func (s ServerConfig) WatchDebounceDuration() time.Duration   { return mustDuration(s.WatchDebounce) }

// RegenerateIntervalDuration returns 0 when periodic regeneration is disabled.
func (s ServerConfig) RegenerateIntervalDuration() time.Duration {
	return mustDuration(s.RegenerateInterval)
}

func mustDuration(v string) time.Duration {
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}
