package config

import (
	"fmt"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/content"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
)

// Default values.
const (
	DefaultSnapshotPath       = "data/site-index.json"
	DefaultServerAddr         = ":8080"
	DefaultAdminAddr          = "127.0.0.1:8081"
	DefaultReadTimeout        = "10s"
	DefaultWriteTimeout       = "30s"
	DefaultIdleTimeout        = "120s"
	DefaultShutdownTimeout    = "15s"
	DefaultWatchDebounce      = "500ms"
	DefaultEventsSubject      = "siteindex.snapshot.generated"
	DefaultMetricsPath        = "/metrics"
	DefaultRobotsUserAgent    = "*"
	DefaultRobotsDisallowPath = "/api/"
)

// ConfigDefaultApplier applies defaults for one configuration domain.
type ConfigDefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []ConfigDefaultApplier
}

// NewDefaultApplier creates a composite applier with every domain applier.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []ConfigDefaultApplier{
			&ContentDefaultApplier{},
			&SnapshotDefaultApplier{},
			&RoutesDefaultApplier{},
			&RobotsDefaultApplier{},
			&ServerDefaultApplier{},
			&EventsDefaultApplier{},
			&MonitoringDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// GetApplierByDomain returns a specific domain applier.
func (c *CompositeDefaultApplier) GetApplierByDomain(domain string) ConfigDefaultApplier {
	for _, applier := range c.appliers {
		if applier.Domain() == domain {
			return applier
		}
	}
	return nil
}

type ContentDefaultApplier struct{}

func (ContentDefaultApplier) Domain() string { return "content" }

func (ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Content.Primary.Kind == "" {
		cfg.Content.Primary.Kind = content.KindRecords
	}
	for i := range cfg.Content.Auxiliary {
		if cfg.Content.Auxiliary[i].Kind == "" {
			cfg.Content.Auxiliary[i].Kind = content.KindText
		}
	}
	return nil
}

type SnapshotDefaultApplier struct{}

func (SnapshotDefaultApplier) Domain() string { return "snapshot" }

func (SnapshotDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = DefaultSnapshotPath
	}
	return nil
}

type RoutesDefaultApplier struct{}

func (RoutesDefaultApplier) Domain() string { return "routes" }

func (RoutesDefaultApplier) ApplyDefaults(cfg *Config) error {
	r := &cfg.Routes
	if r.ContentPrefix == "" {
		r.ContentPrefix = routes.DefaultContentPrefix
	}
	if r.ContentPriority == 0 {
		r.ContentPriority = routes.DefaultContentPriority
	}
	if r.ContentChangeFrequency == "" {
		r.ContentChangeFrequency = routes.DefaultContentChangeFreq
	}
	if r.OnCollision == "" {
		r.OnCollision = routes.StaticWins
	}
	return nil
}

type RobotsDefaultApplier struct{}

func (RobotsDefaultApplier) Domain() string { return "robots" }

func (RobotsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Robots == nil {
		cfg.Robots = &RobotsConfig{Disallow: []string{DefaultRobotsDisallowPath}}
	}
	if cfg.Robots.UserAgent == "" {
		cfg.Robots.UserAgent = DefaultRobotsUserAgent
	}
	return nil
}

type ServerDefaultApplier struct{}

func (ServerDefaultApplier) Domain() string { return "server" }

func (ServerDefaultApplier) ApplyDefaults(cfg *Config) error {
	s := &cfg.Server
	if s.Addr == "" {
		s.Addr = DefaultServerAddr
	}
	if s.AdminAddr == "" {
		s.AdminAddr = DefaultAdminAddr
	}
	if s.ReadTimeout == "" {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout == "" {
		s.WriteTimeout = DefaultWriteTimeout
	}
	if s.IdleTimeout == "" {
		s.IdleTimeout = DefaultIdleTimeout
	}
	if s.ShutdownTimeout == "" {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}
	if s.WatchDebounce == "" {
		s.WatchDebounce = DefaultWatchDebounce
	}
	return nil
}

type EventsDefaultApplier struct{}

func (EventsDefaultApplier) Domain() string { return "events" }

func (EventsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Events != nil && cfg.Events.Subject == "" {
		cfg.Events.Subject = DefaultEventsSubject
	}
	return nil
}

type MonitoringDefaultApplier struct{}

func (MonitoringDefaultApplier) Domain() string { return "monitoring" }

func (MonitoringDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Monitoring == nil {
		cfg.Monitoring = &MonitoringConfig{}
	}
	m := cfg.Monitoring
	if m.Metrics.Path == "" {
		m.Metrics.Path = DefaultMetricsPath
	}
	if m.Logging.Level == "" {
		m.Logging.Level = LogLevelInfo
	}
	if m.Logging.Format == "" {
		m.Logging.Format = LogFormatText
	}
	return nil
}
