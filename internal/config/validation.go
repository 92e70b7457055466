package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/content"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
)

// ValidateConfig validates a normalized, defaulted configuration.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateContent(); err != nil {
		return err
	}
	if err := cv.validateRoutes(); err != nil {
		return err
	}
	if err := cv.validateServer(); err != nil {
		return err
	}
	if err := cv.validateEvents(); err != nil {
		return err
	}
	return cv.validateMonitoring()
}

func (cv *configurationValidator) validateSite() error {
	origin := cv.config.Site.Origin
	if origin == "" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("site.origin: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("site.origin must be an absolute http(s) URL, got %q", origin)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("site.origin must not contain a path, got %q", origin)
	}
	return nil
}

func (cv *configurationValidator) validateContent() error {
	c := cv.config.Content
	if strings.TrimSpace(c.Primary.Path) == "" {
		return errors.New("content.primary.path is required")
	}
	if _, err := content.ParseKind(string(c.Primary.Kind)); err != nil {
		return fmt.Errorf("content.primary.kind: %w", err)
	}
	for i, s := range c.Auxiliary {
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("content.auxiliary[%d].path is required", i)
		}
		if _, err := content.ParseKind(string(s.Kind)); err != nil {
			return fmt.Errorf("content.auxiliary[%d].kind: %w", i, err)
		}
	}
	return nil
}

func (cv *configurationValidator) validateRoutes() error {
	r := cv.config.Routes
	if _, err := routes.ParseCollisionPolicy(string(r.OnCollision)); err != nil {
		return fmt.Errorf("routes.on_collision: %w", err)
	}
	if _, err := cv.config.Catalog(); err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	s := cv.config.Server
	if s.AdminAddr != "" && s.AdminAddr == s.Addr {
		return fmt.Errorf("server.admin_addr must differ from server.addr (%s)", s.Addr)
	}
	durations := map[string]string{
		"server.read_timeout":        s.ReadTimeout,
		"server.write_timeout":       s.WriteTimeout,
		"server.idle_timeout":        s.IdleTimeout,
		"server.shutdown_timeout":    s.ShutdownTimeout,
		"server.watch_debounce":      s.WatchDebounce,
		"server.regenerate_interval": s.RegenerateInterval,
	}
	for field, v := range durations {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q: %w", field, v, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", field, v)
		}
	}
	if d := s.RegenerateIntervalDuration(); d > 0 && d < time.Minute {
		return fmt.Errorf("server.regenerate_interval must be at least 1m, got %s", s.RegenerateInterval)
	}
	if s.RegenerateCron != "" {
		if s.RegenerateInterval != "" {
			return fmt.Errorf("server.regenerate_interval and server.regenerate_cron are mutually exclusive")
		}
		if n := len(strings.Fields(s.RegenerateCron)); n != 5 {
			return fmt.Errorf("server.regenerate_cron must have 5 fields, got %d", n)
		}
	}
	return nil
}

func (cv *configurationValidator) validateEvents() error {
	e := cv.config.Events
	if e == nil || e.NATSURL == "" {
		return nil
	}
	if strings.ContainsAny(e.Subject, " *>") {
		return fmt.Errorf("events.subject must be a concrete NATS subject, got %q", e.Subject)
	}
	return nil
}

func (cv *configurationValidator) validateMonitoring() error {
	m := cv.config.Monitoring
	if m == nil {
		return nil
	}
	if m.Metrics.Enabled && !strings.HasPrefix(m.Metrics.Path, "/") {
		return fmt.Errorf("monitoring.metrics.path must start with /, got %q", m.Metrics.Path)
	}
	return nil
}
