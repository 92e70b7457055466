package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/content"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated fields before defaults are applied.
// Unknown content source kinds are left as-is for validation to report.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, errors.New("config nil")
	}
	res := &NormalizationResult{}
	normalizeContent(&c.Content, res)
	normalizeRoutes(&c.Routes, res)
	normalizeMonitoring(c.Monitoring, res)
	return res, nil
}

func normalizeContent(cc *ContentConfig, res *NormalizationResult) {
	normalizeSource := func(field string, s *SourceConfig) {
		raw := string(s.Kind)
		if strings.TrimSpace(raw) == "" {
			return
		}
		k, err := content.ParseKind(raw)
		if err != nil {
			return
		}
		if k != s.Kind {
			res.Warnings = append(res.Warnings, warnChanged(field, s.Kind, k))
			s.Kind = k
		}
	}
	normalizeSource("content.primary.kind", &cc.Primary)
	for i := range cc.Auxiliary {
		normalizeSource(fmt.Sprintf("content.auxiliary[%d].kind", i), &cc.Auxiliary[i])
	}

	topics := cc.Topics[:0]
	for _, t := range cc.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	cc.Topics = topics
}

func normalizeRoutes(rc *RoutesConfig, res *NormalizationResult) {
	if raw := string(rc.ContentChangeFrequency); strings.TrimSpace(raw) != "" {
		if f, err := routes.ParseChangeFrequency(raw); err == nil {
			if f != rc.ContentChangeFrequency {
				res.Warnings = append(res.Warnings, warnChanged("routes.content_change_frequency", rc.ContentChangeFrequency, f))
				rc.ContentChangeFrequency = f
			}
		}
	}
	for i := range rc.Static {
		raw := string(rc.Static[i].ChangeFrequency)
		if f, err := routes.ParseChangeFrequency(raw); err == nil && f != rc.Static[i].ChangeFrequency {
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("routes.static[%d].change_frequency", i), raw, f))
			rc.Static[i].ChangeFrequency = f
		}
	}
	if raw := string(rc.OnCollision); strings.TrimSpace(raw) != "" {
		if p, err := routes.ParseCollisionPolicy(raw); err == nil {
			if p != rc.OnCollision {
				res.Warnings = append(res.Warnings, warnChanged("routes.on_collision", rc.OnCollision, p))
				rc.OnCollision = p
			}
		}
	}
}

func normalizeMonitoring(m *MonitoringConfig, res *NormalizationResult) {
	if m == nil {
		return
	}
	if raw := string(m.Logging.Level); raw != "" {
		if lvl, err := logLevelNormalizer.Parse(raw); err == nil {
			if lvl != m.Logging.Level {
				res.Warnings = append(res.Warnings, warnChanged("monitoring.logging.level", m.Logging.Level, lvl))
				m.Logging.Level = lvl
			}
		} else {
			res.Warnings = append(res.Warnings, warnUnknown("monitoring.logging.level", raw, string(LogLevelInfo)))
			m.Logging.Level = LogLevelInfo
		}
	}
	if raw := string(m.Logging.Format); raw != "" {
		if f, err := logFormatNormalizer.Parse(raw); err == nil {
			if f != m.Logging.Format {
				res.Warnings = append(res.Warnings, warnChanged("monitoring.logging.format", m.Logging.Format, f))
				m.Logging.Format = f
			}
		} else {
			res.Warnings = append(res.Warnings, warnUnknown("monitoring.logging.format", raw, string(LogFormatText)))
			m.Logging.Format = LogFormatText
		}
	}
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
