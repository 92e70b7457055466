package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/content"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
)

// Example returns the configuration written by Init.
func Example() *Config {
	return &Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			Name:   "Word Counter Plus",
			Origin: "https://www.example.com",
		},
		Content: ContentConfig{
			Primary: SourceConfig{Kind: content.KindRecords, Path: "content/posts.yaml"},
			Auxiliary: []SourceConfig{
				{Kind: content.KindMarkdown, Path: "content/guides"},
				{Kind: content.KindText, Path: "src/data/extraPosts.ts"},
			},
			Topics: []string{
				"Grant Writing: Securing Funding for Projects",
				"How Many Words Is a Five Page Essay",
			},
		},
		Snapshot: SnapshotConfig{Path: DefaultSnapshotPath},
		Routes: RoutesConfig{
			ContentPrefix:          routes.DefaultContentPrefix,
			ContentPriority:        routes.DefaultContentPriority,
			ContentChangeFrequency: routes.Weekly,
			OnCollision:            routes.StaticWins,
		},
		Robots: &RobotsConfig{
			UserAgent: DefaultRobotsUserAgent,
			Disallow:  []string{DefaultRobotsDisallowPath},
		},
		Server: ServerConfig{
			Addr:               DefaultServerAddr,
			AdminAddr:          DefaultAdminAddr,
			GenerateOnStart:    true,
			Watch:              false,
			RegenerateInterval: "1h",
		},
		History: HistoryConfig{Path: "data/history.db"},
		Events: &EventsConfig{
			NATSURL: "${NATS_URL}",
			Subject: DefaultEventsSubject,
		},
		Monitoring: &MonitoringConfig{
			Metrics: MonitoringMetrics{Enabled: true, Path: DefaultMetricsPath},
			Logging: MonitoringLogging{Level: LogLevelInfo, Format: LogFormatText},
		},
	}
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext(ferrors.ContextKeyPath, configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return ferrors.InternalError("marshal example configuration").WithCause(err).Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.FileSystemError("create configuration directory").WithCause(err).Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.FileSystemError("write configuration file").
			WithCause(err).
			WithContext(ferrors.ContextKeyPath, configPath).
			Build()
	}
	return nil
}
