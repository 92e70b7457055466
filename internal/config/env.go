package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
)

var envFileNames = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local from the working directory and from
// dir. Variables already present in the process environment are not overwritten.
func loadEnvFiles(dir string) {
	seen := map[string]bool{}
	for _, base := range []string{".", dir} {
		for _, name := range envFileNames {
			p := filepath.Clean(filepath.Join(base, name))
			if seen[p] {
				continue
			}
			seen[p] = true
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := godotenv.Load(p); err != nil {
				slog.Warn("Failed to load environment file", logfields.Path(p), logfields.Error(err))
				continue
			}
			slog.Debug("Loaded environment variables", logfields.Path(p))
		}
	}
}
