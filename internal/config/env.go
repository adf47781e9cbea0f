package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order before the configuration file is read.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads KEY=VALUE files from dir. Variables already present in
// the process environment are never overwritten.
func loadEnvFiles(dir string) []string {
	var loaded []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", "path", path, "error", err)
			continue
		}
		loaded = append(loaded, path)
	}
	return loaded
}
