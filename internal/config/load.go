package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "github.com/TileDB-Inc/docconf/internal/errors"
)

// Load reads the configuration file at path on top of Default(). An empty
// path returns the defaults. .env files next to the configuration (or in the
// working directory for an empty path) are loaded first and ${VAR} references
// in the file are expanded.
func Load(path string) (*Config, error) {
	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}
	for _, f := range loadEnvFiles(dir) {
		slog.Debug("Loaded environment variables", "path", f)
	}

	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.ConfigNotFound(path)
		}
		return nil, derrors.FileSystemError("read", path, err)
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	if err := validateSchema(expanded); err != nil {
		return nil, derrors.ConfigInvalid(path, err)
	}

	if err := decodeInto(&cfg, expanded); err != nil {
		return nil, derrors.ConfigInvalid(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Relative conf_dir is anchored at the configuration file.
	if !filepath.IsAbs(cfg.Paths.ConfDir) {
		cfg.Paths.ConfDir = filepath.Join(dir, cfg.Paths.ConfDir)
	}

	for _, h := range cfg.TextReplacements.Hazards() {
		slog.Warn("Text replacement value contains another token; result depends on table order",
			"token", h.Token, "introduces", h.Introduces)
	}
	return &cfg, nil
}

func decodeInto(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints the schema cannot express.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return derrors.ValidationFailed("version", fmt.Sprintf("unsupported configuration version %q (expected %q)", c.Version, CurrentVersion))
	}
	if c.Project.Slug == "" {
		return derrors.ValidationFailed("project.slug", "must not be empty")
	}
	found := false
	for _, s := range c.Sidebar.Sites {
		if s.Project == c.Project.Slug {
			found = true
			break
		}
	}
	if !found {
		return derrors.ValidationFailed("sidebar.sites", fmt.Sprintf("no site for project %q", c.Project.Slug))
	}
	names := make(map[string]struct{}, len(c.APIDoc.Targets))
	for _, t := range c.APIDoc.Targets {
		if _, dup := names[t.Name]; dup {
			return derrors.ValidationFailed("apidoc.targets", fmt.Sprintf("duplicate target %q", t.Name))
		}
		names[t.Name] = struct{}{}
	}
	return nil
}
