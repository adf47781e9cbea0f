package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	derrors "github.com/TileDB-Inc/docconf/internal/errors"
)

// Init writes the default configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ValidationFailed("path", fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path))
	}

	cfg := Default()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return derrors.InternalError("marshal default configuration", err)
	}
	header := []byte("# docconf configuration. Paths are relative to conf_dir unless absolute.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return derrors.FileSystemError("write", path, err)
	}
	return nil
}
