package commands

import (
	"gopkg.in/yaml.v3"

	"github.com/TileDB-Inc/docconf/internal/environment"
	derrors "github.com/TileDB-Inc/docconf/internal/errors"
)

// EnvCmd implements the 'env' command. It needs no configuration file.
type EnvCmd struct{}

func (e *EnvCmd) Run(g *Global, _ *CLI) error {
	enc := yaml.NewEncoder(g.Out)
	enc.SetIndent(2)
	if err := enc.Encode(environment.FromOS().Params()); err != nil {
		return derrors.InternalError("encode environment", err)
	}
	return enc.Close()
}
