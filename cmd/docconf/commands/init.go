package commands

import (
	"fmt"

	"github.com/TileDB-Inc/docconf/internal/config"
)

// DefaultConfigName is used by init when no --config is given.
const DefaultConfigName = "docconf.yaml"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = DefaultConfigName
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote configuration to %s\n", path)
	return nil
}
