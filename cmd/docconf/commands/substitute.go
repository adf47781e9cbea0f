package commands

import (
	"io"
	"os"

	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
)

// SubstituteCmd implements the 'substitute' command. Without files it filters
// stdin to stdout.
type SubstituteCmd struct {
	Files   []string `arg:"" optional:"" help:"Files to rewrite"`
	InPlace bool     `short:"i" name:"in-place" help:"Rewrite files in place instead of printing them"`
}

func (s *SubstituteCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	table := cfg.TextReplacements

	if len(s.Files) == 0 {
		data, err := io.ReadAll(g.In)
		if err != nil {
			return derrors.FileSystemError("read", "<stdin>", err)
		}
		_, err = io.WriteString(g.Out, table.Apply(string(data)))
		return err
	}

	for _, path := range s.Files {
		info, err := os.Stat(path)
		if err != nil {
			return derrors.FileSystemError("stat", path, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return derrors.FileSystemError("read", path, err)
		}
		out := table.Apply(string(data))
		if !s.InPlace {
			if _, err := io.WriteString(g.Out, out); err != nil {
				return err
			}
			continue
		}
		if out == string(data) {
			continue
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return derrors.FileSystemError("write", path, err)
		}
		observability.InfoContext(g.Ctx, "Rewrote file", logfields.Path(path))
	}
	return nil
}
