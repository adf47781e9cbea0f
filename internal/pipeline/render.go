package pipeline

import (
	"context"

	"github.com/TileDB-Inc/docconf/internal/config"
	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
	"github.com/TileDB-Inc/docconf/internal/process"
)

// Render hands the staged sources to the external rendering engine. Success
// is decided by the process exit status alone.
func Render(ctx context.Context, runner process.Runner, dir string, rc config.RenderConfig, stageDir, outDir string) error {
	cmd := process.Command{
		Name: rc.Command,
		Args: []string{"-b", rc.Builder, stageDir, outDir},
	}
	observability.InfoContext(ctx, "Rendering documentation", logfields.Command(cmd.String()))
	if err := runner.Run(ctx, dir, cmd); err != nil {
		return derrors.RenderFailed(rc.Builder, err)
	}
	return nil
}
