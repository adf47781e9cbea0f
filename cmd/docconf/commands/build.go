package commands

import (
	"fmt"

	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
	"github.com/TileDB-Inc/docconf/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	StageDir        string `name:"stage-dir" help:"Directory receiving the substituted sources (overrides render.stage_dir)"`
	Output          string `short:"o" help:"Rendered output directory (overrides render.output_dir)"`
	Render          bool   `short:"r" help:"Run the rendering engine on the staged sources"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics to this textfile (overrides metrics.textfile)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	textfile := b.MetricsTextfile
	if textfile == "" {
		textfile = cfg.Metrics.Textfile
	}
	rec, flush := newRecorder(textfile)

	report, err := pipeline.NewLoader(cfg).
		WithRecorder(rec).
		Build(g.Ctx, pipeline.BuildOptions{
			StageDir:  b.StageDir,
			OutputDir: b.Output,
			Render:    b.Render,
		})
	if ferr := flush(); ferr != nil {
		observability.WarnContext(g.Ctx, "Failed to write metrics textfile",
			logfields.Path(textfile), logfields.Error(ferr))
	}
	if err != nil {
		return err
	}

	env := report.Result.Env
	_, _ = fmt.Fprintf(g.Out, "environment: hosted=%t channel=%s\n", env.Hosted, env.Channel)
	_, _ = fmt.Fprintf(g.Out, "staged %d documents and %d other files into %s\n",
		report.Staged.Documents, report.Staged.Copied, report.StageDir)
	if report.Rendered {
		_, _ = fmt.Fprintf(g.Out, "rendered to %s\n", report.OutputDir)
	}
	return nil
}
