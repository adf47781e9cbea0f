package pipeline

import (
	"context"
	"path/filepath"

	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
)

// BuildOptions controls what happens after a successful load.
type BuildOptions struct {
	// StageDir and OutputDir override the configured directories when set.
	StageDir  string
	OutputDir string
	Render    bool
}

// BuildReport summarizes a build.
type BuildReport struct {
	Result    *Result
	Staged    StageResult
	StageDir  string
	OutputDir string
	Rendered  bool
}

// Build loads the configuration, stages the sources and, when requested,
// renders them.
func (l *Loader) Build(ctx context.Context, opts BuildOptions) (*BuildReport, error) {
	report, err := l.build(ctx, opts)
	if err != nil {
		l.recorder.IncLoadOutcome("failed")
		return nil, err
	}
	l.recorder.IncLoadOutcome("success")
	return report, nil
}

func (l *Loader) build(ctx context.Context, opts BuildOptions) (*BuildReport, error) {
	res, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	report := &BuildReport{
		Result:    res,
		StageDir:  absPath(l.path(firstNonEmpty(opts.StageDir, l.cfg.Render.StageDir))),
		OutputDir: absPath(l.path(firstNonEmpty(opts.OutputDir, l.cfg.Render.OutputDir))),
	}

	if err := runStage(ctx, l.recorder, StageSources, func(ctx context.Context) error {
		staged, err := Stage(ctx, res, l.SourceDir(), report.StageDir, report.OutputDir)
		report.Staged = staged
		return err
	}); err != nil {
		return nil, err
	}
	l.recorder.AddDocumentsStaged(report.Staged.Documents, report.Staged.Copied)
	observability.InfoContext(ctx, "Sources staged",
		logfields.Path(report.StageDir), logfields.Count(report.Staged.Documents))

	if !opts.Render {
		return report, nil
	}
	if err := runStage(ctx, l.recorder, StageRender, func(ctx context.Context) error {
		return Render(ctx, l.runner, l.cfg.Paths.ConfDir, l.cfg.Render, report.StageDir, report.OutputDir)
	}); err != nil {
		return nil, err
	}
	report.Rendered = true
	return report, nil
}

// absPath makes p absolute so it survives the renderer's working directory.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
