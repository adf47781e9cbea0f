// Package pipeline orchestrates a configuration load: environment resolution,
// the hosted-only API documentation build, sidebar delegation and extension
// setup, followed by source staging and the optional hand-off to the renderer.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/TileDB-Inc/docconf/internal/apidoc"
	"github.com/TileDB-Inc/docconf/internal/config"
	"github.com/TileDB-Inc/docconf/internal/engine"
	"github.com/TileDB-Inc/docconf/internal/environment"
	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/metrics"
	"github.com/TileDB-Inc/docconf/internal/observability"
	"github.com/TileDB-Inc/docconf/internal/process"
	"github.com/TileDB-Inc/docconf/internal/settings"
	"github.com/TileDB-Inc/docconf/internal/sidebar"
)

// Result is the outcome of a successful load.
type Result struct {
	Env      environment.Descriptor
	Settings settings.Settings
	App      *engine.App
}

// Loader runs the load stages against one configuration.
type Loader struct {
	cfg      *config.Config
	lookup   environment.LookupFunc
	runner   process.Runner
	sidebar  sidebar.Generator
	recorder metrics.Recorder
}

// NewLoader creates a Loader with production collaborators.
func NewLoader(cfg *config.Config) *Loader {
	return &Loader{
		cfg:      cfg,
		lookup:   os.LookupEnv,
		runner:   process.ExecRunner{},
		recorder: metrics.NoopRecorder{},
	}
}

// WithLookup replaces the environment source (for testing).
func (l *Loader) WithLookup(fn environment.LookupFunc) *Loader {
	l.lookup = fn
	return l
}

// WithRunner replaces the external process runner.
func (l *Loader) WithRunner(r process.Runner) *Loader {
	l.runner = r
	return l
}

// WithSidebarGenerator replaces the default file-based sidebar generator.
func (l *Loader) WithSidebarGenerator(g sidebar.Generator) *Loader {
	l.sidebar = g
	return l
}

// WithRecorder injects a metrics recorder.
func (l *Loader) WithRecorder(r metrics.Recorder) *Loader {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	l.recorder = r
	return l
}

// SourceDir returns the documentation source directory.
func (l *Loader) SourceDir() string { return l.path(l.cfg.Paths.SourceDir) }

func (l *Loader) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.cfg.Paths.ConfDir, p)
}

func (l *Loader) sidebarGenerator() sidebar.Generator {
	if l.sidebar != nil {
		return l.sidebar
	}
	return sidebar.FileGenerator{
		Dir:      l.SourceDir(),
		Filename: l.cfg.Sidebar.Filename,
		MaxDepth: l.cfg.Sidebar.MaxDepth,
		Sites:    l.cfg.Sidebar.Sites,
	}
}

// Load runs every stage in order. Any failure aborts the load.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	ctx = observability.WithProject(ctx, l.cfg.Project.Slug)

	var env environment.Descriptor
	_ = runStage(ctx, l.recorder, StageEnvironment, func(ctx context.Context) error {
		env = environment.Resolve(l.lookup)
		observability.InfoContext(ctx, "Resolved build environment",
			logfields.Hosted(env.Hosted), logfields.Channel(env.Channel.String()))
		return nil
	})

	b := settings.NewBuilder(l.cfg.Static())
	if env.Hosted {
		b.SetHTMLTheme(l.cfg.HTML.HostedTheme)
	} else {
		b.SetHTMLTheme(l.cfg.HTML.LocalTheme, l.cfg.HTML.ThemePath...)
	}

	trigger := apidoc.New(apidoc.Options{
		WorkDir:  l.cfg.Paths.ConfDir,
		BuildDir: l.cfg.APIDoc.BuildDir,
		Steps:    l.cfg.APIDoc.Steps,
		Targets:  l.cfg.APIDoc.Targets,
	}, l.runner)
	if err := runStage(ctx, l.recorder, StageAPIDoc, func(ctx context.Context) error {
		ran, err := trigger.Apply(ctx, env, b)
		if err == nil && !ran {
			return errStageSkipped
		}
		return err
	}); err != nil {
		return nil, err
	}

	gen := l.sidebarGenerator()
	if err := runStage(ctx, l.recorder, StageSidebar, func(ctx context.Context) error {
		return sidebar.Delegate(ctx, gen, env, l.cfg.Project.Slug)
	}); err != nil {
		return nil, err
	}

	var app *engine.App
	if err := runStage(ctx, l.recorder, StageSetup, func(ctx context.Context) error {
		app = engine.NewApp(b.Build())
		Setup(app, l.cfg.HTML)
		return app.EmitConfigInited(ctx)
	}); err != nil {
		return nil, err
	}

	return &Result{Env: env, Settings: app.Settings(), App: app}, nil
}
