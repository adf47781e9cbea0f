// Package apidoc regenerates the API-extraction output on hosted builds and
// registers the cross-project link targets that depend on the version channel.
package apidoc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/TileDB-Inc/docconf/internal/environment"
	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
	"github.com/TileDB-Inc/docconf/internal/process"
	"github.com/TileDB-Inc/docconf/internal/settings"
)

// VersionPlaceholder is substituted with the resolved channel in target URLs.
const VersionPlaceholder = "{version}"

// Target is a cross-project link target whose URL may contain VersionPlaceholder.
type Target struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Resolve returns the target URL for channel.
func (t Target) Resolve(ch environment.Channel) string {
	return strings.ReplaceAll(t.URL, VersionPlaceholder, ch.String())
}

// Options configures the trigger.
type Options struct {
	// WorkDir anchors relative paths; empty means the process working directory.
	WorkDir string
	// BuildDir is created before the steps run and is their default directory.
	BuildDir string
	Steps    []process.Command
	Targets  []Target
}

// Trigger runs the external API-documentation build.
type Trigger struct {
	opts   Options
	runner process.Runner
}

// New creates a Trigger. A nil runner uses process.ExecRunner.
func New(opts Options, runner process.Runner) *Trigger {
	if runner == nil {
		runner = process.ExecRunner{}
	}
	return &Trigger{opts: opts, runner: runner}
}

// Apply runs the build and registers targets when env is hosted; otherwise it
// does nothing and reports ran == false. The first failing step aborts with a
// fatal error; there is no retry.
func (t *Trigger) Apply(ctx context.Context, env environment.Descriptor, b *settings.Builder) (bool, error) {
	if !env.Hosted {
		observability.InfoContext(ctx, "Local build, skipping API documentation build", logfields.Hosted(false))
		return false, nil
	}

	buildDir := t.resolve(t.opts.BuildDir)
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return false, derrors.FileSystemError("mkdir", buildDir, err)
	}

	for i, step := range t.opts.Steps {
		dir := buildDir
		if step.Dir != "" {
			dir = t.resolve(step.Dir)
		}
		observability.InfoContext(ctx, "Running API documentation build step",
			logfields.Step(fmt.Sprintf("%d/%d", i+1, len(t.opts.Steps))),
			logfields.Command(step.String()), logfields.Dir(dir))
		if err := t.runner.Run(ctx, dir, step); err != nil {
			return false, derrors.APIDocBuildFailed(step.String(), err).WithContext("dir", dir)
		}
	}

	for _, target := range t.opts.Targets {
		url := target.Resolve(env.Channel)
		b.AddIntersphinx(target.Name, url)
		observability.DebugContext(ctx, "Registered intersphinx target",
			logfields.Project(target.Name), slog.String("url", url))
	}
	return true, nil
}

func (t *Trigger) resolve(p string) string {
	if filepath.IsAbs(p) || t.opts.WorkDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(t.opts.WorkDir, p)
}
