package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TileDB-Inc/docconf/internal/config"
	"github.com/TileDB-Inc/docconf/internal/engine"
	"github.com/TileDB-Inc/docconf/internal/environment"
	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/metrics"
	"github.com/TileDB-Inc/docconf/internal/process"
	"github.com/TileDB-Inc/docconf/internal/sidebar"

	prom "github.com/prometheus/client_golang/prometheus"
)

type recordingRunner struct {
	calls []process.Command
	dirs  []string
	fail  error
}

func (r *recordingRunner) Run(_ context.Context, dir string, c process.Command) error {
	r.calls = append(r.calls, c)
	r.dirs = append(r.dirs, dir)
	return r.fail
}

func env(vars map[string]string) environment.LookupFunc {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

// newTree lays out <root>/doc/source with a couple of documents.
func newTree(t *testing.T) (root string, cfg *config.Config) {
	t.Helper()
	root = t.TempDir()
	src := filepath.Join(root, "doc", "source")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "api"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(src, ".cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.rst"),
		[]byte(".. literalinclude:: {source_examples_path}/cpp_api/quickstart_dense.cc\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "api", "c-api.rst"),
		[]byte("`source <{tiledb_src_root_url}/tiledb/sm/c_api/tiledb.h>`_\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "logo.png"), []byte{0x89, 'P', 'N', 'G'}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, ".cache", "skip.rst"), []byte("x"), 0o644))

	c := config.Default()
	c.Paths.ConfDir = src
	return root, &c
}

func TestLoad_LocalBuild(t *testing.T) {
	_, cfg := newTree(t)
	runner := &recordingRunner{}

	res, err := NewLoader(cfg).WithLookup(env(nil)).WithRunner(runner).Load(context.Background())
	require.NoError(t, err)

	require.False(t, res.Env.Hosted)
	require.Equal(t, environment.ChannelLatest, res.Env.Channel)
	require.Empty(t, runner.calls, "external build must not run locally")
	require.Empty(t, res.Settings.Intersphinx)
	require.Equal(t, "sphinx_rtd_theme", res.Settings.HTML.Theme)
	require.Equal(t, 1, res.App.Handlers(engine.EventSourceRead))
	require.Equal(t, []string{"custom.css"}, res.App.Stylesheets())
	require.FileExists(t, filepath.Join(cfg.Paths.ConfDir, sidebar.DefaultFilename))
}

func TestLoad_HostedBuild(t *testing.T) {
	root, cfg := newTree(t)
	runner := &recordingRunner{}

	res, err := NewLoader(cfg).
		WithLookup(env(map[string]string{environment.EnvHosted: "True"})).
		WithRunner(runner).
		Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, environment.Descriptor{Hosted: true, Channel: environment.ChannelLatest}, res.Env)
	require.Equal(t, []process.Command{{Name: "../bootstrap"}, {Name: "make", Args: []string{"doc"}}}, runner.calls)
	require.Equal(t, filepath.Join(root, "build"), runner.dirs[0])
	require.DirExists(t, filepath.Join(root, "build"))

	url, ok := res.Settings.IntersphinxURL("tiledb")
	require.True(t, ok)
	require.Equal(t, "https://tiledb-inc-tiledb.readthedocs-hosted.com/en/latest/", url)
	url, ok = res.Settings.IntersphinxURL("tiledb-py")
	require.True(t, ok)
	require.Equal(t, "https://tiledb-inc-tiledb.readthedocs-hosted.com/projects/python-api/en/latest/", url)
	require.Equal(t, "default", res.Settings.HTML.Theme)
}

func TestLoad_APIDocFailureAbortsBeforeSidebar(t *testing.T) {
	_, cfg := newTree(t)
	called := false
	gen := sidebar.GeneratorFunc(func(context.Context, environment.Params, string) error {
		called = true
		return nil
	})
	reg := prom.NewRegistry()

	_, err := NewLoader(cfg).
		WithLookup(env(map[string]string{environment.EnvHosted: "True", environment.EnvVersion: "2.5"})).
		WithRunner(&recordingRunner{fail: errors.New("exit status 2")}).
		WithSidebarGenerator(gen).
		WithRecorder(metrics.NewPrometheusRecorder(reg)).
		Load(context.Background())

	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryAPIDoc))
	require.False(t, called)
}

func TestLoad_SidebarErrorPropagatesUnchanged(t *testing.T) {
	_, cfg := newTree(t)
	sentinel := errors.New("no such site")
	var got environment.Params
	gen := sidebar.GeneratorFunc(func(_ context.Context, p environment.Params, project string) error {
		got = p
		require.Equal(t, "tiledb", project)
		return sentinel
	})

	_, err := NewLoader(cfg).
		WithLookup(env(map[string]string{environment.EnvVersion: "stable"})).
		WithSidebarGenerator(gen).
		Load(context.Background())
	require.Same(t, sentinel, err)
	require.Equal(t, environment.Params{OnRTD: false, RTDVersion: environment.ChannelStable}, got)
}

func TestBuild_StagesDocumentsAndWritesResolved(t *testing.T) {
	root, cfg := newTree(t)

	report, err := NewLoader(cfg).WithLookup(env(nil)).Build(context.Background(), BuildOptions{})
	require.NoError(t, err)
	require.False(t, report.Rendered)

	staged := filepath.Join(root, "doc", "source-staged")
	require.Equal(t, staged, report.StageDir)
	require.Equal(t, 2, report.Staged.Documents)
	require.Equal(t, 2, report.Staged.Copied, "logo.png and the generated sidebar include")

	index, err := os.ReadFile(filepath.Join(staged, "index.rst"))
	require.NoError(t, err)
	require.Equal(t, ".. literalinclude:: ../../examples/cpp_api/quickstart_dense.cc\n", string(index))

	capi, err := os.ReadFile(filepath.Join(staged, "api", "c-api.rst"))
	require.NoError(t, err)
	require.Equal(t, "`source <https://github.com/TileDB-Inc/TileDB/blob/dev/tiledb/sm/c_api/tiledb.h>`_\n", string(capi))

	require.NoDirExists(t, filepath.Join(staged, ".cache"))
	require.FileExists(t, filepath.Join(staged, "logo.png"))

	data, err := os.ReadFile(filepath.Join(staged, ResolvedFilename))
	require.NoError(t, err)
	var resolved struct {
		Environment environment.Params `yaml:"environment"`
		Scripts     []string           `yaml:"scripts"`
		Settings    struct {
			Project string `yaml:"project"`
		} `yaml:"settings"`
	}
	require.NoError(t, yaml.Unmarshal(data, &resolved))
	require.Equal(t, "TileDB", resolved.Settings.Project)
	require.Equal(t, []string{"custom.js"}, resolved.Scripts)
	require.False(t, resolved.Environment.OnRTD)
}

func TestBuild_RenderInvokesEngine(t *testing.T) {
	root, cfg := newTree(t)
	runner := &recordingRunner{}

	report, err := NewLoader(cfg).WithLookup(env(nil)).WithRunner(runner).
		Build(context.Background(), BuildOptions{Render: true, OutputDir: filepath.Join(root, "html")})
	require.NoError(t, err)
	require.True(t, report.Rendered)

	require.Len(t, runner.calls, 1)
	require.Equal(t, process.Command{
		Name: "sphinx-build",
		Args: []string{"-b", "html", filepath.Join(root, "doc", "source-staged"), filepath.Join(root, "html")},
	}, runner.calls[0])
}

func TestBuild_RenderFailure(t *testing.T) {
	_, cfg := newTree(t)
	runner := &recordingRunner{fail: errors.New("exit status 1")}

	_, err := NewLoader(cfg).WithLookup(env(nil)).WithRunner(runner).
		Build(context.Background(), BuildOptions{Render: true})
	require.True(t, derrors.IsCategory(err, derrors.CategoryRender))
}

func TestStage_HookFailureStops(t *testing.T) {
	_, cfg := newTree(t)
	res, err := NewLoader(cfg).WithLookup(env(nil)).Load(context.Background())
	require.NoError(t, err)
	res.App.OnSourceRead(func(_ *engine.App, docname string, _ *string) error {
		if docname == "api/c-api" {
			return errors.New("bad markup")
		}
		return nil
	})

	_, err = Stage(context.Background(), res, cfg.Paths.ConfDir, t.TempDir())
	require.True(t, derrors.IsCategory(err, derrors.CategoryHook))
}

type stageResultRecorder struct {
	metrics.NoopRecorder
	results map[string]metrics.ResultLabel
}

func (r *stageResultRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.results[stage] = result
}

func TestLoad_RecordsSkippedAPIDocStage(t *testing.T) {
	_, cfg := newTree(t)

	local := &stageResultRecorder{results: map[string]metrics.ResultLabel{}}
	_, err := NewLoader(cfg).WithLookup(env(nil)).WithRecorder(local).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, metrics.ResultSkipped, local.results[string(StageAPIDoc)])
	require.Equal(t, metrics.ResultSuccess, local.results[string(StageSidebar)])

	hosted := &stageResultRecorder{results: map[string]metrics.ResultLabel{}}
	_, err = NewLoader(cfg).
		WithLookup(env(map[string]string{environment.EnvHosted: "True"})).
		WithRunner(&recordingRunner{}).
		WithRecorder(hosted).
		Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, metrics.ResultSuccess, hosted.results[string(StageAPIDoc)])
}

func TestStage_FollowsSymlinks(t *testing.T) {
	root, cfg := newTree(t)
	src := cfg.Paths.ConfDir

	shared := filepath.Join(root, "shared")
	require.NoError(t, os.MkdirAll(filepath.Join(shared, "guides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(shared, "shared.rst"),
		[]byte("{tiledb_src_root_url}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(shared, "guides", "intro.rst"),
		[]byte("{tiledb_py_src_root_url}\n"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(shared, "shared.rst"), filepath.Join(src, "shared.rst")))
	require.NoError(t, os.Symlink(filepath.Join(shared, "guides"), filepath.Join(src, "guides")))

	res, err := NewLoader(cfg).WithLookup(env(nil)).Load(context.Background())
	require.NoError(t, err)

	var seen []string
	res.App.OnSourceRead(func(_ *engine.App, docname string, _ *string) error {
		seen = append(seen, docname)
		return nil
	})

	out := filepath.Join(root, "staged")
	staged, err := Stage(context.Background(), res, src, out)
	require.NoError(t, err)
	require.Equal(t, 4, staged.Documents)
	require.ElementsMatch(t, []string{"api/c-api", "guides/intro", "index", "shared"}, seen)

	data, err := os.ReadFile(filepath.Join(out, "shared.rst"))
	require.NoError(t, err)
	require.Equal(t, "https://github.com/TileDB-Inc/TileDB/blob/dev\n", string(data))

	data, err = os.ReadFile(filepath.Join(out, "guides", "intro.rst"))
	require.NoError(t, err)
	require.Equal(t, "https://github.com/TileDB-Inc/TileDB-Py/blob/dev\n", string(data))
}

func TestStage_SymlinkCycleFails(t *testing.T) {
	root, cfg := newTree(t)
	src := cfg.Paths.ConfDir
	require.NoError(t, os.Symlink(src, filepath.Join(src, "api", "loop")))

	res, err := NewLoader(cfg).WithLookup(env(nil)).Load(context.Background())
	require.NoError(t, err)

	_, err = Stage(context.Background(), res, src, filepath.Join(root, "staged"))
	require.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
}

func TestStage_RejectsStageDirOverSources(t *testing.T) {
	root, cfg := newTree(t)
	src := cfg.Paths.ConfDir
	res, err := NewLoader(cfg).WithLookup(env(nil)).Load(context.Background())
	require.NoError(t, err)

	for _, out := range []string{src, filepath.Join(root, "doc"), root} {
		_, err := Stage(context.Background(), res, src, out)
		require.True(t, derrors.IsCategory(err, derrors.CategoryValidation), out)
	}
	require.NoFileExists(t, filepath.Join(src, ResolvedFilename))
}

func TestBuild_StageDirEqualToSourcesFails(t *testing.T) {
	_, cfg := newTree(t)
	_, err := NewLoader(cfg).WithLookup(env(nil)).
		Build(context.Background(), BuildOptions{StageDir: cfg.Paths.ConfDir})
	require.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}
