package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TileDB-Inc/docconf/internal/environment"
	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
	"github.com/TileDB-Inc/docconf/internal/settings"
)

// ResolvedFilename is written into the staging directory for the engine.
const ResolvedFilename = "docconf.resolved.yaml"

// StageResult counts what Stage wrote.
type StageResult struct {
	Documents int
	Copied    int
}

// Resolved is the engine-facing dump of a load.
type Resolved struct {
	Environment environment.Params `yaml:"environment"`
	Settings    settings.Settings  `yaml:"settings"`
	Stylesheets []string           `yaml:"stylesheets"`
	Scripts     []string           `yaml:"scripts"`
}

// Stage copies srcDir into outDir. Every file ending in the configured source
// suffix is passed through source-read exactly once, in lexical order; other
// files are copied verbatim. Symbolic links are followed. Directories named in
// exclude (and hidden directories) are skipped. outDir must not be srcDir or
// one of its ancestors.
func Stage(ctx context.Context, res *Result, srcDir, outDir string, exclude ...string) (StageResult, error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return StageResult{}, derrors.FileSystemError("abs", srcDir, err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return StageResult{}, derrors.FileSystemError("abs", outDir, err)
	}
	if within(absOut, absSrc) {
		return StageResult{}, derrors.ValidationFailed("stage_dir",
			fmt.Sprintf("staging directory %s must not be or contain the source directory %s", outDir, srcDir))
	}

	app := res.App
	if err := app.EmitBuilderInited(ctx); err != nil {
		return StageResult{}, err
	}

	st := &stager{
		ctx:     ctx,
		res:     res,
		suffix:  app.Settings().SourceSuffix,
		outDir:  outDir,
		skip:    map[string]struct{}{absOut: {}},
		visited: map[string]struct{}{},
	}
	for _, p := range exclude {
		if abs, err := filepath.Abs(p); err == nil {
			st.skip[abs] = struct{}{}
		}
	}

	if err := st.walk(srcDir, "."); err != nil {
		return st.out, err
	}
	if err := writeResolved(res, filepath.Join(outDir, ResolvedFilename)); err != nil {
		return st.out, err
	}
	return st.out, nil
}

// within reports whether child equals parent or lies below it.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

type stager struct {
	ctx     context.Context
	res     *Result
	suffix  string
	outDir  string
	skip    map[string]struct{}
	visited map[string]struct{}
	out     StageResult
}

// walk stages the tree at root into outDir/base. Linked directories are
// walked in place; a link cycle is an error.
func (s *stager) walk(root, base string) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return derrors.FileSystemError("resolve", root, err)
	}
	if _, seen := s.visited[resolved]; seen {
		return derrors.FileSystemError("walk", root, fmt.Errorf("symbolic link cycle via %s", resolved))
	}
	s.visited[resolved] = struct{}{}
	defer delete(s.visited, resolved)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.Join(base, rel)

		if d.IsDir() {
			if path != root && s.skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return os.MkdirAll(filepath.Join(s.outDir, rel), 0o755)
		}

		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return derrors.FileSystemError("stat", path, err)
			}
			if info.IsDir() {
				if s.skipDir(path, d.Name()) {
					return nil
				}
				return s.walk(path, rel)
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		return s.file(path, rel)
	})
}

func (s *stager) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := s.skip[abs]
	return ok
}

func (s *stager) file(path, rel string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return derrors.FileSystemError("read", path, err)
	}
	if s.suffix != "" && strings.HasSuffix(rel, s.suffix) {
		docname := filepath.ToSlash(strings.TrimSuffix(rel, s.suffix))
		text, err := s.res.App.EmitSourceRead(docname, string(data))
		if err != nil {
			return err
		}
		data = []byte(text)
		s.out.Documents++
		observability.DebugContext(s.ctx, "Staged document", logfields.Document(docname))
	} else {
		s.out.Copied++
	}
	dst := filepath.Join(s.outDir, rel)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return derrors.FileSystemError("write", dst, err)
	}
	return nil
}

func writeResolved(res *Result, path string) error {
	data, err := yaml.Marshal(Resolved{
		Environment: res.Env.Params(),
		Settings:    res.Settings,
		Stylesheets: res.App.Stylesheets(),
		Scripts:     res.App.Scripts(),
	})
	if err != nil {
		return derrors.InternalError("marshal resolved settings", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return derrors.FileSystemError("write", path, err)
	}
	return nil
}
