package sidebar

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/TileDB-Inc/docconf/internal/environment"
)

// DefaultFilename is included by the theme's sidebar template.
const DefaultFilename = "_sidebar.rst.inc"

//go:embed templates/sidebar.rst.tmpl
var templateFS embed.FS

// Page is one sidebar entry, a document name without suffix.
type Page struct {
	Doc   string `yaml:"doc"`
	Title string `yaml:"title,omitempty"`
}

// Site is one documentation product sharing the sidebar.
type Site struct {
	Project string `yaml:"project"`
	Title   string `yaml:"title"`
	// BaseURL is the site root without the /en/<version>/ suffix.
	BaseURL string `yaml:"base_url"`
	Pages   []Page `yaml:"pages"`
}

// FileGenerator renders an include file listing every site. Pages of the
// current project are local toctree entries; pages of other projects link to
// their published copy.
type FileGenerator struct {
	Dir      string
	Filename string
	MaxDepth int
	Sites    []Site
}

type entryView struct {
	Doc   string
	Title string
	URL   string
}

type sectionView struct {
	Title   string
	Local   bool
	Entries []entryView
}

type sidebarView struct {
	Project  string
	MaxDepth int
	Sections []sectionView
}

// Generate writes the sidebar file for project.
func (g FileGenerator) Generate(_ context.Context, params environment.Params, project string) error {
	view, err := g.view(params, project)
	if err != nil {
		return err
	}
	tmpl, err := template.New("sidebar.rst.tmpl").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/sidebar.rst.tmpl")
	if err != nil {
		return fmt.Errorf("parse sidebar template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return fmt.Errorf("render sidebar: %w", err)
	}
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.Dir, g.filename()), buf.Bytes(), 0o644)
}

func (g FileGenerator) filename() string {
	if g.Filename == "" {
		return DefaultFilename
	}
	return g.Filename
}

func (g FileGenerator) view(params environment.Params, project string) (sidebarView, error) {
	version := environment.ChannelLatest
	if params.OnRTD {
		version = params.RTDVersion
	}
	depth := g.MaxDepth
	if depth <= 0 {
		depth = 2
	}

	v := sidebarView{Project: project, MaxDepth: depth}
	found := false
	for _, site := range g.Sites {
		sec := sectionView{Title: site.Title, Local: site.Project == project}
		if sec.Local {
			found = true
		}
		for _, p := range site.Pages {
			e := entryView{Doc: p.Doc, Title: p.Title}
			if !sec.Local {
				e.URL = fmt.Sprintf("%s/en/%s/%s.html", strings.TrimSuffix(site.BaseURL, "/"), version, p.Doc)
				if e.Title == "" {
					e.Title = p.Doc
				}
			}
			sec.Entries = append(sec.Entries, e)
		}
		v.Sections = append(v.Sections, sec)
	}
	if !found {
		return sidebarView{}, fmt.Errorf("sidebar: project %q is not among the configured sites", project)
	}
	return v, nil
}
