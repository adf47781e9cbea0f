// Package settings holds the resolved documentation-build configuration. A
// Builder is populated by each load component in turn; Build hands the
// rendering engine an immutable snapshot.
package settings

import (
	"maps"
	"slices"

	"github.com/TileDB-Inc/docconf/internal/replace"
)

// IntersphinxTarget is a cross-project link base. An empty Inventory means the
// engine fetches objects.inv from URL.
type IntersphinxTarget struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Inventory string `yaml:"inventory,omitempty"`
}

// BreatheSource lists the headers the API-extraction tool reads for a project.
type BreatheSource struct {
	Dir   string   `yaml:"dir"`
	Files []string `yaml:"files"`
}

// Breathe configures the bridge between the API-extraction output and the engine.
type Breathe struct {
	Projects            map[string]string        `yaml:"projects"`
	DefaultProject      string                   `yaml:"default_project"`
	ProjectsSource      map[string]BreatheSource `yaml:"projects_source"`
	DomainByFilePattern map[string]string        `yaml:"domain_by_file_pattern"`
}

// HTML holds HTML output options.
type HTML struct {
	Theme      string   `yaml:"theme"`
	ThemePath  []string `yaml:"theme_path,omitempty"`
	StaticPath []string `yaml:"static_path"`
	Logo       string   `yaml:"logo"`
	Favicon    string   `yaml:"favicon"`
}

// Document describes one non-HTML output (LaTeX, man page or Texinfo).
type Document struct {
	Start       string   `yaml:"start"`
	Target      string   `yaml:"target"`
	Title       string   `yaml:"title"`
	Authors     []string `yaml:"authors"`
	Kind        string   `yaml:"kind,omitempty"`
	Section     int      `yaml:"section,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Category    string   `yaml:"category,omitempty"`
}

// Settings is the snapshot consumed by the rendering engine.
type Settings struct {
	Project   string `yaml:"project"`
	Copyright string `yaml:"copyright"`
	Author    string `yaml:"author"`
	Version   string `yaml:"version"`
	Release   string `yaml:"release"`

	Extensions       []string `yaml:"extensions"`
	TemplatesPath    []string `yaml:"templates_path"`
	SourceSuffix     string   `yaml:"source_suffix"`
	MasterDoc        string   `yaml:"master_doc"`
	ExcludePatterns  []string `yaml:"exclude_patterns"`
	PygmentsStyle    string   `yaml:"pygments_style"`
	TodoIncludeTodos bool     `yaml:"todo_include_todos"`
	CppIDAttributes  []string `yaml:"cpp_id_attributes"`

	Intersphinx      []IntersphinxTarget `yaml:"intersphinx_mapping,omitempty"`
	Breathe          Breathe             `yaml:"breathe"`
	TextReplacements replace.Table       `yaml:"text_replacements"`

	HTML             HTML       `yaml:"html"`
	HTMLHelpBasename string     `yaml:"htmlhelp_basename"`
	Latex            []Document `yaml:"latex_documents"`
	Man              []Document `yaml:"man_pages"`
	Texinfo          []Document `yaml:"texinfo_documents"`
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	out := s
	out.Extensions = slices.Clone(s.Extensions)
	out.TemplatesPath = slices.Clone(s.TemplatesPath)
	out.ExcludePatterns = slices.Clone(s.ExcludePatterns)
	out.CppIDAttributes = slices.Clone(s.CppIDAttributes)
	out.Intersphinx = slices.Clone(s.Intersphinx)
	out.Breathe.Projects = maps.Clone(s.Breathe.Projects)
	out.Breathe.DomainByFilePattern = maps.Clone(s.Breathe.DomainByFilePattern)
	if s.Breathe.ProjectsSource != nil {
		out.Breathe.ProjectsSource = make(map[string]BreatheSource, len(s.Breathe.ProjectsSource))
		for k, v := range s.Breathe.ProjectsSource {
			v.Files = slices.Clone(v.Files)
			out.Breathe.ProjectsSource[k] = v
		}
	}
	out.HTML.ThemePath = slices.Clone(s.HTML.ThemePath)
	out.HTML.StaticPath = slices.Clone(s.HTML.StaticPath)
	out.Latex = cloneDocs(s.Latex)
	out.Man = cloneDocs(s.Man)
	out.Texinfo = cloneDocs(s.Texinfo)
	return out
}

func cloneDocs(in []Document) []Document {
	if in == nil {
		return nil
	}
	out := make([]Document, len(in))
	for i, d := range in {
		d.Authors = slices.Clone(d.Authors)
		out[i] = d
	}
	return out
}

// IntersphinxURL returns the registered base URL for name.
func (s Settings) IntersphinxURL(name string) (string, bool) {
	for _, t := range s.Intersphinx {
		if t.Name == name {
			return t.URL, true
		}
	}
	return "", false
}
