package config

import (
	"github.com/TileDB-Inc/docconf/internal/apidoc"
	"github.com/TileDB-Inc/docconf/internal/process"
	"github.com/TileDB-Inc/docconf/internal/replace"
	"github.com/TileDB-Inc/docconf/internal/sidebar"
	"github.com/TileDB-Inc/docconf/internal/settings"
)

// Config represents the docconf configuration file.
type Config struct {
	Version          string        `yaml:"version"`
	Project          ProjectConfig `yaml:"project"`
	Paths            PathsConfig   `yaml:"paths"`
	APIDoc           APIDocConfig  `yaml:"apidoc"`
	Sidebar          SidebarConfig `yaml:"sidebar"`
	HTML             HTMLConfig    `yaml:"html"`
	TextReplacements replace.Table `yaml:"text_replacements"`
	Render           RenderConfig  `yaml:"render"`
	Logging          LoggingConfig `yaml:"logging"`
	Metrics          MetricsConfig `yaml:"metrics"`
}

// ProjectConfig holds the product metadata shown in rendered output.
type ProjectConfig struct {
	Name      string `yaml:"name"`
	Slug      string `yaml:"slug"`
	Copyright string `yaml:"copyright"`
	Author    string `yaml:"author"`
	Version   string `yaml:"version"`
	Release   string `yaml:"release"`
}

// PathsConfig anchors every relative path. ConfDir is where the engine's
// configuration lives; RepoRoot and SourceDir are relative to it.
type PathsConfig struct {
	ConfDir   string `yaml:"conf_dir"`
	RepoRoot  string `yaml:"repo_root"`
	SourceDir string `yaml:"source_dir"`
}

// APIDocConfig configures the hosted-only API-extraction build.
type APIDocConfig struct {
	BuildDir string            `yaml:"build_dir"`
	XMLDir   string            `yaml:"xml_dir"`
	Steps    []process.Command `yaml:"steps"`
	Targets  []apidoc.Target   `yaml:"targets"`
}

// SidebarConfig configures the shared navigation sidebar.
type SidebarConfig struct {
	Filename string         `yaml:"filename"`
	MaxDepth int            `yaml:"max_depth"`
	Sites    []sidebar.Site `yaml:"sites"`
}

// HTMLConfig selects the HTML theme. HostedTheme applies on hosted builds,
// LocalTheme (with ThemePath) elsewhere.
type HTMLConfig struct {
	HostedTheme string   `yaml:"hosted_theme"`
	LocalTheme  string   `yaml:"local_theme"`
	ThemePath   []string `yaml:"theme_path,omitempty"`
	StaticPath  []string `yaml:"static_path"`
	Logo        string   `yaml:"logo"`
	Favicon     string   `yaml:"favicon"`
	Stylesheets []string `yaml:"stylesheets"`
	Scripts     []string `yaml:"scripts"`
}

// RenderConfig configures the optional hand-off to the rendering engine.
type RenderConfig struct {
	Command   string `yaml:"command"`
	Builder   string `yaml:"builder"`
	StageDir  string `yaml:"stage_dir"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig enables the Prometheus textfile export when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Static returns the declarative part of the engine settings, before any
// load component runs.
func (c *Config) Static() settings.Settings {
	xml := joinSlash(c.Paths.RepoRoot, c.APIDoc.XMLDir)
	return settings.Settings{
		Project:   c.Project.Name,
		Copyright: c.Project.Copyright,
		Author:    c.Project.Author,
		Version:   c.Project.Version,
		Release:   c.Project.Release,

		Extensions:      []string{"sphinx.ext.autodoc", "sphinx.ext.intersphinx", "sphinxcontrib.contentui", "breathe"},
		TemplatesPath:   []string{"_templates"},
		SourceSuffix:    ".rst",
		MasterDoc:       "index",
		ExcludePatterns: []string{},
		PygmentsStyle:   "friendly",
		CppIDAttributes: []string{"TILEDB_DEPRECATED"},

		Breathe: settings.Breathe{
			Projects:       map[string]string{"TileDB-C": xml, "TileDB-C++": xml},
			DefaultProject: "TileDB-C",
			ProjectsSource: map[string]settings.BreatheSource{
				"TileDB-C":   {Dir: joinSlash(c.Paths.RepoRoot, "tiledb/sm/c_api/"), Files: []string{"tiledb.h"}},
				"TileDB-C++": {Dir: joinSlash(c.Paths.RepoRoot, "tiledb/sm/cpp_api/"), Files: []string{"tiledb"}},
			},
			DomainByFilePattern: map[string]string{
				"*/c_api/tiledb.h": "c",
				"*/cpp_api/tiledb": "cpp",
			},
		},
		TextReplacements: c.TextReplacements,

		HTML: settings.HTML{
			StaticPath: append([]string(nil), c.HTML.StaticPath...),
			Logo:       c.HTML.Logo,
			Favicon:    c.HTML.Favicon,
		},
		HTMLHelpBasename: c.Project.Name + "doc",
		Latex: []settings.Document{{
			Start: "index", Target: c.Project.Name + ".tex", Title: c.Project.Name + " Documentation",
			Authors: []string{c.Project.Author}, Kind: "manual",
		}},
		Man: []settings.Document{{
			Start: "index", Target: c.Project.Slug, Title: c.Project.Name + " Documentation",
			Authors: []string{c.Project.Author}, Section: 1,
		}},
		Texinfo: []settings.Document{{
			Start: "index", Target: c.Project.Name, Title: c.Project.Name + " Documentation",
			Authors: []string{c.Project.Author}, Description: "One line description of project.",
			Category: "Miscellaneous",
		}},
	}
}

// joinSlash concatenates engine-facing paths the way the engine expects them:
// forward slashes, trailing slash preserved.
func joinSlash(base, rel string) string {
	if base == "" {
		return rel
	}
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + rel
}
