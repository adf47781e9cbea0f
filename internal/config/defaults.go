package config

import (
	"github.com/TileDB-Inc/docconf/internal/apidoc"
	"github.com/TileDB-Inc/docconf/internal/process"
	"github.com/TileDB-Inc/docconf/internal/replace"
	"github.com/TileDB-Inc/docconf/internal/sidebar"
)

// CurrentVersion is the only configuration file version understood.
const CurrentVersion = "1"

// Default returns the TileDB documentation configuration.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Project: ProjectConfig{
			Name:      "TileDB",
			Slug:      "tiledb",
			Copyright: "2021 TileDB, Inc",
			Author:    "TileDB, Inc.",
			Version:   "2.5",
			Release:   "2.5.4",
		},
		Paths: PathsConfig{
			ConfDir:   ".",
			RepoRoot:  "../../",
			SourceDir: ".",
		},
		APIDoc: APIDocConfig{
			BuildDir: "../../build",
			XMLDir:   "build/xml/",
			Steps: []process.Command{
				{Name: "../bootstrap"},
				{Name: "make", Args: []string{"doc"}},
			},
			Targets: []apidoc.Target{
				{Name: "tiledb", URL: "https://tiledb-inc-tiledb.readthedocs-hosted.com/en/{version}/"},
				{Name: "tiledb-py", URL: "https://tiledb-inc-tiledb.readthedocs-hosted.com/projects/python-api/en/{version}/"},
			},
		},
		Sidebar: SidebarConfig{
			Filename: sidebar.DefaultFilename,
			MaxDepth: 2,
			Sites: []sidebar.Site{
				{
					Project: "tiledb",
					Title:   "TileDB Embedded",
					BaseURL: "https://tiledb-inc-tiledb.readthedocs-hosted.com",
					Pages: []sidebar.Page{
						{Doc: "index", Title: "Home"},
						{Doc: "c-api", Title: "C API"},
						{Doc: "c++-api", Title: "C++ API"},
					},
				},
				{
					Project: "tiledb-py",
					Title:   "TileDB-Py",
					BaseURL: "https://tiledb-inc-tiledb.readthedocs-hosted.com/projects/python-api",
					Pages: []sidebar.Page{
						{Doc: "python-api", Title: "Python API"},
					},
				},
			},
		},
		HTML: HTMLConfig{
			HostedTheme: "default",
			LocalTheme:  "sphinx_rtd_theme",
			StaticPath:  []string{"_static"},
			Logo:        "_static/tiledb-logo_color_no_margin_@4x.png",
			Favicon:     "_static/favicon.ico",
			Stylesheets: []string{"custom.css"},
			Scripts:     []string{"custom.js"},
		},
		TextReplacements: replace.Default,
		Render: RenderConfig{
			Command:   "sphinx-build",
			Builder:   "html",
			StageDir:  "../source-staged",
			OutputDir: "../_build/html",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
