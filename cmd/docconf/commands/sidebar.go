package commands

import (
	"fmt"
	"path/filepath"

	"github.com/TileDB-Inc/docconf/internal/environment"
	"github.com/TileDB-Inc/docconf/internal/pipeline"
	"github.com/TileDB-Inc/docconf/internal/sidebar"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct {
	Dir     string `short:"d" help:"Directory to write the sidebar include into (defaults to the source directory)"`
	Project string `short:"p" help:"Project whose pages are local (defaults to project.slug)"`
}

func (s *SidebarCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	dir := s.Dir
	if dir == "" {
		dir = pipeline.NewLoader(cfg).SourceDir()
	}
	project := s.Project
	if project == "" {
		project = cfg.Project.Slug
	}

	gen := sidebar.FileGenerator{
		Dir:      dir,
		Filename: cfg.Sidebar.Filename,
		MaxDepth: cfg.Sidebar.MaxDepth,
		Sites:    cfg.Sidebar.Sites,
	}
	if err := sidebar.Delegate(g.Ctx, gen, environment.FromOS(), project); err != nil {
		return err
	}
	name := gen.Filename
	if name == "" {
		name = sidebar.DefaultFilename
	}
	_, _ = fmt.Fprintf(g.Out, "wrote %s\n", filepath.Join(dir, name))
	return nil
}
