package commands

import "fmt"

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	for _, h := range cfg.TextReplacements.Hazards() {
		_, _ = fmt.Fprintf(g.Out, "warning: value of %s contains %s; result depends on table order\n", h.Token, h.Introduces)
	}
	_, _ = fmt.Fprintf(g.Out, "configuration valid: %d replacements, %d sidebar sites, %d intersphinx targets\n",
		cfg.TextReplacements.Len(), len(cfg.Sidebar.Sites), len(cfg.APIDoc.Targets))
	return nil
}
