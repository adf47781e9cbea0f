package settings

import "github.com/TileDB-Inc/docconf/internal/replace"

// Builder accumulates settings during configuration load. It is not safe for
// concurrent use; load is single-threaded.
type Builder struct {
	s Settings
}

// NewBuilder starts from a static base, typically config.Config.Static().
func NewBuilder(base Settings) *Builder {
	return &Builder{s: base.Clone()}
}

// AddIntersphinx registers or replaces a cross-project link target.
func (b *Builder) AddIntersphinx(name, url string) *Builder {
	for i, t := range b.s.Intersphinx {
		if t.Name == name {
			b.s.Intersphinx[i].URL = url
			return b
		}
	}
	b.s.Intersphinx = append(b.s.Intersphinx, IntersphinxTarget{Name: name, URL: url})
	return b
}

// SetHTMLTheme selects the HTML theme and its search path.
func (b *Builder) SetHTMLTheme(theme string, path ...string) *Builder {
	b.s.HTML.Theme = theme
	b.s.HTML.ThemePath = append([]string(nil), path...)
	return b
}

// SetTextReplacements installs the replacement table exposed to handlers.
func (b *Builder) SetTextReplacements(t replace.Table) *Builder {
	b.s.TextReplacements = t
	return b
}

// Build returns an immutable snapshot; later builder changes do not leak into it.
func (b *Builder) Build() Settings { return b.s.Clone() }
