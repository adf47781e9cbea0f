package pipeline

import (
	"github.com/TileDB-Inc/docconf/internal/config"
	"github.com/TileDB-Inc/docconf/internal/engine"
	"github.com/TileDB-Inc/docconf/internal/replace"
)

// ReplaceHook adapts a replacement table to a source-read handler that
// rewrites the document slot in place.
func ReplaceHook(t replace.Table) engine.SourceReadFunc {
	return func(_ *engine.App, _ string, source *string) error {
		*source = t.Apply(*source)
		return nil
	}
}

// Setup registers the project's own extension: text replacement on every
// document, the custom stylesheet, and the custom script. The script is queued
// from builder-inited so it lands after scripts added by other extensions.
func Setup(app *engine.App, html config.HTMLConfig) {
	app.OnSourceRead(ReplaceHook(app.Settings().TextReplacements))
	for _, css := range html.Stylesheets {
		app.AddStylesheet(css)
	}
	scripts := append([]string(nil), html.Scripts...)
	app.OnBuilderInited(func(a *engine.App) error {
		for _, js := range scripts {
			a.AddJavaScript(js)
		}
		return nil
	})
}
