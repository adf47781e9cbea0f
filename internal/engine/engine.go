// Package engine models the rendering engine's extension surface as an explicit
// list of typed event registrations instead of string-named callbacks.
package engine

import (
	"context"

	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
	"github.com/TileDB-Inc/docconf/internal/settings"
)

// Event identifies a lifecycle phase of the host build.
type Event string

const (
	EventConfigInited  Event = "config-inited"
	EventBuilderInited Event = "builder-inited"
	EventSourceRead    Event = "source-read"
)

// SourceReadFunc is called once per document before its markup is parsed. The
// handler may rewrite *source; the engine reads the slot back afterwards.
type SourceReadFunc func(app *App, docname string, source *string) error

// AppFunc is called for phases that carry no document.
type AppFunc func(app *App) error

// App is the handle extensions register against during initialization.
type App struct {
	settings settings.Settings

	configInited  []AppFunc
	builderInited []AppFunc
	sourceRead    []SourceReadFunc

	stylesheets []string
	scripts     []string
}

// NewApp creates an App over an immutable settings snapshot.
func NewApp(s settings.Settings) *App {
	return &App{settings: s}
}

// Settings returns the configuration the App was created with.
func (a *App) Settings() settings.Settings { return a.settings }

func (a *App) OnConfigInited(fn AppFunc)  { a.configInited = append(a.configInited, fn) }
func (a *App) OnBuilderInited(fn AppFunc) { a.builderInited = append(a.builderInited, fn) }
func (a *App) OnSourceRead(fn SourceReadFunc) {
	a.sourceRead = append(a.sourceRead, fn)
}

// AddStylesheet queues a CSS file for inclusion in rendered pages.
func (a *App) AddStylesheet(name string) { a.stylesheets = append(a.stylesheets, name) }

// AddJavaScript queues a script for inclusion in rendered pages.
func (a *App) AddJavaScript(name string) { a.scripts = append(a.scripts, name) }

// Stylesheets returns queued stylesheets in registration order.
func (a *App) Stylesheets() []string { return append([]string(nil), a.stylesheets...) }

// Scripts returns queued scripts in registration order.
func (a *App) Scripts() []string { return append([]string(nil), a.scripts...) }

// Handlers reports how many callbacks are registered for ev.
func (a *App) Handlers(ev Event) int {
	switch ev {
	case EventConfigInited:
		return len(a.configInited)
	case EventBuilderInited:
		return len(a.builderInited)
	case EventSourceRead:
		return len(a.sourceRead)
	}
	return 0
}

// EmitConfigInited runs config-inited handlers in order.
func (a *App) EmitConfigInited(ctx context.Context) error {
	return a.emit(ctx, EventConfigInited, a.configInited)
}

// EmitBuilderInited runs builder-inited handlers in order.
func (a *App) EmitBuilderInited(ctx context.Context) error {
	return a.emit(ctx, EventBuilderInited, a.builderInited)
}

func (a *App) emit(ctx context.Context, ev Event, fns []AppFunc) error {
	for _, fn := range fns {
		if err := fn(a); err != nil {
			return derrors.HookFailed(string(ev), "", err)
		}
	}
	observability.DebugContext(ctx, "Event dispatched", logfields.Event(string(ev)), logfields.Count(len(fns)))
	return nil
}

// EmitSourceRead runs source-read handlers in order against one document and
// returns the final text. The first failing handler stops dispatch.
func (a *App) EmitSourceRead(docname, source string) (string, error) {
	slot := source
	for _, fn := range a.sourceRead {
		if err := fn(a, docname, &slot); err != nil {
			return source, derrors.HookFailed(string(EventSourceRead), docname, err)
		}
	}
	return slot, nil
}
