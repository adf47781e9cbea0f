package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/settings"
)

func TestEmitSourceRead_HandlersRunInOrder(t *testing.T) {
	app := NewApp(settings.Settings{Project: "TileDB"})
	app.OnSourceRead(func(_ *App, _ string, src *string) error {
		*src += "-a"
		return nil
	})
	app.OnSourceRead(func(a *App, docname string, src *string) error {
		require.Equal(t, "TileDB", a.Settings().Project)
		*src += "-b-" + docname
		return nil
	})

	out, err := app.EmitSourceRead("index", "doc")
	require.NoError(t, err)
	require.Equal(t, "doc-a-b-index", out)
	require.Equal(t, 2, app.Handlers(EventSourceRead))
}

func TestEmitSourceRead_StopsOnError(t *testing.T) {
	app := NewApp(settings.Settings{})
	calls := 0
	app.OnSourceRead(func(_ *App, _ string, src *string) error {
		calls++
		*src = "partial"
		return errors.New("bad document")
	})
	app.OnSourceRead(func(_ *App, _ string, _ *string) error {
		calls++
		return nil
	})

	out, err := app.EmitSourceRead("api/c-api", "original")
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryHook))
	require.Equal(t, "original", out)
	require.Equal(t, 1, calls)
}

func TestEmitBuilderInited_AddsAssetsAfterEarlierHandlers(t *testing.T) {
	app := NewApp(settings.Settings{})
	app.AddJavaScript("contentui.js")
	app.OnBuilderInited(func(a *App) error {
		a.AddJavaScript("custom.js")
		return nil
	})
	app.AddStylesheet("custom.css")

	require.Equal(t, []string{"contentui.js"}, app.Scripts())
	require.NoError(t, app.EmitBuilderInited(context.Background()))
	require.Equal(t, []string{"contentui.js", "custom.js"}, app.Scripts())
	require.Equal(t, []string{"custom.css"}, app.Stylesheets())
}

func TestEmitConfigInited_WrapsError(t *testing.T) {
	app := NewApp(settings.Settings{})
	app.OnConfigInited(func(*App) error { return errors.New("nope") })

	err := app.EmitConfigInited(context.Background())
	dce, ok := derrors.As(err)
	require.True(t, ok)
	require.Equal(t, string(EventConfigInited), dce.Context["event"])
	require.Zero(t, app.Handlers(Event("unknown")))
}
