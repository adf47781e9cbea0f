package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyStep       = "step"
	KeyDurationMS = "duration_ms"
	KeyHosted     = "hosted"
	KeyChannel    = "channel"
	KeyProject    = "project"
	KeyDocument   = "document"
	KeyEvent      = "event"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyCommand    = "command"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Step(name string) slog.Attr      { return slog.String(KeyStep, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Hosted(h bool) slog.Attr         { return slog.Bool(KeyHosted, h) }
func Channel(c string) slog.Attr      { return slog.String(KeyChannel, c) }
func Project(p string) slog.Attr      { return slog.String(KeyProject, p) }
func Document(d string) slog.Attr     { return slog.String(KeyDocument, d) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
