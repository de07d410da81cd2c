package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyChapter       = "chapter"
	KeyKey           = "key"
	KeyLine          = "line"
	KeyRenderer      = "renderer"
	KeyMdbookVersion = "mdbook_version"
	KeyTags          = "tags"
	KeyDurationMS    = "duration_ms"
	KeyError         = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Chapter(name string) slog.Attr      { return slog.String(KeyChapter, name) }
func Key(k string) slog.Attr             { return slog.String(KeyKey, k) }
func Line(n int) slog.Attr               { return slog.Int(KeyLine, n) }
func Renderer(r string) slog.Attr        { return slog.String(KeyRenderer, r) }
func MdbookVersion(v string) slog.Attr   { return slog.String(KeyMdbookVersion, v) }
func Tags(n int) slog.Attr               { return slog.Int(KeyTags, n) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
