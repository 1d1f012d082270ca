package logfields

import "log/slog"

// Canonical log field names shared by the builder, renderer and resolver.
const (
	KeyPage       = "page"
	KeySource     = "source"
	KeyTarget     = "target"
	KeyReference  = "reference"
	KeyCandidates = "candidates"
	KeyAction     = "action"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Page(p string) slog.Attr         { return slog.String(KeyPage, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Target(p string) slog.Attr       { return slog.String(KeyTarget, p) }
func Reference(name string) slog.Attr { return slog.String(KeyReference, name) }
func Candidates(c []string) slog.Attr { return slog.Any(KeyCandidates, c) }
func Action(a string) slog.Attr       { return slog.String(KeyAction, a) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
