// Package logfields defines canonical log field name constants to avoid drift
// across packages.
package logfields

import "log/slog"

const (
	KeyRunID      = "run_id"
	KeyModule     = "module"
	KeyNamespace  = "namespace"
	KeyType       = "type"
	KeyMember     = "member"
	KeyStage      = "stage"
	KeyRenderer   = "renderer"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Module(m string) slog.Attr       { return slog.String(KeyModule, m) }
func Namespace(ns string) slog.Attr   { return slog.String(KeyNamespace, ns) }
func Type(t string) slog.Attr         { return slog.String(KeyType, t) }
func Member(m string) slog.Attr       { return slog.String(KeyMember, m) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Renderer(name string) slog.Attr  { return slog.String(KeyRenderer, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
