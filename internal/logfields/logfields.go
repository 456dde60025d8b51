package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by every package.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTarget     = "target"
	KeySyntax     = "syntax"
	KeyFormat     = "format"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyBlocks     = "blocks"
	KeyFailed     = "failed"
	KeyPattern    = "pattern"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func File(f string) slog.Attr       { return slog.String(KeyFile, f) }
func Target(t string) slog.Attr     { return slog.String(KeyTarget, t) }
func Syntax(s string) slog.Attr     { return slog.String(KeySyntax, s) }
func Format(f string) slog.Attr     { return slog.String(KeyFormat, f) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Blocks(n int) slog.Attr        { return slog.Int(KeyBlocks, n) }
func Failed(n int) slog.Attr        { return slog.Int(KeyFailed, n) }
func Pattern(p string) slog.Attr    { return slog.String(KeyPattern, p) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
