package pipeline

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/agentflare-ai/go-cdoc/internal/metrics"
	"github.com/agentflare-ai/go-cdoc/internal/progress"
	"github.com/agentflare-ai/go-cdoc/internal/render"
)

// Option adjusts the Config built by ProcessDir.
type Option func(*Config)

func WithFormat(f render.Format) Option { return func(c *Config) { c.Format = f } }

// WithJobs sets how many files are processed at once. Values below 1 mean 1.
func WithJobs(n int) Option { return func(c *Config) { c.Jobs = n } }

func WithIndex(enabled bool) Option { return func(c *Config) { c.Index = enabled } }

func WithSyntaxes(overrides map[string]string) Option {
	return func(c *Config) { c.Syntaxes = overrides }
}

func WithFs(fs afero.Fs) Option { return func(c *Config) { c.Fs = fs } }

func WithReporter(r progress.Reporter) Option { return func(c *Config) { c.Reporter = r } }

func WithRecorder(r metrics.Recorder) Option { return func(c *Config) { c.Recorder = r } }

func WithLogger(l *slog.Logger) Option { return func(c *Config) { c.Logger = l } }
