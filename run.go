package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentflare-ai/go-cdoc/internal/config"
	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
	"github.com/agentflare-ai/go-cdoc/internal/metrics"
	"github.com/agentflare-ai/go-cdoc/internal/pipeline"
	"github.com/agentflare-ai/go-cdoc/internal/progress"
	"github.com/agentflare-ai/go-cdoc/internal/render"
)

// Exit statuses.
const (
	exitOK       = 0
	exitFailure  = 1
	exitConfig   = 2
	exitFailures = 3
)

var errMissingDirs = errors.New("you must specify source and target directories")

type options struct {
	ignore      []string
	quiet       bool
	configPath  string
	format      string
	jobs        int
	index       bool
	strict      bool
	metricsFile string
	logLevel    string
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
}

// exitError carries a specific exit status. reported is set when the message
// has already been shown to the user.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if derrors.IsKind(err, derrors.KindConfiguration) {
		return exitConfig
	}
	return exitFailure
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, cmd *cobra.Command, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch {
	case len(positionals) < 2:
		fmt.Fprintln(app.stdout, "You must specify source and target directories")
		fmt.Fprintln(app.stdout)
		_ = cmd.Help()
		return &exitError{code: exitFailure, err: errMissingDirs, reported: true}
	case len(positionals) > 2:
		return &exitError{code: exitFailure, err: errors.New("too many positional arguments")}
	}
	sourceDir, targetDir := positionals[0], positionals[1]

	cfg, err := app.loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(app.stderr, &slog.HandlerOptions{Level: level}))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	summary, err := pipeline.Run(ctx, pipeline.Config{
		SourceDir: sourceDir,
		TargetDir: targetDir,
		Ignore:    cfg.Ignore,
		Format:    format,
		Jobs:      cfg.Jobs,
		Index:     cfg.Index,
		Syntaxes:  cfg.Syntaxes,
		Reporter:  progress.New(app.stdout, cfg.Quiet),
		Recorder:  recorder,
		Logger:    logger,
	})
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("interrupted after %d files: %w", summary.Files, err)
	}
	if err != nil {
		return err
	}
	if prom != nil {
		if err := prom.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if cfg.Strict && !summary.OK() {
		return &exitError{
			code: exitFailures,
			err:  fmt.Errorf("%d of %d entries failed, first: %s: %w", summary.Failed, summary.Files, summary.Failures[0].Path, summary.Failures[0].Err),
		}
	}
	return nil
}

// loadConfig merges the config file (explicit or discovered in the working
// directory) with the flags the user actually set.
func (app *cliApp) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	path := app.opts.configPath
	if path == "" {
		path = config.Discover(".")
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Ignore = append(cfg.Ignore, app.opts.ignore...)
	if flags.Changed("quiet") {
		cfg.Quiet = app.opts.quiet
	}
	if flags.Changed("format") {
		cfg.Format = app.opts.format
	}
	if flags.Changed("jobs") {
		cfg.Jobs = app.opts.jobs
	}
	if flags.Changed("index") {
		cfg.Index = app.opts.index
	}
	if flags.Changed("strict") {
		cfg.Strict = app.opts.strict
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = app.opts.metricsFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = app.opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var legacyLongFlagSet = map[string]struct{}{
	"ignore":       {},
	"quiet":        {},
	"help":         {},
	"config":       {},
	"format":       {},
	"jobs":         {},
	"index":        {},
	"strict":       {},
	"metrics-file": {},
	"log-level":    {},
	"version":      {},
}

// normalizeLegacyArgs rewrites single-dash long flags (-quiet, -ignore=x) to
// their double-dash form.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || len(arg) <= 2 {
			converted = append(converted, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[1:], "=")
		if _, ok := legacyLongFlagSet[name]; ok {
			if hasValue {
				converted = append(converted, "--"+name+"="+value)
			} else {
				converted = append(converted, "--"+name)
			}
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
