// Package pipeline generates a documentation tree from a source tree.
//
// A run walks the source directory, extracts documentation blocks from every
// file that is not ignored, renders one artifact per file and writes it to the
// mirrored location under the target directory. Configuration problems abort
// the run before anything is written; per-file problems are reported and
// counted and the run carries on.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
	"github.com/agentflare-ai/go-cdoc/internal/extract"
	"github.com/agentflare-ai/go-cdoc/internal/ignore"
	"github.com/agentflare-ai/go-cdoc/internal/logfields"
	"github.com/agentflare-ai/go-cdoc/internal/metrics"
	"github.com/agentflare-ai/go-cdoc/internal/progress"
	"github.com/agentflare-ai/go-cdoc/internal/render"
	"github.com/agentflare-ai/go-cdoc/internal/walk"
)

// Config describes one run. Zero values select the defaults: Markdown output,
// sequential processing, the OS filesystem, no progress, no metrics and a
// discarding logger.
type Config struct {
	SourceDir string
	TargetDir string
	Ignore    []string
	Format    render.Format
	Jobs      int
	// Index writes an index document listing every artifact.
	Index bool
	// Syntaxes maps file extensions to syntax names, overriding the built-in table.
	Syntaxes map[string]string

	Fs       afero.Fs
	Reporter progress.Reporter
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Failure is one entry that could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Summary is the outcome of a run.
type Summary struct {
	// Files is the number of source files processed, failed ones included.
	Files    int
	Written  int
	Ignored  int
	Failed   int
	Failures []Failure
	Duration time.Duration
}

// OK reports whether every entry was processed.
func (s *Summary) OK() bool {
	return s.Failed == 0
}

// ProcessDir documents sourceDir into targetDir, skipping entries that match
// any of the ignore patterns.
func ProcessDir(ctx context.Context, sourceDir, targetDir string, ignore []string, opts ...Option) (*Summary, error) {
	cfg := Config{SourceDir: sourceDir, TargetDir: targetDir, Ignore: ignore}
	for _, opt := range opts {
		opt(&cfg)
	}
	return Run(ctx, cfg)
}

// Run executes one documentation run. The returned error is a configuration
// error (nothing written) or the context's error; per-entry failures are only
// recorded in the Summary.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	r, err := newRun(cfg)
	if err != nil {
		return nil, err
	}
	return r.execute(ctx)
}

type run struct {
	cfg       Config
	source    string
	target    string
	matcher   *ignore.Matcher
	extractor *extract.Extractor
	renderer  render.Renderer
	writer    *render.Writer
	log       *slog.Logger

	mu      sync.Mutex
	summary Summary
	index   []render.IndexEntry
}

func newRun(cfg Config) (*run, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Reporter == nil {
		cfg.Reporter = progress.Nop{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NoopRecorder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}

	source, target, err := checkDirs(cfg.Fs, cfg.SourceDir, cfg.TargetDir)
	if err != nil {
		return nil, err
	}
	matcher, err := ignore.New(cfg.Ignore)
	if err != nil {
		return nil, err
	}
	extractor, err := extract.NewExtractor(cfg.Syntaxes)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &run{
		cfg:       cfg,
		source:    source,
		target:    target,
		matcher:   matcher,
		extractor: extractor,
		renderer:  renderer,
		writer:    render.NewWriter(cfg.Fs, target),
		log:       cfg.Logger,
	}, nil
}

// checkDirs validates the source and target directories and returns them as
// absolute paths.
func checkDirs(fs afero.Fs, sourceDir, targetDir string) (string, string, error) {
	if sourceDir == "" {
		return "", "", derrors.Configuration("check source", sourceDir, derrors.ErrSourceNotFound)
	}
	source, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", "", derrors.Configuration("check source", sourceDir, err)
	}
	info, err := fs.Stat(source)
	switch {
	case os.IsNotExist(err):
		return "", "", derrors.Configuration("check source", sourceDir, derrors.ErrSourceNotFound)
	case err != nil:
		return "", "", derrors.Configuration("check source", sourceDir, err)
	case !info.IsDir():
		return "", "", derrors.Configuration("check source", sourceDir, derrors.ErrSourceNotDir)
	}

	if targetDir == "" {
		return "", "", derrors.Configuration("check target", targetDir, fmt.Errorf("%w: empty path", derrors.ErrTargetInvalid))
	}
	target, err := filepath.Abs(targetDir)
	if err != nil {
		return "", "", derrors.Configuration("check target", targetDir, err)
	}
	if target == source {
		return "", "", derrors.Configuration("check target", targetDir, fmt.Errorf("%w: same as source directory", derrors.ErrTargetInvalid))
	}
	if info, err := fs.Stat(target); err == nil && !info.IsDir() {
		return "", "", derrors.Configuration("check target", targetDir, fmt.Errorf("%w: not a directory", derrors.ErrTargetInvalid))
	}
	return source, target, nil
}

func (r *run) execute(ctx context.Context) (*Summary, error) {
	start := time.Now()
	r.log.Info("Starting documentation run",
		logfields.Path(r.source),
		logfields.Target(r.target),
		logfields.Format(string(r.renderer.Format())),
		slog.Int("jobs", r.cfg.Jobs))

	walker := walk.New(r.cfg.Fs, r.source, r.matcher)
	if rel, err := filepath.Rel(r.source, r.target); err == nil && filepath.IsLocal(rel) {
		walker.Exclude(r.target)
	}

	var g errgroup.Group
	g.SetLimit(r.cfg.Jobs)
	for entry, err := range walker.Entries() {
		if ctx.Err() != nil {
			break
		}
		if err != nil {
			r.fail(entry.Rel, err)
			continue
		}
		if entry.Ignored {
			r.ignore(entry)
			continue
		}
		if entry.Kind == walk.KindDir {
			continue
		}
		target, err := r.claim(entry)
		if err != nil {
			r.count()
			r.cfg.Reporter.Report(progress.Started(entry.Rel))
			r.fail(entry.Rel, err)
			continue
		}
		if r.cfg.Jobs == 1 {
			r.process(entry, target)
			continue
		}
		g.Go(func() error {
			r.process(entry, target)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		r.finish(start)
		return r.result(), err
	}
	if r.cfg.Index {
		r.writeIndex()
	}
	r.finish(start)
	return r.result(), nil
}

// claim reserves the entry's output path in walk order so collisions resolve
// the same way regardless of Jobs.
func (r *run) claim(entry walk.Entry) (string, error) {
	target, err := render.TargetRel(entry.Rel, r.renderer.Format())
	if err != nil {
		return "", err
	}
	if err := r.writer.Claim(entry.Rel, target); err != nil {
		return "", err
	}
	return target, nil
}

func (r *run) process(entry walk.Entry, target string) {
	r.count()
	r.cfg.Reporter.Report(progress.Started(entry.Rel))

	began := time.Now()
	data, err := afero.ReadFile(r.cfg.Fs, entry.Path)
	r.cfg.Recorder.ObserveStage(metrics.StageRead, time.Since(began))
	if err != nil {
		r.fail(entry.Rel, derrors.Traversal("read file", entry.Rel, err))
		return
	}

	began = time.Now()
	node := r.extractor.Extract(entry.Rel, data)
	r.cfg.Recorder.ObserveStage(metrics.StageExtract, time.Since(began))
	r.cfg.Recorder.AddBlocks(len(node.Blocks))
	for _, problem := range node.Problems {
		r.log.Warn("Documentation block recovered",
			logfields.File(entry.Rel),
			logfields.Syntax(node.Syntax),
			logfields.Error(problem))
	}

	began = time.Now()
	artifact, err := r.renderer.Render(node)
	r.cfg.Recorder.ObserveStage(metrics.StageRender, time.Since(began))
	if err != nil {
		r.fail(entry.Rel, err)
		return
	}

	began = time.Now()
	err = r.writer.Write(artifact)
	r.cfg.Recorder.ObserveStage(metrics.StageWrite, time.Since(began))
	if err != nil {
		r.fail(entry.Rel, err)
		return
	}

	r.mu.Lock()
	r.summary.Written++
	r.index = append(r.index, render.IndexEntryFor(artifact))
	r.mu.Unlock()
	r.cfg.Recorder.IncEntry(metrics.ResultWritten)
	r.log.Debug("Wrote documentation",
		logfields.File(entry.Rel),
		logfields.Target(target),
		logfields.Syntax(node.Syntax),
		logfields.Blocks(len(node.Blocks)))
	r.cfg.Reporter.Report(progress.Completed(entry.Rel, artifact.Rel))
}

func (r *run) writeIndex() {
	r.mu.Lock()
	entries := append([]render.IndexEntry(nil), r.index...)
	r.mu.Unlock()

	artifact := r.renderer.Index(entries)
	if err := r.writer.Write(artifact); err != nil {
		r.fail(artifact.Rel, err)
		return
	}
	r.log.Debug("Wrote index", logfields.Target(artifact.Rel), logfields.Count(len(entries)))
}

func (r *run) count() {
	r.mu.Lock()
	r.summary.Files++
	r.mu.Unlock()
}

func (r *run) ignore(entry walk.Entry) {
	r.mu.Lock()
	r.summary.Ignored++
	r.mu.Unlock()
	r.cfg.Recorder.IncEntry(metrics.ResultIgnored)
	r.log.Debug("Ignoring entry", logfields.Path(entry.Rel), logfields.Pattern(entry.Pattern))
	r.cfg.Reporter.Report(progress.Ignored(entry.Rel))
}

func (r *run) fail(rel string, err error) {
	r.mu.Lock()
	r.summary.Failed++
	r.summary.Failures = append(r.summary.Failures, Failure{Path: rel, Err: err})
	r.mu.Unlock()
	r.cfg.Recorder.IncEntry(metrics.ResultFailed)
	r.log.Warn("Entry failed",
		logfields.Path(rel),
		logfields.Stage(string(derrors.KindOf(err))),
		logfields.Error(err))
	r.cfg.Reporter.Report(progress.Failed(rel, err))
}

func (r *run) finish(start time.Time) {
	d := time.Since(start)
	r.mu.Lock()
	r.summary.Duration = d
	files, failed := r.summary.Files, r.summary.Failed
	r.mu.Unlock()

	r.cfg.Recorder.ObserveRun(d, files, failed)
	r.log.Info("Documentation run completed",
		logfields.Count(files),
		logfields.Failed(failed),
		logfields.Duration(d))
	r.cfg.Reporter.Report(progress.Done(files, failed))
}

func (r *run) result() *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.summary
	s.Failures = append([]Failure(nil), r.summary.Failures...)
	// parallel runs record failures in completion order
	sort.SliceStable(s.Failures, func(i, j int) bool {
		return s.Failures[i].Path < s.Failures[j].Path
	})
	return &s
}
