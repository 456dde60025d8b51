// Package metrics records run statistics for a documentation build.
package metrics

import "time"

// Result enumerates per-entry outcomes.
type Result string

const (
	ResultWritten Result = "written"
	ResultIgnored Result = "ignored"
	ResultFailed  Result = "failed"
)

// Stage names used with ObserveStage.
const (
	StageRead    = "read"
	StageExtract = "extract"
	StageRender  = "render"
	StageWrite   = "write"
)

// Recorder receives run statistics. Implementations must be safe for concurrent use.
type Recorder interface {
	IncEntry(result Result)
	AddBlocks(n int)
	ObserveStage(stage string, d time.Duration)
	ObserveRun(d time.Duration, files, failed int)
}

// NoopRecorder discards everything (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncEntry(Result)                    {}
func (NoopRecorder) AddBlocks(int)                      {}
func (NoopRecorder) ObserveStage(string, time.Duration) {}
func (NoopRecorder) ObserveRun(time.Duration, int, int) {}
