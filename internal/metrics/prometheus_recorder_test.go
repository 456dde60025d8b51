package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	pr := NewPrometheusRecorder(nil)

	pr.IncEntry(ResultWritten)
	pr.IncEntry(ResultWritten)
	pr.IncEntry(ResultFailed)
	pr.AddBlocks(3)
	pr.AddBlocks(0)
	pr.ObserveStage(StageExtract, 2*time.Millisecond)
	pr.ObserveRun(1500*time.Millisecond, 3, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.entries.WithLabelValues("written")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.entries.WithLabelValues("failed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(pr.blocks))
	assert.Equal(t, 1.5, testutil.ToFloat64(pr.runDuration))
	assert.Equal(t, 3.0, testutil.ToFloat64(pr.runFiles))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.runFailed))
	assert.Equal(t, 1, testutil.CollectAndCount(pr.stageDuration))
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncEntry(ResultIgnored)

	path := filepath.Join(t.TempDir(), "cdoc.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cdoc_entries_total{result="ignored"} 1`)
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncEntry(ResultWritten)
	r.AddBlocks(1)
	r.ObserveStage(StageWrite, time.Second)
	r.ObserveRun(time.Second, 1, 0)
}
