package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	reg           *prom.Registry
	entries       *prom.CounterVec
	blocks        prom.Counter
	stageDuration *prom.HistogramVec
	runDuration   prom.Gauge
	runFiles      prom.Gauge
	runFailed     prom.Gauge
	lastRun       prom.Gauge
}

// NewPrometheusRecorder registers the collectors on reg, or on a fresh registry
// when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		entries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cdoc",
			Name:      "entries_total",
			Help:      "Source entries by outcome",
		}, []string{"result"}),
		blocks: prom.NewCounter(prom.CounterOpts{
			Namespace: "cdoc",
			Name:      "blocks_extracted_total",
			Help:      "Documentation blocks extracted",
		}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "cdoc",
			Name:      "stage_duration_seconds",
			Help:      "Per-file duration of pipeline stages",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"stage"}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: "cdoc",
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run",
		}),
		runFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: "cdoc",
			Name:      "run_files",
			Help:      "Files processed by the last run",
		}),
		runFailed: prom.NewGauge(prom.GaugeOpts{
			Namespace: "cdoc",
			Name:      "run_failed_files",
			Help:      "Files that failed in the last run",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: "cdoc",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.entries, pr.blocks, pr.stageDuration, pr.runDuration, pr.runFiles, pr.runFailed, pr.lastRun)
	return pr
}

// Registry returns the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

func (p *PrometheusRecorder) IncEntry(result Result) {
	p.entries.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddBlocks(n int) {
	if n > 0 {
		p.blocks.Add(float64(n))
	}
}

func (p *PrometheusRecorder) ObserveStage(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRun(d time.Duration, files, failed int) {
	p.runDuration.Set(d.Seconds())
	p.runFiles.Set(float64(files))
	p.runFailed.Set(float64(failed))
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes the recorder's metrics in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
