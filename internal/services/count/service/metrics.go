package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the scan counters exposed on the debug server
type Metrics struct {
	Lines     prometheus.Counter
	Malformed prometheus.Counter
	Bytes     prometheus.Counter
	LatePaths prometheus.Counter
	Active    prometheus.Gauge
	ScanTime  prometheus.Histogram
	Runs      *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them on reg when it is not nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathstats", Subsystem: "scan", Name: "lines_total",
			Help: "Lines read by scan workers.",
		}),
		Malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathstats", Subsystem: "scan", Name: "malformed_lines_total",
			Help: "Lines skipped because they do not fit the fixed layout.",
		}),
		Bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathstats", Subsystem: "scan", Name: "bytes_total",
			Help: "Bytes of lines read by scan workers.",
		}),
		LatePaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathstats", Subsystem: "scan", Name: "late_paths_total",
			Help: "Paths first seen after a worker considered its path set settled.",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pathstats", Subsystem: "scan", Name: "active_workers",
			Help: "Scan workers currently running.",
		}),
		ScanTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathstats", Subsystem: "scan", Name: "worker_seconds",
			Help:    "Wall time of one worker over its byte range.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathstats", Name: "runs_total",
			Help: "Completed runs by outcome.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Lines, m.Malformed, m.Bytes, m.LatePaths, m.Active, m.ScanTime, m.Runs)
	}
	return m
}

// progress batches per-line counters so workers touch the shared collectors rarely
type progress struct {
	m               *Metrics
	lines, bad, byt int64
}

func (p *progress) flush() {
	if p.m == nil {
		return
	}
	p.m.Lines.Add(float64(p.lines))
	p.m.Malformed.Add(float64(p.bad))
	p.m.Bytes.Add(float64(p.byt))
	p.lines, p.bad, p.byt = 0, 0, 0
}
