// Package service provides the count pipeline: plan, scan in parallel, merge, write
package service

import (
	"context"
	"time"

	"pathstats/internal/core/chunk"
	"pathstats/internal/core/histogram"
	perr "pathstats/internal/platform/errors"
	"pathstats/internal/platform/logger"
	"pathstats/internal/services/count/domain"

	"github.com/google/uuid"
)

// Config holds the tunables of the count service
type Config struct {
	Workers int // parallel scanners; <=0 -> 1
	Tally   histogram.TallyOptions
}

// Service implements domain.RunnerPort
type Service struct {
	Source  domain.Source
	Sink    domain.ResultWriter
	Cfg     Config
	Metrics *Metrics
}

// New constructs the count service
func New(src domain.Source, sink domain.ResultWriter, cfg Config, m *Metrics) *Service {
	if src == nil {
		panic("count.Service requires a non nil Source")
	}
	if sink == nil {
		panic("count.Service requires a non nil ResultWriter")
	}
	return &Service{Source: src, Sink: sink, Cfg: cfg, Metrics: m}
}

// Run implements domain.RunnerPort
func (s *Service) Run(ctx context.Context, input, output string) (sum domain.Summary, err error) {
	defer func() { s.countRun(err) }()

	ctx, sum.RunID = withRun(ctx)
	res, sum, err := s.count(ctx, input, sum)
	if err != nil {
		return sum, err
	}

	t := time.Now()
	if err := s.Sink.WriteFile(output, res); err != nil {
		return sum, perr.WithOp(err, "write")
	}
	sum.Output = output
	sum.WriteTime = time.Since(t)
	sum.Elapsed += sum.WriteTime

	logger.C(ctx).Info().
		Str("output", output).
		Int("paths", sum.Paths).
		Int64("counted", sum.Counted).
		Dur("elapsed", sum.Elapsed).
		Msg("count: result written")
	return sum, nil
}

// Count implements domain.RunnerPort
func (s *Service) Count(ctx context.Context, input string) (histogram.Result, domain.Summary, error) {
	ctx, id := withRun(ctx)
	return s.count(ctx, input, domain.Summary{RunID: id})
}

func (s *Service) count(ctx context.Context, input string, sum domain.Summary) (histogram.Result, domain.Summary, error) {
	start := time.Now()
	log := logger.C(ctx)

	w := max(s.Cfg.Workers, 1)
	sum.Input, sum.Workers = input, w

	size, err := s.Source.Size(input)
	if err != nil {
		return histogram.Result{}, sum, perr.WithOp(err, "stat")
	}
	sum.Size = size

	ranges, err := chunk.Plan(size, w)
	if err != nil {
		return histogram.Result{}, sum, err
	}
	log.Info().Str("input", input).Int64("size", size).Int("workers", w).Msg("count: scan planned")

	sc := &Scanner{Source: s.Source, Tally: s.Cfg.Tally, Metrics: s.Metrics}
	parts, err := Dispatch(ctx, sc, input, ranges)
	if err != nil {
		return histogram.Result{}, sum, err
	}
	sum.ScanTime = time.Since(start)

	t := time.Now()
	hs := make([]*histogram.Histogram, len(parts))
	sum.PerWorker = make([]domain.WorkerStats, len(parts))
	for i, p := range parts {
		hs[i] = p.Histogram
		sum.PerWorker[i] = p.Stats
		sum.Lines += p.Stats.Lines
		sum.Malformed += p.Stats.Malformed
		sum.Bytes += p.Stats.Bytes
		sum.LatePaths += p.Stats.LatePaths
	}
	res := histogram.Merge(hs...)
	sum.MergeTime = time.Since(t)
	sum.Paths = res.Len()
	sum.Counted = res.Total()
	sum.Elapsed = time.Since(start)

	ev := log.Info()
	if sum.LatePaths > 0 {
		ev = log.Warn()
	}
	ev.Int64("lines", sum.Lines).
		Int64("malformed", sum.Malformed).
		Int("paths", sum.Paths).
		Int("late_paths", sum.LatePaths).
		Dur("scan", sum.ScanTime).
		Dur("merge", sum.MergeTime).
		Msg("count: merged")
	return res, sum, nil
}

// withRun tags ctx with a run id unless the caller already did
func withRun(ctx context.Context) (context.Context, string) {
	if id := logger.RunID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return logger.WithRun(ctx, id), id
}

func (s *Service) countRun(err error) {
	if s.Metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = perr.CodeOf(err).String()
	}
	s.Metrics.Runs.WithLabelValues(result).Inc()
}
