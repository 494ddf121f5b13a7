package service

import (
	"context"
	"errors"
	"io"
	"time"

	"pathstats/internal/core/chunk"
	"pathstats/internal/core/histogram"
	"pathstats/internal/core/linecodec"
	perr "pathstats/internal/platform/errors"
	"pathstats/internal/platform/logger"
	"pathstats/internal/services/count/domain"
)

// checkEvery is how many lines a scanner reads between context checks and metric flushes
const checkEvery = 1 << 16

// Scanner counts the lines owned by one byte range
type Scanner struct {
	Source  domain.Source
	Tally   histogram.TallyOptions
	Metrics *Metrics
}

// Scan reads rng of path and returns its histogram. Malformed lines are skipped and counted;
// any read failure aborts the scan
func (sc *Scanner) Scan(ctx context.Context, worker int, path string, rng chunk.ByteRange) (domain.Partial, error) {
	start := time.Now()
	log := logger.C(ctx)
	stats := domain.WorkerStats{Worker: worker, Range: rng}

	rd, err := sc.Source.Open(path, rng)
	if err != nil {
		return domain.Partial{}, err
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("scan: close failed")
		}
	}()

	tally := histogram.NewTally(sc.Tally)
	prog := progress{m: sc.Metrics}
	defer prog.flush()

	var n int64
	for {
		line, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Partial{}, err
		}
		prog.lines++
		prog.byt += int64(len(line))

		if n++; n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Partial{}, perr.Wrap(err, perr.ErrorCodeCanceled, "scan: canceled")
			}
			prog.flush()
		}

		p, d, ok := linecodec.Decode(line)
		if !ok {
			stats.Malformed++
			prog.bad++
			continue
		}
		wasSettled := tally.Settled()
		if tally.Observe(p, d) && wasSettled {
			log.Debug().Str("path", string(p)).Int64("line", n).Msg("scan: new path after settle")
		} else if !wasSettled && tally.Settled() {
			log.Debug().Int64("line", n).Int("paths", tally.Stats().Paths).Msg("scan: path set settled")
		}
	}

	h := tally.Histogram()
	ts := tally.Stats()
	stats.Lines, stats.Bytes = rd.Stats()
	stats.Paths = h.Len()
	stats.Counted = h.Total()
	stats.LatePaths = ts.LatePaths
	stats.Elapsed = time.Since(start)
	if sc.Metrics != nil {
		sc.Metrics.LatePaths.Add(float64(ts.LatePaths))
		sc.Metrics.ScanTime.Observe(stats.Elapsed.Seconds())
	}

	log.Debug().
		Str("range", rng.String()).
		Int64("range_bytes", rng.Len()).
		Int64("lines", stats.Lines).
		Int64("counted", stats.Counted).
		Int64("malformed", stats.Malformed).
		Int("paths", stats.Paths).
		Dur("elapsed", stats.Elapsed).
		Msg("scan: worker done")

	return domain.Partial{Worker: worker, Histogram: h, Stats: stats}, nil
}
