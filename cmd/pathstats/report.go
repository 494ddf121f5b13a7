package main

import (
	"io"
	"runtime"
	"time"

	"pathstats/internal/services/count/domain"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// peakMemory reports the memory the runtime obtained from the OS. The runtime
// never returns it eagerly, so this is a high-water mark for the run
func peakMemory() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys
}

// writeSummary prints a human readable run report
func writeSummary(w io.Writer, sum domain.Summary, mem uint64) {
	p := message.NewPrinter(language.English)
	ms := func(d time.Duration) string { return d.Round(time.Millisecond).String() }

	_, _ = p.Fprintf(w, "counted %d lines into %d paths in %s\n", sum.Counted, sum.Paths, ms(sum.Elapsed))
	_, _ = p.Fprintf(w, "  input       %s (%s, %d workers)\n", sum.Input, humanize.IBytes(uint64(max(sum.Size, 0))), sum.Workers)
	_, _ = p.Fprintf(w, "  output      %s\n", sum.Output)
	_, _ = p.Fprintf(w, "  read        %d lines, %s\n", sum.Lines, humanize.IBytes(uint64(max(sum.Bytes, 0))))
	_, _ = p.Fprintf(w, "  malformed   %d\n", sum.Malformed)
	if sum.LatePaths > 0 {
		_, _ = p.Fprintf(w, "  late paths  %d\n", sum.LatePaths)
	}
	_, _ = p.Fprintf(w, "  phases      scan %s, merge %s, write %s\n", ms(sum.ScanTime), ms(sum.MergeTime), ms(sum.WriteTime))
	_, _ = p.Fprintf(w, "  peak memory %s\n", humanize.IBytes(mem))
	for _, ws := range sum.PerWorker {
		_, _ = p.Fprintf(w, "  worker %-4d %s %d lines in %s\n", ws.Worker, ws.Range, ws.Lines, ms(ws.Elapsed))
	}
}
