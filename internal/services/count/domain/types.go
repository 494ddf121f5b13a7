// Package domain holds the data structures and ports of the count service
package domain

import (
	"time"

	"pathstats/internal/core/chunk"
	"pathstats/internal/core/histogram"
)

// WorkerStats describes one scanner's pass over its range
type WorkerStats struct {
	Worker    int
	Range     chunk.ByteRange
	Lines     int64 // lines owned by the range
	Malformed int64 // lines skipped by the codec
	Counted   int64 // lines that reached the histogram
	Bytes     int64 // bytes of owned lines
	Paths     int   // distinct paths seen by this worker
	LatePaths int   // paths first seen after the settle heuristic fired
	Elapsed   time.Duration
}

// Partial is the result of one scanner, handed to the merger exactly once
type Partial struct {
	Worker    int
	Histogram *histogram.Histogram
	Stats     WorkerStats
}

// Summary reports what a run did
type Summary struct {
	RunID   string
	Input   string
	Output  string
	Size    int64
	Workers int

	Lines     int64
	Malformed int64
	Bytes     int64
	LatePaths int
	Paths     int   // distinct paths in the merged result
	Counted   int64 // sum of all emitted counts

	ScanTime  time.Duration
	MergeTime time.Duration
	WriteTime time.Duration
	Elapsed   time.Duration

	PerWorker []WorkerStats
}
