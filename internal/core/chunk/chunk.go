// Package chunk splits a file into contiguous byte ranges, one per worker
package chunk

import (
	"fmt"

	perr "pathstats/internal/platform/errors"
)

// ByteRange is an end-inclusive span of file offsets. End < Start means empty
type ByteRange struct {
	Start int64
	End   int64
}

// Len returns the number of bytes covered
func (r ByteRange) Len() int64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Empty reports whether the range covers no bytes
func (r ByteRange) Empty() bool { return r.End < r.Start }

// Contains reports whether off falls inside the range
func (r ByteRange) Contains(off int64) bool { return off >= r.Start && off <= r.End }

// String renders the range as [start,end]
func (r ByteRange) String() string { return fmt.Sprintf("[%d,%d]", r.Start, r.End) }

// Plan returns exactly workers ranges of ceil(size/workers) bytes covering [0, size).
// The last non-empty range is clamped to size-1; ranges starting past the end are empty
// and pinned at size so the sequence stays contiguous.
func Plan(size int64, workers int) ([]ByteRange, error) {
	if workers < 1 {
		return nil, perr.InvalidArgf("chunk: workers must be >= 1, got %d", workers)
	}
	if size < 0 {
		return nil, perr.InvalidArgf("chunk: negative size %d", size)
	}

	w := int64(workers)
	step := (size + w - 1) / w

	out := make([]ByteRange, workers)
	for i := range out {
		start := min(int64(i)*step, size)
		end := min(start+step, size) - 1
		out[i] = ByteRange{Start: start, End: end}
	}
	return out, nil
}
