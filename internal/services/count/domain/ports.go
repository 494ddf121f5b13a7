package domain

import (
	"context"

	"pathstats/internal/core/chunk"
	"pathstats/internal/core/histogram"
)

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	// Run counts input and writes the ordered result to output
	Run(ctx context.Context, input, output string) (Summary, error)

	// Count counts input and returns the ordered result without writing it
	Count(ctx context.Context, input string) (histogram.Result, Summary, error)
}

// LineReader yields the lines owned by one byte range, terminator included.
// Next returns io.EOF when the range is exhausted
type LineReader interface {
	Next() ([]byte, error)
	Close() error
	Stats() (lines int64, bytes int64)
}

// Source gives independent ranged readers over one input file
type Source interface {
	Size(path string) (int64, error)
	Open(path string, rng chunk.ByteRange) (LineReader, error)
}

// ResultWriter renders a merged result to its destination
type ResultWriter interface {
	WriteFile(path string, res histogram.Result) error
}
