// Package ingest adapts the log file reader to the count domain ports
package ingest

import (
	"pathstats/internal/adapters/logfile"
	"pathstats/internal/core/chunk"
	"pathstats/internal/services/count/domain"
)

// Source wraps a logfile.Opener as a domain.Source
type Source struct {
	opener *logfile.Opener
}

// NewSource returns a Source reading with bufSize bytes of buffer per worker
func NewSource(bufSize int) *Source {
	return &Source{opener: logfile.NewOpener(bufSize)}
}

// Size implements domain.Source
func (s *Source) Size(path string) (int64, error) { return s.opener.Size(path) }

// Open implements domain.Source
func (s *Source) Open(path string, rng chunk.ByteRange) (domain.LineReader, error) {
	rd, err := s.opener.Open(path, rng)
	if err != nil {
		return nil, err
	}
	return rd, nil
}
