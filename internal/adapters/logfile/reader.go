package logfile

import (
	"bufio"
	"errors"
	"io"
	"os"

	"pathstats/internal/core/chunk"
	perr "pathstats/internal/platform/errors"
)

const (
	// DefaultBufSize is the read buffer per reader
	DefaultBufSize = 1 << 20

	minBufSize = 4 << 10
)

// file is what a reader needs from the handle; *os.File satisfies it
type file interface {
	io.Reader
	io.Seeker
	io.Closer
}

// openFile is a seam for tests
var openFile = func(name string) (file, error) { return os.Open(name) }

// Opener opens ranged readers over files on local disk
type Opener struct {
	BufSize int
}

// NewOpener returns an Opener with the given buffer size; <= 0 picks the default
func NewOpener(bufSize int) *Opener {
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}
	return &Opener{BufSize: max(bufSize, minBufSize)}
}

// Size returns the size in bytes of the file at path
func (o *Opener) Size(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeIO, "logfile: stat %s", path)
	}
	if !fi.Mode().IsRegular() {
		return 0, perr.IOf("logfile: %s is not a regular file", path)
	}
	return fi.Size(), nil
}

// Open returns a Reader positioned at the first line owned by rng
func (o *Opener) Open(path string, rng chunk.ByteRange) (*Reader, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "logfile: open %s", path)
	}
	rd := &Reader{
		name: path,
		f:    f,
		br:   bufio.NewReaderSize(f, max(o.BufSize, minBufSize)),
		rng:  rng,
	}
	if rng.Empty() {
		rd.done = true
		return rd, nil
	}
	if rng.Start > 0 {
		if err := rd.skipFragment(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return rd, nil
}

// Reader hands out the lines owned by one range. Not safe for concurrent use
type Reader struct {
	name    string
	f       file
	br      *bufio.Reader
	rng     chunk.ByteRange
	pos     int64 // offset of the next unread byte
	scratch []byte
	done    bool

	lines int64
	bytes int64
}

// skipFragment moves past the tail of the line that started in the previous range
func (rd *Reader) skipFragment() error {
	at := rd.rng.Start - 1
	if _, err := rd.f.Seek(at, io.SeekStart); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "logfile: seek %s to %d", rd.name, at)
	}
	rd.pos = at
	frag, err := rd.readLine()
	rd.pos += int64(len(frag))
	if errors.Is(err, io.EOF) {
		rd.done = true
		return nil
	}
	return err
}

// Next returns the next owned line with its newline, or io.EOF once the range is exhausted.
// The slice is only valid until the following call
func (rd *Reader) Next() ([]byte, error) {
	if rd.done || !rd.rng.Contains(rd.pos) {
		rd.done = true
		return nil, io.EOF
	}
	line, err := rd.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(line) == 0 {
		rd.done = true
		return nil, io.EOF
	}
	rd.pos += int64(len(line))
	rd.lines++
	rd.bytes += int64(len(line))
	if errors.Is(err, io.EOF) {
		rd.done = true
		if line[len(line)-1] != '\n' {
			rd.scratch = append(append(rd.scratch[:0], line...), '\n')
			line = rd.scratch
		}
	}
	return line, nil
}

// readLine reads through the next newline, growing past the buffer when a line is longer than it.
// At end of file it returns whatever was left together with io.EOF
func (rd *Reader) readLine() ([]byte, error) {
	line, err := rd.br.ReadSlice('\n')
	if err == nil {
		return line, nil
	}
	if errors.Is(err, bufio.ErrBufferFull) {
		rd.scratch = append(rd.scratch[:0], line...)
		for errors.Is(err, bufio.ErrBufferFull) {
			line, err = rd.br.ReadSlice('\n')
			rd.scratch = append(rd.scratch, line...)
		}
		line = rd.scratch
		if err == nil {
			return line, nil
		}
	}
	if errors.Is(err, io.EOF) {
		return line, io.EOF
	}
	return nil, perr.Wrapf(err, perr.ErrorCodeIO, "logfile: read %s at %d", rd.name, rd.pos)
}

// Close releases the file handle
func (rd *Reader) Close() error {
	if rd.f == nil {
		return nil
	}
	err := rd.f.Close()
	rd.f = nil
	return perr.WrapIf(err, perr.ErrorCodeIO, "logfile: close "+rd.name)
}

// Stats returns the number of lines handed out and their total bytes
func (rd *Reader) Stats() (lines int64, bytes int64) {
	return rd.lines, rd.bytes
}
