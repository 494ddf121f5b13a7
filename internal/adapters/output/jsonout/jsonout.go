// Package jsonout renders a merged result as an ordered, pretty-printed JSON document.
// Object member order follows the result: paths in first-seen order, dates ascending.
// encoding/json maps cannot keep that order, so the document is written by hand and only
// string escaping is delegated to the encoder.
package jsonout

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"pathstats/internal/core/histogram"
	perr "pathstats/internal/platform/errors"
)

// Options controls the rendering
type Options struct {
	// Indent is the number of spaces per nesting level
	Indent int `validate:"min=0,max=16"`

	// EscapeSlashes writes "/" as "\/", as existing reports do
	EscapeSlashes bool

	// EscapeUnicode writes every non-ASCII rune as \uXXXX (surrogate pairs above U+FFFF)
	EscapeUnicode bool
}

// DefaultOptions mirrors the reference output: four spaces, escaped slashes and ASCII-only keys
func DefaultOptions() Options { return Options{Indent: 4, EscapeSlashes: true, EscapeUnicode: true} }

// Writer renders results
type Writer struct {
	opts Options
}

// New returns a Writer
func New(opts Options) *Writer { return &Writer{opts: opts} }

// WriteFile renders res into path atomically through a .part sibling
func (w *Writer) WriteFile(path string, res histogram.Result) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return perr.Wrapf(mkErr, perr.ErrorCodeIO, "jsonout: create dir %s", dir)
		}
	}
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "jsonout: create %s", tmp)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriterSize(f, 256<<10)
	if err = w.Encode(bw, res); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "jsonout: write %s", tmp)
	}
	if err = f.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "jsonout: close %s", tmp)
	}
	if err = os.Rename(tmp, path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "jsonout: rename %s", tmp)
	}
	return nil
}

// Encode writes res to dst
func (w *Writer) Encode(dst io.Writer, res histogram.Result) error {
	e := encoder{opts: w.opts}
	e.str.enc = json.NewEncoder(&e.str.buf)
	e.str.enc.SetEscapeHTML(false)

	if len(res.Entries) == 0 {
		e.out = append(e.out, "{}"...)
		return e.flush(dst)
	}

	e.out = append(e.out, '{')
	for i, pe := range res.Entries {
		if i > 0 {
			e.out = append(e.out, ',')
		}
		e.newline(1)
		if err := e.key(pe.Path); err != nil {
			return err
		}
		if len(pe.Dates) == 0 {
			e.out = append(e.out, "{}"...)
			continue
		}
		e.out = append(e.out, '{')
		for j, dc := range pe.Dates {
			if j > 0 {
				e.out = append(e.out, ',')
			}
			e.newline(2)
			if err := e.key(dc.Date); err != nil {
				return err
			}
			e.out = strconv.AppendInt(e.out, dc.Count, 10)
		}
		e.newline(1)
		e.out = append(e.out, '}')

		// keep memory flat on results with many paths
		if len(e.out) > 64<<10 {
			if err := e.flush(dst); err != nil {
				return err
			}
		}
	}
	e.newline(0)
	e.out = append(e.out, '}')
	return e.flush(dst)
}

type encoder struct {
	opts Options
	out  []byte
	str  struct {
		buf bytes.Buffer
		enc *json.Encoder
	}
}

func (e *encoder) newline(depth int) {
	e.out = append(e.out, '\n')
	for i := 0; i < depth*e.opts.Indent; i++ {
		e.out = append(e.out, ' ')
	}
}

// key appends s as a quoted member name followed by the separator.
// Keys must be valid UTF-8: the encoder would map every invalid byte to U+FFFD and
// let distinct paths collide on one member name
func (e *encoder) key(s string) error {
	if !utf8.ValidString(s) {
		return perr.WithField(perr.Newf(perr.ErrorCodeEncode, "jsonout: key %q is not valid UTF-8", s), "path")
	}
	e.str.buf.Reset()
	if err := e.str.enc.Encode(s); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeEncode, "jsonout: encode key %q", s)
	}
	q := bytes.TrimSuffix(e.str.buf.Bytes(), []byte{'\n'})
	for len(q) > 0 {
		c := q[0]
		switch {
		case c == '/' && e.opts.EscapeSlashes:
			e.out = append(e.out, '\\', '/')
		case c >= utf8.RuneSelf && e.opts.EscapeUnicode:
			r, n := utf8.DecodeRune(q)
			e.appendRune(r)
			q = q[n:]
			continue
		default:
			e.out = append(e.out, c)
		}
		q = q[1:]
	}
	e.out = append(e.out, ':', ' ')
	return nil
}

func (e *encoder) appendRune(r rune) {
	if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
		e.appendU(r1)
		e.appendU(r2)
		return
	}
	e.appendU(r)
}

func (e *encoder) appendU(r rune) {
	const hex = "0123456789abcdef"
	e.out = append(e.out, '\\', 'u', hex[r>>12&0xf], hex[r>>8&0xf], hex[r>>4&0xf], hex[r&0xf])
}

func (e *encoder) flush(dst io.Writer) error {
	if _, err := dst.Write(e.out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "jsonout: write")
	}
	e.out = e.out[:0]
	return nil
}
