package jsonout

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pathstats/internal/core/histogram"
	perr "pathstats/internal/platform/errors"

	"github.com/google/go-cmp/cmp"
)

func sample() histogram.Result {
	return histogram.Result{Entries: []histogram.PathEntry{
		{Path: "/x", Dates: []histogram.DateCount{{Date: "2024-01-01", Count: 3}}},
		{Path: "/y", Dates: []histogram.DateCount{{Date: "2024-01-02", Count: 1}, {Date: "2024-02-01", Count: 12}}},
	}}
}

func TestEncode_ReferenceLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := New(DefaultOptions()).Encode(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	want := `{
    "\/x": {
        "2024-01-01": 3
    },
    "\/y": {
        "2024-01-02": 1,
        "2024-02-01": 12
    }
}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_PlainSlashesAndIndent(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Options{Indent: 2}).Encode(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"/x\": {\n    \"2024-01-01\": 3\n  },\n  \"/y\": {\n    \"2024-01-02\": 1,\n    \"2024-02-01\": 12\n  }\n}"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := New(DefaultOptions()).Encode(&buf, histogram.Result{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{}" {
		t.Fatalf("empty result = %q", buf.String())
	}
}

func TestEncode_ValidJSONWithAwkwardKeys(t *testing.T) {
	res := histogram.Result{Entries: []histogram.PathEntry{
		{Path: `/quote"and\back\/slash`, Dates: []histogram.DateCount{{Date: "2024-01-01", Count: 1}}},
		{Path: "/<tag>&amp", Dates: []histogram.DateCount{{Date: "2024-01-01", Count: 2}}},
		{Path: "/no-dates"},
	}}
	for _, esc := range []bool{true, false} {
		var buf bytes.Buffer
		if err := New(Options{Indent: 4, EscapeSlashes: esc}).Encode(&buf, res); err != nil {
			t.Fatal(err)
		}
		var got map[string]map[string]int64
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("escape=%v produced invalid JSON: %v\n%s", esc, err, buf.String())
		}
		if got[`/quote"and\back\/slash`]["2024-01-01"] != 1 || got["/<tag>&amp"]["2024-01-01"] != 2 {
			t.Fatalf("escape=%v decoded = %v", esc, got)
		}
		if m, ok := got["/no-dates"]; !ok || len(m) != 0 {
			t.Fatalf("escape=%v path without dates should render as {}", esc)
		}
	}
}

func TestWriteFile_Atomic(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "out.json")
	if err := New(DefaultOptions()).WriteFile(out, sample()); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(b) {
		t.Fatalf("written file is not valid JSON")
	}
	if _, err := os.Stat(out + ".part"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf(".part file left behind: %v", err)
	}
}

func TestWriteFile_FailureIsIO(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	// parent is a regular file so the directory cannot be created
	err := New(DefaultOptions()).WriteFile(filepath.Join(blocker, "out.json"), sample())
	if !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("err = %v, want io code", err)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestEncode_WriterFailure(t *testing.T) {
	if err := New(DefaultOptions()).Encode(brokenWriter{}, sample()); !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("err = %v, want io code", err)
	}
}

func TestEncode_InvalidUTF8KeysRejected(t *testing.T) {
	// distinct byte strings that would both become "/a�"
	res := histogram.Result{Entries: []histogram.PathEntry{
		{Path: "/a\xff", Dates: []histogram.DateCount{{Date: "2024-01-01", Count: 1}}},
		{Path: "/a\xfe", Dates: []histogram.DateCount{{Date: "2024-01-01", Count: 2}}},
	}}
	for _, opts := range []Options{DefaultOptions(), {Indent: 2}} {
		var buf bytes.Buffer
		err := New(opts).Encode(&buf, res)
		if !perr.IsCode(err, perr.ErrorCodeEncode) {
			t.Fatalf("opts=%+v err = %v, want encode code", opts, err)
		}
		if e, _ := perr.As(err); e.Field() != "path" {
			t.Fatalf("field = %q, want path", e.Field())
		}
	}

	out := filepath.Join(t.TempDir(), "out.json")
	if err := New(DefaultOptions()).WriteFile(out, res); !perr.IsCode(err, perr.ErrorCodeEncode) {
		t.Fatalf("WriteFile err = %v, want encode code", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no output may be left after an encode failure")
	}
}

func TestEncode_EscapeUnicode(t *testing.T) {
	res := histogram.Result{Entries: []histogram.PathEntry{
		{Path: "/é", Dates: []histogram.DateCount{{Date: "2024-01-01", Count: 1}}},
		{Path: "/😀", Dates: []histogram.DateCount{{Date: "2024-01-01", Count: 2}}},
	}}

	var buf bytes.Buffer
	if err := New(Options{Indent: 0, EscapeSlashes: true, EscapeUnicode: true}).Encode(&buf, res); err != nil {
		t.Fatal(err)
	}
	want := "{\n\"\\/\\u00e9\": {\n\"2024-01-01\": 1\n},\n\"\\/\\ud83d\\ude00\": {\n\"2024-01-01\": 2\n}\n}"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	var got map[string]map[string]int64
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["/é"]["2024-01-01"] != 1 || got["/😀"]["2024-01-01"] != 2 {
		t.Fatalf("decoded = %v", got)
	}

	buf.Reset()
	if err := New(Options{Indent: 0}).Encode(&buf, res); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"/é": `)) {
		t.Fatalf("raw UTF-8 expected without EscapeUnicode: %s", buf.String())
	}
}
