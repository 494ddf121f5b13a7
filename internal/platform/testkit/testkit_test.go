package testkit

import (
	"os"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	MustContain(t, "alpha beta gamma", "beta")
}

func TestLogLine_FixedLayout(t *testing.T) {
	t.Parallel()

	if len(LogHost) != 19 {
		t.Fatalf("LogHost must be 19 bytes, got %d", len(LogHost))
	}
	line := LogLine("/blog/x", "2024-01-01")
	l := len(line)
	if got := line[19 : l-27]; got != "/blog/x" {
		t.Fatalf("path slot = %q", got)
	}
	if got := line[l-26 : l-16]; got != "2024-01-01" {
		t.Fatalf("date slot = %q", got)
	}
}

func TestWriteLog(t *testing.T) {
	t.Parallel()

	p := WriteLog(t, "a\n", "b\n")
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "a\nb\n" {
		t.Fatalf("content = %q", b)
	}
}
