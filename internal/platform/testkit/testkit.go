// Package testkit provides testing helpers
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LogHost is the fixed 19 byte prefix every well-formed fixture line starts with
const LogHost = "https://stitcher.io"

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle. If not, writes haystack to test_output.txt for debugging
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		tmpfile := filepath.Join(t.TempDir(), "test_output.txt")
		_ = os.WriteFile(tmpfile, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, tmpfile)
	}
}

// LogLine renders one fixed-layout access line for path on date, newline included
// Layout: host prefix, path, comma, RFC3339 timestamp, newline
func LogLine(path, date string) string {
	return LogHost + path + "," + date + "T12:34:56+00:00\n"
}

// WriteFile writes content into a fresh file under t.TempDir and returns its path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", p, err)
	}
	return p
}

// WriteLog joins lines and writes them as a log fixture
func WriteLog(t *testing.T, lines ...string) string {
	t.Helper()
	return WriteFile(t, "access.log", strings.Join(lines, ""))
}
