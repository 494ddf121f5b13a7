package chunk

import (
	"testing"

	perr "pathstats/internal/platform/errors"
)

func TestPlan_CoversExactlyOnce(t *testing.T) {
	sizes := []int64{0, 1, 2, 7, 29, 100, 101, 1 << 20, 1<<20 + 3}
	workers := []int{1, 2, 3, 4, 7, 8, 64}

	for _, s := range sizes {
		for _, w := range workers {
			rs, err := Plan(s, w)
			if err != nil {
				t.Fatalf("Plan(%d,%d): %v", s, w, err)
			}
			if len(rs) != w {
				t.Fatalf("Plan(%d,%d) returned %d ranges", s, w, len(rs))
			}
			var next, total int64
			for i, r := range rs {
				if r.Start != next {
					t.Fatalf("Plan(%d,%d)[%d] starts at %d, want %d", s, w, i, r.Start, next)
				}
				next = r.Start + r.Len()
				total += r.Len()
			}
			if total != s || next != s {
				t.Fatalf("Plan(%d,%d) covers %d bytes ending at %d", s, w, total, next)
			}
		}
	}
}

func TestPlan_ChunkSizeIsCeil(t *testing.T) {
	rs, err := Plan(10, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []ByteRange{{0, 2}, {3, 5}, {6, 8}, {9, 9}}
	for i := range want {
		if rs[i] != want[i] {
			t.Fatalf("range %d = %v, want %v", i, rs[i], want[i])
		}
	}
}

func TestPlan_MoreWorkersThanBytes(t *testing.T) {
	rs, err := Plan(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if rs[0] != (ByteRange{0, 0}) || rs[1] != (ByteRange{1, 1}) {
		t.Fatalf("unexpected leading ranges %v", rs[:2])
	}
	for _, r := range rs[2:] {
		if !r.Empty() || r.Start != 2 {
			t.Fatalf("trailing range should be empty at size, got %v", r)
		}
	}
}

func TestPlan_InvalidArgs(t *testing.T) {
	if _, err := Plan(10, 0); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("workers=0 err = %v", err)
	}
	if _, err := Plan(-1, 2); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("negative size err = %v", err)
	}
}

func TestByteRangeHelpers(t *testing.T) {
	r := ByteRange{Start: 5, End: 9}
	if r.Len() != 5 || r.Empty() || !r.Contains(5) || !r.Contains(9) || r.Contains(10) {
		t.Fatalf("helpers mismatch for %v", r)
	}
	if r.String() != "[5,9]" {
		t.Fatalf("String = %q", r.String())
	}
	e := ByteRange{Start: 3, End: 2}
	if e.Len() != 0 || !e.Empty() || e.Contains(3) {
		t.Fatalf("empty helpers mismatch")
	}
}
