package histogram

// TallyOptions tunes the scan-side accumulator. Neither knob changes results
type TallyOptions struct {
	// Window gives dates inside it dense counters; zero value disables
	Window Window

	// SettleAfter marks the tally settled after that many consecutive lines without
	// a new path; 0 disables. Settled is a hint only, new paths are always inserted
	SettleAfter int
}

// TallyStats describes what a tally has seen so far
type TallyStats struct {
	Lines     int64 // observed lines
	Paths     int   // distinct paths
	LatePaths int   // paths first seen while settled
}

// pathCounts holds one path's counters: dense slots for in-window dates, a map for the rest
type pathCounts struct {
	dense  []int64
	sparse map[string]int64
}

// Tally accumulates counts for one scanner. It is not safe for concurrent use
type Tally struct {
	opts   TallyOptions
	slots  int
	order  []string
	byPath map[string]*pathCounts

	quiet   int
	settled bool
	stats   TallyStats
}

// NewTally returns an empty tally
func NewTally(opts TallyOptions) *Tally {
	return &Tally{
		opts:   opts,
		slots:  opts.Window.Slots(),
		byPath: make(map[string]*pathCounts),
	}
}

// Observe counts one (path, date) occurrence. The slices are not retained.
// It reports whether path was new to this tally
func (t *Tally) Observe(path, date []byte) bool {
	t.stats.Lines++

	pc, ok := t.byPath[string(path)]
	fresh := !ok
	if fresh {
		pc = &pathCounts{}
		key := string(path)
		t.byPath[key] = pc
		t.order = append(t.order, key)
		if t.settled {
			t.stats.LatePaths++
			t.settled = false
		}
		t.quiet = 0
	} else if t.opts.SettleAfter > 0 && !t.settled {
		t.quiet++
		if t.quiet >= t.opts.SettleAfter {
			t.settled = true
		}
	}

	if i, ok := t.opts.Window.Index(date); ok {
		if pc.dense == nil {
			pc.dense = make([]int64, t.slots)
		}
		pc.dense[i]++
		return fresh
	}
	if pc.sparse == nil {
		pc.sparse = make(map[string]int64)
	}
	pc.sparse[string(date)]++
	return fresh
}

// Settled reports whether the settle heuristic currently considers the path set complete
func (t *Tally) Settled() bool { return t.settled }

// Stats returns counters about the observed lines
func (t *Tally) Stats() TallyStats {
	s := t.stats
	s.Paths = len(t.order)
	return s
}

// Histogram returns the accumulated counts with every zero slot filtered out
func (t *Tally) Histogram() *Histogram {
	h := &Histogram{
		order:  make([]string, len(t.order)),
		counts: make(map[string]map[string]int64, len(t.order)),
	}
	copy(h.order, t.order)
	for _, p := range t.order {
		pc := t.byPath[p]
		m := make(map[string]int64, len(pc.sparse))
		for i, c := range pc.dense {
			if c > 0 {
				m[t.opts.Window.Date(i)] = c
			}
		}
		for d, c := range pc.sparse {
			if c > 0 {
				m[d] += c
			}
		}
		h.counts[p] = m
	}
	return h
}
