// Package histogram holds per-path date histograms and the merge that turns
// many partial histograms into one ordered result.
//
// Path order is first-seen order and is part of the value: two histograms with
// the same counts but a different path order are different histograms.
package histogram

import "sort"

// Histogram maps path -> date -> count and remembers the order paths were first seen in
type Histogram struct {
	order  []string
	counts map[string]map[string]int64
}

// New returns an empty histogram
func New() *Histogram {
	return &Histogram{counts: make(map[string]map[string]int64)}
}

// Add adds n occurrences of (path, date). n <= 0 is ignored so a zero count never becomes an entry
func (h *Histogram) Add(path, date string, n int64) {
	if n <= 0 {
		return
	}
	h.dates(path)[date] += n
}

// dates returns the date map for path, registering the path on first sight
func (h *Histogram) dates(path string) map[string]int64 {
	m, ok := h.counts[path]
	if !ok {
		m = make(map[string]int64)
		h.counts[path] = m
		h.order = append(h.order, path)
	}
	return m
}

// Len returns the number of distinct paths
func (h *Histogram) Len() int { return len(h.order) }

// Paths returns paths in first-seen order. The slice is shared; do not modify it
func (h *Histogram) Paths() []string { return h.order }

// Dates returns the non-zero counts of path in ascending date order
func (h *Histogram) Dates(path string) []DateCount {
	m := h.counts[path]
	out := make([]DateCount, 0, len(m))
	for d, c := range m {
		if c > 0 {
			out = append(out, DateCount{Date: d, Count: c})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Total returns the sum of all counts
func (h *Histogram) Total() int64 {
	var n int64
	for _, m := range h.counts {
		for _, c := range m {
			n += c
		}
	}
	return n
}

// Result freezes the histogram into its ordered, zero-free form
func (h *Histogram) Result() Result {
	entries := make([]PathEntry, 0, len(h.order))
	for _, p := range h.order {
		entries = append(entries, PathEntry{Path: p, Dates: h.Dates(p)})
	}
	return Result{Entries: entries}
}
