package histogram

// DateCount is one date bucket of a path
type DateCount struct {
	Date  string
	Count int64
}

// PathEntry is a path with its date buckets in ascending date order
type PathEntry struct {
	Path  string
	Dates []DateCount
}

// Result is the merged, ordered output of a run. Treat it as immutable
type Result struct {
	Entries []PathEntry
}

// Len returns the number of paths
func (r Result) Len() int { return len(r.Entries) }

// Total returns the sum of every count
func (r Result) Total() int64 {
	var n int64
	for _, e := range r.Entries {
		for _, d := range e.Dates {
			n += d.Count
		}
	}
	return n
}
