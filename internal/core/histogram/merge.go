package histogram

// Merge combines partial histograms given in worker-index order.
// A path takes the position of its first appearance scanning parts[0], parts[1], ...
// Counts for the same (path, date) are summed; dates are sorted and zeros dropped.
// nil parts are skipped.
func Merge(parts ...*Histogram) Result {
	merged := New()
	for _, h := range parts {
		if h == nil {
			continue
		}
		for _, p := range h.Paths() {
			dst := merged.dates(p)
			for d, c := range h.counts[p] {
				if c > 0 {
					dst[d] += c
				}
			}
		}
	}
	return merged.Result()
}
