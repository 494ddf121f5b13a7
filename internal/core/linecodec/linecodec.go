// Package linecodec extracts the (path, date) pair from one fixed-layout access line.
//
// A well-formed line is a 19 byte host prefix, the request path, and a 27 byte
// suffix made of a comma, an RFC3339 timestamp and the newline:
//
//	https://stitcher.io/blog/some-post,2024-01-15T10:11:12+00:00\n
//
// The layout is positional. Nothing is validated beyond the offsets, so a line
// that does not follow it decodes to garbage rather than to an error.
//
// A line must also be long enough for both the prefix and the suffix (46 bytes),
// which is stricter than the 30 byte minimum: shorter lines are reported as not ok.
package linecodec

const (
	// MinLineLen is the shortest line (terminator included) considered at all
	MinLineLen = 30

	// PrefixLen is the width of the fixed host prefix
	PrefixLen = 19

	// SuffixLen is the width of the fixed ",<timestamp>\n" suffix
	SuffixLen = 27

	// DateFromEnd is how far before line end the date starts
	DateFromEnd = 26

	// DateLen is the width of a YYYY-MM-DD date
	DateLen = 10
)

// Decode returns the path and date of line, which must include its terminator.
// ok is false for lines too short to hold the prefix and suffix.
// The returned slices alias line.
func Decode(line []byte) (path, date []byte, ok bool) {
	l := len(line)
	if l < MinLineLen || l < PrefixLen+SuffixLen {
		return nil, nil, false
	}
	path = line[PrefixLen : l-SuffixLen]
	date = line[l-DateFromEnd : l-DateFromEnd+DateLen]
	return path, date, true
}
