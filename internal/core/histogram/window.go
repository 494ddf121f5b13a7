package histogram

const (
	monthsPerYear = 12
	daysPerMonth  = 31
	dateLen       = 10
)

// Window is an inclusive year span whose dates get dense counter slots.
// Every year holds 12x31 slots so impossible days like 02-31 simply stay zero.
// The zero Window is disabled and every date is counted sparsely.
type Window struct {
	FromYear int
	ToYear   int
}

// DefaultWindow matches the years the access logs are expected to span
var DefaultWindow = Window{FromYear: 2021, ToYear: 2026}

// Enabled reports whether the window has any slots
func (w Window) Enabled() bool { return w.FromYear > 0 && w.ToYear >= w.FromYear }

// Slots returns the number of dense counters per path
func (w Window) Slots() int {
	if !w.Enabled() {
		return 0
	}
	return (w.ToYear - w.FromYear + 1) * monthsPerYear * daysPerMonth
}

// Index maps a strict YYYY-MM-DD date inside the window to its slot.
// Anything else, including dates that merely look close, reports false
func (w Window) Index(date []byte) (int, bool) {
	if !w.Enabled() || len(date) != dateLen || date[4] != '-' || date[7] != '-' {
		return 0, false
	}
	y, ok := digits(date[0:4])
	if !ok || y < w.FromYear || y > w.ToYear {
		return 0, false
	}
	m, ok := digits(date[5:7])
	if !ok || m < 1 || m > monthsPerYear {
		return 0, false
	}
	d, ok := digits(date[8:10])
	if !ok || d < 1 || d > daysPerMonth {
		return 0, false
	}
	return ((y-w.FromYear)*monthsPerYear+(m-1))*daysPerMonth + (d - 1), true
}

// Date renders slot i back to its YYYY-MM-DD form
func (w Window) Date(i int) string {
	d := i%daysPerMonth + 1
	i /= daysPerMonth
	m := i%monthsPerYear + 1
	y := i/monthsPerYear + w.FromYear

	var b [dateLen]byte
	b[0] = byte('0' + y/1000%10)
	b[1] = byte('0' + y/100%10)
	b[2] = byte('0' + y/10%10)
	b[3] = byte('0' + y%10)
	b[4] = '-'
	b[5] = byte('0' + m/10)
	b[6] = byte('0' + m%10)
	b[7] = '-'
	b[8] = byte('0' + d/10)
	b[9] = byte('0' + d%10)
	return string(b[:])
}

func digits(b []byte) (int, bool) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
