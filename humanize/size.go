// Package humanize formats the handful of values the shell prints back to a
// user: file sizes and timestamps.
package humanize

import "fmt"

// unit is one step of the decimal (1000-based) size ladder BFS reports
// through.
type unit struct {
	suffix    string
	threshold float64
}

// No ecosystem size-formatting package (bytefmt, go-humanize) implements the
// exact 1000-based precision rule below — they're all either 1024-based or
// fixed-precision — so this stays on the standard library rather than
// forcing a mismatched formatter into the one place its output is directly
// compared against documented behavior.
var units = []unit{
	{"T", 1e12},
	{"G", 1e9},
	{"M", 1e6},
	{"K", 1e3},
	{"B", 0},
}

// FormatSize renders a byte count the way stat prints it: whole bytes as
// "NB", and each larger unit as a decimal value scaled by its threshold,
// shown with one digit of precision if the scaled value is below 10, and
// rounded to a whole number otherwise (so "2.0K" for 2000 bytes, but "26K",
// not "25.5K", for 25500 bytes).
func FormatSize(bytes uint32) string {
	size := float64(bytes)
	for _, u := range units {
		if size < u.threshold {
			continue
		}
		if u.threshold == 0 {
			return fmt.Sprintf("%d%s", bytes, u.suffix)
		}
		value := size / u.threshold
		precision := 0
		if value < 10 {
			precision = 1
		}
		return fmt.Sprintf("%.*f%s", precision, value, u.suffix)
	}
	return fmt.Sprintf("%dB", bytes)
}
