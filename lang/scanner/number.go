package scanner

import "strconv"

// parseUint and parseFloat are best-effort: the scanner only ever calls
// them on a byte run it has already validated as all-digits (optionally
// with one '.'), so the only failure mode is magnitude overflow, which
// Go's parsers saturate rather than panic on.
func parseUint(lit string) int64 {
	v, _ := strconv.ParseUint(lit, 10, 64)
	return int64(v)
}

func parseFloat(lit string) float64 {
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}
