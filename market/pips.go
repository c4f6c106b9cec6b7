package market

import "math"

func pipSize(loc int) float64 {
	return math.Pow(10, float64(loc))
}

// PipSize returns the price increment of one pip for pair.
func PipSize(pair string) float64 {
	if m, ok := Lookup(pair); ok {
		return pipSize(m.PipLocation)
	}
	return pipSize(DefaultPipLocation)
}

// Pips converts a price move into signed pips from the trader's point of
// view: a long that exits above entry is positive, a short that exits above
// entry is negative. The result is rounded to a tenth of a pip.
func Pips(pair string, long bool, entry, exit float64) float64 {
	delta := exit - entry
	if !long {
		delta = -delta
	}
	p := delta / PipSize(pair)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return math.Round(p*10) / 10
}
