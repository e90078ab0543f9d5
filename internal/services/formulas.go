package services

import "math"

const (
	minSupport    = 3
	sharePlaces   = 2
	overviewShare = 1
)

// ratePercent returns round(numerator*100/denominator, places) with halves rounded away
// from zero, or 0 when the denominator is 0. It works on integers so that values such
// as 1.005 do not drift below the tie.
func ratePercent(numerator, denominator int64, places int) float64 {
	if denominator == 0 {
		return 0
	}

	scale := int64(math.Pow10(places))
	n := numerator * 100 * scale
	negative := (n < 0) != (denominator < 0)
	n, d := abs(n), abs(denominator)

	q := (2*n + d) / (2 * d)
	if negative {
		q = -q
	}
	return float64(q) / float64(scale)
}

func growthRate(current, previous int64) float64 {
	return ratePercent(current-previous, previous, sharePlaces)
}

func roundedAmount(value *float64) int64 {
	if value == nil || math.IsNaN(*value) {
		return 0
	}
	return int64(math.Round(*value))
}

func truncatedAmount(value *float64) int64 {
	if value == nil || math.IsNaN(*value) {
		return 0
	}
	return int64(*value)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
