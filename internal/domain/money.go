package domain

import "math"

// Round2 rounds an amount to cent precision. All amounts exposed by the
// analytics aggregator and the transfer engine go through this.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Abs returns the magnitude of a signed amount.
func Abs(v float64) float64 {
	return math.Abs(v)
}
