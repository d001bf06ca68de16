package mentor

import "math"

// Score divisors mapping raw marks onto the 0-100 band for the two common
// exam scales. These are linear-banding heuristics, not calibrated
// population percentiles.
const (
	EngineeringScoreDivisor = 3.0 // 300-point scale
	MedicalScoreDivisor     = 7.2 // 720-point scale
)

const tierCount = 5

// Percentile maps a raw score onto [0,100] using a fixed divisor.
func Percentile(score, divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	p := score / divisor
	if p < 0 {
		return 0
	}
	return math.Min(p, 100)
}

// TierIndex discretizes a percentile into one of five bands, 0 lowest to 4
// highest.
func TierIndex(percentile float64) int {
	if percentile < 0 {
		return 0
	}
	idx := int(percentile / 20)
	if idx > tierCount-1 {
		return tierCount - 1
	}
	return idx
}

// round2 rounds to two decimals, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
