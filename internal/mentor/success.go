package mentor

import (
	"math"

	"github.com/exam-sensei/mentor/internal/student"
)

const (
	// successCoverageCutoff counts weightage over the top 20 topics by rank.
	// Deliberately wider than the plan's top-10 display cutoff.
	successCoverageCutoff = 20
	// successDamping discounts the raw coverage-times-consistency estimate.
	successDamping = 0.9
)

// SuccessProbability derives a completion-probability estimate from the
// prioritized topic list (descending rank order) and the profile's study
// consistency, rounded half-up to two decimals.
func SuccessProbability(prioritized []PrioritizedTopic, profile student.Profile) float64 {
	cutoff := successCoverageCutoff
	if len(prioritized) < cutoff {
		cutoff = len(prioritized)
	}

	var covered float64
	for _, pt := range prioritized[:cutoff] {
		covered += pt.Weightage
	}

	base := math.Min(covered/100, 1.0)
	return round2(base * profile.Consistency() * successDamping)
}
