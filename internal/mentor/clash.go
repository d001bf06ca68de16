package mentor

import (
	"fmt"
	"sort"
)

// DetectClashes pairwise-intersects the date sets of the given exams. Pairs
// are formed i<j over the order of examCodes, so callers control pair indices
// by supplying an ordered slice; the detector is pure given the pre-fetched
// date lookup. Severity is high when more than one date collides, medium
// otherwise. Conflicting dates are returned sorted.
func DetectClashes(examCodes []string, dates map[string][]string) ClashReport {
	var clashes []Clash

	for i := 0; i < len(examCodes); i++ {
		for j := i + 1; j < len(examCodes); j++ {
			a, b := examCodes[i], examCodes[j]
			overlap := intersectDates(dates[a], dates[b])
			if len(overlap) == 0 {
				continue
			}

			severity := SeverityMedium
			if len(overlap) > 1 {
				severity = SeverityHigh
			}
			clashes = append(clashes, Clash{
				Exams:            [2]string{a, b},
				ConflictingDates: overlap,
				Severity:         severity,
			})
		}
	}

	return ClashReport{
		HasClashes:      len(clashes) > 0,
		Clashes:         clashes,
		Recommendations: clashResolutions(clashes),
	}
}

func intersectDates(a, b []string) []string {
	set := make(map[string]bool, len(a))
	for _, d := range a {
		set[d] = true
	}

	seen := make(map[string]bool)
	var overlap []string
	for _, d := range b {
		if set[d] && !seen[d] {
			overlap = append(overlap, d)
			seen[d] = true
		}
	}
	sort.Strings(overlap)
	return overlap
}

// clashResolutions emits the same two suggestion templates for every clash
// regardless of severity, or a single all-clear line when none exist.
func clashResolutions(clashes []Clash) []string {
	if len(clashes) == 0 {
		return []string{"No clashes detected. You can prepare for all exams simultaneously."}
	}

	var recs []string
	for _, clash := range clashes {
		recs = append(recs,
			fmt.Sprintf("Consider prioritizing %s over %s if your career goals align more closely with %s.",
				clash.Exams[0], clash.Exams[1], clash.Exams[0]),
			"Look for rescheduled dates or consider taking one exam in the next session.",
		)
	}
	return recs
}
