// Package student holds the preparation profile record and its persistence.
// Every recognized profile field is explicit so missing-field behavior is a
// compile-time contract rather than a runtime lookup with a guessed default.
package student

import (
	"slices"

	"golang.org/x/text/cases"
)

const (
	// DefaultStudyHoursPerDay is assumed when a profile carries no value.
	DefaultStudyHoursPerDay = 6.0
	// DefaultStudyConsistency is assumed when a profile carries no value.
	DefaultStudyConsistency = 0.7

	strengthThreshold = 80.0
	weaknessThreshold = 40.0
)

// foldKey canonicalizes a name for comparison. Casers are stateful, so one is
// created per call rather than shared.
func foldKey(s string) string {
	return cases.Fold().String(s)
}

// Profile is a student's preparation state.
type Profile struct {
	UserID           string   `json:"user_id"`
	Stage            string   `json:"stage,omitempty"`
	CareerPaths      []string `json:"career_paths,omitempty"`
	ActiveExams      []string `json:"active_exams,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	Budget           string   `json:"budget,omitempty"`
	Location         string   `json:"location,omitempty"`
	Strengths        []string `json:"strengths,omitempty"`
	Weaknesses       []string `json:"weaknesses,omitempty"`
	StudyHoursPerDay float64  `json:"study_hours_per_day,omitempty"`
	StudyConsistency float64  `json:"study_consistency,omitempty"`
}

// StudyHours returns the configured daily study hours, or the default.
func (p Profile) StudyHours() float64 {
	if p.StudyHoursPerDay <= 0 {
		return DefaultStudyHoursPerDay
	}
	return p.StudyHoursPerDay
}

// Consistency returns the configured study consistency in [0,1], or the default.
func (p Profile) Consistency() float64 {
	if p.StudyConsistency <= 0 || p.StudyConsistency > 1 {
		return DefaultStudyConsistency
	}
	return p.StudyConsistency
}

// HasStrength reports whether name is listed as a strength, using Unicode
// case folding so catalog casing differences don't change scoring.
func (p Profile) HasStrength(name string) bool {
	return containsFold(p.Strengths, name)
}

// HasWeakness reports whether name is listed as a weakness.
func (p Profile) HasWeakness(name string) bool {
	return containsFold(p.Weaknesses, name)
}

// HasInterest reports whether the profile lists the given interest.
func (p Profile) HasInterest(name string) bool {
	return containsFold(p.Interests, name)
}

// ApplyTopicPerformance reclassifies topics by mock-test score: 80 and above
// becomes a strength (clearing any weakness entry), 40 and below a weakness.
// Scores in between leave the classification untouched.
func (p *Profile) ApplyTopicPerformance(performance map[string]float64) {
	for topic, score := range performance {
		switch {
		case score >= strengthThreshold:
			if !containsFold(p.Strengths, topic) {
				p.Strengths = append(p.Strengths, topic)
			}
			p.Weaknesses = slices.DeleteFunc(p.Weaknesses, func(w string) bool {
				return foldKey(w) == foldKey(topic)
			})
		case score <= weaknessThreshold:
			if !containsFold(p.Weaknesses, topic) {
				p.Weaknesses = append(p.Weaknesses, topic)
			}
		}
	}
}

func containsFold(list []string, name string) bool {
	folded := foldKey(name)
	for _, v := range list {
		if foldKey(v) == folded {
			return true
		}
	}
	return false
}
