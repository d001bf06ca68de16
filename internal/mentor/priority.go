package mentor

import (
	"sort"

	"github.com/exam-sensei/mentor/internal/catalog"
	"github.com/exam-sensei/mentor/internal/student"
)

const (
	// defaultWeightage is assumed for topics with no recorded history.
	defaultWeightage = 10.0
	// hoursPerQuestion is the fixed study-time estimate per average question.
	hoursPerQuestion = 2.0
	// baselineDays normalizes time pressure to a three-month horizon.
	baselineDays = 90.0

	weaknessMultiplier = 2.0
	strengthMultiplier = 0.5

	hardDifficultyThreshold   = 20.0
	mediumDifficultyThreshold = 10.0
)

// hardTopics take 1.5x the base estimate to master.
var hardTopics = map[string]bool{
	"modern_physics":    true,
	"organic_chemistry": true,
}

// PriorityScore computes a topic's study priority:
// (weightage x gap x time_pressure) / time_required, rounded half-up to two
// decimals. The weakness multiplier is checked first and wins when a topic is
// erroneously listed as both a strength and a weakness. A zero avg_questions
// would zero the divisor; time_required is floored at one hour instead and the
// caller flags the topic for data review.
func PriorityScore(topic catalog.Topic, profile student.Profile, daysAvailable int) float64 {
	weightage, ok := topic.CurrentWeightage()
	if !ok {
		weightage = defaultWeightage
	}

	gap := 1.0
	switch {
	case profile.HasWeakness(topic.Name):
		gap = weaknessMultiplier
	case profile.HasStrength(topic.Name):
		gap = strengthMultiplier
	}

	timeRequired := topic.AvgQuestions * hoursPerQuestion
	if timeRequired < 1 {
		timeRequired = 1
	}

	timePressure := float64(daysAvailable) / baselineDays
	if timePressure < 1 {
		timePressure = 1
	}

	return round2(weightage * gap * timePressure / timeRequired)
}

// EstimateDays estimates the days needed to master a topic at the profile's
// daily study hours, with a minimum of one day.
func EstimateDays(topic catalog.Topic, profile student.Profile) int {
	baseDays := int(topic.AvgQuestions) / 2 // 2 questions per day

	multiplier := 1.0
	if hardTopics[topic.Name] {
		multiplier = 1.5
	}

	days := int(float64(baseDays) * multiplier / profile.StudyHours())
	if days < 1 {
		return 1
	}
	return days
}

// DifficultyOf bands a topic by its hard-question percentage.
func DifficultyOf(topic catalog.Topic) Difficulty {
	hardPct := topic.DifficultyDistribution["hard"]
	switch {
	case hardPct > hardDifficultyThreshold:
		return DifficultyHard
	case hardPct > mediumDifficultyThreshold:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// PrioritizeTopics scores every topic and returns them sorted by descending
// priority. The sort is stable: ties keep catalog retrieval order.
func PrioritizeTopics(topics []catalog.Topic, profile student.Profile, daysAvailable int) []PrioritizedTopic {
	prioritized := make([]PrioritizedTopic, 0, len(topics))
	for _, topic := range topics {
		weightage, _ := topic.CurrentWeightage()
		prioritized = append(prioritized, PrioritizedTopic{
			Topic:           topic,
			PriorityScore:   PriorityScore(topic, profile, daysAvailable),
			EstimatedDays:   EstimateDays(topic, profile),
			Difficulty:      DifficultyOf(topic),
			Weightage:       weightage,
			NeedsDataReview: topic.AvgQuestions == 0,
		})
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		return prioritized[i].PriorityScore > prioritized[j].PriorityScore
	})
	return prioritized
}
