package mentor_test

import (
	"testing"

	"github.com/exam-sensei/mentor/internal/catalog"
	"github.com/exam-sensei/mentor/internal/mentor"
	"github.com/exam-sensei/mentor/internal/student"
)

func mechanicsTopic() catalog.Topic {
	return catalog.Topic{
		Subject:                "physics",
		Name:                   "mechanics",
		WeightageHistory:       []float64{25, 24, 26, 23, 25},
		AvgQuestions:           8,
		DifficultyDistribution: map[string]float64{"easy": 40, "medium": 45, "hard": 15},
	}
}

func TestPriorityScore_WeaknessTopic(t *testing.T) {
	profile := student.Profile{Weaknesses: []string{"mechanics"}}

	// weightage 25, gap 2.0, time_required 16, time_pressure max(1, 90/90)=1:
	// (25*2*1)/16 = 3.125, half-up to 3.13.
	got := mentor.PriorityScore(mechanicsTopic(), profile, 90)
	if got != 3.13 {
		t.Errorf("PriorityScore() = %v, want 3.13", got)
	}
}

func TestPriorityScore_StrengthTopic(t *testing.T) {
	profile := student.Profile{Strengths: []string{"mechanics"}}

	// (25*0.5*1)/16 = 0.78125 -> 0.78.
	got := mentor.PriorityScore(mechanicsTopic(), profile, 90)
	if got != 0.78 {
		t.Errorf("PriorityScore() = %v, want 0.78", got)
	}
}

func TestPriorityScore_NeutralTopic(t *testing.T) {
	// (25*1*1)/16 = 1.5625 -> 1.56.
	got := mentor.PriorityScore(mechanicsTopic(), student.Profile{}, 90)
	if got != 1.56 {
		t.Errorf("PriorityScore() = %v, want 1.56", got)
	}
}

func TestPriorityScore_WeaknessWinsOverStrength(t *testing.T) {
	profile := student.Profile{
		Strengths:  []string{"mechanics"},
		Weaknesses: []string{"mechanics"},
	}

	got := mentor.PriorityScore(mechanicsTopic(), profile, 90)
	if got != 3.13 {
		t.Errorf("PriorityScore() = %v, want 3.13 (weakness multiplier must win)", got)
	}
}

func TestPriorityScore_MissingWeightageDefaultsToTen(t *testing.T) {
	topic := mechanicsTopic()
	topic.WeightageHistory = nil

	// (10*1*1)/16 = 0.625 -> 0.63 (half-up).
	got := mentor.PriorityScore(topic, student.Profile{}, 90)
	if got != 0.63 {
		t.Errorf("PriorityScore() = %v, want 0.63", got)
	}
}

func TestPriorityScore_TimePressureRisesAboveBaseline(t *testing.T) {
	base := mentor.PriorityScore(mechanicsTopic(), student.Profile{}, 90)
	longer := mentor.PriorityScore(mechanicsTopic(), student.Profile{}, 180)

	// 180/90 doubles the multiplier: (25*1*2)/16 = 3.125 -> 3.13. Known quirk
	// of the formula: more available time raises the score rather than
	// discounting urgency.
	if longer != 3.13 {
		t.Errorf("PriorityScore(180 days) = %v, want 3.13", longer)
	}

	short := mentor.PriorityScore(mechanicsTopic(), student.Profile{}, 30)
	if short != base {
		t.Errorf("PriorityScore(30 days) = %v, want %v (no discount below 90-day baseline)", short, base)
	}
}

func TestPriorityScore_ZeroQuestionsUsesOneHourFloor(t *testing.T) {
	topic := mechanicsTopic()
	topic.AvgQuestions = 0

	// time_required floors at 1 hour: (25*1*1)/1 = 25.
	got := mentor.PriorityScore(topic, student.Profile{}, 90)
	if got != 25 {
		t.Errorf("PriorityScore() = %v, want 25 (one-hour floor, not a crash)", got)
	}
}

func TestPriorityScore_Monotonicity(t *testing.T) {
	heavier := mechanicsTopic()
	heavier.WeightageHistory = []float64{30}
	lighter := mechanicsTopic()
	lighter.WeightageHistory = []float64{20}

	if mentor.PriorityScore(heavier, student.Profile{}, 90) <= mentor.PriorityScore(lighter, student.Profile{}, 90) {
		t.Error("score should increase with weightage")
	}

	slower := mechanicsTopic()
	slower.AvgQuestions = 12
	if mentor.PriorityScore(slower, student.Profile{}, 90) >= mentor.PriorityScore(mechanicsTopic(), student.Profile{}, 90) {
		t.Error("score should decrease with required time")
	}
}

func TestEstimateDays(t *testing.T) {
	tests := []struct {
		name    string
		topic   catalog.Topic
		profile student.Profile
		want    int
	}{
		{
			name:    "floors at one day",
			topic:   catalog.Topic{Name: "optics", AvgQuestions: 3},
			profile: student.Profile{},
			want:    1, // (3/2=1) * 1.0 / 6 = 0 -> 1
		},
		{
			name:    "hard topic multiplier",
			topic:   catalog.Topic{Name: "modern_physics", AvgQuestions: 40},
			profile: student.Profile{StudyHoursPerDay: 2},
			want:    15, // 20 * 1.5 / 2
		},
		{
			name:    "default study hours",
			topic:   catalog.Topic{Name: "mechanics", AvgQuestions: 24},
			profile: student.Profile{},
			want:    2, // 12 * 1.0 / 6
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mentor.EstimateDays(tt.topic, tt.profile); got != tt.want {
				t.Errorf("EstimateDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDifficultyOf(t *testing.T) {
	tests := []struct {
		hardPct float64
		want    mentor.Difficulty
	}{
		{25, mentor.DifficultyHard},
		{20, mentor.DifficultyMedium}, // threshold is strict
		{15, mentor.DifficultyMedium},
		{10, mentor.DifficultyEasy},
		{0, mentor.DifficultyEasy},
	}

	for _, tt := range tests {
		topic := catalog.Topic{DifficultyDistribution: map[string]float64{"hard": tt.hardPct}}
		if got := mentor.DifficultyOf(topic); got != tt.want {
			t.Errorf("DifficultyOf(hard=%v) = %q, want %q", tt.hardPct, got, tt.want)
		}
	}
}

func TestDifficultyOf_MissingDistribution(t *testing.T) {
	if got := mentor.DifficultyOf(catalog.Topic{}); got != mentor.DifficultyEasy {
		t.Errorf("DifficultyOf(no distribution) = %q, want easy", got)
	}
}

func TestPrioritizeTopics_SortsDescending(t *testing.T) {
	topics := []catalog.Topic{
		{Name: "optics", WeightageHistory: []float64{8}, AvgQuestions: 3},
		{Name: "mechanics", WeightageHistory: []float64{25}, AvgQuestions: 8},
		{Name: "electromagnetism", WeightageHistory: []float64{20}, AvgQuestions: 6},
	}
	profile := student.Profile{Weaknesses: []string{"mechanics"}}

	prioritized := mentor.PrioritizeTopics(topics, profile, 90)

	if len(prioritized) != 3 {
		t.Fatalf("len = %d, want 3", len(prioritized))
	}
	for i := 1; i < len(prioritized); i++ {
		if prioritized[i].PriorityScore > prioritized[i-1].PriorityScore {
			t.Fatalf("not sorted descending at %d: %v > %v", i, prioritized[i].PriorityScore, prioritized[i-1].PriorityScore)
		}
	}
	if prioritized[0].Topic.Name != "mechanics" {
		t.Errorf("top topic = %q, want mechanics (weakness boost)", prioritized[0].Topic.Name)
	}
}

func TestPrioritizeTopics_StableTies(t *testing.T) {
	// Identical records score identically; retrieval order must hold.
	topics := []catalog.Topic{
		{Name: "first", WeightageHistory: []float64{10}, AvgQuestions: 4},
		{Name: "second", WeightageHistory: []float64{10}, AvgQuestions: 4},
		{Name: "third", WeightageHistory: []float64{10}, AvgQuestions: 4},
	}

	prioritized := mentor.PrioritizeTopics(topics, student.Profile{}, 90)

	for i, want := range []string{"first", "second", "third"} {
		if prioritized[i].Topic.Name != want {
			t.Errorf("prioritized[%d] = %q, want %q", i, prioritized[i].Topic.Name, want)
		}
	}
}

func TestPrioritizeTopics_FlagsZeroQuestionTopics(t *testing.T) {
	topics := []catalog.Topic{{Name: "ghost", WeightageHistory: []float64{5}}}

	prioritized := mentor.PrioritizeTopics(topics, student.Profile{}, 90)

	if !prioritized[0].NeedsDataReview {
		t.Error("zero avg_questions topic should be flagged for data review")
	}
}

func TestPrioritizeTopics_AnnotationWeightageDefaultsToZero(t *testing.T) {
	// Scoring uses a default weightage of 10 for missing history, but the
	// annotated record reports the literal current weightage, which is 0.
	topics := []catalog.Topic{{Name: "no_history", AvgQuestions: 4}}

	prioritized := mentor.PrioritizeTopics(topics, student.Profile{}, 90)

	if prioritized[0].Weightage != 0 {
		t.Errorf("Weightage = %v, want 0 for missing history", prioritized[0].Weightage)
	}
	if prioritized[0].PriorityScore == 0 {
		t.Error("PriorityScore should still use the 10%% scoring default")
	}
}

func TestPrioritizeTopics_Empty(t *testing.T) {
	prioritized := mentor.PrioritizeTopics(nil, student.Profile{}, 90)
	if len(prioritized) != 0 {
		t.Errorf("len = %d, want 0", len(prioritized))
	}
}
