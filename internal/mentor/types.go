// Package mentor implements the topic prioritization, study-plan generation,
// career recommendation and exam clash detection engine. Everything here is a
// pure function over in-memory records; persistence and transport live with
// the callers.
package mentor

import "github.com/exam-sensei/mentor/internal/catalog"

// Difficulty is a topic's banded difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PrioritizedTopic is a topic annotated with its computed study priority.
// It is produced fresh per request and never persisted by the engine.
type PrioritizedTopic struct {
	Topic         catalog.Topic `json:"topic"`
	PriorityScore float64       `json:"priority_score"`
	EstimatedDays int           `json:"estimated_days"`
	Difficulty    Difficulty    `json:"difficulty"`
	Weightage     float64       `json:"weightage"`
	// NeedsDataReview marks a topic whose avg_questions is zero; the score is
	// computed against a one-hour floor and the record should be corrected
	// upstream.
	NeedsDataReview bool `json:"needs_data_review,omitempty"`
}

// DayAssignment binds one prioritized topic to a calendar slot.
type DayAssignment struct {
	Day            string     `json:"day"`
	Topic          string     `json:"topic"`
	FocusArea      string     `json:"focus_area"`
	EstimatedHours float64    `json:"estimated_hours"`
	Difficulty     Difficulty `json:"difficulty"`
}

// Week is one scheduled week of day assignments.
type Week struct {
	Number int             `json:"number"`
	Days   []DayAssignment `json:"days"`
}

// StudyPlan is a packed day-by-day schedule. Immutable once built.
type StudyPlan struct {
	TotalDays int    `json:"total_days"`
	Weeks     []Week `json:"weeks"`
}

// StudyPlanResult is the full response of study-plan generation.
type StudyPlanResult struct {
	ExamCode            string             `json:"exam_code"`
	TotalDays           int                `json:"total_days"`
	PrioritizedTopics   []PrioritizedTopic `json:"prioritized_topics"`
	WeeklyPlan          StudyPlan          `json:"weekly_plan"`
	EstimatedCompletion string             `json:"estimated_completion"`
	SuccessProbability  float64            `json:"success_probability"`
}

// CareerRecommendation is one recommended career path.
type CareerRecommendation struct {
	CareerPath       string   `json:"career_path"`
	Percentile       float64  `json:"percentile,omitempty"`
	RecommendedTier  string   `json:"recommended_tier,omitempty"`
	NextSteps        string   `json:"next_steps,omitempty"`
	Specializations  []string `json:"specializations,omitempty"`
	RecommendedExams []string `json:"recommended_exams,omitempty"`
	Colleges         []string `json:"colleges,omitempty"`
	BudgetAlignment  string   `json:"budget_alignment,omitempty"`
	Timeline         string   `json:"timeline,omitempty"`
	Reasoning        string   `json:"reasoning,omitempty"`
}

// RecommendationBundle is the result of career recommendation. Primary is the
// first matched category in check order, not the best-scoring one.
type RecommendationBundle struct {
	Primary          *CareerRecommendation  `json:"primary_recommendation"`
	AlternativePaths []CareerRecommendation `json:"alternative_paths"`
	ConfidenceScore  float64                `json:"confidence_score"`
}

// Severity grades how badly two exams collide.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Clash pairs two exam codes with their intersecting dates.
type Clash struct {
	Exams            [2]string `json:"exams"`
	ConflictingDates []string  `json:"conflicting_dates"`
	Severity         Severity  `json:"severity"`
}

// ClashReport lists detected clashes and resolution suggestions.
type ClashReport struct {
	HasClashes      bool     `json:"has_clashes"`
	Clashes         []Clash  `json:"clashes"`
	Recommendations []string `json:"recommendations"`
}
