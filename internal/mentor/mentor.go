package mentor

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/exam-sensei/mentor/internal/catalog"
	"github.com/exam-sensei/mentor/internal/lifecycle"
	"github.com/exam-sensei/mentor/internal/student"
)

// topPlanTopics is the display cutoff for the prioritized list returned with
// a study plan. Distinct from the success estimator's top-20 coverage cutoff.
const topPlanTopics = 10

// recommendation scores and lifetimes, by kind.
const (
	examRecHighScore   = 0.9
	examRecMediumScore = 0.7
	clashAlertScore    = 0.95

	examRecTTL    = 90 * 24 * time.Hour
	clashAlertTTL = 30 * 24 * time.Hour
)

// Catalog supplies exam and topic records to the mentor.
type Catalog interface {
	Exam(code string) (catalog.Exam, bool)
	TopicsForExam(code string) ([]catalog.Topic, bool)
	ExamDates(code string) []string
}

// Config holds the mentor's injected collaborators.
type Config struct {
	Catalog         Catalog
	Profiles        student.Store
	Recommendations RecommendationStore
	Activity        student.ActivityLog
}

// Mentor combines the scoring components behind injected data sources.
// It holds no mutable state of its own; every call works on a snapshot of
// the supplied records.
type Mentor struct {
	catalog  Catalog
	profiles student.Store
	recs     RecommendationStore
	activity student.ActivityLog
}

// New creates a mentor from its collaborators.
func New(cfg Config) (*Mentor, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.Profiles == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	recs := cfg.Recommendations
	if recs == nil {
		recs = NewMemoryStore()
	}
	activity := cfg.Activity
	if activity == nil {
		activity = student.NopActivityLog{}
	}
	return &Mentor{
		catalog:  cfg.Catalog,
		profiles: cfg.Profiles,
		recs:     recs,
		activity: activity,
	}, nil
}

// GenerateStudyPlan chains prioritization, schedule packing and the success
// estimate over plain records. Pure; exposed for callers that already hold
// the topic snapshot.
func GenerateStudyPlan(examCode string, topics []catalog.Topic, profile student.Profile, daysAvailable int) StudyPlanResult {
	prioritized := PrioritizeTopics(topics, profile, daysAvailable)

	display := prioritized
	if len(display) > topPlanTopics {
		display = display[:topPlanTopics]
	}

	return StudyPlanResult{
		ExamCode:            examCode,
		TotalDays:           daysAvailable,
		PrioritizedTopics:   display,
		WeeklyPlan:          BuildWeeklyPlan(prioritized, daysAvailable),
		EstimatedCompletion: fmt.Sprintf("%d days from now", daysAvailable),
		SuccessProbability:  SuccessProbability(prioritized, profile),
	}
}

// StudyPlanForUser loads the user's profile and the exam's topics, then
// generates a study plan.
func (m *Mentor) StudyPlanForUser(userID, examCode string, daysAvailable int) (StudyPlanResult, error) {
	profile, err := m.profiles.GetProfile(userID)
	if err != nil {
		return StudyPlanResult{}, fmt.Errorf("load profile: %w", err)
	}
	topics, ok := m.catalog.TopicsForExam(examCode)
	if !ok {
		return StudyPlanResult{}, fmt.Errorf("unknown exam: %s", examCode)
	}

	result := GenerateStudyPlan(examCode, topics, *profile, daysAvailable)

	if err := m.activity.LogActivity(student.Activity{
		UserID:       userID,
		ActivityType: "study_plan_generated",
		Details: map[string]any{
			"exam_code":      examCode,
			"days_available": daysAvailable,
		},
	}); err != nil {
		slog.Warn("failed to log study plan activity", "error", err)
	}

	return result, nil
}

// PrioritizeForUser returns only the ranked topic list, for callers that need
// ranking without a schedule (e.g. a top-3 display).
func (m *Mentor) PrioritizeForUser(userID, examCode string, daysAvailable int) ([]PrioritizedTopic, error) {
	profile, err := m.profiles.GetProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	topics, ok := m.catalog.TopicsForExam(examCode)
	if !ok {
		return nil, fmt.Errorf("unknown exam: %s", examCode)
	}
	return PrioritizeTopics(topics, *profile, daysAvailable), nil
}

// CareerForUser builds career recommendations from the stored profile and the
// supplied exam scores.
func (m *Mentor) CareerForUser(userID string, examScores map[string]float64) (RecommendationBundle, error) {
	profile, err := m.profiles.GetProfile(userID)
	if err != nil {
		return RecommendationBundle{}, fmt.Errorf("load profile: %w", err)
	}
	return RecommendCareer(*profile, examScores), nil
}

// ClashesForUser detects date clashes across the user's active exams, using
// the catalog's published dates.
func (m *Mentor) ClashesForUser(userID string) (ClashReport, error) {
	profile, err := m.profiles.GetProfile(userID)
	if err != nil {
		return ClashReport{}, fmt.Errorf("load profile: %w", err)
	}

	dates := make(map[string][]string, len(profile.ActiveExams))
	for _, code := range profile.ActiveExams {
		dates[code] = m.catalog.ExamDates(code)
	}
	return DetectClashes(profile.ActiveExams, dates), nil
}

// PersonalizedResult is the merged recommendation record handed back for
// persistence and display.
type PersonalizedResult struct {
	UserStage       string           `json:"user_stage"`
	CareerPaths     []string         `json:"career_paths"`
	Recommendations []Recommendation `json:"recommendations"`
	NextActions     []string         `json:"next_actions"`
}

// PersonalizedRecommendations combines stage-based exam suggestions and clash
// alerts, persists them, and returns the merged record.
func (m *Mentor) PersonalizedRecommendations(userID string) (PersonalizedResult, error) {
	profile, err := m.profiles.GetProfile(userID)
	if err != nil {
		return PersonalizedResult{}, fmt.Errorf("load profile: %w", err)
	}

	now := time.Now()
	var recs []Recommendation

	for _, suggestion := range lifecycle.RecommendNextExams(profile.Stage, profile.CareerPaths) {
		score := examRecMediumScore
		if suggestion.Priority == "high" {
			score = examRecHighScore
		}
		recs = append(recs, Recommendation{
			UserID:    userID,
			ExamCode:  suggestion.Exam,
			Type:      "career_path",
			Score:     score,
			Reasoning: suggestion.Reason,
			ExpiresAt: now.Add(examRecTTL),
		})
	}

	if len(profile.ActiveExams) > 1 {
		report, err := m.ClashesForUser(userID)
		if err != nil {
			return PersonalizedResult{}, err
		}
		if report.HasClashes {
			for _, clash := range report.Clashes {
				recs = append(recs, Recommendation{
					UserID: userID,
					Type:   "clash_alert",
					Score:  clashAlertScore,
					Reasoning: fmt.Sprintf("Exam clash detected between %s. %s",
						strings.Join(clash.Exams[:], ", "), report.Recommendations[0]),
					ExpiresAt: now.Add(clashAlertTTL),
				})
			}
		}
	}

	for i := range recs {
		id, err := m.recs.SaveRecommendation(recs[i])
		if err != nil {
			return PersonalizedResult{}, fmt.Errorf("save recommendation: %w", err)
		}
		recs[i].ID = id
	}

	return PersonalizedResult{
		UserStage:       profile.Stage,
		CareerPaths:     profile.CareerPaths,
		Recommendations: recs,
		NextActions:     nextActions(*profile),
	}, nil
}

// nextActions generates stage-appropriate action items.
func nextActions(profile student.Profile) []string {
	var actions []string

	switch profile.Stage {
	case "class_12_completed":
		actions = append(actions,
			"Take mock tests for target exams",
			"Finalize college preferences based on rank",
			"Prepare for counseling/admission process",
		)
	case "undergraduate_started":
		for _, path := range profile.CareerPaths {
			if path == "engineering" {
				actions = append(actions,
					"Start building projects for resume",
					"Plan for GATE preparation (2 years ahead)",
					"Look for internship opportunities",
				)
				break
			}
		}
	}

	actions = append(actions,
		"Complete daily study goals",
		"Review weak topics regularly",
	)
	return actions
}
