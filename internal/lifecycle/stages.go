// Package lifecycle models a student's progression through exam-preparation
// stages. All functions are pure over their inputs; callers own persistence
// and notification delivery.
package lifecycle

import (
	"fmt"
	"strings"
	"time"
)

// Stages is the ordered progression of preparation stages.
var Stages = []string{
	"class_10_completed",
	"class_11_started",
	"class_12_started",
	"class_12_completed",
	"entrance_exams_preparing",
	"college_admission_phase",
	"undergraduate_started",
	"competitive_exams_preparing",
	"post_graduation",
	"career_started",
}

// CareerPathExams maps a career path to its entrance exams.
var CareerPathExams = map[string][]string{
	"engineering":    {"jee_main", "jee_advanced", "bitsat", "viteee"},
	"medical":        {"neet", "aiims", "jipmer"},
	"commerce":       {"cat", "mat", "xat"},
	"science":        {"iisc", "tifr", "ncbs"},
	"civil_services": {"upsc_prelims", "upsc_mains"},
	"defense":        {"nda", "cds", "afcat"},
}

// ExamSuggestion is a stage-based exam recommendation.
type ExamSuggestion struct {
	Exam     string `json:"exam"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// NextStage checks whether the milestone triggers warrant a stage
// progression at the given time. It returns the new stage and true when a
// trigger date has passed.
func NextStage(stage string, triggers map[string]time.Time, now time.Time) (string, bool) {
	switch stage {
	case "class_12_started":
		if due(triggers, "board_exam_date", now) {
			return "class_12_completed", true
		}
	case "entrance_exams_preparing":
		if due(triggers, "jee_result_date", now) || due(triggers, "neet_result_date", now) {
			return "college_admission_phase", true
		}
	case "college_admission_phase":
		if due(triggers, "college_start_date", now) {
			return "undergraduate_started", true
		}
	}
	return "", false
}

func due(triggers map[string]time.Time, name string, now time.Time) bool {
	t, ok := triggers[name]
	return ok && t.Before(now)
}

// MilestoneTriggers generates the trigger dates appropriate for a newly
// entered stage.
func MilestoneTriggers(stage string, careerPaths []string, now time.Time) map[string]time.Time {
	triggers := make(map[string]time.Time)

	switch stage {
	case "class_12_completed":
		triggers["jee_application_start"] = now.AddDate(0, 0, 30)
		triggers["neet_application_start"] = now.AddDate(0, 0, 60)
		triggers["jee_exam_date"] = now.AddDate(0, 0, 120)
		triggers["neet_exam_date"] = now.AddDate(0, 0, 150)
	case "college_admission_phase":
		triggers["college_start_date"] = now.AddDate(0, 0, 90)
		triggers["semester_exam_date"] = now.AddDate(0, 0, 120)
	case "undergraduate_started":
		if contains(careerPaths, "engineering") {
			triggers["gate_preparation_start"] = now.AddDate(2, 0, 0)
			triggers["internship_season"] = now.AddDate(2, 6, 0)
		}
	}

	return triggers
}

// reminderLead is how far ahead of a milestone its reminder fires.
const reminderLead = 7 * 24 * time.Hour

// DueReminders returns the trigger names whose reminder window has opened.
func DueReminders(triggers map[string]time.Time, now time.Time) []string {
	var names []string
	for name, date := range triggers {
		if !now.Before(date.Add(-reminderLead)) {
			names = append(names, name)
		}
	}
	return names
}

// MilestoneMessage renders the reminder text for a trigger.
func MilestoneMessage(trigger string, date time.Time) string {
	day := date.Format("January 02")
	switch trigger {
	case "jee_application_start":
		return fmt.Sprintf("JEE Main applications open in 7 days (%s). Start preparing your documents!", day)
	case "neet_application_start":
		return fmt.Sprintf("NEET applications open in 7 days (%s). Ensure you have all required certificates!", day)
	case "jee_exam_date":
		return fmt.Sprintf("JEE Main exam in 7 days (%s). Final revision phase begins now!", day)
	case "neet_exam_date":
		return fmt.Sprintf("NEET exam in 7 days (%s). Focus on high-weightage topics!", day)
	case "college_start_date":
		return fmt.Sprintf("College starts in 7 days (%s). Get ready for your academic journey!", day)
	case "gate_preparation_start":
		return "Time to start GATE preparation! Exam is in 2 years."
	case "internship_season":
		return "Internship season approaching. Start building your resume and projects!"
	default:
		return fmt.Sprintf("Milestone approaching: %s", titleCase(trigger))
	}
}

// RecommendNextExams suggests exams for the current stage and career paths.
func RecommendNextExams(stage string, careerPaths []string) []ExamSuggestion {
	var recs []ExamSuggestion

	switch stage {
	case "class_12_started", "class_12_completed":
		if contains(careerPaths, "engineering") {
			recs = append(recs,
				ExamSuggestion{Exam: "jee_main", Priority: "high", Reason: "Primary engineering entrance exam"},
				ExamSuggestion{Exam: "bitsat", Priority: "medium", Reason: "Alternative private engineering option"},
				ExamSuggestion{Exam: "viteee", Priority: "medium", Reason: "VIT engineering entrance"},
			)
		}
		if contains(careerPaths, "medical") {
			recs = append(recs,
				ExamSuggestion{Exam: "neet", Priority: "high", Reason: "Medical entrance exam"},
			)
		}
	case "undergraduate_started":
		if contains(careerPaths, "engineering") {
			recs = append(recs,
				ExamSuggestion{Exam: "gate", Priority: "high", Reason: "Postgraduate engineering studies"},
				ExamSuggestion{Exam: "cat", Priority: "medium", Reason: "MBA preparation"},
			)
		}
	}

	return recs
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
