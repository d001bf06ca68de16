package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/exam-sensei/mentor/internal/export"
	"github.com/exam-sensei/mentor/internal/mentor"
	"github.com/exam-sensei/mentor/internal/student"
)

// maxBodyBytes bounds request bodies; profile and score payloads are small.
const maxBodyBytes = 1 << 20

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"exams": s.catalog.Exams()})
}

func (s *Server) handleGetExam(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	exam, ok := s.catalog.Exam(code)
	if !ok {
		writeError(w, http.StatusNotFound, "exam not found")
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	result, err := s.mentor.PersonalizedRecommendations(userID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("personalized recommendations failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type studyPlanRequest struct {
	ExamCode      string `json:"exam_code"`
	DaysAvailable int    `json:"days_available"`
}

func (s *Server) handleStudyPlan(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var req studyPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExamCode == "" || req.DaysAvailable <= 0 {
		writeError(w, http.StatusBadRequest, "exam_code and positive days_available are required")
		return
	}

	result, err := s.studyPlan(r, userID, req.ExamCode, req.DaysAvailable)
	if err != nil {
		s.writePlanError(w, userID, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// studyPlan is the cache-aware plan path shared by the JSON, export and
// WebSocket handlers.
func (s *Server) studyPlan(r *http.Request, userID, examCode string, days int) (mentor.StudyPlanResult, error) {
	ctx := r.Context()

	if cached, ok := s.plans.Get(ctx, userID, examCode, days); ok {
		return cached, nil
	}

	result, err := s.mentor.StudyPlanForUser(userID, examCode, days)
	if err != nil {
		return mentor.StudyPlanResult{}, err
	}
	s.plans.Put(ctx, userID, result)
	return result, nil
}

func (s *Server) writePlanError(w http.ResponseWriter, userID string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "user or exam not found")
		return
	}
	slog.Error("study plan generation failed", "user_id", userID, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleStudyPlanExport(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	examCode := r.URL.Query().Get("exam_code")
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if examCode == "" || err != nil || days <= 0 {
		writeError(w, http.StatusBadRequest, "exam_code and positive days query parameters are required")
		return
	}

	result, planErr := s.studyPlan(r, userID, examCode, days)
	if planErr != nil {
		s.writePlanError(w, userID, planErr)
		return
	}

	filename := fmt.Sprintf("study-plan-%s-%dd.xlsx", examCode, days)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.StudyPlanWorkbook(w, result); err != nil {
		slog.Error("study plan export failed", "user_id", userID, "error", err)
	}
}

func (s *Server) handleTopicPriorities(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	examCode := r.URL.Query().Get("exam_code")
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if examCode == "" || err != nil || days <= 0 {
		writeError(w, http.StatusBadRequest, "exam_code and positive days query parameters are required")
		return
	}

	ranked, err := s.mentor.PrioritizeForUser(userID, examCode, days)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "user or exam not found")
			return
		}
		slog.Error("topic prioritization failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": ranked})
}

type careerRequest struct {
	ExamScores map[string]float64 `json:"exam_scores"`
}

func (s *Server) handleCareer(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var req careerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bundle, err := s.mentor.CareerForUser(userID, req.ExamScores)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("career recommendation failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleClashes(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	report, err := s.mentor.ClashesForUser(userID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("clash detection failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleProfileUpsert(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var profile student.Profile
	if err := decodeJSON(r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The path owns the identity; the body cannot rename.
	profile.UserID = userID

	if err := s.profiles.SaveProfile(profile); err != nil {
		slog.Error("profile save failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Strengths and weaknesses feed the priority scores; cached plans are
	// stale the moment the profile changes.
	s.plans.Invalidate(r.Context(), userID)

	if err := s.activity.LogActivity(student.Activity{
		UserID:       userID,
		ActivityType: "profile_updated",
		Details:      map[string]any{"stage": profile.Stage},
	}); err != nil {
		slog.Warn("failed to log profile activity", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, profile)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// isNotFound matches the facade's lookup failures without exporting sentinel
// errors from every store implementation.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "not found") || strings.Contains(msg, "unknown exam")
}
