// Package httpapi exposes the mentor over HTTP and WebSocket. Handlers decode,
// delegate to the mentor facade and encode; no scoring logic lives here.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/exam-sensei/mentor/internal/catalog"
	"github.com/exam-sensei/mentor/internal/mentor"
	"github.com/exam-sensei/mentor/internal/plancache"
	"github.com/exam-sensei/mentor/internal/student"
)

// ExamCatalog is the read surface the API needs from the catalog.
type ExamCatalog interface {
	Exam(code string) (catalog.Exam, bool)
	Exams() []catalog.Exam
}

// Pinger reports backend connectivity for readiness checks. Both the database
// and cache wrappers satisfy it.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Config holds the API server's collaborators. Plans, DB and Cache are
// optional; nil values degrade gracefully.
type Config struct {
	Mentor   *mentor.Mentor
	Catalog  ExamCatalog
	Profiles student.Store
	Activity student.ActivityLog
	Plans    *plancache.Cache
	DB       Pinger
	Cache    Pinger
}

// Server routes API requests to the mentor facade.
type Server struct {
	mentor   *mentor.Mentor
	catalog  ExamCatalog
	profiles student.Store
	activity student.ActivityLog
	plans    *plancache.Cache
	db       Pinger
	cache    Pinger
}

// New creates the API server.
func New(cfg Config) (*Server, error) {
	if cfg.Mentor == nil {
		return nil, fmt.Errorf("mentor is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.Profiles == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	activity := cfg.Activity
	if activity == nil {
		activity = student.NopActivityLog{}
	}
	return &Server{
		mentor:   cfg.Mentor,
		catalog:  cfg.Catalog,
		profiles: cfg.Profiles,
		activity: activity,
		plans:    cfg.Plans,
		db:       cfg.DB,
		cache:    cfg.Cache,
	}, nil
}

// Handler builds the HTTP router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/v1/exams", s.handleListExams)
	mux.HandleFunc("GET /api/v1/exams/{code}", s.handleGetExam)

	mux.HandleFunc("GET /api/v1/users/{id}/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/v1/users/{id}/study-plan", s.handleStudyPlan)
	mux.HandleFunc("GET /api/v1/users/{id}/study-plan/export", s.handleStudyPlanExport)
	mux.HandleFunc("GET /api/v1/users/{id}/topic-priorities", s.handleTopicPriorities)
	mux.HandleFunc("POST /api/v1/users/{id}/career", s.handleCareer)
	mux.HandleFunc("GET /api/v1/users/{id}/clashes", s.handleClashes)
	mux.HandleFunc("PUT /api/v1/users/{id}/profile", s.handleProfileUpsert)

	mux.HandleFunc("GET /ws/mentor", s.handleMentorWS)

	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			slog.Warn("readiness check failed", "backend", "database", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.cache != nil {
		if err := s.cache.HealthCheck(ctx); err != nil {
			slog.Warn("readiness check failed", "backend", "cache", "error", err)
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// writeError sends a generic JSON error body. Internal detail stays in the
// logs, never in the response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
