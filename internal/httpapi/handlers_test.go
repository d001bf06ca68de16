package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/exam-sensei/mentor/internal/catalog"
	"github.com/exam-sensei/mentor/internal/mentor"
	"github.com/exam-sensei/mentor/internal/student"
)

type fakeCatalog struct {
	exams map[string]catalog.Exam
}

func (f *fakeCatalog) Exam(code string) (catalog.Exam, bool) {
	e, ok := f.exams[code]
	return e, ok
}

func (f *fakeCatalog) Exams() []catalog.Exam {
	var out []catalog.Exam
	for _, e := range f.exams {
		out = append(out, e)
	}
	return out
}

func (f *fakeCatalog) TopicsForExam(code string) ([]catalog.Topic, bool) {
	e, ok := f.exams[code]
	if !ok {
		return nil, false
	}
	return e.Topics, true
}

func (f *fakeCatalog) ExamDates(code string) []string {
	return f.exams[code].ExamDates
}

type failingPinger struct{}

func (failingPinger) HealthCheck(context.Context) error {
	return fmt.Errorf("connection refused")
}

func newTestServer(t *testing.T) (*Server, *student.MemoryStore, *student.MemoryActivityLog) {
	t.Helper()

	cat := &fakeCatalog{exams: map[string]catalog.Exam{
		"jee_main_2025": {
			Code:      "jee_main_2025",
			Name:      "JEE Main 2025",
			ExamDates: []string{"2025-01-24", "2025-01-25"},
			Topics: []catalog.Topic{
				{Subject: "physics", Name: "mechanics", WeightageHistory: []float64{25}, AvgQuestions: 8},
				{Subject: "physics", Name: "optics", WeightageHistory: []float64{10}, AvgQuestions: 4},
			},
		},
		"bitsat_2025": {
			Code:      "bitsat_2025",
			ExamDates: []string{"2025-01-25"},
		},
	}}

	profiles := student.NewMemoryStore()
	activity := student.NewMemoryActivityLog()

	m, err := mentor.New(mentor.Config{
		Catalog:  cat,
		Profiles: profiles,
		Activity: activity,
	})
	if err != nil {
		t.Fatalf("mentor.New() error = %v", err)
	}

	srv, err := New(Config{
		Mentor:   m,
		Catalog:  cat,
		Profiles: profiles,
		Activity: activity,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv, profiles, activity
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReadyz_BackendDown(t *testing.T) {
	srv, _, _ := newTestServer(t)
	srv.db = failingPinger{}

	rec := doRequest(t, srv, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("response leaks backend error detail")
	}
}

func TestReadyz_NoBackendsConfigured(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestListExams(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/exams", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Exams []catalog.Exam `json:"exams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Exams) != 2 {
		t.Errorf("len(exams) = %d, want 2", len(body.Exams))
	}
}

func TestGetExam_NotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/exams/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStudyPlan(t *testing.T) {
	srv, profiles, activity := newTestServer(t)
	profiles.SaveProfile(student.Profile{UserID: "u1", Weaknesses: []string{"optics"}})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/users/u1/study-plan",
		`{"exam_code":"jee_main_2025","days_available":14}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result mentor.StudyPlanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.ExamCode != "jee_main_2025" || result.TotalDays != 14 {
		t.Errorf("result = %s/%d, want jee_main_2025/14", result.ExamCode, result.TotalDays)
	}
	if len(activity.Activities()) != 1 {
		t.Errorf("activities = %d, want 1", len(activity.Activities()))
	}
}

func TestStudyPlan_Validation(t *testing.T) {
	srv, profiles, _ := newTestServer(t)
	profiles.SaveProfile(student.Profile{UserID: "u1"})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing exam", `{"days_available":14}`, http.StatusBadRequest},
		{"zero days", `{"exam_code":"jee_main_2025","days_available":0}`, http.StatusBadRequest},
		{"unknown field", `{"exam_code":"jee_main_2025","days_available":14,"bogus":1}`, http.StatusBadRequest},
		{"unknown exam", `{"exam_code":"nope","days_available":14}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/v1/users/u1/study-plan", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestStudyPlan_UnknownUser(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/users/missing/study-plan",
		`{"exam_code":"jee_main_2025","days_available":14}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStudyPlanExport(t *testing.T) {
	srv, profiles, _ := newTestServer(t)
	profiles.SaveProfile(student.Profile{UserID: "u1"})

	rec := doRequest(t, srv, http.MethodGet,
		"/api/v1/users/u1/study-plan/export?exam_code=jee_main_2025&days=14", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "study-plan-jee_main_2025-14d.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

func TestTopicPriorities(t *testing.T) {
	srv, profiles, _ := newTestServer(t)
	profiles.SaveProfile(student.Profile{UserID: "u1"})

	rec := doRequest(t, srv, http.MethodGet,
		"/api/v1/users/u1/topic-priorities?exam_code=jee_main_2025&days=90", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Topics []mentor.PrioritizedTopic `json:"topics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Topics) != 2 {
		t.Errorf("len(topics) = %d, want 2", len(body.Topics))
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/users/u1/topic-priorities?exam_code=jee_main_2025", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing days: status = %d, want 400", rec.Code)
	}
}

func TestCareer(t *testing.T) {
	srv, profiles, _ := newTestServer(t)
	profiles.SaveProfile(student.Profile{UserID: "u1", Interests: []string{"engineering"}})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/users/u1/career",
		`{"exam_scores":{"jee_main":180}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var bundle mentor.RecommendationBundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if bundle.Primary == nil || bundle.Primary.CareerPath != "engineering" {
		t.Errorf("Primary = %+v, want engineering", bundle.Primary)
	}
}

func TestClashes(t *testing.T) {
	srv, profiles, _ := newTestServer(t)
	profiles.SaveProfile(student.Profile{
		UserID:      "u1",
		ActiveExams: []string{"jee_main_2025", "bitsat_2025"},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/users/u1/clashes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var report mentor.ClashReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !report.HasClashes {
		t.Error("HasClashes = false, want true (2025-01-25 shared)")
	}
}

func TestProfileUpsert(t *testing.T) {
	srv, profiles, activity := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/users/u1/profile",
		`{"user_id":"someone-else","stage":"class_12_completed","weaknesses":["optics"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// The path segment wins over the body's user_id.
	saved, err := profiles.GetProfile("u1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if saved.Stage != "class_12_completed" {
		t.Errorf("Stage = %q", saved.Stage)
	}

	acts := activity.Activities()
	if len(acts) != 1 || acts[0].ActivityType != "profile_updated" {
		t.Errorf("activity log = %+v, want one profile_updated entry", acts)
	}
}

func TestMentorWS(t *testing.T) {
	srv, profiles, _ := newTestServer(t)
	profiles.SaveProfile(student.Profile{UserID: "u1"})

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/mentor"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	if err := wsjson.Write(ctx, conn, wsPlanRequest{
		UserID:        "u1",
		ExamCode:      "jee_main_2025",
		DaysAvailable: 14,
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp struct {
		Plan  *mentor.StudyPlanResult `json:"plan"`
		Error string                  `json:"error"`
	}
	if err := wsjson.Read(ctx, conn, &resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("error response: %s", resp.Error)
	}
	if resp.Plan == nil || resp.Plan.ExamCode != "jee_main_2025" {
		t.Errorf("plan = %+v", resp.Plan)
	}

	// A bad request on the same connection yields an error frame, not a close.
	if err := wsjson.Write(ctx, conn, wsPlanRequest{UserID: "u1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := wsjson.Read(ctx, conn, &resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected validation error for empty exam_code")
	}

	conn.Close(websocket.StatusNormalClosure, "")
}
