package student_test

import (
	"testing"

	"github.com/exam-sensei/mentor/internal/student"
)

func TestProfile_Defaults(t *testing.T) {
	var p student.Profile

	if got := p.StudyHours(); got != student.DefaultStudyHoursPerDay {
		t.Errorf("StudyHours() = %v, want %v", got, student.DefaultStudyHoursPerDay)
	}
	if got := p.Consistency(); got != student.DefaultStudyConsistency {
		t.Errorf("Consistency() = %v, want %v", got, student.DefaultStudyConsistency)
	}
}

func TestProfile_ConsistencyOutOfRangeFallsBack(t *testing.T) {
	p := student.Profile{StudyConsistency: 1.4}
	if got := p.Consistency(); got != student.DefaultStudyConsistency {
		t.Errorf("Consistency() = %v, want default for out-of-range value", got)
	}
}

func TestProfile_HasStrength_CaseFolded(t *testing.T) {
	p := student.Profile{Strengths: []string{"Mechanics"}}

	if !p.HasStrength("mechanics") {
		t.Error("HasStrength(mechanics) = false, want true for differently cased entry")
	}
	if p.HasStrength("optics") {
		t.Error("HasStrength(optics) = true, want false")
	}
}

func TestProfile_ApplyTopicPerformance(t *testing.T) {
	p := student.Profile{
		Strengths:  []string{"optics"},
		Weaknesses: []string{"mechanics", "calculus"},
	}

	p.ApplyTopicPerformance(map[string]float64{
		"mechanics": 85, // promoted to strength, cleared from weaknesses
		"algebra":   30, // demoted to weakness
		"calculus":  60, // untouched
	})

	if !p.HasStrength("mechanics") {
		t.Error("mechanics should be a strength after scoring 85")
	}
	if p.HasWeakness("mechanics") {
		t.Error("mechanics should no longer be a weakness")
	}
	if !p.HasWeakness("algebra") {
		t.Error("algebra should be a weakness after scoring 30")
	}
	if !p.HasWeakness("calculus") {
		t.Error("calculus at 60 should stay a weakness")
	}
}

func TestProfile_ApplyTopicPerformance_NoDuplicates(t *testing.T) {
	p := student.Profile{Strengths: []string{"optics"}}

	p.ApplyTopicPerformance(map[string]float64{"optics": 95})
	p.ApplyTopicPerformance(map[string]float64{"optics": 95})

	if len(p.Strengths) != 1 {
		t.Errorf("len(Strengths) = %d, want 1", len(p.Strengths))
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := student.NewMemoryStore()

	if err := store.SaveProfile(student.Profile{UserID: "u1", Interests: []string{"engineering"}}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	p, err := store.GetProfile("u1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if !p.HasInterest("engineering") {
		t.Error("stored profile lost its interests")
	}

	if _, err := store.GetProfile("missing"); err == nil {
		t.Error("GetProfile(missing) should return an error")
	}
}

func TestMemoryStore_RequiresUserID(t *testing.T) {
	store := student.NewMemoryStore()
	if err := store.SaveProfile(student.Profile{}); err == nil {
		t.Error("SaveProfile() without user_id should return an error")
	}
}

func TestMemoryActivityLog(t *testing.T) {
	log := student.NewMemoryActivityLog()

	if err := log.LogActivity(student.Activity{UserID: "u1", ActivityType: "profile_updated"}); err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}
	if err := log.LogActivity(student.Activity{UserID: "u1"}); err == nil {
		t.Error("LogActivity() without activity_type should return an error")
	}

	acts := log.Activities()
	if len(acts) != 1 {
		t.Fatalf("len(Activities()) = %d, want 1", len(acts))
	}
	if acts[0].CreatedAt.IsZero() {
		t.Error("LogActivity() should stamp CreatedAt")
	}
}
