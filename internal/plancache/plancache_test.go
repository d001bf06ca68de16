package plancache

import (
	"context"
	"testing"
	"time"

	"github.com/exam-sensei/mentor/internal/mentor"
)

func TestPlanKey(t *testing.T) {
	got := planKey("u1", "jee_main_2025", 30)
	want := "plan:u1:jee_main_2025:30"
	if got != want {
		t.Errorf("planKey() = %q, want %q", got, want)
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	ctx := context.Background()
	var c *Cache

	if _, ok := c.Get(ctx, "u1", "jee_main_2025", 30); ok {
		t.Error("nil cache should always miss")
	}
	c.Put(ctx, "u1", mentor.StudyPlanResult{ExamCode: "jee_main_2025", TotalDays: 30})
	c.Invalidate(ctx, "u1")
}

func TestNilClientIsSafe(t *testing.T) {
	ctx := context.Background()
	c := New(nil, time.Minute)

	if _, ok := c.Get(ctx, "u1", "jee_main_2025", 30); ok {
		t.Error("cache without client should always miss")
	}
	c.Put(ctx, "u1", mentor.StudyPlanResult{ExamCode: "jee_main_2025", TotalDays: 30})
	c.Invalidate(ctx, "u1")
}

func TestNewDefaultsTTL(t *testing.T) {
	c := New(nil, 0)
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}
