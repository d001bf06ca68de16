// Package plancache caches generated study plans in Redis so repeated plan
// requests skip the scoring pipeline. Cache failures are logged and treated
// as misses; the cache is never load-bearing.
package plancache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/exam-sensei/mentor/internal/mentor"
)

// DefaultTTL bounds how stale a cached plan may get before the pipeline
// recomputes it. Weightage data changes at most yearly; profiles change often.
const DefaultTTL = 6 * time.Hour

// Cache is a Redis-backed study-plan cache. A nil *Cache is valid and always
// misses, so callers can wire it unconditionally.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a plan cache over an existing Redis client. A zero ttl falls
// back to DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func planKey(userID, examCode string, daysAvailable int) string {
	return fmt.Sprintf("plan:%s:%s:%d", userID, examCode, daysAvailable)
}

// Get returns the cached plan for the user/exam/horizon triple, if present.
func (c *Cache) Get(ctx context.Context, userID, examCode string, daysAvailable int) (mentor.StudyPlanResult, bool) {
	if c == nil || c.client == nil {
		return mentor.StudyPlanResult{}, false
	}

	raw, err := c.client.Get(ctx, planKey(userID, examCode, daysAvailable)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("plan cache read failed", "error", err, "user_id", userID)
		}
		return mentor.StudyPlanResult{}, false
	}

	var result mentor.StudyPlanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Warn("plan cache entry corrupt, dropping", "error", err, "user_id", userID)
		c.client.Del(ctx, planKey(userID, examCode, daysAvailable))
		return mentor.StudyPlanResult{}, false
	}
	return result, true
}

// Put stores a generated plan. Errors are logged, never returned.
func (c *Cache) Put(ctx context.Context, userID string, result mentor.StudyPlanResult) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		slog.Warn("plan cache encode failed", "error", err, "user_id", userID)
		return
	}
	key := planKey(userID, result.ExamCode, result.TotalDays)
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("plan cache write failed", "error", err, "user_id", userID)
	}
}

// Invalidate drops every cached plan for a user, e.g. after a profile update
// changes strengths or weaknesses.
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}

	pattern := fmt.Sprintf("plan:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("plan cache invalidation failed", "error", err, "key", iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("plan cache scan failed", "error", err, "user_id", userID)
	}
}
