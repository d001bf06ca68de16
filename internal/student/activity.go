package student

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Activity represents an audit event persisted to the activities table, e.g.
// a profile update, a stage progression or a generated study plan.
type Activity struct {
	UserID       string
	ActivityType string
	Details      map[string]any
	CreatedAt    time.Time
}

// ActivityLog defines activity recording behavior.
type ActivityLog interface {
	LogActivity(activity Activity) error
}

// NopActivityLog ignores all activities.
type NopActivityLog struct{}

func (NopActivityLog) LogActivity(Activity) error {
	return nil
}

// MemoryActivityLog stores activities in memory for tests.
type MemoryActivityLog struct {
	mu         sync.Mutex
	activities []Activity
}

func NewMemoryActivityLog() *MemoryActivityLog {
	return &MemoryActivityLog{
		activities: []Activity{},
	}
}

func (l *MemoryActivityLog) LogActivity(activity Activity) error {
	if activity.ActivityType == "" {
		return fmt.Errorf("activity_type is required")
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.activities = append(l.activities, activity)
	l.mu.Unlock()

	return nil
}

func (l *MemoryActivityLog) Activities() []Activity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Activity{}, l.activities...)
}

// PostgresActivityLog inserts activities into the activities table.
type PostgresActivityLog struct {
	pool *pgxpool.Pool
}

func NewPostgresActivityLog(pool *pgxpool.Pool) *PostgresActivityLog {
	return &PostgresActivityLog{pool: pool}
}

func (l *PostgresActivityLog) LogActivity(activity Activity) error {
	if l == nil || l.pool == nil {
		return fmt.Errorf("activity log pool is nil")
	}
	if activity.ActivityType == "" {
		return fmt.Errorf("activity_type is required")
	}
	if activity.UserID == "" {
		return fmt.Errorf("user_id is required")
	}

	details := activity.Details
	if details == nil {
		details = map[string]any{}
	}
	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal activity details: %w", err)
	}

	createdAt := activity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	_, err = l.pool.Exec(ctx,
		`INSERT INTO activities (user_id, activity_type, details, created_at)
		 VALUES ($1, $2, $3::jsonb, $4)`,
		activity.UserID,
		activity.ActivityType,
		string(data),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	slog.Debug("activity logged",
		"type", activity.ActivityType,
		"user_id", activity.UserID,
	)
	return nil
}
