package mentor

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed RecommendationStore implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed recommendation store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) SaveRecommendation(rec Recommendation) (string, error) {
	if rec.UserID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if rec.Type == "" {
		return "", fmt.Errorf("recommendation type is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO recommendations (user_id, exam_code, rec_type, score, reasoning, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id::text`,
		rec.UserID,
		nullIfEmpty(rec.ExamCode),
		rec.Type,
		rec.Score,
		rec.Reasoning,
		createdAt,
		rec.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert recommendation: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ActiveRecommendations(userID string, now time.Time) ([]Recommendation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, user_id, exam_code, rec_type, score, reasoning, created_at, expires_at
		 FROM recommendations
		 WHERE user_id = $1
		   AND expires_at > $2
		 ORDER BY created_at DESC`,
		userID,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []Recommendation
	for rows.Next() {
		var rec Recommendation
		var examCode *string
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&examCode,
			&rec.Type,
			&rec.Score,
			&rec.Reasoning,
			&rec.CreatedAt,
			&rec.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		if examCode != nil {
			rec.ExamCode = *examCode
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}

	return recs, nil
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
