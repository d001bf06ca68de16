package student

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store implementation. The profile body
// is stored as a jsonb document keyed by user id.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed profile store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) GetProfile(userID string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile
		 FROM profiles
		 WHERE user_id = $1
		 LIMIT 1`,
		userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile not found: %s", userID)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	p.UserID = userID
	return &p, nil
}

func (s *PostgresStore) SaveProfile(profile Profile) error {
	if profile.UserID == "" {
		return fmt.Errorf("user_id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, profile, updated_at)
		 VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET profile = EXCLUDED.profile, updated_at = NOW()`,
		profile.UserID,
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
