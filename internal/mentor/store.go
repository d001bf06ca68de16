package mentor

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"
)

// Recommendation is a persisted mentor recommendation for a user.
type Recommendation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExamCode  string    `json:"exam_code,omitempty"`
	Type      string    `json:"type"`
	Score     float64   `json:"score"`
	Reasoning string    `json:"reasoning"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RecommendationStore persists mentor recommendations.
type RecommendationStore interface {
	SaveRecommendation(rec Recommendation) (string, error)
	ActiveRecommendations(userID string, now time.Time) ([]Recommendation, error)
}

// MemoryStore is an in-memory implementation of RecommendationStore.
type MemoryStore struct {
	recs map[string]Recommendation
	mu   sync.RWMutex
}

// NewMemoryStore creates a new in-memory recommendation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recs: make(map[string]Recommendation),
	}
}

func (s *MemoryStore) SaveRecommendation(rec Recommendation) (string, error) {
	if rec.UserID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if rec.Type == "" {
		return "", fmt.Errorf("recommendation type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := generateID()
	rec.ID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.recs[id] = rec
	return id, nil
}

func (s *MemoryStore) ActiveRecommendations(userID string, now time.Time) ([]Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []Recommendation
	for _, rec := range s.recs {
		if rec.UserID == userID && rec.ExpiresAt.After(now) {
			active = append(active, rec)
		}
	}
	return active, nil
}

func generateID() string {
	return rand.Text()
}
