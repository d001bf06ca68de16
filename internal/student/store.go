package student

import (
	"fmt"
	"sync"
)

// Store persists preparation profiles.
type Store interface {
	GetProfile(userID string) (*Profile, error)
	SaveProfile(profile Profile) error
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	profiles map[string]Profile
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]Profile),
	}
}

func (s *MemoryStore) GetProfile(userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s", userID)
	}
	return &p, nil
}

func (s *MemoryStore) SaveProfile(profile Profile) error {
	if profile.UserID == "" {
		return fmt.Errorf("user_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}
