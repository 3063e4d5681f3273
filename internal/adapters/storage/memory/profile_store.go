package memory

import (
	"context"
	"sync"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

// ProfileStore is an in-memory domain.ProfileStore. Profiles are seeded
// by tests or local tooling via PutProfile / PutClientProfile.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[domain.UserID]*domain.Profile
	clients  map[domain.ClientProfileID]*domain.ClientProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[domain.UserID]*domain.Profile),
		clients:  make(map[domain.ClientProfileID]*domain.ClientProfile),
	}
}

func (s *ProfileStore) PutProfile(p *domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.UserID] = &cp
}

func (s *ProfileStore) PutClientProfile(c *domain.ClientProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.clients[c.ID] = &cp
}

func (s *ProfileStore) Profile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// ClientProfile filters by the owning user, like every other record read.
func (s *ProfileStore) ClientProfile(ctx context.Context, userID domain.UserID, id domain.ClientProfileID) (*domain.ClientProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}
