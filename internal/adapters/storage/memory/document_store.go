package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

// DocumentStore is an in-memory domain.DocumentStore.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[domain.DocumentID]*domain.Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[domain.DocumentID]*domain.Document),
	}
}

func (s *DocumentStore) CreateDocument(ctx context.Context, doc *domain.Document) (domain.DocumentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = domain.DocumentID(uuid.NewString())
	}
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	cp := *doc
	s.docs[doc.ID] = &cp
	return doc.ID, nil
}

// GetDocument filters by owner: a document owned by someone else is
// indistinguishable from a missing one.
func (s *DocumentStore) GetDocument(ctx context.Context, id domain.DocumentID, owner domain.UserID) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok || doc.UserID != owner {
		return nil, domain.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (s *DocumentStore) UpdateDocument(ctx context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.docs[doc.ID]
	if !ok || stored.UserID != doc.UserID {
		return domain.ErrNotFound
	}
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = time.Now()

	cp := *doc
	s.docs[doc.ID] = &cp
	return nil
}
