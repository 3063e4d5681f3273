package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

type historyKey struct {
	SessionID domain.SessionID
	UserID    domain.UserID
}

// HistoryStore is an in-memory domain.HistoryRecordStore for tests and
// local mode. Records are keyed by (session_id, user_id) so two users
// sharing a session id string never see each other's history.
type HistoryStore struct {
	mu      sync.RWMutex
	records map[historyKey]*domain.HistoryRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		records: make(map[historyKey]*domain.HistoryRecord),
	}
}

func (s *HistoryStore) GetRecord(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) (*domain.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[historyKey{sessionID, userID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	cp.Messages = append([]domain.Message(nil), rec.Messages...)
	return &cp, nil
}

func (s *HistoryStore) PutRecord(ctx context.Context, rec *domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	cp.Messages = append([]domain.Message(nil), rec.Messages...)
	s.records[historyKey{rec.SessionID, rec.UserID}] = &cp
	return nil
}

func (s *HistoryStore) InsertRecord(ctx context.Context, rec *domain.HistoryRecord) error {
	return s.PutRecord(ctx, rec)
}

func (s *HistoryStore) UpdateTitle(ctx context.Context, sessionID domain.SessionID, userID domain.UserID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := historyKey{sessionID, userID}
	rec, ok := s.records[key]
	if !ok {
		// Title-only update on a session that has no history yet still
		// creates the record, mirroring the upsert behavior of the
		// durable backend.
		s.records[key] = &domain.HistoryRecord{
			SessionID: sessionID,
			UserID:    userID,
			Title:     title,
		}
		return nil
	}
	rec.Title = title
	return nil
}

func (s *HistoryStore) DeleteRecord(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, historyKey{sessionID, userID})
	return nil
}

func (s *HistoryStore) ListSessions(ctx context.Context, userID domain.UserID) ([]*domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.ChatSession
	for key, rec := range s.records {
		if key.UserID != userID {
			continue
		}
		out = append(out, &domain.ChatSession{
			SessionID: rec.SessionID,
			UserID:    rec.UserID,
			Title:     rec.Title,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
