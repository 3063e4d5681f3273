// Package history implements the durable per-(session, user) transcript:
// an append-only message log stored as one whole record, plus a lazily
// derived title. Reads favor availability, writes favor failing loud.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lawverra/lawverra-agent/internal/domain"
	"github.com/lawverra/lawverra-agent/internal/observability"
)

const defaultTitle = "New Chat"

type Store struct {
	records domain.HistoryRecordStore
	now     func() time.Time
}

func NewStore(records domain.HistoryRecordStore) *Store {
	return &Store{
		records: records,
		now:     time.Now,
	}
}

// Read returns the full ordered transcript for a session. A missing
// record is an empty transcript, and so is a transport failure: callers
// would rather answer with partial context than not at all.
func (s *Store) Read(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) []domain.Message {
	rec, err := s.records.GetRecord(ctx, sessionID, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			observability.SessionLogger(ctx, string(sessionID), string(userID)).
				Warn("history read failed, continuing with empty transcript", "error", err)
		}
		return nil
	}
	return rec.Messages
}

// Append concatenates msgs onto the stored transcript and persists the
// whole resulting record. The very first append for a session derives
// the title from the first human message; later appends never recompute
// it. An upsert failure is retried once as a plain insert before giving
// up. Write failures propagate: the caller must treat the turn as not
// guaranteed remembered.
//
// Append is a read-modify-write with no storage-level isolation. The
// chat service serializes turns per (session, user), which is the only
// writer this design assumes.
func (s *Store) Append(ctx context.Context, sessionID domain.SessionID, userID domain.UserID, msgs []domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	log := observability.SessionLogger(ctx, string(sessionID), string(userID))

	rec, err := s.records.GetRecord(ctx, sessionID, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn("history read during append failed, starting fresh record", "error", err)
		}
		rec = &domain.HistoryRecord{
			SessionID: sessionID,
			UserID:    userID,
			Title:     DeriveTitle(msgs),
		}
	}

	rec.Messages = append(rec.Messages, msgs...)
	rec.UpdatedAt = s.now()

	if err := s.records.PutRecord(ctx, rec); err != nil {
		log.Warn("history upsert failed, retrying as insert", "error", err)
		if err := s.records.InsertRecord(ctx, rec); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
	}
	return nil
}

// Fetch returns the whole record, title included, for read-only callers
// that need to distinguish "no such session" from an empty transcript.
// Unlike Read it does not degrade on failure.
func (s *Store) Fetch(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) (*domain.HistoryRecord, error) {
	rec, err := s.records.GetRecord(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Clear deletes the durable record entirely. The next append re-derives
// a fresh title from its own first human message.
func (s *Store) Clear(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) error {
	if err := s.records.DeleteRecord(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Rename updates the session title only, bypassing message history.
func (s *Store) Rename(ctx context.Context, sessionID domain.SessionID, userID domain.UserID, title string) error {
	if err := s.records.UpdateTitle(ctx, sessionID, userID, title); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}

// Sessions lists the user's sessions, most recently updated first.
func (s *Store) Sessions(ctx context.Context, userID domain.UserID) ([]*domain.ChatSession, error) {
	sessions, err := s.records.ListSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// DeriveTitle builds a session title from the first human message of the
// initial batch: the first 50 characters, newlines flattened, truncated
// to 47 plus an ellipsis when longer. Falls back to "New Chat" when the
// batch holds no usable human message.
func DeriveTitle(msgs []domain.Message) string {
	for _, m := range msgs {
		if m.Role != domain.RoleHuman {
			continue
		}
		runes := []rune(m.Content)
		if len(runes) > 50 {
			runes = runes[:50]
		}
		title := strings.Join(strings.Fields(string(runes)), " ")
		if len([]rune(title)) > 47 {
			title = string([]rune(title)[:47]) + "..."
		}
		if title == "" {
			return defaultTitle
		}
		return title
	}
	return defaultTitle
}
