package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

func TestListSessionsOrdersByRecency(t *testing.T) {
	ctx := context.Background()
	s := NewHistoryStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []domain.SessionID{"old", "mid", "new"} {
		require.NoError(t, s.PutRecord(ctx, &domain.HistoryRecord{
			SessionID: id,
			UserID:    "u1",
			Title:     string(id),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	sessions, err := s.ListSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	require.Equal(t, domain.SessionID("new"), sessions[0].SessionID)
	require.Equal(t, domain.SessionID("old"), sessions[2].SessionID)
}

func TestUpdateTitleCreatesMissingRecord(t *testing.T) {
	ctx := context.Background()
	s := NewHistoryStore()

	require.NoError(t, s.UpdateTitle(ctx, "s1", "u1", "Renamed"))

	rec, err := s.GetRecord(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", rec.Title)
	require.Empty(t, rec.Messages)
}

func TestGetRecordReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewHistoryStore()

	require.NoError(t, s.PutRecord(ctx, &domain.HistoryRecord{
		SessionID: "s1",
		UserID:    "u1",
		Messages:  []domain.Message{{Role: domain.RoleHuman, Content: "original"}},
	}))

	rec, err := s.GetRecord(ctx, "s1", "u1")
	require.NoError(t, err)
	rec.Messages[0].Content = "mutated"

	again, err := s.GetRecord(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Equal(t, "original", again.Messages[0].Content)
}
