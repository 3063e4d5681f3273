package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by record stores when a record does not exist
// or is not visible to the requesting owner. Stores deliberately do not
// distinguish the two cases.
var ErrNotFound = errors.New("not found")

// ErrModelUnavailable marks a completion-engine transport failure. It is
// retryable from the caller's point of view.
var ErrModelUnavailable = errors.New("model unavailable")

// ToolCall is a structured tool-invocation request produced by the
// completion engine.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Completion is one completion-engine response: either a final answer
// (Text, ToolCall nil) or a request to invoke a tool.
type Completion struct {
	Text     string
	ToolCall *ToolCall
}

type FieldType string

const (
	FieldString FieldType = "string"
	FieldObject FieldType = "object"
)

// ToolField describes one argument of a tool schema.
type ToolField struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// ToolSchema is the typed input declaration the completion engine sees
// for a tool.
type ToolSchema struct {
	Name        string
	Description string
	Fields      []ToolField
}

// ChatModel is the multi-turn completion engine with structured
// tool-call output. One call per loop round.
type ChatModel interface {
	Complete(ctx context.Context, system string, transcript []Message, tools []ToolSchema) (*Completion, error)
}

// TextModel is the single-shot text generator the document pipeline
// delegates to.
type TextModel interface {
	Generate(ctx context.Context, system, user string) (string, error)
	// GenerateJSON asks for a JSON object response body.
	GenerateJSON(ctx context.Context, system, user string) (string, error)
}

// HistoryRecordStore persists whole session records. Put is an upsert
// keyed on (session_id, user_id); Insert is a plain create used as a
// fallback when the upsert path fails.
type HistoryRecordStore interface {
	GetRecord(ctx context.Context, sessionID SessionID, userID UserID) (*HistoryRecord, error)
	PutRecord(ctx context.Context, rec *HistoryRecord) error
	InsertRecord(ctx context.Context, rec *HistoryRecord) error
	UpdateTitle(ctx context.Context, sessionID SessionID, userID UserID, title string) error
	DeleteRecord(ctx context.Context, sessionID SessionID, userID UserID) error
	ListSessions(ctx context.Context, userID UserID) ([]*ChatSession, error)
}

// DocumentStore persists drafted documents. Get filters by owner and
// returns ErrNotFound for both missing and foreign documents.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *Document) (DocumentID, error)
	GetDocument(ctx context.Context, id DocumentID, owner UserID) (*Document, error)
	UpdateDocument(ctx context.Context, doc *Document) error
}

// ProfileStore reads user and client profiles.
type ProfileStore interface {
	Profile(ctx context.Context, userID UserID) (*Profile, error)
	ClientProfile(ctx context.Context, userID UserID, id ClientProfileID) (*ClientProfile, error)
}
