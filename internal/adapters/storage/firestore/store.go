package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (LAWVERRA_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) historiesCol() *firestore.CollectionRef {
	return s.client.Collection("chat_histories")
}

// historyDocID keys one history record per (session, user) pair.
func historyDocID(sessionID domain.SessionID, userID domain.UserID) string {
	return string(sessionID) + "#" + string(userID)
}

func (s *Store) historyDoc(sessionID domain.SessionID, userID domain.UserID) *firestore.DocumentRef {
	return s.historiesCol().Doc(historyDocID(sessionID, userID))
}

func (s *Store) documentsCol() *firestore.CollectionRef {
	return s.client.Collection("documents")
}

func (s *Store) documentDoc(id domain.DocumentID) *firestore.DocumentRef {
	return s.documentsCol().Doc(string(id))
}

func (s *Store) profilesCol() *firestore.CollectionRef {
	return s.client.Collection("profiles")
}

func (s *Store) clientProfilesCol() *firestore.CollectionRef {
	return s.client.Collection("client_profiles")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type messageDoc struct {
	Role      string    `firestore:"role"`
	Content   string    `firestore:"content"`
	ToolName  string    `firestore:"tool_name"`
	CreatedAt time.Time `firestore:"created_at"`
}

type historyRecordDoc struct {
	SessionID string       `firestore:"session_id"`
	UserID    string       `firestore:"user_id"`
	Title     string       `firestore:"title"`
	Messages  []messageDoc `firestore:"messages"`
	UpdatedAt time.Time    `firestore:"updated_at"`
}

type evaluationDoc struct {
	Criteria    string    `firestore:"criteria"`
	Summary     string    `firestore:"summary"`
	EvaluatedAt time.Time `firestore:"evaluated_at"`
}

type complianceDoc struct {
	Formatting      string    `firestore:"formatting"`
	RequiredClauses []string  `firestore:"required_clauses"`
	JurisdictionFit string    `firestore:"jurisdiction_fit"`
	CheckedAt       time.Time `firestore:"checked_at"`
}

type documentDoc struct {
	UserID          string         `firestore:"user_id"`
	Title           string         `firestore:"title"`
	Content         string         `firestore:"content"`
	Status          string         `firestore:"status"`
	DocumentType    string         `firestore:"document_type"`
	AreaOfLaw       string         `firestore:"area_of_law"`
	Jurisdiction    string         `firestore:"jurisdiction"`
	ClientProfileID *string        `firestore:"client_profile_id"`
	Evaluation      *evaluationDoc `firestore:"evaluation"`
	Compliance      *complianceDoc `firestore:"compliance"`
	CreatedAt       time.Time      `firestore:"created_at"`
	UpdatedAt       time.Time      `firestore:"updated_at"`
}

type profileDoc struct {
	FullName    string `firestore:"full_name"`
	Email       string `firestore:"email"`
	Role        string `firestore:"role"`
	Address     string `firestore:"address"`
	PhoneNumber string `firestore:"phone_number"`
	City        string `firestore:"city"`
	State       string `firestore:"state"`
}

type clientProfileDoc struct {
	UserID      string `firestore:"user_id"`
	FullName    string `firestore:"full_name"`
	Address     string `firestore:"address"`
	PhoneNumber string `firestore:"phone_number"`
}

// ─────────────────────────────────────────
// HistoryRecordStore implementation
// ─────────────────────────────────────────

func (s *Store) GetRecord(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) (*domain.HistoryRecord, error) {
	snap, err := s.historyDoc(sessionID, userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetRecord: %w", err)
	}

	var doc historyRecordDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetRecord decode: %w", err)
	}

	return recordFromDoc(&doc), nil
}

func (s *Store) PutRecord(ctx context.Context, rec *domain.HistoryRecord) error {
	_, err := s.historyDoc(rec.SessionID, rec.UserID).Set(ctx, recordToDoc(rec))
	if err != nil {
		return fmt.Errorf("firestore PutRecord: %w", err)
	}
	return nil
}

func (s *Store) InsertRecord(ctx context.Context, rec *domain.HistoryRecord) error {
	_, err := s.historyDoc(rec.SessionID, rec.UserID).Create(ctx, recordToDoc(rec))
	if err != nil {
		return fmt.Errorf("firestore InsertRecord: %w", err)
	}
	return nil
}

func (s *Store) UpdateTitle(ctx context.Context, sessionID domain.SessionID, userID domain.UserID, title string) error {
	doc := map[string]interface{}{
		"session_id": string(sessionID),
		"user_id":    string(userID),
		"title":      title,
		"updated_at": time.Now().UTC(),
	}

	_, err := s.historyDoc(sessionID, userID).Set(ctx, doc, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("firestore UpdateTitle: %w", err)
	}
	return nil
}

func (s *Store) DeleteRecord(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) error {
	_, err := s.historyDoc(sessionID, userID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("firestore DeleteRecord: %w", err)
	}
	return nil
}

func (s *Store) ListSessions(ctx context.Context, userID domain.UserID) ([]*domain.ChatSession, error) {
	q := s.historiesCol().Where("user_id", "==", string(userID))

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.ChatSession
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListSessions: %w", err)
		}

		var doc historyRecordDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode historyRecordDoc: %w", err)
		}

		out = append(out, &domain.ChatSession{
			SessionID: domain.SessionID(doc.SessionID),
			UserID:    userID,
			Title:     doc.Title,
			UpdatedAt: doc.UpdatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func recordToDoc(rec *domain.HistoryRecord) historyRecordDoc {
	msgs := make([]messageDoc, 0, len(rec.Messages))
	for _, m := range rec.Messages {
		msgs = append(msgs, messageDoc{
			Role:      string(m.Role),
			Content:   m.Content,
			ToolName:  m.ToolName,
			CreatedAt: m.CreatedAt,
		})
	}
	return historyRecordDoc{
		SessionID: string(rec.SessionID),
		UserID:    string(rec.UserID),
		Title:     rec.Title,
		Messages:  msgs,
		UpdatedAt: rec.UpdatedAt,
	}
}

func recordFromDoc(doc *historyRecordDoc) *domain.HistoryRecord {
	msgs := make([]domain.Message, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		msgs = append(msgs, domain.Message{
			Role:      domain.Role(m.Role),
			Content:   m.Content,
			ToolName:  m.ToolName,
			CreatedAt: m.CreatedAt,
		})
	}
	return &domain.HistoryRecord{
		SessionID: domain.SessionID(doc.SessionID),
		UserID:    domain.UserID(doc.UserID),
		Title:     doc.Title,
		Messages:  msgs,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ─────────────────────────────────────────
// DocumentStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateDocument(ctx context.Context, doc *domain.Document) (domain.DocumentID, error) {
	id := doc.ID
	if id == "" {
		id = domain.DocumentID(uuid.NewString())
	}

	_, err := s.documentDoc(id).Create(ctx, documentToDoc(doc))
	if err != nil {
		return "", fmt.Errorf("firestore CreateDocument: %w", err)
	}
	return id, nil
}

func (s *Store) GetDocument(ctx context.Context, id domain.DocumentID, owner domain.UserID) (*domain.Document, error) {
	snap, err := s.documentDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetDocument: %w", err)
	}

	var doc documentDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetDocument decode: %w", err)
	}

	// Ownership is checked here so a foreign document is identical to a
	// missing one from the caller's point of view.
	if doc.UserID != string(owner) {
		return nil, domain.ErrNotFound
	}

	return documentFromDoc(id, &doc), nil
}

func (s *Store) UpdateDocument(ctx context.Context, doc *domain.Document) error {
	_, err := s.documentDoc(doc.ID).Set(ctx, documentToDoc(doc))
	if err != nil {
		return fmt.Errorf("firestore UpdateDocument: %w", err)
	}
	return nil
}

func documentToDoc(d *domain.Document) documentDoc {
	var clientID *string
	if d.ClientProfileID != nil {
		v := string(*d.ClientProfileID)
		clientID = &v
	}

	var eval *evaluationDoc
	if d.Evaluation != nil {
		eval = &evaluationDoc{
			Criteria:    d.Evaluation.Criteria,
			Summary:     d.Evaluation.Summary,
			EvaluatedAt: d.Evaluation.EvaluatedAt,
		}
	}

	var comp *complianceDoc
	if d.Compliance != nil {
		comp = &complianceDoc{
			Formatting:      d.Compliance.Formatting,
			RequiredClauses: d.Compliance.RequiredClauses,
			JurisdictionFit: d.Compliance.JurisdictionFit,
			CheckedAt:       d.Compliance.CheckedAt,
		}
	}

	return documentDoc{
		UserID:          string(d.UserID),
		Title:           d.Title,
		Content:         d.Content,
		Status:          string(d.Status),
		DocumentType:    string(d.DocumentType),
		AreaOfLaw:       string(d.AreaOfLaw),
		Jurisdiction:    d.Jurisdiction,
		ClientProfileID: clientID,
		Evaluation:      eval,
		Compliance:      comp,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func documentFromDoc(id domain.DocumentID, doc *documentDoc) *domain.Document {
	var clientID *domain.ClientProfileID
	if doc.ClientProfileID != nil {
		v := domain.ClientProfileID(*doc.ClientProfileID)
		clientID = &v
	}

	var eval *domain.EvaluationResult
	if doc.Evaluation != nil {
		eval = &domain.EvaluationResult{
			Criteria:    doc.Evaluation.Criteria,
			Summary:     doc.Evaluation.Summary,
			EvaluatedAt: doc.Evaluation.EvaluatedAt,
		}
	}

	var comp *domain.ComplianceResult
	if doc.Compliance != nil {
		comp = &domain.ComplianceResult{
			Formatting:      doc.Compliance.Formatting,
			RequiredClauses: doc.Compliance.RequiredClauses,
			JurisdictionFit: doc.Compliance.JurisdictionFit,
			CheckedAt:       doc.Compliance.CheckedAt,
		}
	}

	return &domain.Document{
		ID:              id,
		UserID:          domain.UserID(doc.UserID),
		Title:           doc.Title,
		Content:         doc.Content,
		Status:          domain.DocumentStatus(doc.Status),
		DocumentType:    domain.DocumentType(doc.DocumentType),
		AreaOfLaw:       domain.AreaOfLaw(doc.AreaOfLaw),
		Jurisdiction:    doc.Jurisdiction,
		ClientProfileID: clientID,
		Evaluation:      eval,
		Compliance:      comp,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

// ─────────────────────────────────────────
// ProfileStore implementation
// ─────────────────────────────────────────

func (s *Store) Profile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	snap, err := s.profilesCol().Doc(string(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore Profile: %w", err)
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Profile decode: %w", err)
	}

	return &domain.Profile{
		UserID:      userID,
		FullName:    doc.FullName,
		Email:       doc.Email,
		Role:        doc.Role,
		Address:     doc.Address,
		PhoneNumber: doc.PhoneNumber,
		City:        doc.City,
		State:       doc.State,
	}, nil
}

func (s *Store) ClientProfile(ctx context.Context, userID domain.UserID, id domain.ClientProfileID) (*domain.ClientProfile, error) {
	snap, err := s.clientProfilesCol().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore ClientProfile: %w", err)
	}

	var doc clientProfileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore ClientProfile decode: %w", err)
	}

	if doc.UserID != string(userID) {
		return nil, domain.ErrNotFound
	}

	return &domain.ClientProfile{
		ID:          id,
		UserID:      userID,
		FullName:    doc.FullName,
		Address:     doc.Address,
		PhoneNumber: doc.PhoneNumber,
	}, nil
}
