package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lawverra/lawverra-agent/internal/app/chat"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

type Server struct {
	svc *chat.Service
}

func NewServer(svc *chat.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	// /chat-lawyer/chat     → POST: submit a conversational turn
	mux.HandleFunc("/chat-lawyer/chat", s.handleChat)

	// /chat-lawyer/upload   → POST: turn an uploaded document into context text
	mux.HandleFunc("/chat-lawyer/upload", s.handleUpload)

	// /chat-lawyer/sessions           →  GET: list the caller's sessions
	mux.HandleFunc("/chat-lawyer/sessions", s.handleSessions)

	// /chat-lawyer/sessions/{id}          → DELETE: clear session history
	// /chat-lawyer/sessions/{id}/history  →    GET: full message history
	// /chat-lawyer/sessions/{id}/title    →  PATCH: rename session
	mux.HandleFunc("/chat-lawyer/sessions/", s.handleSessionWithID)

	mux.HandleFunc("/healthz", s.handleHealth)

	return mux
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
	ContextText string `json:"context_text,omitempty"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

type uploadRequest struct {
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content"`
}

type uploadResponse struct {
	ContextText string `json:"context_text"`
}

type sessionResponse struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type messageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ToolName  string    `json:"tool_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type historyResponse struct {
	SessionID string            `json:"session_id"`
	Title     string            `json:"title"`
	Messages  []messageResponse `json:"messages"`
}

type renameRequest struct {
	Title string `json:"title"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

// /chat-lawyer/sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListSessions(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /chat-lawyer/sessions/{id}[/history|/title]
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/chat-lawyer/sessions/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodDelete:
			s.handleClearSession(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "history" {
		switch r.Method {
		case http.MethodGet:
			s.handleGetHistory(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "title" {
		switch r.Method {
		case http.MethodPatch:
			s.handleRenameSession(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	http.NotFound(w, r)
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.SessionID == "" {
		badRequest(w, "session_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	answer, err := s.svc.SubmitTurn(
		r.Context(),
		domain.SessionID(req.SessionID),
		userID,
		req.Message,
		req.ContextText,
	)
	if err != nil && answer == "" {
		serviceError(w, err)
		return
	}

	// A persistence failure after the model answered still returns the
	// answer; the failure was already logged by the service.
	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: req.SessionID,
		Response:  answer,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if _, ok := callerID(w, r); !ok {
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		badRequest(w, "content is required")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		ContextText: strings.TrimSpace(req.Content),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	sessions, err := s.svc.Sessions(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sessionResponse{
			SessionID: string(sess.SessionID),
			Title:     sess.Title,
			UpdatedAt: sess.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, listSessionsResponse{Sessions: out})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	rec, err := s.svc.History(r.Context(), id, userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	msgs := make([]messageResponse, 0, len(rec.Messages))
	for _, m := range rec.Messages {
		msgs = append(msgs, messageResponse{
			Role:      string(m.Role),
			Content:   m.Content,
			ToolName:  m.ToolName,
			CreatedAt: m.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, historyResponse{
		SessionID: string(id),
		Title:     rec.Title,
		Messages:  msgs,
	})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := s.svc.Clear(r.Context(), id, userID); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenameSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(w, "title is required")
		return
	}

	if err := s.svc.Rename(r.Context(), id, userID, req.Title); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

// callerID reads the authenticated user from the X-User-ID header.
// Identity verification happens upstream of this service.
func callerID(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "X-User-ID header is required",
		})
		return "", false
	}
	return domain.UserID(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "not found",
		})
	case errors.Is(err, domain.ErrModelUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "assistant temporarily unavailable, please retry",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
