package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/lawverra/lawverra-agent/internal/adapters/http"
	"github.com/lawverra/lawverra-agent/internal/adapters/llm"
	"github.com/lawverra/lawverra-agent/internal/adapters/storage/memory"
	"github.com/lawverra/lawverra-agent/internal/app/chat"
	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/app/history"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

func newTestServer(t *testing.T, model *llm.ScriptedChatModel) http.Handler {
	t.Helper()

	records := memory.NewHistoryStore()
	docs := memory.NewDocumentStore()
	profiles := memory.NewProfileStore()
	profiles.PutProfile(&domain.Profile{UserID: "test-user", FullName: "Ana Silva"})

	pipe := docpipe.New(&llm.ScriptedTextModel{})
	svc := chat.NewService(model, history.NewStore(records), docs, profiles, pipe)

	return httpadapter.NewServer(svc)
}

func doJSON(t *testing.T, srv http.Handler, method, path, userID string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &llm.ScriptedChatModel{})

	w := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestChatRequiresUserHeader(t *testing.T) {
	srv := newTestServer(t, &llm.ScriptedChatModel{})

	body := []byte(`{"session_id":"s1","message":"hello"}`)
	w := doJSON(t, srv, http.MethodPost, "/chat-lawyer/chat", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestChatTurnAndHistory(t *testing.T) {
	model := &llm.ScriptedChatModel{
		Steps: []*domain.Completion{{Text: "Hello Ana."}},
	}
	srv := newTestServer(t, model)

	body := []byte(`{"session_id":"s1","message":"hi there"}`)
	w := doJSON(t, srv, http.MethodPost, "/chat-lawyer/chat", "test-user", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var chatResp struct {
		SessionID string `json:"session_id"`
		Response  string `json:"response"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &chatResp); err != nil {
		t.Fatalf("decoding chat response: %v", err)
	}
	if chatResp.Response != "Hello Ana." {
		t.Fatalf("unexpected response: %q", chatResp.Response)
	}

	// History round-trips through the API.
	w = doJSON(t, srv, http.MethodGet, "/chat-lawyer/sessions/s1/history", "test-user", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var histResp struct {
		Title    string `json:"title"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &histResp); err != nil {
		t.Fatalf("decoding history response: %v", err)
	}
	if histResp.Title != "hi there" {
		t.Fatalf("unexpected title: %q", histResp.Title)
	}
	if len(histResp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(histResp.Messages))
	}
	if histResp.Messages[0].Role != "human" || histResp.Messages[1].Role != "assistant" {
		t.Fatalf("unexpected roles: %+v", histResp.Messages)
	}
}

func TestHistoryIsTenantScoped(t *testing.T) {
	model := &llm.ScriptedChatModel{
		Steps: []*domain.Completion{{Text: "noted"}},
	}
	srv := newTestServer(t, model)

	body := []byte(`{"session_id":"s1","message":"my private matter"}`)
	w := doJSON(t, srv, http.MethodPost, "/chat-lawyer/chat", "test-user", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Another user asking for the same session id sees nothing.
	w = doJSON(t, srv, http.MethodGet, "/chat-lawyer/sessions/s1/history", "other-user", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign session, got %d", w.Code)
	}
}

func TestListRenameAndClearSession(t *testing.T) {
	model := &llm.ScriptedChatModel{
		Steps: []*domain.Completion{{Text: "done"}},
	}
	srv := newTestServer(t, model)

	body := []byte(`{"session_id":"s1","message":"draft a lease"}`)
	if w := doJSON(t, srv, http.MethodPost, "/chat-lawyer/chat", "test-user", body); w.Code != http.StatusOK {
		t.Fatalf("chat failed: %d", w.Code)
	}

	w := doJSON(t, srv, http.MethodGet, "/chat-lawyer/sessions", "test-user", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var listResp struct {
		Sessions []struct {
			SessionID string `json:"session_id"`
			Title     string `json:"title"`
		} `json:"sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	if len(listResp.Sessions) != 1 || listResp.Sessions[0].Title != "draft a lease" {
		t.Fatalf("unexpected sessions: %+v", listResp.Sessions)
	}

	// Rename.
	w = doJSON(t, srv, http.MethodPatch, "/chat-lawyer/sessions/s1/title", "test-user", []byte(`{"title":"Lease work"}`))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d, body=%s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, http.MethodGet, "/chat-lawyer/sessions", "test-user", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	if listResp.Sessions[0].Title != "Lease work" {
		t.Fatalf("rename not applied: %+v", listResp.Sessions)
	}

	// Clear.
	w = doJSON(t, srv, http.MethodDelete, "/chat-lawyer/sessions/s1", "test-user", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = doJSON(t, srv, http.MethodGet, "/chat-lawyer/sessions/s1/history", "test-user", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after clear, got %d", w.Code)
	}
}

func TestUploadEchoesContextText(t *testing.T) {
	srv := newTestServer(t, &llm.ScriptedChatModel{})

	body := []byte(`{"filename":"lease.txt","content":"  the lease text  "}`)
	w := doJSON(t, srv, http.MethodPost, "/chat-lawyer/upload", "test-user", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		ContextText string `json:"context_text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding upload response: %v", err)
	}
	if resp.ContextText != "the lease text" {
		t.Fatalf("unexpected context text: %q", resp.ContextText)
	}
}

func TestChatValidatesBody(t *testing.T) {
	srv := newTestServer(t, &llm.ScriptedChatModel{})

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing session", `{"message":"hi"}`},
		{"missing message", `{"session_id":"s1"}`},
		{"blank message", `{"session_id":"s1","message":"   "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, srv, http.MethodPost, "/chat-lawyer/chat", "test-user", []byte(tc.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &llm.ScriptedChatModel{})

	w := doJSON(t, srv, http.MethodGet, "/chat-lawyer/chat", "test-user", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodPost, "/chat-lawyer/sessions/s1/history", "test-user", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
