// Package chat drives the turn-by-turn exchange between the user, the
// completion engine and the document tools, and owns the per-session
// transcript lifecycle.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/app/history"
	"github.com/lawverra/lawverra-agent/internal/app/tools"
	"github.com/lawverra/lawverra-agent/internal/domain"
	"github.com/lawverra/lawverra-agent/internal/observability"
)

const (
	// maxToolRounds caps tool-call rounds within one turn. Nothing about
	// the completion engine guarantees it ever stops asking for tools,
	// so the bound is ours. Exceeding it yields a best-effort answer.
	maxToolRounds = 12

	modelCallTimeout = 90 * time.Second
	toolCallTimeout  = 3 * time.Minute
)

const roundBudgetAnswer = "I'm sorry, this request needed more steps than I could take in one turn. The work completed so far has been recorded above; please break the request into smaller parts and try again."

type sessionKey struct {
	SessionID domain.SessionID
	UserID    domain.UserID
}

type Service struct {
	model    domain.ChatModel
	history  *history.Store
	docs     domain.DocumentStore
	profiles domain.ProfileStore
	pipe     *docpipe.Pipeline
	now      func() time.Time

	// Turns within one session must run strictly sequentially: the
	// history append is a whole-record read-modify-write with no
	// storage-level isolation, so the single-driver assumption is
	// enforced here rather than assumed.
	mu    sync.Mutex
	locks map[sessionKey]*sync.Mutex
}

func NewService(
	model domain.ChatModel,
	hist *history.Store,
	docs domain.DocumentStore,
	profiles domain.ProfileStore,
	pipe *docpipe.Pipeline,
) *Service {
	return &Service{
		model:    model,
		history:  hist,
		docs:     docs,
		profiles: profiles,
		pipe:     pipe,
		now:      time.Now,
		locks:    make(map[sessionKey]*sync.Mutex),
	}
}

// SubmitTurn handles one conversational turn: it loads prior history,
// queries the completion engine, executes any tool calls it requests,
// and returns the final natural-language answer. The complete set of new
// messages (human turn, tool results, final answer) is appended to the
// history as a single batch only after the final answer exists, so a
// crash mid-loop loses the whole turn instead of recording a partial
// tool chain.
//
// contextText (e.g. text extracted from an uploaded file) is folded into
// the human turn's content; it is never stored as a separate message.
//
// A history write failure is returned together with the answer: the
// caller must treat the answer as not guaranteed remembered.
func (s *Service) SubmitTurn(ctx context.Context, sessionID domain.SessionID, userID domain.UserID, message, contextText string) (string, error) {
	unlock := s.lockSession(sessionID, userID)
	defer unlock()

	log := observability.SessionLogger(ctx, string(sessionID), string(userID))
	log.Info("turn started")

	// Best-effort: a user without a profile still gets an agent, just an
	// impersonal one.
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		log.Warn("profile lookup failed, continuing without profile", "error", err)
		profile = nil
	}
	system := BuildSystemPrompt(profile)

	content := message
	if contextText != "" {
		content = fmt.Sprintf("A document was provided by the user. Use it as context for this request:\n\n---\n%s\n---\n\nUser Request: %s", contextText, message)
	}
	humanMsg := domain.Message{Role: domain.RoleHuman, Content: content, CreatedAt: s.now()}

	prior := s.history.Read(ctx, sessionID, userID)
	transcript := append(append([]domain.Message(nil), prior...), humanMsg)
	newMsgs := []domain.Message{humanMsg}

	reg := tools.NewRegistry(userID, s.docs, s.profiles, s.pipe)
	schemas := reg.Schemas()

	var final string
	for round := 0; ; round++ {
		if round >= maxToolRounds {
			log.Warn("tool round budget exhausted", "rounds", round)
			final = roundBudgetAnswer
			break
		}

		comp, err := s.complete(ctx, system, transcript, schemas)
		if err != nil {
			log.Error("completion engine failed", "error", err)
			return "", fmt.Errorf("completion engine: %w", err)
		}

		if comp.ToolCall == nil {
			final = comp.Text
			break
		}

		log.Info("executing tool", "tool", comp.ToolCall.Name, "round", round)
		result := s.dispatch(ctx, reg, comp.ToolCall)

		toolMsg := domain.Message{
			Role:      domain.RoleTool,
			Content:   result,
			ToolName:  comp.ToolCall.Name,
			CreatedAt: s.now(),
		}
		transcript = append(transcript, toolMsg)
		newMsgs = append(newMsgs, toolMsg)
	}

	newMsgs = append(newMsgs, domain.Message{Role: domain.RoleAssistant, Content: final, CreatedAt: s.now()})

	if err := s.history.Append(ctx, sessionID, userID, newMsgs); err != nil {
		log.Error("failed to persist turn", "error", err)
		return final, fmt.Errorf("persist turn: %w", err)
	}

	log.Info("turn completed", "messages", len(newMsgs))
	return final, nil
}

func (s *Service) complete(ctx context.Context, system string, transcript []domain.Message, schemas []domain.ToolSchema) (*domain.Completion, error) {
	cctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()
	return s.model.Complete(cctx, system, transcript, schemas)
}

// dispatch routes one tool-invocation request. Every failure mode —
// unknown tool, invalid arguments, tool panic — degrades to a
// descriptive result string relayed back to the model, which gets the
// chance to self-correct; nothing here aborts the conversation.
func (s *Service) dispatch(ctx context.Context, reg *tools.Registry, call *domain.ToolCall) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("An internal error occurred while running %s: %v", call.Name, r)
		}
	}()

	tool, ok := reg.Lookup(call.Name)
	if !ok {
		return fmt.Sprintf("Error: Unknown tool %q.", call.Name)
	}

	if err := tools.ValidateArgs(tool.Schema(), call.Args); err != nil {
		return fmt.Sprintf("Error: Invalid arguments for %s: %v. Please correct the arguments and try again.", call.Name, err)
	}

	tctx, cancel := context.WithTimeout(ctx, toolCallTimeout)
	defer cancel()
	return tool.Invoke(tctx, call.Args)
}

// Sessions lists the user's sessions for the sidebar.
func (s *Service) Sessions(ctx context.Context, userID domain.UserID) ([]*domain.ChatSession, error) {
	return s.history.Sessions(ctx, userID)
}

// History fetches one session's title and full transcript.
func (s *Service) History(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) (*domain.HistoryRecord, error) {
	return s.history.Fetch(ctx, sessionID, userID)
}

// Clear deletes a session's durable history.
func (s *Service) Clear(ctx context.Context, sessionID domain.SessionID, userID domain.UserID) error {
	return s.history.Clear(ctx, sessionID, userID)
}

// Rename updates a session's title.
func (s *Service) Rename(ctx context.Context, sessionID domain.SessionID, userID domain.UserID, title string) error {
	return s.history.Rename(ctx, sessionID, userID, title)
}

func (s *Service) lockSession(sessionID domain.SessionID, userID domain.UserID) func() {
	key := sessionKey{sessionID, userID}

	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
