package llm

import (
	"context"
	"sync"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

// ScriptedChatModel returns a fixed sequence of completions and records
// every call it receives. Once Steps are exhausted it serves Repeat, or
// a plain "Done." text completion when Repeat is nil.
type ScriptedChatModel struct {
	mu     sync.Mutex
	Steps  []*domain.Completion
	Repeat *domain.Completion
	Err    error

	Calls []ChatCall
}

// ChatCall captures one Complete invocation.
type ChatCall struct {
	System     string
	Transcript []domain.Message
	Tools      []domain.ToolSchema
}

func (s *ScriptedChatModel) Complete(_ context.Context, system string, transcript []domain.Message, tools []domain.ToolSchema) (*domain.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Message, len(transcript))
	copy(snapshot, transcript)
	s.Calls = append(s.Calls, ChatCall{System: system, Transcript: snapshot, Tools: tools})

	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Steps) > 0 {
		next := s.Steps[0]
		s.Steps = s.Steps[1:]
		return next, nil
	}
	if s.Repeat != nil {
		return s.Repeat, nil
	}
	return &domain.Completion{Text: "Done."}, nil
}

// ScriptedTextModel serves canned responses for the document pipeline.
type ScriptedTextModel struct {
	mu        sync.Mutex
	Responses []string
	Err       error

	Calls []TextCall
}

// TextCall captures one Generate or GenerateJSON invocation.
type TextCall struct {
	System string
	User   string
	JSON   bool
}

func (s *ScriptedTextModel) Generate(_ context.Context, system, user string) (string, error) {
	return s.next(system, user, false)
}

func (s *ScriptedTextModel) GenerateJSON(_ context.Context, system, user string) (string, error) {
	return s.next(system, user, true)
}

func (s *ScriptedTextModel) next(system, user string, isJSON bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, TextCall{System: system, User: user, JSON: isJSON})

	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) > 0 {
		next := s.Responses[0]
		s.Responses = s.Responses[1:]
		return next, nil
	}
	if isJSON {
		return `{"formatting":"","required_clauses":[],"jurisdiction_fit":""}`, nil
	}
	return "Generated text.", nil
}
