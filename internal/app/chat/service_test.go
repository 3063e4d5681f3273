package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lawverra/lawverra-agent/internal/adapters/llm"
	"github.com/lawverra/lawverra-agent/internal/adapters/storage/memory"
	"github.com/lawverra/lawverra-agent/internal/app/chat"
	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/app/history"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

type fixture struct {
	chatModel *llm.ScriptedChatModel
	textModel *llm.ScriptedTextModel
	records   *memory.HistoryStore
	docs      *memory.DocumentStore
	profiles  *memory.ProfileStore
	svc       *chat.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		chatModel: &llm.ScriptedChatModel{},
		textModel: &llm.ScriptedTextModel{},
		records:   memory.NewHistoryStore(),
		docs:      memory.NewDocumentStore(),
		profiles:  memory.NewProfileStore(),
	}
	f.profiles.PutProfile(&domain.Profile{
		UserID:   "u1",
		FullName: "Ana Silva",
		Role:     "attorney",
		City:     "Miami",
		State:    "Florida",
	})

	f.svc = chat.NewService(
		f.chatModel,
		history.NewStore(f.records),
		f.docs,
		f.profiles,
		docpipe.New(f.textModel),
	)
	return f
}

func toolCall(name string, args map[string]any) *domain.Completion {
	return &domain.Completion{ToolCall: &domain.ToolCall{Name: name, Args: args}}
}

func text(s string) *domain.Completion {
	return &domain.Completion{Text: s}
}

func TestPlainAnswerTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.chatModel.Steps = []*domain.Completion{text("Hello Ana, how can I help?")}

	answer, err := f.svc.SubmitTurn(ctx, "s1", "u1", "Hi there", "")
	require.NoError(t, err)
	require.Equal(t, "Hello Ana, how can I help?", answer)

	rec, err := f.svc.History(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Len(t, rec.Messages, 2)
	require.Equal(t, domain.RoleHuman, rec.Messages[0].Role)
	require.Equal(t, domain.RoleAssistant, rec.Messages[1].Role)
	require.Equal(t, "Hi there", rec.Title)

	// The system prompt carries the profile snapshot.
	require.Len(t, f.chatModel.Calls, 1)
	require.Contains(t, f.chatModel.Calls[0].System, "Ana Silva")
	require.Contains(t, f.chatModel.Calls[0].System, "licensed attorney")
	require.Contains(t, f.chatModel.Calls[0].System, "Miami, Florida")
}

func TestToolCallTurnPersistsBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.textModel.Responses = []string{"NDA DRAFT"}
	f.chatModel.Steps = []*domain.Completion{
		toolCall("generate_and_save_legal_document", map[string]any{
			"title":         "Mutual NDA",
			"notes":         "two-way NDA for a software vendor",
			"document_type": "Contract",
			"area_of_law":   "Contract Law",
		}),
		text("Done, your NDA is saved."),
	}

	answer, err := f.svc.SubmitTurn(ctx, "s1", "u1", "Please draft an NDA, go ahead", "")
	require.NoError(t, err)
	require.Equal(t, "Done, your NDA is saved.", answer)

	// One batch: human turn, tool result, final answer, in order.
	rec, err := f.svc.History(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Len(t, rec.Messages, 3)
	require.Equal(t, domain.RoleHuman, rec.Messages[0].Role)
	require.Equal(t, domain.RoleTool, rec.Messages[1].Role)
	require.Equal(t, "generate_and_save_legal_document", rec.Messages[1].ToolName)
	require.Contains(t, rec.Messages[1].Content, "Successfully generated and saved")
	require.Equal(t, domain.RoleAssistant, rec.Messages[2].Role)

	// The second model call saw the tool result in its transcript.
	require.Len(t, f.chatModel.Calls, 2)
	last := f.chatModel.Calls[1].Transcript
	require.Equal(t, domain.RoleTool, last[len(last)-1].Role)
}

func TestFollowUpTurnSeesDocumentID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Turn 1: generate a document.
	f.textModel.Responses = []string{"NDA DRAFT"}
	f.chatModel.Steps = []*domain.Completion{
		toolCall("generate_and_save_legal_document", map[string]any{
			"title":         "Mutual NDA",
			"notes":         "notes",
			"document_type": "Contract",
			"area_of_law":   "Contract Law",
		}),
		text("Saved."),
	}
	_, err := f.svc.SubmitTurn(ctx, "s1", "u1", "Draft an NDA, yes proceed", "")
	require.NoError(t, err)

	rec, err := f.svc.History(ctx, "s1", "u1")
	require.NoError(t, err)
	toolResult := rec.Messages[1].Content
	parts := strings.Split(toolResult, ": ")
	docID := parts[len(parts)-1]

	// Turn 2: enhance it by the id surfaced in turn 1.
	f.textModel.Responses = []string{"ENHANCED NDA"}
	f.chatModel.Steps = []*domain.Completion{
		toolCall("enhance_existing_legal_document", map[string]any{
			"document_id":  docID,
			"instructions": "add a two-year term",
		}),
		text("Enhanced."),
	}
	answer, err := f.svc.SubmitTurn(ctx, "s1", "u1", "Now add a two-year term", "")
	require.NoError(t, err)
	require.Equal(t, "Enhanced.", answer)

	doc, err := f.docs.GetDocument(ctx, domain.DocumentID(docID), "u1")
	require.NoError(t, err)
	require.Equal(t, "ENHANCED NDA", doc.Content)
	require.Equal(t, domain.StatusEnhanced, doc.Status)

	// Turn 2's first model call replayed turn 1's stored messages.
	firstCallOfTurn2 := f.chatModel.Calls[2]
	require.GreaterOrEqual(t, len(firstCallOfTurn2.Transcript), 4)
	require.Contains(t, firstCallOfTurn2.Transcript[1].Content, docID)
}

func TestRunawayToolLoopTerminates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// A model that never stops asking for research.
	f.chatModel.Repeat = toolCall("conduct_legal_research", map[string]any{"query": "anything"})

	answer, err := f.svc.SubmitTurn(ctx, "s1", "u1", "research forever", "")
	require.NoError(t, err)
	require.Contains(t, answer, "more steps than I could take")

	rec, err := f.svc.History(ctx, "s1", "u1")
	require.NoError(t, err)
	// Human turn + one tool result per allowed round + final answer.
	require.Equal(t, domain.RoleHuman, rec.Messages[0].Role)
	require.Equal(t, domain.RoleAssistant, rec.Messages[len(rec.Messages)-1].Role)
	toolCount := 0
	for _, m := range rec.Messages {
		if m.Role == domain.RoleTool {
			toolCount++
		}
	}
	require.Equal(t, 12, toolCount)
}

func TestInvalidToolArgsRelayedWithinSameTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.chatModel.Steps = []*domain.Completion{
		toolCall("enhance_existing_legal_document", map[string]any{}),
		text("I need the document ID to proceed."),
	}

	answer, err := f.svc.SubmitTurn(ctx, "s1", "u1", "enhance my document", "")
	require.NoError(t, err)
	require.Equal(t, "I need the document ID to proceed.", answer)

	rec, err := f.svc.History(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Len(t, rec.Messages, 3)
	require.Contains(t, rec.Messages[1].Content, "Invalid arguments for enhance_existing_legal_document")
}

func TestUnknownToolRelayedWithinSameTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.chatModel.Steps = []*domain.Completion{
		toolCall("delete_all_documents", map[string]any{}),
		text("That's not something I can do."),
	}

	answer, err := f.svc.SubmitTurn(ctx, "s1", "u1", "wipe everything", "")
	require.NoError(t, err)
	require.Equal(t, "That's not something I can do.", answer)

	rec, err := f.svc.History(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Contains(t, rec.Messages[1].Content, `Unknown tool "delete_all_documents"`)
}

func TestContextTextFoldedIntoHumanTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.chatModel.Steps = []*domain.Completion{text("Reviewed.")}

	_, err := f.svc.SubmitTurn(ctx, "s1", "u1", "Review this lease", "THE LEASE TEXT")
	require.NoError(t, err)

	rec, err := f.svc.History(ctx, "s1", "u1")
	require.NoError(t, err)
	require.Len(t, rec.Messages, 2)
	require.Contains(t, rec.Messages[0].Content, "A document was provided by the user")
	require.Contains(t, rec.Messages[0].Content, "THE LEASE TEXT")
	require.Contains(t, rec.Messages[0].Content, "User Request: Review this lease")
}

func TestModelFailureAbortsTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.chatModel.Err = errors.New("backend unreachable")

	_, err := f.svc.SubmitTurn(ctx, "s1", "u1", "hello", "")
	require.Error(t, err)

	// Nothing was persisted for the failed turn.
	_, err = f.svc.History(ctx, "s1", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMissingProfileStillAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.chatModel.Steps = []*domain.Completion{text("Hello.")}

	answer, err := f.svc.SubmitTurn(ctx, "s1", "stranger", "hi", "")
	require.NoError(t, err)
	require.Equal(t, "Hello.", answer)
	require.Contains(t, f.chatModel.Calls[0].System, "No profile information available")
}
