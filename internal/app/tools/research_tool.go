package tools

import (
	"context"
	"fmt"

	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

// ResearchTool conducts legal research. Unlike the other tools it has no
// persistence side effect: findings are returned inline only.
type ResearchTool struct {
	owner    domain.UserID
	profiles domain.ProfileStore
	pipe     *docpipe.Pipeline
}

func (t *ResearchTool) Name() string { return "conduct_legal_research" }

func (t *ResearchTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: "Conducts comprehensive legal research on a given query. Can ask clarifying questions to provide more focused research.",
		Fields: []domain.ToolField{
			{Name: "query", Type: domain.FieldString, Description: "The legal research query or question to investigate.", Required: true},
			{Name: "clarifying_answers", Type: domain.FieldObject, Description: "Optional map of clarifying questions to their answers to focus the research."},
		},
	}
}

func (t *ResearchTool) Invoke(ctx context.Context, args map[string]any) string {
	if _, err := t.profiles.Profile(ctx, t.owner); err != nil {
		return "Error: User profile not found."
	}

	report, err := t.pipe.Research(ctx, stringArg(args, "query"), stringMapArg(args, "clarifying_answers"))
	if err != nil {
		return fmt.Sprintf("An error occurred during legal research: %v", err)
	}
	return report
}
