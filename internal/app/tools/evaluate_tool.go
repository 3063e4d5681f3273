package tools

import (
	"context"
	"fmt"

	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

// EvaluateTool reviews an existing document and attaches the structured
// evaluation to it.
type EvaluateTool struct {
	owner domain.UserID
	docs  domain.DocumentStore
	pipe  *docpipe.Pipeline
}

func (t *EvaluateTool) Name() string { return "evaluate_and_update_legal_document" }

func (t *EvaluateTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: "Evaluates an existing legal document and saves the evaluation results to it.",
		Fields: []domain.ToolField{
			{Name: "document_id", Type: domain.FieldString, Description: "The ID of the document to evaluate.", Required: true},
			{Name: "evaluation_criteria", Type: domain.FieldString, Description: "The specific criteria for evaluation."},
		},
	}
}

func (t *EvaluateTool) Invoke(ctx context.Context, args map[string]any) string {
	id := domain.DocumentID(stringArg(args, "document_id"))

	doc, err := t.docs.GetDocument(ctx, id, t.owner)
	if err != nil {
		return notPermitted(string(id))
	}

	result, err := t.pipe.Evaluate(ctx, doc.Content, stringArg(args, "evaluation_criteria"))
	if err != nil {
		return fmt.Sprintf("An error occurred during evaluation: %v", err)
	}

	doc.Evaluation = result
	if err := t.docs.UpdateDocument(ctx, doc); err != nil {
		return fmt.Sprintf("Error: Failed to save evaluation results: %v", err)
	}

	return fmt.Sprintf("Successfully evaluated document %s. The results have been saved. Here is a summary: %s", id, result.Summary)
}
