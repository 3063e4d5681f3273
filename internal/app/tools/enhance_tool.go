package tools

import (
	"context"
	"fmt"

	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

// EnhanceTool revises an existing document in place, overwriting its
// content and moving it to the enhanced status.
type EnhanceTool struct {
	owner domain.UserID
	docs  domain.DocumentStore
	pipe  *docpipe.Pipeline
}

func (t *EnhanceTool) Name() string { return "enhance_existing_legal_document" }

func (t *EnhanceTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: "Enhances an existing legal document in the user's account based on instructions.",
		Fields: []domain.ToolField{
			{Name: "document_id", Type: domain.FieldString, Description: "The ID of the document to enhance.", Required: true},
			{Name: "instructions", Type: domain.FieldString, Description: "Specific user instructions for the enhancement."},
		},
	}
}

func (t *EnhanceTool) Invoke(ctx context.Context, args map[string]any) string {
	id := domain.DocumentID(stringArg(args, "document_id"))

	doc, err := t.docs.GetDocument(ctx, id, t.owner)
	if err != nil {
		return notPermitted(string(id))
	}

	enhanced, err := t.pipe.Enhance(ctx, doc.Content, stringArg(args, "instructions"))
	if err != nil {
		return fmt.Sprintf("An error occurred during enhancement: %v", err)
	}

	doc.Content = enhanced
	doc.Status = domain.StatusEnhanced
	if err := t.docs.UpdateDocument(ctx, doc); err != nil {
		return fmt.Sprintf("Error: Failed to save the enhanced document: %v", err)
	}

	return fmt.Sprintf("Successfully enhanced document %s.", id)
}
