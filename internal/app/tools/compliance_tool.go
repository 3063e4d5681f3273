package tools

import (
	"context"
	"fmt"

	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

// ComplianceTool checks an existing document and attaches the structured
// compliance result to it.
type ComplianceTool struct {
	owner domain.UserID
	docs  domain.DocumentStore
	pipe  *docpipe.Pipeline
}

func (t *ComplianceTool) Name() string { return "check_and_update_document_compliance" }

func (t *ComplianceTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: "Checks the compliance of an existing legal document and saves the results to it.",
		Fields: []domain.ToolField{
			{Name: "document_id", Type: domain.FieldString, Description: "The ID of the document to check for compliance.", Required: true},
		},
	}
}

func (t *ComplianceTool) Invoke(ctx context.Context, args map[string]any) string {
	id := domain.DocumentID(stringArg(args, "document_id"))

	doc, err := t.docs.GetDocument(ctx, id, t.owner)
	if err != nil {
		return notPermitted(string(id))
	}

	result, err := t.pipe.ComplianceCheck(ctx, doc.Content, doc.Jurisdiction, doc.DocumentType)
	if err != nil {
		return fmt.Sprintf("An error occurred during compliance check: %v", err)
	}

	doc.Compliance = result
	if err := t.docs.UpdateDocument(ctx, doc); err != nil {
		return fmt.Sprintf("Error: Failed to save compliance results: %v", err)
	}

	return fmt.Sprintf("Successfully checked compliance for document %s. The results have been saved.", id)
}
