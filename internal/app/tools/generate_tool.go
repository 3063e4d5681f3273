package tools

import (
	"context"
	"fmt"

	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

// GenerateTool drafts a brand-new legal document and saves it to the
// owner's account.
type GenerateTool struct {
	owner    domain.UserID
	docs     domain.DocumentStore
	profiles domain.ProfileStore
	pipe     *docpipe.Pipeline
}

func (t *GenerateTool) Name() string { return "generate_and_save_legal_document" }

func (t *GenerateTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: "Generates and saves a new legal document to the user's account. Returns the new document's ID.",
		Fields: []domain.ToolField{
			{Name: "title", Type: domain.FieldString, Description: "The title for the new document.", Required: true},
			{Name: "notes", Type: domain.FieldString, Description: "Detailed notes or specific requirements from the user for the document's content.", Required: true},
			{Name: "document_type", Type: domain.FieldString, Description: "The type of document, e.g., 'Motion', 'Contract'.", Required: true},
			{Name: "area_of_law", Type: domain.FieldString, Description: "The relevant area of law, e.g., 'Family Law'.", Required: true},
			{Name: "client_profile_id", Type: domain.FieldString, Description: "The optional ID of the client this document is for."},
			{Name: "jurisdiction", Type: domain.FieldString, Description: "The legal jurisdiction, e.g., 'Florida'."},
			{Name: "county", Type: domain.FieldString, Description: "The county for court filings."},
			{Name: "date_of_application", Type: domain.FieldString, Description: "The date the document applies to or is filed on."},
			{Name: "case_number", Type: domain.FieldString, Description: "The court case number, if any."},
		},
	}
}

func (t *GenerateTool) Invoke(ctx context.Context, args map[string]any) string {
	profile, err := t.profiles.Profile(ctx, t.owner)
	if err != nil {
		return "Error: User profile not found."
	}

	in := docpipe.GenerateInput{
		Title:        stringArg(args, "title"),
		Notes:        stringArg(args, "notes"),
		DocumentType: domain.DocumentType(stringArg(args, "document_type")),
		AreaOfLaw:    domain.AreaOfLaw(stringArg(args, "area_of_law")),
		Jurisdiction: stringArg(args, "jurisdiction"),
		County:       stringArg(args, "county"),
		DateOfApp:    stringArg(args, "date_of_application"),
		CaseNumber:   stringArg(args, "case_number"),
		Profile:      profile,
	}

	var clientID *domain.ClientProfileID
	if raw := stringArg(args, "client_profile_id"); raw != "" {
		id := domain.ClientProfileID(raw)
		client, err := t.profiles.ClientProfile(ctx, t.owner, id)
		if err != nil {
			return fmt.Sprintf("Error: Client profile with ID %s not found or you do not have permission to access it.", raw)
		}
		in.Client = client
		clientID = &id
	}

	content, err := t.pipe.Generate(ctx, in)
	if err != nil {
		return fmt.Sprintf("An error occurred during document generation: %v", err)
	}

	doc := &domain.Document{
		UserID:          t.owner,
		Title:           in.Title,
		Content:         content,
		Status:          domain.StatusDraft,
		DocumentType:    in.DocumentType,
		AreaOfLaw:       in.AreaOfLaw,
		Jurisdiction:    in.Jurisdiction,
		ClientProfileID: clientID,
	}
	id, err := t.docs.CreateDocument(ctx, doc)
	if err != nil {
		return fmt.Sprintf("Error: Failed to save the generated document to the database: %v", err)
	}

	return fmt.Sprintf("Successfully generated and saved the document. The new document ID is: %s", id)
}
