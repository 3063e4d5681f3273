package docpipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

const complianceSystem = `You are a highly specialized legal compliance agent. Your primary goal is to analyze legal documents for adherence to specified formatting rules, identification of required clauses, and overall fit for a given jurisdiction. You must provide your analysis in a structured JSON format.

Your output MUST be a JSON object with the following keys:
- 'formatting': A string indicating the overall formatting status (e.g., "Pass", "Fail", "Needs Review").
- 'required_clauses': A list of strings. If clauses are missing, list them. If no clauses are missing or if this check is not applicable, provide a suitable message (e.g., "All required clauses present").
- 'jurisdiction_fit': A string indicating how well the document fits the specified jurisdiction (e.g., "Good", "Needs Review", "Poor").

Consider formatting conventions of legal documents (headings, signature blocks, certificates of service), the presence of essential clauses for the document type, and jurisdiction-specific terminology, citations and court naming conventions. If no jurisdiction or document type is provided, perform a general compliance check against common legal document standards.

Strictly adhere to the JSON format. Do not include any additional text or explanations outside the JSON object.`

// ComplianceCheck analyzes document content and returns the structured
// pass/fail/needs-review result. A malformed model response is an error;
// the tool layer degrades it to a descriptive string.
func (p *Pipeline) ComplianceCheck(ctx context.Context, content, jurisdiction string, docType domain.DocumentType) (*domain.ComplianceResult, error) {
	parts := []string{
		"Please analyze the following legal document for compliance.",
		fmt.Sprintf("Document Content:\n\n%s", content),
	}
	if jurisdiction != "" {
		parts = append(parts, fmt.Sprintf("Jurisdiction: %s", jurisdiction))
	}
	if docType != "" {
		parts = append(parts, fmt.Sprintf("Document Type: %s", docType))
	}

	raw, err := p.model.GenerateJSON(ctx, complianceSystem, strings.Join(parts, "\n"))
	if err != nil {
		return nil, fmt.Errorf("compliance check: %w", err)
	}

	var result domain.ComplianceResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode compliance response: %w", err)
	}
	result.CheckedAt = p.now()
	return &result, nil
}
