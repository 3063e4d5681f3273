package docpipe

import (
	"context"
	"fmt"
	"strings"
)

const enhanceSystem = "You are a helpful legal document assistant."

const enhanceGuidelines = `You are a meticulous and experienced paralegal AI assistant specializing in contract law. Your task is to enhance the following legal document.

**Document Analysis and Enhancement Guidelines:**

1. **Clarity and Conciseness:** Review the document for ambiguous or convoluted language. Rephrase to improve clarity without altering the legal meaning.
2. **Consistency:** Check for inconsistencies in terminology, definitions, and obligations throughout the document.
3. **Completeness:** Identify any missing standard clauses typically found in a document of this nature (e.g., Confidentiality, Force Majeure, Governing Law).
4. **Risk Identification:** Flag clauses that could pose a potential risk, such as one-sided indemnification or ambiguous liability limitations.
5. **Formatting and Structure:** Ensure proper formatting, including consistent numbering and clause cross-referencing.

**User Instructions:**
`

// Enhance revises existing document content, optionally steered by user
// instructions, and returns the full revised text.
func (p *Pipeline) Enhance(ctx context.Context, content, instructions string) (string, error) {
	var sb strings.Builder
	sb.WriteString(enhanceGuidelines)
	if instructions != "" {
		sb.WriteString(instructions)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("No specific user instructions provided. Follow the general guidelines above.\n\n")
	}
	fmt.Fprintf(&sb, "**Original Document:**\n```legal\n%s\n```\n\n**Enhanced Document:**", content)

	enhanced, err := p.model.Generate(ctx, enhanceSystem, sb.String())
	if err != nil {
		return "", fmt.Errorf("enhance document: %w", err)
	}
	return enhanced, nil
}
