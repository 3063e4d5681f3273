package docpipe

import (
	"context"
	"fmt"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

const evaluateSystem = "You are a legal document AI evaluator. Provide a concise and comprehensive evaluation of the legal document based on the given criteria. Focus on accuracy, completeness, and adherence to legal standards. Your response should be in a professional and clear format."

// DefaultEvaluationCriteria is used when the caller supplies none.
const DefaultEvaluationCriteria = "General legal review"

// Evaluate reviews document content against the given criteria and
// returns a structured evaluation ready to attach to the document.
func (p *Pipeline) Evaluate(ctx context.Context, content, criteria string) (*domain.EvaluationResult, error) {
	if criteria == "" {
		criteria = DefaultEvaluationCriteria
	}

	user := fmt.Sprintf(`Evaluate the following legal document based on the criteria '%s':

Document Content:
%s

Provide your evaluation and feedback, highlighting any strengths, weaknesses, or areas for improvement.`, criteria, content)

	summary, err := p.model.Generate(ctx, evaluateSystem, user)
	if err != nil {
		return nil, fmt.Errorf("evaluate document: %w", err)
	}

	return &domain.EvaluationResult{
		Criteria:    criteria,
		Summary:     summary,
		EvaluatedAt: p.now(),
	}, nil
}
