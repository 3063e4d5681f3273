package docpipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const researchSystem = "You are a highly skilled legal research AI."

// Research conducts legal research in two phases. Without clarifying
// answers it returns the generated clarifying questions together with a
// preliminary report; given answers it returns a focused final report.
func (p *Pipeline) Research(ctx context.Context, query string, answers map[string]string) (string, error) {
	if len(answers) > 0 {
		return p.focusedResearch(ctx, query, answers)
	}
	return p.preliminaryResearch(ctx, query)
}

func (p *Pipeline) preliminaryResearch(ctx context.Context, query string) (string, error) {
	clarifyPrompt := fmt.Sprintf(`You are a legal research assistant. Your task is to generate a list of clarifying questions to better understand the user's research query. The goal is to gather more context to provide a comprehensive and accurate legal analysis.
Based on the following query, generate up to 5 critical clarifying questions.

Query: "%s"

Return the questions as a numbered list.`, query)

	questions, err := p.model.Generate(ctx, researchSystem, clarifyPrompt)
	if err != nil {
		return "", fmt.Errorf("generate clarifying questions: %w", err)
	}

	reportPrompt := fmt.Sprintf(`Your task is to conduct a thorough legal analysis of the following query. Since you don't have answers to clarifying questions yet, provide a broad overview of the legal landscape, identify key issues, and mention areas where more specific information would be needed.

Initial Query: "%s"

To help you get started, here are some clarifying questions you might have asked:
%s

Provide a preliminary research report based on the initial query. Structure your response with clear headings and detailed explanations.`, query, questions)

	report, err := p.model.Generate(ctx, researchSystem, reportPrompt)
	if err != nil {
		return "", fmt.Errorf("preliminary research: %w", err)
	}

	return fmt.Sprintf("### Clarifying Questions:\n%s\n\n### Preliminary Research Report:\n%s", questions, report), nil
}

func (p *Pipeline) focusedResearch(ctx context.Context, query string, answers map[string]string) (string, error) {
	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	var qa strings.Builder
	for _, q := range questions {
		fmt.Fprintf(&qa, "Q: %s\nA: %s\n", q, answers[q])
	}

	prompt := fmt.Sprintf(`You have previously asked clarifying questions and received answers from the user. Your task is to conduct a deep and focused legal analysis using this new information.

Initial Query: "%s"

Clarifying Questions and Answers:
%s
Based on the initial query and the provided answers, conduct a comprehensive legal research and provide a detailed report. The report should be well-structured, citing relevant (though potentially placeholder) statutes, case law, and legal principles.`, query, qa.String())

	report, err := p.model.Generate(ctx, researchSystem, prompt)
	if err != nil {
		return "", fmt.Errorf("focused research: %w", err)
	}
	return report, nil
}
