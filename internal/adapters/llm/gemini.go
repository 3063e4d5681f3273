package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

// GeminiClient implements domain.ChatModel and domain.TextModel on top
// of Gemini, either through Vertex AI (project + location) or the Gemini
// API (API key).
type GeminiClient struct {
	client    *genai.Client
	chatModel string
	textModel string
}

type GeminiConfig struct {
	// Vertex AI backend.
	ProjectID string
	Location  string
	// Gemini API backend; takes precedence when set.
	APIKey string

	ChatModel string
	TextModel string
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
	case cfg.ProjectID != "" && cfg.Location != "":
		cc.Project = cfg.ProjectID
		cc.Location = cfg.Location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("gemini client needs either an API key or a project and location")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gemini-2.5-pro"
	}
	textModel := cfg.TextModel
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}

	return &GeminiClient{
		client:    client,
		chatModel: chatModel,
		textModel: textModel,
	}, nil
}

// Complete implements domain.ChatModel. The response is either a
// structured tool call (first function-call part wins) or final text.
func (g *GeminiClient) Complete(ctx context.Context, system string, transcript []domain.Message, tools []domain.ToolSchema) (*domain.Completion, error) {
	temp := float32(0.2)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		Tools:             toGenaiTools(tools),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.chatModel, toContents(transcript), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty candidate", domain.ErrModelUnavailable)
	}

	for _, p := range res.Candidates[0].Content.Parts {
		if p.FunctionCall != nil {
			return &domain.Completion{
				ToolCall: &domain.ToolCall{
					Name: p.FunctionCall.Name,
					Args: p.FunctionCall.Args,
				},
			}, nil
		}
	}

	return &domain.Completion{Text: res.Text()}, nil
}

// Generate implements domain.TextModel for the document pipeline.
func (g *GeminiClient) Generate(ctx context.Context, system, user string) (string, error) {
	return g.generate(ctx, system, user, "")
}

// GenerateJSON asks the model for a JSON object body.
func (g *GeminiClient) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	return g.generate(ctx, system, user, "application/json")
}

func (g *GeminiClient) generate(ctx context.Context, system, user, mimeType string) (string, error) {
	temp := float32(0.5)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   8192,
	}
	if mimeType != "" {
		cfg.ResponseMIMEType = mimeType
	}

	contents := []*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty text", domain.ErrModelUnavailable)
	}
	return text, nil
}

// toContents renders the transcript for the wire. Tool results are sent
// as user-role text rather than function-response parts: the persisted
// history does not keep the model's function-call turns (only their
// string results), so a replayed transcript has no calls to pair
// responses with.
func toContents(transcript []domain.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(transcript))
	for _, m := range transcript {
		switch m.Role {
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		case domain.RoleTool:
			text := fmt.Sprintf("Tool result from %s:\n%s", m.ToolName, m.Content)
			contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return contents
}

func toGenaiTools(schemas []domain.ToolSchema) []*genai.Tool {
	if len(schemas) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(schemas))
	for _, s := range schemas {
		params := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(s.Fields)),
		}
		for _, f := range s.Fields {
			params.Properties[f.Name] = &genai.Schema{
				Type:        toGenaiType(f.Type),
				Description: f.Description,
			}
			if f.Required {
				params.Required = append(params.Required, f.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  params,
		})
	}

	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func toGenaiType(t domain.FieldType) genai.Type {
	if t == domain.FieldObject {
		return genai.TypeObject
	}
	return genai.TypeString
}
