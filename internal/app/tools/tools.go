// Package tools wraps the document pipeline in named, schema-typed
// capabilities the agent loop may invoke mid-conversation. Every tool is
// bound to its owning user at construction: the acting user is never
// taken from model-supplied arguments, and a tool instance is never
// reused across users.
package tools

import (
	"context"
	"fmt"

	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

// Tool is one capability the loop can route a model request to. Invoke
// returns a result string in every case: failures are degraded to
// descriptive text so a broken tool never aborts the conversation.
type Tool interface {
	Name() string
	Schema() domain.ToolSchema
	Invoke(ctx context.Context, args map[string]any) string
}

// Registry is the closed set of five tools bound to one user.
type Registry struct {
	tools []Tool
}

// NewRegistry builds the fixed tool set for one user. The set is closed:
// capability routing is a name lookup over these five, nothing dynamic.
func NewRegistry(owner domain.UserID, docs domain.DocumentStore, profiles domain.ProfileStore, pipe *docpipe.Pipeline) *Registry {
	return &Registry{
		tools: []Tool{
			&GenerateTool{owner: owner, docs: docs, profiles: profiles, pipe: pipe},
			&EnhanceTool{owner: owner, docs: docs, pipe: pipe},
			&EvaluateTool{owner: owner, docs: docs, pipe: pipe},
			&ComplianceTool{owner: owner, docs: docs, pipe: pipe},
			&ResearchTool{owner: owner, profiles: profiles, pipe: pipe},
		},
	}
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

func (r *Registry) Schemas() []domain.ToolSchema {
	out := make([]domain.ToolSchema, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Schema())
	}
	return out
}

// ValidateArgs checks a model-supplied argument map against a tool
// schema before the tool runs. A failure here is relayed to the model as
// a tool result so it can self-correct; it never reaches the pipeline.
func ValidateArgs(schema domain.ToolSchema, args map[string]any) error {
	for _, f := range schema.Fields {
		v, ok := args[f.Name]
		if !ok || v == nil {
			if f.Required {
				return fmt.Errorf("missing required argument %q", f.Name)
			}
			continue
		}
		switch f.Type {
		case domain.FieldString:
			s, isStr := v.(string)
			if !isStr {
				return fmt.Errorf("argument %q must be a string", f.Name)
			}
			if f.Required && s == "" {
				return fmt.Errorf("missing required argument %q", f.Name)
			}
		case domain.FieldObject:
			if _, isMap := v.(map[string]any); !isMap {
				return fmt.Errorf("argument %q must be an object", f.Name)
			}
		}
	}
	return nil
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func stringMapArg(args map[string]any, key string) map[string]string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	return out
}

// notPermitted deliberately reads the same for a missing document and a
// foreign one, so tool output never leaks existence across tenants.
func notPermitted(id string) string {
	return fmt.Sprintf("Error: Document with ID %s not found or you do not have permission to access it.", id)
}
