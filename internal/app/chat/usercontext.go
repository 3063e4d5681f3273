package chat

import (
	"fmt"
	"strings"

	"github.com/lawverra/lawverra-agent/internal/domain"
)

const systemPromptTemplate = `You are Lawverra, a helpful and meticulous legal AI assistant.

%s

Guidelines:
- Before using any tool, first confirm with the user. Example: 'I can generate that document for you. Shall I proceed?'
- If you need more information to use a tool, ask the user for the missing details.
- When a tool successfully creates or modifies a document, inform the user of the document's ID.
- You must operate on behalf of the authenticated user.
- Use the user's profile information when relevant to provide personalized assistance.
- Always address the user by their name when known.`

// BuildSystemPrompt renders the agent's system prompt including the
// user-context snapshot. The snapshot is computed once per turn and
// never refreshed mid-conversation: profile edits made while a turn is
// in flight do not change that turn's behavior.
func BuildSystemPrompt(profile *domain.Profile) string {
	return fmt.Sprintf(systemPromptTemplate, UserContext(profile))
}

// UserContext builds the deterministic profile block injected into the
// system prompt. Each line appears only when the corresponding field is
// non-empty.
func UserContext(profile *domain.Profile) string {
	if profile == nil {
		return "User context: No profile information available."
	}

	var parts []string

	if profile.FullName != "" {
		parts = append(parts, fmt.Sprintf("User name: %s", profile.FullName))
	}

	if profile.Role != "" {
		parts = append(parts, fmt.Sprintf("User role: %s", roleDescription(profile.Role)))
	}

	var location []string
	if profile.City != "" {
		location = append(location, profile.City)
	}
	if profile.State != "" {
		location = append(location, profile.State)
	}
	if len(location) > 0 {
		parts = append(parts, fmt.Sprintf("User location: %s", strings.Join(location, ", ")))
	}

	if profile.PhoneNumber != "" {
		parts = append(parts, "User has phone number on file")
	}

	if len(parts) == 0 {
		return "User context: Profile setup incomplete."
	}

	var sb strings.Builder
	sb.WriteString("User context:")
	for _, p := range parts {
		sb.WriteString("\n- ")
		sb.WriteString(p)
	}
	return sb.String()
}

func roleDescription(role string) string {
	switch role {
	case "self":
		return "individual seeking legal assistance"
	case "attorney":
		return "licensed attorney"
	case "client":
		return "client of an attorney"
	default:
		return role
	}
}
