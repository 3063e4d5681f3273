package chat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lawverra/lawverra-agent/internal/app/chat"
	"github.com/lawverra/lawverra-agent/internal/domain"
)

func TestUserContext(t *testing.T) {
	cases := []struct {
		name    string
		profile *domain.Profile
		want    string
	}{
		{
			"nil profile",
			nil,
			"User context: No profile information available.",
		},
		{
			"empty profile",
			&domain.Profile{UserID: "u1"},
			"User context: Profile setup incomplete.",
		},
		{
			"full profile",
			&domain.Profile{UserID: "u1", FullName: "Ana Silva", Role: "attorney", City: "Miami", State: "Florida", PhoneNumber: "555-1234"},
			"User context:\n- User name: Ana Silva\n- User role: licensed attorney\n- User location: Miami, Florida\n- User has phone number on file",
		},
		{
			"name only",
			&domain.Profile{UserID: "u1", FullName: "Ana Silva"},
			"User context:\n- User name: Ana Silva",
		},
		{
			"self role",
			&domain.Profile{UserID: "u1", Role: "self"},
			"User context:\n- User role: individual seeking legal assistance",
		},
		{
			"client role",
			&domain.Profile{UserID: "u1", Role: "client"},
			"User context:\n- User role: client of an attorney",
		},
		{
			"unknown role passes through",
			&domain.Profile{UserID: "u1", Role: "paralegal"},
			"User context:\n- User role: paralegal",
		},
		{
			"state without city",
			&domain.Profile{UserID: "u1", State: "Florida"},
			"User context:\n- User location: Florida",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, chat.UserContext(tc.profile))
		})
	}
}

func TestBuildSystemPromptEmbedsContext(t *testing.T) {
	prompt := chat.BuildSystemPrompt(&domain.Profile{UserID: "u1", FullName: "Ana Silva"})
	require.Contains(t, prompt, "You are Lawverra")
	require.Contains(t, prompt, "User name: Ana Silva")
	require.Contains(t, prompt, "Guidelines:")
}
