package domain

import "time"

type SessionID string
type UserID string
type DocumentID string
type ClientProfileID string

type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

type Timestamp = time.Time
