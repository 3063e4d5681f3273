package domain

import "time"

// DocumentType mirrors the document_type values accepted by the drafting
// pipeline. Unknown values fall back to the court-filing instructions.
type DocumentType string

const (
	DocTypeFiling    DocumentType = "Filing"
	DocTypePetition  DocumentType = "Petition"
	DocTypeMotion    DocumentType = "Motion"
	DocTypeNotice    DocumentType = "Notice"
	DocTypeLetter    DocumentType = "Letter"
	DocTypeContract  DocumentType = "Contract"
	DocTypeAgreement DocumentType = "Agreement"
)

// AreaOfLaw is free-form ("Family Law", "Contract Law", ...). The core
// never interprets it, it is only relayed to the drafting prompt.
type AreaOfLaw string

type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusEnhanced DocumentStatus = "enhanced"
)

// Document is a drafted legal document owned by exactly one user.
type Document struct {
	ID              DocumentID
	UserID          UserID
	Title           string
	Content         string
	Status          DocumentStatus
	DocumentType    DocumentType
	AreaOfLaw       AreaOfLaw
	Jurisdiction    string
	ClientProfileID *ClientProfileID

	Evaluation *EvaluationResult
	Compliance *ComplianceResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EvaluationResult is the stored outcome of an evaluate run.
type EvaluationResult struct {
	Criteria    string    `json:"criteria"`
	Summary     string    `json:"summary"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// ComplianceResult is the structured outcome of a compliance check.
type ComplianceResult struct {
	Formatting      string    `json:"formatting"`
	RequiredClauses []string  `json:"required_clauses"`
	JurisdictionFit string    `json:"jurisdiction_fit"`
	CheckedAt       time.Time `json:"checked_at,omitempty"`
}

// Profile is the resource owner's profile. Optional fields are empty
// strings when the user never filled them in.
type Profile struct {
	UserID      UserID
	FullName    string
	Email       string
	Role        string // "self", "attorney" or "client"
	Address     string
	PhoneNumber string
	City        string
	State       string
}

// ClientProfile is a client record an attorney drafts documents for.
type ClientProfile struct {
	ID          ClientProfileID
	UserID      UserID
	FullName    string
	Address     string
	PhoneNumber string
}

// ResearchFinding is the outcome of a research run. It is returned
// inline to the conversation and never persisted.
type ResearchFinding struct {
	ClarifyingQuestions string
	Report              string
}
