package payment

import (
	"time"

	"jobbridge/internal/common"
)

type Purpose string

const (
	PurposeRegistration Purpose = "registration"
	PurposePremium      Purpose = "premium"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Payment struct {
	ID              common.UUID `json:"id"`
	CandidateID     common.UUID `json:"candidate_id"`
	Purpose         Purpose     `json:"purpose"`
	Amount          int         `json:"amount"`
	EvidenceRef     string      `json:"evidence_ref"`
	Status          Status      `json:"status"`
	ReviewerID      common.UUID `json:"reviewer_id,omitempty"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	ResolvedAt      *time.Time  `json:"resolved_at,omitempty"`
	Version         int         `json:"version"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
