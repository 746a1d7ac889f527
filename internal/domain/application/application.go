package application

import (
	"time"

	"jobbridge/internal/common"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusShortlisted Status = "shortlisted"
	StatusHired       Status = "hired"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

type Application struct {
	ID              common.UUID `json:"id"`
	CandidateID     common.UUID `json:"candidate_id"`
	JobID           common.UUID `json:"job_id"`
	MatchScore      int         `json:"match_score"`
	Status          Status      `json:"status"`
	SalaryAtHire    int         `json:"salary_at_hire,omitempty"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	IdempotencyKey  string      `json:"-"`
	QuotaConsumed   bool        `json:"-"`
	AppliedAt       time.Time   `json:"applied_at"`
	ShortlistedAt   *time.Time  `json:"shortlisted_at,omitempty"`
	HiredAt         *time.Time  `json:"hired_at,omitempty"`
	RejectedAt      *time.Time  `json:"rejected_at,omitempty"`
	WithdrawnAt     *time.Time  `json:"withdrawn_at,omitempty"`
	Version         int         `json:"version"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
