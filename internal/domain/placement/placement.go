package placement

import (
	"time"

	"jobbridge/internal/common"
)

// CommissionRate is the platform fee, fixed at half of the first-month salary.
const CommissionRate = 0.5

type Placement struct {
	ID               common.UUID `json:"id"`
	ApplicationID    common.UUID `json:"application_id"`
	CandidateID      common.UUID `json:"candidate_id"`
	JobID            common.UUID `json:"job_id"`
	SalaryAtHire     int         `json:"salary_at_hire"`
	CommissionRate   float64     `json:"commission_rate"`
	CommissionAmount int         `json:"commission_amount"`
	Collected        bool        `json:"collected"`
	CollectedAt      *time.Time  `json:"collected_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}
