package candidate

import (
	"time"

	"jobbridge/internal/common"
)

type Profile struct {
	ID                   common.UUID `json:"id"`
	FullName             string      `json:"full_name"`
	Industry             string      `json:"industry"`
	Subcategory          string      `json:"subcategory"`
	Skills               []string    `json:"skills"`
	YearsOfExperience    int         `json:"years_of_experience"`
	Location             string      `json:"location"`
	Region               string      `json:"region"`
	Premium              bool        `json:"premium"`
	PremiumUntil         time.Time   `json:"premium_until"`
	RegistrationApproved bool        `json:"registration_approved"`
	FreeApplicationsUsed int         `json:"free_applications_used"`
	Active               bool        `json:"active"`
	Version              int         `json:"version"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// PremiumActive reports whether the paid tier is in force at the given moment.
// The premium flag alone is not enough: the 30-day window set at payment
// approval may have lapsed before the sweep clears the flag.
func (p Profile) PremiumActive(now time.Time) bool {
	return p.Premium && now.Before(p.PremiumUntil)
}
