package job

import (
	"time"

	"jobbridge/internal/common"
)

type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusActive   ModerationStatus = "active"
	StatusRejected ModerationStatus = "rejected"
)

type Posting struct {
	ID               common.UUID      `json:"id"`
	EmployerID       common.UUID      `json:"employer_id"`
	Title            string           `json:"title"`
	Industry         string           `json:"industry"`
	Subcategory      string           `json:"subcategory"`
	RequiredSkills   []string         `json:"required_skills"`
	MinExperience    int              `json:"min_experience"`
	MaxExperience    int              `json:"max_experience"`
	SalaryMin        int              `json:"salary_min"`
	SalaryMax        int              `json:"salary_max"`
	Location         string           `json:"location"`
	Region           string           `json:"region"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	Views            int              `json:"views"`
	Applications     int              `json:"applications"`
	Version          int              `json:"version"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
