package actor

import "jobbridge/internal/common"

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

type Actor struct {
	ID   common.UUID
	Role Role
}
