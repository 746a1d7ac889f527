package candidate

import (
	"context"
	"time"

	"jobbridge/internal/common"
)

// Repository mutations that take an expected version fail with CodeConflict
// when the stored version differs, leaving the record untouched.
type Repository interface {
	Create(ctx context.Context, profile Profile) (*Profile, error)
	GetByID(ctx context.Context, id common.UUID) (*Profile, error)
	Update(ctx context.Context, profile Profile) (*Profile, error)
	ConsumeFreeApplication(ctx context.Context, id common.UUID, expectedVersion int) error
	ReleaseFreeApplication(ctx context.Context, id common.UUID, expectedVersion int) error
	SetRegistrationApproved(ctx context.Context, id common.UUID, expectedVersion int) error
	GrantPremium(ctx context.Context, id common.UUID, expectedVersion int, until time.Time) error
	Deactivate(ctx context.Context, id common.UUID, expectedVersion int) error
}
