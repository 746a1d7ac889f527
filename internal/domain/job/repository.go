package job

import (
	"context"

	"jobbridge/internal/common"
)

type Repository interface {
	Create(ctx context.Context, posting Posting) (*Posting, error)
	GetByID(ctx context.Context, id common.UUID) (*Posting, error)
	UpdateModerationStatus(ctx context.Context, id common.UUID, expectedVersion int, status ModerationStatus) error
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Posting, error)
	ListByModerationStatus(ctx context.Context, status ModerationStatus, limit, offset int) ([]Posting, error)
	IncrementViews(ctx context.Context, id common.UUID) error
	IncrementApplications(ctx context.Context, id common.UUID) error
}
