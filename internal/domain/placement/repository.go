package placement

import (
	"context"

	"jobbridge/internal/common"
)

type Repository interface {
	// CreateIfAbsent inserts the placement unless one already exists for the
	// application, in which case the stored record is returned unchanged.
	CreateIfAbsent(ctx context.Context, p Placement) (*Placement, error)
	GetByID(ctx context.Context, id common.UUID) (*Placement, error)
	GetByApplication(ctx context.Context, applicationID common.UUID) (*Placement, error)
	MarkCollected(ctx context.Context, id common.UUID) (*Placement, error)
	List(ctx context.Context, limit, offset int) ([]Placement, error)
}
