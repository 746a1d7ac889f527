package application

import (
	"context"

	"jobbridge/internal/common"
)

type Repository interface {
	// Create fails with CodeDuplicateApplication when a non-withdrawn
	// application already exists for the (candidate, job) pair. Losing a
	// race on the idempotency key is a replay, not a duplicate: the stored
	// application is returned instead, carrying its own ID.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*Application, error)
	FindActiveByPair(ctx context.Context, candidateID, jobID common.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, app Application) (*Application, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
}
