package payment

import (
	"context"
	"time"

	"jobbridge/internal/common"
)

type Repository interface {
	Create(ctx context.Context, p Payment) (*Payment, error)
	GetByID(ctx context.Context, id common.UUID) (*Payment, error)
	// Resolve flips pending → approved/rejected conditionally on the version.
	// It fails with CodeAlreadyResolved when the payment is no longer pending
	// and with CodeConflict on a plain version mismatch.
	Resolve(ctx context.Context, id common.UUID, expectedVersion int, status Status, reviewerID common.UUID, reason string, resolvedAt time.Time) (*Payment, error)
	ListPending(ctx context.Context, limit, offset int) ([]Payment, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID) ([]Payment, error)
}
