package app

import (
	"context"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/candidate"
)

const DefaultFreeApplicationLimit = 10

// QuotaEnforcer authorizes consumption of free application slots. The
// check and the counter increment are a single atomic unit: Consume
// re-reads the profile and re-runs the check on every version conflict,
// so two submissions racing at the boundary can never both pass.
type QuotaEnforcer struct {
	candidates candidate.Repository
	limit      int
	now        func() time.Time
}

func NewQuotaEnforcer(candidates candidate.Repository, limit int) *QuotaEnforcer {
	if limit <= 0 {
		limit = DefaultFreeApplicationLimit
	}
	return &QuotaEnforcer{candidates: candidates, limit: limit, now: time.Now}
}

func (q *QuotaEnforcer) Authorize(profile candidate.Profile) bool {
	if profile.PremiumActive(q.now().UTC()) {
		return true
	}
	return profile.FreeApplicationsUsed < q.limit
}

// Consume authorizes and increments in one version-guarded mutation.
// Premium candidates pass without touching the counter; the returned flag
// reports whether a slot was actually taken, so the caller knows what a
// later refund is owed.
func (q *QuotaEnforcer) Consume(ctx context.Context, candidateID common.UUID) (bool, error) {
	consumed := false
	err := common.RetryOnConflict(ctx, func(ctx context.Context) error {
		consumed = false
		profile, err := q.candidates.GetByID(ctx, candidateID)
		if err != nil {
			return err
		}
		if profile.PremiumActive(q.now().UTC()) {
			return nil
		}
		if profile.FreeApplicationsUsed >= q.limit {
			return common.NewError(common.CodeQuotaExceeded, "free application quota exhausted", nil)
		}
		if err := q.candidates.ConsumeFreeApplication(ctx, profile.ID, profile.Version); err != nil {
			return err
		}
		consumed = true
		return nil
	})
	return consumed, err
}

// Release refunds a slot, e.g. when the candidate withdraws an application.
func (q *QuotaEnforcer) Release(ctx context.Context, candidateID common.UUID) error {
	return common.RetryOnConflict(ctx, func(ctx context.Context) error {
		profile, err := q.candidates.GetByID(ctx, candidateID)
		if err != nil {
			return err
		}
		if profile.FreeApplicationsUsed == 0 {
			return nil
		}
		return q.candidates.ReleaseFreeApplication(ctx, profile.ID, profile.Version)
	})
}
