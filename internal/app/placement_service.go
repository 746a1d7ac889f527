package app

import (
	"context"
	"math"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/application"
	"jobbridge/internal/domain/event"
	"jobbridge/internal/domain/placement"
)

type PlacementService struct {
	repo     placement.Repository
	notifier event.Notifier
	now      func() time.Time
}

func NewPlacementService(repo placement.Repository, notifier event.Notifier) *PlacementService {
	return &PlacementService{repo: repo, notifier: notifier, now: time.Now}
}

// Create derives the commission record from a completed hire. Idempotent
// per application: a second call returns the stored record unchanged, so
// the commission amount is computed exactly once and never recomputed.
func (s *PlacementService) Create(ctx context.Context, app application.Application, salary int) (*placement.Placement, error) {
	if app.Status != application.StatusHired {
		return nil, common.NewError(common.CodeInvalidState, "application is not hired", nil)
	}
	if salary <= 0 {
		return nil, common.NewValidationError("invalid salary", map[string]string{"salary": "salary must be positive"})
	}
	record := placement.Placement{
		ID:               common.NewUUID(),
		ApplicationID:    app.ID,
		CandidateID:      app.CandidateID,
		JobID:            app.JobID,
		SalaryAtHire:     salary,
		CommissionRate:   placement.CommissionRate,
		CommissionAmount: int(math.Round(float64(salary) * placement.CommissionRate)),
		CreatedAt:        s.now().UTC(),
	}
	created, err := s.repo.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, err
	}
	// Publish only when this call actually inserted the record.
	if created.ID == record.ID {
		s.publish(ctx, created)
	}
	return created, nil
}

func (s *PlacementService) GetByApplication(ctx context.Context, applicationID common.UUID) (*placement.Placement, error) {
	return s.repo.GetByApplication(ctx, applicationID)
}

func (s *PlacementService) MarkCollected(ctx context.Context, id common.UUID) (*placement.Placement, error) {
	return s.repo.MarkCollected(ctx, id)
}

func (s *PlacementService) List(ctx context.Context, limit, offset int) ([]placement.Placement, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *PlacementService) publish(ctx context.Context, p *placement.Placement) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, event.Event{
		Name:        event.PlacementCreated,
		CandidateID: p.CandidateID,
		Payload: map[string]string{
			"placement_id":   p.ID.String(),
			"application_id": p.ApplicationID.String(),
		},
	})
}
