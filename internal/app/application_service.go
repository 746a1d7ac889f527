package app

import (
	"context"
	"strings"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/actor"
	"jobbridge/internal/domain/application"
	"jobbridge/internal/domain/candidate"
	"jobbridge/internal/domain/event"
	"jobbridge/internal/domain/job"
	"jobbridge/internal/domain/placement"
	"jobbridge/internal/match"
)

type ApplicationService struct {
	repo       application.Repository
	candidates candidate.Repository
	jobs       job.Repository
	quota      *QuotaEnforcer
	placements *PlacementService
	notifier   event.Notifier
	now        func() time.Time
}

func NewApplicationService(repo application.Repository, candidates candidate.Repository, jobs job.Repository, quota *QuotaEnforcer, placements *PlacementService, notifier event.Notifier) *ApplicationService {
	return &ApplicationService{
		repo:       repo,
		candidates: candidates,
		jobs:       jobs,
		quota:      quota,
		placements: placements,
		notifier:   notifier,
		now:        time.Now,
	}
}

// TransitionInput carries the payload a transition may require: a reason
// for rejections, a first-month salary for hires.
type TransitionInput struct {
	Reason string
	Salary int
}

// TransitionResult returns the placement alongside the application so a
// repeated hire call can hand back the existing record instead of erroring.
type TransitionResult struct {
	Application *application.Application `json:"application"`
	Placement   *placement.Placement     `json:"placement,omitempty"`
}

func (s *ApplicationService) Submit(ctx context.Context, candidateID, jobID common.UUID, idempotencyKey string) (*application.Application, error) {
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, key)
		if err == nil {
			return existing, nil
		}
		if !common.Is(err, common.CodeNotFound) {
			return nil, err
		}
	}

	profile, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if !profile.Active {
		return nil, common.NewError(common.CodeValidation, "candidate profile is deactivated", nil)
	}
	if !profile.RegistrationApproved {
		return nil, common.NewError(common.CodeValidation, "registration is not approved", nil)
	}

	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.ModerationStatus != job.StatusActive {
		return nil, common.NewError(common.CodeJobNotActive, "job posting is not active", nil)
	}

	if _, err := s.repo.FindActiveByPair(ctx, candidateID, jobID); err == nil {
		return nil, common.NewError(common.CodeDuplicateApplication, "already applied to this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	consumed, err := s.quota.Consume(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	app := application.Application{
		ID:             common.NewUUID(),
		CandidateID:    candidateID,
		JobID:          jobID,
		MatchScore:     match.Score(*profile, *posting),
		Status:         application.StatusApplied,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
		QuotaConsumed:  consumed,
		AppliedAt:      now,
	}
	created, err := s.repo.Create(ctx, app)
	if err != nil {
		// The slot was consumed for an application that does not exist;
		// hand it back so the counter cannot drift above the real count.
		if consumed {
			_ = s.quota.Release(ctx, candidateID)
		}
		return nil, err
	}
	if created.ID != app.ID {
		// A concurrent request holding the same idempotency key won the
		// insert; this submission is a replay of the stored one.
		if consumed {
			_ = s.quota.Release(ctx, candidateID)
		}
		return created, nil
	}

	_ = s.jobs.IncrementApplications(ctx, jobID)
	s.publish(ctx, event.ApplicationSubmitted, candidateID, map[string]string{
		"application_id": created.ID.String(),
		"job_id":         jobID.String(),
	})
	return created, nil
}

func (s *ApplicationService) Transition(ctx context.Context, applicationID common.UUID, newStatus application.Status, who actor.Actor, input TransitionInput) (*TransitionResult, error) {
	newStatus = application.Status(strings.ToLower(strings.TrimSpace(string(newStatus))))
	if !isKnownStatus(newStatus) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be applied, shortlisted, hired, or rejected"})
	}
	if newStatus == application.StatusWithdrawn {
		return nil, common.NewError(common.CodeIllegalTransition, "withdrawal is a candidate operation", nil)
	}

	var result TransitionResult
	err := common.RetryOnConflict(ctx, func(ctx context.Context) error {
		app, err := s.repo.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}

		// Repeating a hire on an already-hired application is a no-op that
		// returns the existing placement, never a second record.
		if newStatus == application.StatusHired && app.Status == application.StatusHired {
			existing, err := s.placements.GetByApplication(ctx, app.ID)
			if common.Is(err, common.CodeNotFound) {
				// A prior hire flipped the status but never got its
				// placement inserted; the salary stamped on the record is
				// enough to finish the job now.
				existing, err = s.placements.Create(ctx, *app, app.SalaryAtHire)
			}
			if err != nil {
				return err
			}
			result = TransitionResult{Application: app, Placement: existing}
			return nil
		}

		if err := validateTransition(app.Status, newStatus, who); err != nil {
			return err
		}
		switch newStatus {
		case application.StatusRejected:
			if strings.TrimSpace(input.Reason) == "" {
				return common.NewValidationError("rejection requires a reason", map[string]string{"reason": "reason is required"})
			}
		case application.StatusHired:
			if input.Salary <= 0 {
				return common.NewValidationError("hire requires a salary", map[string]string{"salary": "salary must be positive"})
			}
		}

		now := s.now().UTC()
		next := *app
		next.Status = newStatus
		switch newStatus {
		case application.StatusShortlisted:
			next.ShortlistedAt = &now
		case application.StatusRejected:
			next.RejectionReason = strings.TrimSpace(input.Reason)
			next.RejectedAt = &now
		case application.StatusHired:
			next.SalaryAtHire = input.Salary
			next.HiredAt = &now
		case application.StatusApplied:
			// Administrative reset. The placement, if any, stays on the
			// ledger: commissions are never retracted.
			next.RejectionReason = ""
		}

		updated, err := s.repo.UpdateStatus(ctx, next)
		if err != nil {
			return err
		}
		result = TransitionResult{Application: updated}
		if newStatus == application.StatusHired {
			created, err := s.placements.Create(ctx, *updated, input.Salary)
			if err != nil {
				return err
			}
			result.Placement = created
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.ApplicationTransition, result.Application.CandidateID, map[string]string{
		"application_id": result.Application.ID.String(),
		"status":         string(result.Application.Status),
	})
	return &result, nil
}

func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, candidateID common.UUID) (*application.Application, error) {
	var withdrawn *application.Application
	var transitioned bool
	err := common.RetryOnConflict(ctx, func(ctx context.Context) error {
		transitioned = false
		app, err := s.repo.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app.CandidateID != candidateID {
			return common.NewError(common.CodeForbidden, "application belongs to another candidate", nil)
		}
		if app.Status == application.StatusWithdrawn {
			withdrawn = app
			return nil
		}
		if app.Status != application.StatusApplied && app.Status != application.StatusShortlisted {
			return common.NewError(common.CodeIllegalTransition, "only pending applications can be withdrawn", nil)
		}
		now := s.now().UTC()
		next := *app
		next.Status = application.StatusWithdrawn
		next.WithdrawnAt = &now
		updated, err := s.repo.UpdateStatus(ctx, next)
		if err != nil {
			return err
		}
		withdrawn = updated
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Refund only what the submission actually took: a slot is released
	// once per withdrawal, and never for a premium-authorized submission
	// that left the counter untouched.
	if transitioned && withdrawn.QuotaConsumed {
		_ = s.quota.Release(ctx, candidateID)
	}
	s.publish(ctx, event.ApplicationWithdrawn, candidateID, map[string]string{"application_id": withdrawn.ID.String()})
	return withdrawn, nil
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ApplicationService) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Application, error) {
	return s.repo.ListByCandidate(ctx, candidateID)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	return s.repo.ListByJob(ctx, jobID)
}

func (s *ApplicationService) publish(ctx context.Context, name string, candidateID common.UUID, payload map[string]string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, event.Event{Name: name, CandidateID: candidateID, Payload: payload})
}

func validateTransition(from, to application.Status, who actor.Actor) error {
	if from == to {
		return common.NewError(common.CodeIllegalTransition, "application is already "+string(to), nil)
	}
	switch {
	case from == application.StatusApplied && (to == application.StatusShortlisted || to == application.StatusRejected):
		return nil
	case from == application.StatusShortlisted && (to == application.StatusHired || to == application.StatusRejected):
		return nil
	case (from == application.StatusRejected || from == application.StatusHired) && to == application.StatusApplied:
		if who.Role != actor.RoleAdmin {
			return common.NewError(common.CodeForbidden, "reset is an administrative override", nil)
		}
		return nil
	default:
		return common.NewError(common.CodeIllegalTransition, "cannot move application from "+string(from)+" to "+string(to), nil)
	}
}

func isKnownStatus(status application.Status) bool {
	switch status {
	case application.StatusApplied, application.StatusShortlisted, application.StatusHired, application.StatusRejected, application.StatusWithdrawn:
		return true
	default:
		return false
	}
}
