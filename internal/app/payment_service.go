package app

import (
	"context"
	"strings"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/candidate"
	"jobbridge/internal/domain/event"
	"jobbridge/internal/domain/payment"
)

// PremiumDuration is the paid window unlocked by an approved premium payment.
const PremiumDuration = 30 * 24 * time.Hour

type PaymentService struct {
	repo       payment.Repository
	candidates candidate.Repository
	notifier   event.Notifier
	premiumFor time.Duration
	now        func() time.Time
}

func NewPaymentService(repo payment.Repository, candidates candidate.Repository, notifier event.Notifier, premiumFor time.Duration) *PaymentService {
	if premiumFor <= 0 {
		premiumFor = PremiumDuration
	}
	return &PaymentService{repo: repo, candidates: candidates, notifier: notifier, premiumFor: premiumFor, now: time.Now}
}

func (s *PaymentService) Submit(ctx context.Context, candidateID common.UUID, purpose payment.Purpose, amount int, evidenceRef string) (*payment.Payment, error) {
	fields := map[string]string{}
	switch purpose {
	case payment.PurposeRegistration, payment.PurposePremium:
	default:
		fields["purpose"] = "purpose must be registration or premium"
	}
	if amount <= 0 {
		fields["amount"] = "amount must be positive"
	}
	if strings.TrimSpace(evidenceRef) == "" {
		fields["evidence_ref"] = "evidence reference is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid payment", fields)
	}
	if _, err := s.candidates.GetByID(ctx, candidateID); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, payment.Payment{
		CandidateID: candidateID,
		Purpose:     purpose,
		Amount:      amount,
		EvidenceRef: strings.TrimSpace(evidenceRef),
		Status:      payment.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Approve resolves a pending payment and unlocks what it paid for. The
// pending → approved flip is the linearization point: a second approval
// fails with AlreadyResolved instead of extending premium twice.
func (s *PaymentService) Approve(ctx context.Context, paymentID, reviewerID common.UUID) (*payment.Payment, error) {
	var resolved *payment.Payment
	err := common.RetryOnConflict(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.Status != payment.StatusPending {
			// An earlier approval may have committed the flip and then
			// lost the candidate-side grant. Re-apply it (idempotent)
			// before reporting the resolution, so a retry heals instead
			// of stranding an approved payment without its unlock.
			if p.Status == payment.StatusApproved {
				if err := s.applyApproval(ctx, p); err != nil {
					return err
				}
			}
			return common.NewError(common.CodeAlreadyResolved, "payment is already "+string(p.Status), nil)
		}
		resolved, err = s.repo.Resolve(ctx, p.ID, p.Version, payment.StatusApproved, reviewerID, "", s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.applyApproval(ctx, resolved); err != nil {
		return nil, err
	}
	s.publish(ctx, event.PaymentApproved, resolved)
	return resolved, nil
}

func (s *PaymentService) Reject(ctx context.Context, paymentID, reviewerID common.UUID, reason string) (*payment.Payment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, common.NewValidationError("rejection requires a reason", map[string]string{"reason": "reason is required"})
	}
	var resolved *payment.Payment
	err := common.RetryOnConflict(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.Status != payment.StatusPending {
			return common.NewError(common.CodeAlreadyResolved, "payment is already "+string(p.Status), nil)
		}
		resolved, err = s.repo.Resolve(ctx, p.ID, p.Version, payment.StatusRejected, reviewerID, strings.TrimSpace(reason), s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.PaymentRejected, resolved)
	return resolved, nil
}

// applyApproval mutates the candidate record under its own version guard.
// The premium window is derived from the payment's resolution time, so a
// retried write converges on the same value.
func (s *PaymentService) applyApproval(ctx context.Context, p *payment.Payment) error {
	return common.RetryOnConflict(ctx, func(ctx context.Context) error {
		profile, err := s.candidates.GetByID(ctx, p.CandidateID)
		if err != nil {
			return err
		}
		switch p.Purpose {
		case payment.PurposeRegistration:
			if profile.RegistrationApproved {
				return nil
			}
			return s.candidates.SetRegistrationApproved(ctx, profile.ID, profile.Version)
		case payment.PurposePremium:
			until := p.ResolvedAt.Add(s.premiumFor)
			if profile.Premium && profile.PremiumUntil.Equal(until) {
				return nil
			}
			return s.candidates.GrantPremium(ctx, profile.ID, profile.Version, until)
		default:
			return common.NewError(common.CodeInternal, "unknown payment purpose", nil)
		}
	})
}

func (s *PaymentService) Get(ctx context.Context, id common.UUID) (*payment.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PaymentService) ListPending(ctx context.Context, limit, offset int) ([]payment.Payment, error) {
	return s.repo.ListPending(ctx, limit, offset)
}

func (s *PaymentService) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]payment.Payment, error) {
	return s.repo.ListByCandidate(ctx, candidateID)
}

func (s *PaymentService) publish(ctx context.Context, name string, p *payment.Payment) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, event.Event{
		Name:        name,
		CandidateID: p.CandidateID,
		Payload: map[string]string{
			"payment_id": p.ID.String(),
			"purpose":    string(p.Purpose),
			"status":     string(p.Status),
		},
	})
}
