package app

import (
	"context"
	"strings"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/job"
)

type JobService struct {
	repo job.Repository
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) Create(ctx context.Context, posting job.Posting) (*job.Posting, error) {
	fields := map[string]string{}
	if strings.TrimSpace(posting.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(posting.Industry) == "" {
		fields["industry"] = "industry is required"
	}
	if len(posting.RequiredSkills) == 0 {
		fields["required_skills"] = "at least one skill is required"
	}
	if posting.MinExperience < 0 {
		fields["min_experience"] = "min experience must not be negative"
	}
	if posting.MaxExperience < posting.MinExperience {
		fields["max_experience"] = "max experience must not be below min experience"
	}
	if posting.SalaryMin < 0 || (posting.SalaryMax > 0 && posting.SalaryMax < posting.SalaryMin) {
		fields["salary"] = "salary range is invalid"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid job posting", fields)
	}
	// Every posting enters moderation; staff decide visibility.
	posting.ModerationStatus = job.StatusPending
	return s.repo.Create(ctx, posting)
}

// Moderate is the staff-only visibility gate: pending postings are
// activated or rejected, active ones can be taken down.
func (s *JobService) Moderate(ctx context.Context, jobID common.UUID, status job.ModerationStatus) (*job.Posting, error) {
	status = job.ModerationStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if status != job.StatusActive && status != job.StatusRejected {
		return nil, common.NewValidationError("invalid moderation status", map[string]string{"status": "status must be active or rejected"})
	}
	err := common.RetryOnConflict(ctx, func(ctx context.Context) error {
		posting, err := s.repo.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		if posting.ModerationStatus == status {
			return nil
		}
		allowed := posting.ModerationStatus == job.StatusPending ||
			(posting.ModerationStatus == job.StatusActive && status == job.StatusRejected)
		if !allowed {
			return common.NewError(common.CodeIllegalTransition, "cannot move posting from "+string(posting.ModerationStatus)+" to "+string(status), nil)
		}
		return s.repo.UpdateModerationStatus(ctx, posting.ID, posting.Version, status)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, jobID)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Posting, error) {
	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.repo.IncrementViews(ctx, id)
	return posting, nil
}

func (s *JobService) ListActive(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	return s.repo.ListByModerationStatus(ctx, job.StatusActive, limit, offset)
}

func (s *JobService) ListPending(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	return s.repo.ListByModerationStatus(ctx, job.StatusPending, limit, offset)
}

func (s *JobService) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Posting, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}
