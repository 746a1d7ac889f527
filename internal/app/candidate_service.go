package app

import (
	"context"
	"strings"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/candidate"
)

type CandidateService struct {
	repo candidate.Repository
}

func NewCandidateService(repo candidate.Repository) *CandidateService {
	return &CandidateService{repo: repo}
}

func (s *CandidateService) Register(ctx context.Context, profile candidate.Profile) (*candidate.Profile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	// Flags and counters are owned by the payment workflow and the quota
	// enforcer; a fresh profile always starts clean.
	profile.Premium = false
	profile.RegistrationApproved = false
	profile.FreeApplicationsUsed = 0
	profile.Active = true
	return s.repo.Create(ctx, profile)
}

func (s *CandidateService) Update(ctx context.Context, profile candidate.Profile) (*candidate.Profile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	var updated *candidate.Profile
	err := common.RetryOnConflict(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, profile.ID)
		if err != nil {
			return err
		}
		next := *current
		next.FullName = profile.FullName
		next.Industry = profile.Industry
		next.Subcategory = profile.Subcategory
		next.Skills = profile.Skills
		next.YearsOfExperience = profile.YearsOfExperience
		next.Location = profile.Location
		next.Region = profile.Region
		updated, err = s.repo.Update(ctx, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Deactivate retires a profile. Profiles are never deleted so existing
// applications and placements keep a valid candidate reference.
func (s *CandidateService) Deactivate(ctx context.Context, id common.UUID) error {
	return common.RetryOnConflict(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !current.Active {
			return nil
		}
		return s.repo.Deactivate(ctx, current.ID, current.Version)
	})
}

func (s *CandidateService) Get(ctx context.Context, id common.UUID) (*candidate.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func validateProfile(profile candidate.Profile) error {
	fields := map[string]string{}
	if strings.TrimSpace(profile.FullName) == "" {
		fields["full_name"] = "full name is required"
	}
	if strings.TrimSpace(profile.Industry) == "" {
		fields["industry"] = "industry is required"
	}
	if profile.YearsOfExperience < 0 {
		fields["years_of_experience"] = "years of experience must not be negative"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid candidate profile", fields)
	}
	return nil
}
