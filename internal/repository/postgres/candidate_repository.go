package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/candidate"
)

const candidateColumns = `id, full_name, industry, subcategory, skills, years_of_experience, location, region,
	premium, premium_until, registration_approved, free_applications_used, active, version, created_at, updated_at`

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(ctx context.Context, profile candidate.Profile) (*candidate.Profile, error) {
	// Candidate IDs come from the external identity provider; mint one
	// only for profiles created outside that flow.
	if profile.ID.IsZero() {
		profile.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.Version = 1
	_, err := r.db.ExecContext(ctx, `INSERT INTO candidates (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		profile.ID, profile.FullName, profile.Industry, profile.Subcategory, pq.Array(profile.Skills),
		profile.YearsOfExperience, profile.Location, profile.Region, profile.Premium, profile.PremiumUntil,
		profile.RegistrationApproved, profile.FreeApplicationsUsed, profile.Active, profile.Version,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return nil, storeError("failed to create candidate", err)
	}
	return &profile, nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id common.UUID) (*candidate.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	profile, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "candidate not found", err)
		}
		return nil, storeError("failed to load candidate", err)
	}
	return profile, nil
}

func (r *CandidateRepository) Update(ctx context.Context, profile candidate.Profile) (*candidate.Profile, error) {
	profile.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE candidates
		SET full_name = $1, industry = $2, subcategory = $3, skills = $4, years_of_experience = $5,
			location = $6, region = $7, version = version + 1, updated_at = $8
		WHERE id = $9 AND version = $10`,
		profile.FullName, profile.Industry, profile.Subcategory, pq.Array(profile.Skills),
		profile.YearsOfExperience, profile.Location, profile.Region, profile.UpdatedAt,
		profile.ID, profile.Version)
	if err != nil {
		return nil, storeError("failed to update candidate", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, versionConflict()
	}
	return r.GetByID(ctx, profile.ID)
}

func (r *CandidateRepository) ConsumeFreeApplication(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.guardedExec(ctx, "failed to consume free application",
		`UPDATE candidates SET free_applications_used = free_applications_used + 1, version = version + 1, updated_at = $1
		WHERE id = $2 AND version = $3`, time.Now().UTC(), id, expectedVersion)
}

func (r *CandidateRepository) ReleaseFreeApplication(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.guardedExec(ctx, "failed to release free application",
		`UPDATE candidates SET free_applications_used = GREATEST(free_applications_used - 1, 0), version = version + 1, updated_at = $1
		WHERE id = $2 AND version = $3`, time.Now().UTC(), id, expectedVersion)
}

func (r *CandidateRepository) SetRegistrationApproved(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.guardedExec(ctx, "failed to approve registration",
		`UPDATE candidates SET registration_approved = TRUE, version = version + 1, updated_at = $1
		WHERE id = $2 AND version = $3`, time.Now().UTC(), id, expectedVersion)
}

func (r *CandidateRepository) GrantPremium(ctx context.Context, id common.UUID, expectedVersion int, until time.Time) error {
	return r.guardedExec(ctx, "failed to grant premium",
		`UPDATE candidates SET premium = TRUE, premium_until = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`, until, time.Now().UTC(), id, expectedVersion)
}

func (r *CandidateRepository) Deactivate(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.guardedExec(ctx, "failed to deactivate candidate",
		`UPDATE candidates SET active = FALSE, version = version + 1, updated_at = $1
		WHERE id = $2 AND version = $3`, time.Now().UTC(), id, expectedVersion)
}

func (r *CandidateRepository) guardedExec(ctx context.Context, message, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storeError(message, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return versionConflict()
	}
	return nil
}

func scanCandidate(row *sql.Row) (*candidate.Profile, error) {
	var profile candidate.Profile
	if err := row.Scan(&profile.ID, &profile.FullName, &profile.Industry, &profile.Subcategory,
		pq.Array(&profile.Skills), &profile.YearsOfExperience, &profile.Location, &profile.Region,
		&profile.Premium, &profile.PremiumUntil, &profile.RegistrationApproved,
		&profile.FreeApplicationsUsed, &profile.Active, &profile.Version,
		&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return nil, err
	}
	return &profile, nil
}
