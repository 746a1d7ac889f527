package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/job"
)

const jobColumns = `id, employer_id, title, industry, subcategory, required_skills, min_experience, max_experience,
	salary_min, salary_max, location, region, moderation_status, views, applications, version, created_at, updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, posting job.Posting) (*job.Posting, error) {
	posting.ID = common.NewUUID()
	now := time.Now().UTC()
	posting.CreatedAt = now
	posting.UpdatedAt = now
	posting.Version = 1
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_postings (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		posting.ID, posting.EmployerID, posting.Title, posting.Industry, posting.Subcategory,
		pq.Array(posting.RequiredSkills), posting.MinExperience, posting.MaxExperience,
		posting.SalaryMin, posting.SalaryMax, posting.Location, posting.Region,
		posting.ModerationStatus, posting.Views, posting.Applications, posting.Version,
		posting.CreatedAt, posting.UpdatedAt)
	if err != nil {
		return nil, storeError("failed to create job posting", err)
	}
	return &posting, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id)
	posting, err := scanJob(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job posting not found", err)
		}
		return nil, storeError("failed to load job posting", err)
	}
	return posting, nil
}

func (r *JobRepository) UpdateModerationStatus(ctx context.Context, id common.UUID, expectedVersion int, status job.ModerationStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE job_postings SET moderation_status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`, status, time.Now().UTC(), id, expectedVersion)
	if err != nil {
		return storeError("failed to update moderation status", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return versionConflict()
	}
	return nil
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, storeError("failed to list employer postings", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListByModerationStatus(ctx context.Context, status job.ModerationStatus, limit, offset int) ([]job.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE moderation_status = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, storeError("failed to list postings", err)
	}
	return collectJobs(rows)
}

// Counter bumps are best effort and deliberately skip the version guard:
// they never participate in any invariant.
func (r *JobRepository) IncrementViews(ctx context.Context, id common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE job_postings SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return storeError("failed to increment views", err)
	}
	return nil
}

func (r *JobRepository) IncrementApplications(ctx context.Context, id common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE job_postings SET applications = applications + 1 WHERE id = $1`, id)
	if err != nil {
		return storeError("failed to increment applications", err)
	}
	return nil
}

func collectJobs(rows *sql.Rows) ([]job.Posting, error) {
	defer rows.Close()
	var items []job.Posting
	for rows.Next() {
		posting, err := scanJob(rows.Scan)
		if err != nil {
			return nil, storeError("failed to scan job posting", err)
		}
		items = append(items, *posting)
	}
	return items, nil
}

func scanJob(scan func(...any) error) (*job.Posting, error) {
	var posting job.Posting
	if err := scan(&posting.ID, &posting.EmployerID, &posting.Title, &posting.Industry, &posting.Subcategory,
		pq.Array(&posting.RequiredSkills), &posting.MinExperience, &posting.MaxExperience,
		&posting.SalaryMin, &posting.SalaryMax, &posting.Location, &posting.Region,
		&posting.ModerationStatus, &posting.Views, &posting.Applications, &posting.Version,
		&posting.CreatedAt, &posting.UpdatedAt); err != nil {
		return nil, err
	}
	return &posting, nil
}
