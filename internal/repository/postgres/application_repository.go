package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/application"
)

const applicationColumns = `id, candidate_id, job_id, match_score, status, salary_at_hire, rejection_reason,
	idempotency_key, quota_consumed, applied_at, shortlisted_at, hired_at, rejected_at, withdrawn_at, version,
	created_at, updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	// The service pre-assigns the ID so a replay collision can be told
	// apart from a fresh insert by comparing IDs.
	if app.ID.IsZero() {
		app.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	app.Version = 1
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		app.ID, app.CandidateID, app.JobID, app.MatchScore, app.Status, nullableInt(app.SalaryAtHire),
		nullableString(app.RejectionReason), nullableString(app.IdempotencyKey), app.QuotaConsumed,
		app.AppliedAt, app.ShortlistedAt, app.HiredAt, app.RejectedAt, app.WithdrawnAt,
		app.Version, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Losing the idempotency-key race means another request with
			// the same key already inserted; hand back its record.
			if pgErr.ConstraintName == "idx_applications_idempotency" {
				return r.FindByIdempotencyKey(ctx, app.IdempotencyKey)
			}
			return nil, common.NewError(common.CodeDuplicateApplication, "already applied to this job", err)
		}
		return nil, storeError("failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, storeError("failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) FindByIdempotencyKey(ctx context.Context, key string) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE idempotency_key = $1`, key)
	app, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, storeError("failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) FindActiveByPair(ctx context.Context, candidateID, jobID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE candidate_id = $1 AND job_id = $2 AND status <> $3`, candidateID, jobID, application.StatusWithdrawn)
	app, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, storeError("failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, app application.Application) (*application.Application, error) {
	app.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE applications
		SET status = $1, salary_at_hire = $2, rejection_reason = $3, shortlisted_at = $4, hired_at = $5,
			rejected_at = $6, withdrawn_at = $7, version = version + 1, updated_at = $8
		WHERE id = $9 AND version = $10`,
		app.Status, nullableInt(app.SalaryAtHire), nullableString(app.RejectionReason),
		app.ShortlistedAt, app.HiredAt, app.RejectedAt, app.WithdrawnAt,
		app.UpdatedAt, app.ID, app.Version)
	if err != nil {
		return nil, storeError("failed to update application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, versionConflict()
	}
	return r.GetByID(ctx, app.ID)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
	if err != nil {
		return nil, storeError("failed to list candidate applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1 ORDER BY match_score DESC, created_at DESC`, jobID)
	if err != nil {
		return nil, storeError("failed to list job applications", err)
	}
	return collectApplications(rows)
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, storeError("failed to scan application", err)
		}
		items = append(items, *app)
	}
	return items, nil
}

func scanApplication(scan func(...any) error) (*application.Application, error) {
	var app application.Application
	var salary sql.NullInt64
	var reason, idempotencyKey sql.NullString
	if err := scan(&app.ID, &app.CandidateID, &app.JobID, &app.MatchScore, &app.Status, &salary, &reason,
		&idempotencyKey, &app.QuotaConsumed, &app.AppliedAt, &app.ShortlistedAt, &app.HiredAt, &app.RejectedAt,
		&app.WithdrawnAt, &app.Version, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return nil, err
	}
	app.SalaryAtHire = int(salary.Int64)
	app.RejectionReason = reason.String
	app.IdempotencyKey = idempotencyKey.String
	return &app, nil
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
