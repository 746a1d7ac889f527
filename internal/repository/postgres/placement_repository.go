package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/placement"
)

const placementColumns = `id, application_id, candidate_id, job_id, salary_at_hire, commission_rate,
	commission_amount, collected, collected_at, created_at`

type PlacementRepository struct {
	db *sql.DB
}

func NewPlacementRepository(db *sql.DB) *PlacementRepository {
	return &PlacementRepository{db: db}
}

// CreateIfAbsent leans on the unique application_id index: a concurrent or
// repeated insert falls through to reading the record that won.
func (r *PlacementRepository) CreateIfAbsent(ctx context.Context, p placement.Placement) (*placement.Placement, error) {
	if p.ID.IsZero() {
		p.ID = common.NewUUID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	result, err := r.db.ExecContext(ctx, `INSERT INTO placements (`+placementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (application_id) DO NOTHING`,
		p.ID, p.ApplicationID, p.CandidateID, p.JobID, p.SalaryAtHire, p.CommissionRate,
		p.CommissionAmount, p.Collected, p.CollectedAt, p.CreatedAt)
	if err != nil {
		return nil, storeError("failed to create placement", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return r.GetByApplication(ctx, p.ApplicationID)
	}
	return &p, nil
}

func (r *PlacementRepository) GetByID(ctx context.Context, id common.UUID) (*placement.Placement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+placementColumns+` FROM placements WHERE id = $1`, id)
	return scanPlacementRow(row, "placement not found")
}

func (r *PlacementRepository) GetByApplication(ctx context.Context, applicationID common.UUID) (*placement.Placement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+placementColumns+` FROM placements WHERE application_id = $1`, applicationID)
	return scanPlacementRow(row, "placement not found for application")
}

func (r *PlacementRepository) MarkCollected(ctx context.Context, id common.UUID) (*placement.Placement, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE placements SET collected = TRUE, collected_at = COALESCE(collected_at, $1)
		WHERE id = $2`, time.Now().UTC(), id)
	if err != nil {
		return nil, storeError("failed to mark placement collected", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PlacementRepository) List(ctx context.Context, limit, offset int) ([]placement.Placement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+placementColumns+` FROM placements
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, storeError("failed to list placements", err)
	}
	defer rows.Close()
	var items []placement.Placement
	for rows.Next() {
		p, err := scanPlacement(rows.Scan)
		if err != nil {
			return nil, storeError("failed to scan placement", err)
		}
		items = append(items, *p)
	}
	return items, nil
}

func scanPlacementRow(row *sql.Row, notFound string) (*placement.Placement, error) {
	p, err := scanPlacement(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, notFound, err)
		}
		return nil, storeError("failed to load placement", err)
	}
	return p, nil
}

func scanPlacement(scan func(...any) error) (*placement.Placement, error) {
	var p placement.Placement
	if err := scan(&p.ID, &p.ApplicationID, &p.CandidateID, &p.JobID, &p.SalaryAtHire, &p.CommissionRate,
		&p.CommissionAmount, &p.Collected, &p.CollectedAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
