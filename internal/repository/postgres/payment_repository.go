package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/payment"
)

const paymentColumns = `id, candidate_id, purpose, amount, evidence_ref, status, reviewer_id, rejection_reason,
	resolved_at, version, created_at, updated_at`

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p payment.Payment) (*payment.Payment, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Version = 1
	_, err := r.db.ExecContext(ctx, `INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CandidateID, p.Purpose, p.Amount, p.EvidenceRef, p.Status,
		nullableString(p.ReviewerID.String()), nullableString(p.RejectionReason), p.ResolvedAt,
		p.Version, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, storeError("failed to create payment", err)
	}
	return &p, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id common.UUID) (*payment.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	p, err := scanPayment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "payment not found", err)
		}
		return nil, storeError("failed to load payment", err)
	}
	return p, nil
}

// Resolve is conditioned on both the version and the pending status, so a
// payment can be resolved at most once no matter how calls interleave.
func (r *PaymentRepository) Resolve(ctx context.Context, id common.UUID, expectedVersion int, status payment.Status, reviewerID common.UUID, reason string, resolvedAt time.Time) (*payment.Payment, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE payments
		SET status = $1, reviewer_id = $2, rejection_reason = $3, resolved_at = $4, version = version + 1, updated_at = $5
		WHERE id = $6 AND version = $7 AND status = $8`,
		status, reviewerID, nullableString(reason), resolvedAt, time.Now().UTC(),
		id, expectedVersion, payment.StatusPending)
	if err != nil {
		return nil, storeError("failed to resolve payment", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status != payment.StatusPending {
			return nil, common.NewError(common.CodeAlreadyResolved, "payment is already "+string(current.Status), nil)
		}
		return nil, versionConflict()
	}
	return r.GetByID(ctx, id)
}

func (r *PaymentRepository) ListPending(ctx context.Context, limit, offset int) ([]payment.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE status = $1
		ORDER BY created_at ASC LIMIT $2 OFFSET $3`, payment.StatusPending, limit, offset)
	if err != nil {
		return nil, storeError("failed to list pending payments", err)
	}
	return collectPayments(rows)
}

func (r *PaymentRepository) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]payment.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE candidate_id = $1
		ORDER BY created_at DESC`, candidateID)
	if err != nil {
		return nil, storeError("failed to list candidate payments", err)
	}
	return collectPayments(rows)
}

func collectPayments(rows *sql.Rows) ([]payment.Payment, error) {
	defer rows.Close()
	var items []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, storeError("failed to scan payment", err)
		}
		items = append(items, *p)
	}
	return items, nil
}

func scanPayment(scan func(...any) error) (*payment.Payment, error) {
	var p payment.Payment
	var reviewerID, reason sql.NullString
	if err := scan(&p.ID, &p.CandidateID, &p.Purpose, &p.Amount, &p.EvidenceRef, &p.Status,
		&reviewerID, &reason, &p.ResolvedAt, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ReviewerID = common.UUID(reviewerID.String)
	p.RejectionReason = reason.String
	return &p, nil
}
