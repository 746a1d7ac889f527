package maintenance

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// PremiumSweeper clears premium flags whose window has lapsed. This is
// operational hygiene only: authorization checks compare premium_until to
// the current time, so correctness never depends on the sweep running.
type PremiumSweeper struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPremiumSweeper(db *sql.DB, logger *slog.Logger) *PremiumSweeper {
	return &PremiumSweeper{db: db, logger: logger}
}

func (s *PremiumSweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	result, err := s.db.ExecContext(ctx, `UPDATE candidates
		SET premium = FALSE, version = version + 1, updated_at = $1
		WHERE premium = TRUE AND premium_until < $1`, time.Now().UTC())
	if err != nil {
		s.logger.Error("premium sweep failed", "error", err)
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		s.logger.Info("premium sweep cleared expired flags", "count", affected)
	}
}
