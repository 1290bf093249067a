package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-care-reminders/internal/domain/reminders"
)

// DedupRepo persiste el ledger de deduplicación sobre la clave
// compuesta (record_id, due_day). La PK de la tabla garantiza "a lo
// sumo una marca por clave" también entre procesos.
type DedupRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewDedupRepo(db *sql.DB) *DedupRepo {
	return &DedupRepo{db: db, now: time.Now}
}

func (r *DedupRepo) Seen(ctx context.Context, key reminders.DedupKey) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reminder_dedup
			WHERE record_id = $1 AND due_day = $2
		)
	`, key.RecordID, key.DueDay).Scan(&exists)
	return exists, err
}

func (r *DedupRepo) Mark(ctx context.Context, key reminders.DedupKey) error {
	// idempotente: marcar dos veces la misma clave no es error
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminder_dedup (record_id, due_day, notified_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (record_id, due_day) DO NOTHING
	`, key.RecordID, key.DueDay, r.now())
	return err
}
