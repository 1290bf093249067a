package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

const recordColumns = `
	id, pet_id, item_id, category,
	applied_at, recorded_at, next_due_at,
	active, notes
`

func (r *RecordsRepo) Create(ctx context.Context, rec records.CareRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_records (`+recordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.PetID,
		rec.ItemID,
		string(rec.Category),
		rec.AppliedAt,
		rec.RecordedAt,
		rec.NextDueAt,
		rec.Active,
		rec.Notes,
	)
	return err
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.CareRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.CareRecord{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM care_records
		WHERE id = $1
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return records.CareRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *RecordsRepo) ListByPet(ctx context.Context, petID string) ([]records.CareRecord, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	return r.list(ctx, `
		SELECT `+recordColumns+`
		FROM care_records
		WHERE pet_id = $1
		ORDER BY applied_at DESC
	`, petID)
}

func (r *RecordsRepo) ListActiveByCategory(ctx context.Context, c careitems.Category) ([]records.CareRecord, error) {
	return r.list(ctx, `
		SELECT `+recordColumns+`
		FROM care_records
		WHERE active AND category = $1
		ORDER BY id
	`, string(c))
}

func (r *RecordsRepo) Deactivate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE care_records
		SET active = FALSE
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) list(ctx context.Context, query string, args ...any) ([]records.CareRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.CareRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(row rowScanner) (records.CareRecord, error) {
	var rec records.CareRecord
	var cat string

	err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.ItemID,
		&cat,
		&rec.AppliedAt,
		&rec.RecordedAt,
		&rec.NextDueAt,
		&rec.Active,
		&rec.Notes,
	)
	if err != nil {
		return records.CareRecord{}, err
	}

	rec.Category = careitems.Category(cat)
	return rec, nil
}
