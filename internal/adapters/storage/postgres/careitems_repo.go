package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/schedule"
)

type CareItemsRepo struct {
	db *sql.DB
}

func NewCareItemsRepo(db *sql.DB) *CareItemsRepo {
	return &CareItemsRepo{db: db}
}

func (r *CareItemsRepo) Create(ctx context.Context, ci careitems.CareItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_items (
			id, name, category,
			interval_value, interval_unit,
			doses_required,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		ci.ID,
		ci.Name,
		string(ci.Category),
		ci.Interval.Value,
		string(ci.Interval.Unit),
		ci.DosesRequired,
		ci.CreatedAt,
		ci.UpdatedAt,
	)
	return err
}

func (r *CareItemsRepo) Update(ctx context.Context, ci careitems.CareItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE care_items SET
			interval_value = $2, interval_unit = $3,
			doses_required = $4, updated_at = $5
		WHERE id = $1
	`,
		ci.ID,
		ci.Interval.Value,
		string(ci.Interval.Unit),
		ci.DosesRequired,
		ci.UpdatedAt,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CareItemsRepo) GetByID(ctx context.Context, id string) (careitems.CareItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return careitems.CareItem{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, interval_value, interval_unit, doses_required, created_at, updated_at
		FROM care_items
		WHERE id = $1
	`, id)

	ci, err := scanCareItem(row)
	if err == sql.ErrNoRows {
		return careitems.CareItem{}, ErrNotFound
	}
	return ci, err
}

func (r *CareItemsRepo) ListByCategory(ctx context.Context, c careitems.Category) ([]careitems.CareItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, interval_value, interval_unit, doses_required, created_at, updated_at
		FROM care_items
		WHERE category = $1
		ORDER BY name, id
	`, string(c))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]careitems.CareItem, 0)
	for rows.Next() {
		ci, err := scanCareItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ci)
	}
	return out, rows.Err()
}

func scanCareItem(row rowScanner) (careitems.CareItem, error) {
	var ci careitems.CareItem
	var cat, unit string

	err := row.Scan(
		&ci.ID,
		&ci.Name,
		&cat,
		&ci.Interval.Value,
		&unit,
		&ci.DosesRequired,
		&ci.CreatedAt,
		&ci.UpdatedAt,
	)
	if err != nil {
		return careitems.CareItem{}, err
	}

	ci.Category = careitems.Category(cat)
	ci.Interval.Unit = schedule.Unit(unit)
	return ci, nil
}
