package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-reminders/internal/domain/foodstock"
)

type FoodStockRepo struct {
	db *sql.DB
}

func NewFoodStockRepo(db *sql.DB) *FoodStockRepo {
	return &FoodStockRepo{db: db}
}

func (r *FoodStockRepo) Upsert(ctx context.Context, fs foodstock.FoodStock) error {
	// un registro por mascota
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO food_stock (pet_id, current_grams, daily_grams, alert_threshold_days, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (pet_id) DO UPDATE SET
			current_grams = EXCLUDED.current_grams,
			daily_grams = EXCLUDED.daily_grams,
			alert_threshold_days = EXCLUDED.alert_threshold_days,
			updated_at = EXCLUDED.updated_at
	`,
		fs.PetID,
		fs.CurrentGrams,
		fs.DailyGrams,
		fs.AlertThresholdDays,
		fs.UpdatedAt,
	)
	return err
}

func (r *FoodStockRepo) GetByPet(ctx context.Context, petID string) (foodstock.FoodStock, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return foodstock.FoodStock{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT pet_id, current_grams, daily_grams, alert_threshold_days, updated_at
		FROM food_stock
		WHERE pet_id = $1
	`, petID)

	var fs foodstock.FoodStock
	err := row.Scan(&fs.PetID, &fs.CurrentGrams, &fs.DailyGrams, &fs.AlertThresholdDays, &fs.UpdatedAt)
	if err == sql.ErrNoRows {
		return foodstock.FoodStock{}, ErrNotFound
	}
	return fs, err
}

func (r *FoodStockRepo) ListAll(ctx context.Context) ([]foodstock.FoodStock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_id, current_grams, daily_grams, alert_threshold_days, updated_at
		FROM food_stock
		ORDER BY pet_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]foodstock.FoodStock, 0)
	for rows.Next() {
		var fs foodstock.FoodStock
		if err := rows.Scan(&fs.PetID, &fs.CurrentGrams, &fs.DailyGrams, &fs.AlertThresholdDays, &fs.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}
