package foodstock

import "context"

type Repository interface {
	Upsert(ctx context.Context, fs FoodStock) error
	GetByPet(ctx context.Context, petID string) (FoodStock, error)
	ListAll(ctx context.Context) ([]FoodStock, error)
}
