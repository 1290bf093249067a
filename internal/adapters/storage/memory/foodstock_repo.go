package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-reminders/internal/domain/foodstock"
)

type foodStockRepo struct {
	mu    sync.RWMutex
	byPet map[string]foodstock.FoodStock
}

func NewFoodStockRepo() foodstock.Repository {
	return &foodStockRepo{
		byPet: make(map[string]foodstock.FoodStock),
	}
}

func (r *foodStockRepo) Upsert(ctx context.Context, fs foodstock.FoodStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(fs.PetID) == "" {
		return errors.New("pet id required")
	}
	r.byPet[fs.PetID] = fs
	return nil
}

func (r *foodStockRepo) GetByPet(ctx context.Context, petID string) (foodstock.FoodStock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fs, ok := r.byPet[petID]
	if !ok {
		return foodstock.FoodStock{}, ErrNotFound
	}
	return fs, nil
}

func (r *foodStockRepo) ListAll(ctx context.Context) ([]foodstock.FoodStock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]foodstock.FoodStock, 0, len(r.byPet))
	for _, fs := range r.byPet {
		out = append(out, fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PetID < out[j].PetID })
	return out, nil
}
