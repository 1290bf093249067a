package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-reminders/internal/domain/careitems"
)

type careItemRepo struct {
	mu   sync.RWMutex
	byID map[string]careitems.CareItem
}

func NewCareItemRepo() careitems.Repository {
	return &careItemRepo{
		byID: make(map[string]careitems.CareItem),
	}
}

func (r *careItemRepo) Create(ctx context.Context, ci careitems.CareItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ci.ID) == "" {
		return errors.New("care item id required")
	}
	if _, exists := r.byID[ci.ID]; exists {
		return errors.New("care item already exists")
	}
	r.byID[ci.ID] = ci
	return nil
}

func (r *careItemRepo) Update(ctx context.Context, ci careitems.CareItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[ci.ID]; !exists {
		return ErrNotFound
	}
	r.byID[ci.ID] = ci
	return nil
}

func (r *careItemRepo) GetByID(ctx context.Context, id string) (careitems.CareItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ci, ok := r.byID[id]
	if !ok {
		return careitems.CareItem{}, ErrNotFound
	}
	return ci, nil
}

func (r *careItemRepo) ListByCategory(ctx context.Context, c careitems.Category) ([]careitems.CareItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]careitems.CareItem, 0)
	for _, ci := range r.byID {
		if ci.Category == c {
			out = append(out, ci)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
