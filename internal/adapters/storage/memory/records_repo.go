package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/records"
)

type recordRepo struct {
	mu   sync.RWMutex
	byID map[string]records.CareRecord
}

func NewRecordRepo() records.Repository {
	return &recordRepo{
		byID: make(map[string]records.CareRecord),
	}
}

func (r *recordRepo) Create(ctx context.Context, rec records.CareRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (records.CareRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return records.CareRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string) ([]records.CareRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.CareRecord, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}

	// más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out, nil
}

func (r *recordRepo) ListActiveByCategory(ctx context.Context, c careitems.Category) ([]records.CareRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.CareRecord, 0)
	for _, rec := range r.byID {
		if !rec.Active || rec.Category != c {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *recordRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	rec.Active = false
	r.byID[id] = rec
	return nil
}
