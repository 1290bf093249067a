package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/schedule"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]CareRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]CareRecord{}}
}

func (r *testRepo) Create(ctx context.Context, rec CareRecord) error {
	if rec.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (CareRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return CareRecord{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]CareRecord, error) {
	out := make([]CareRecord, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) ListActiveByCategory(ctx context.Context, c careitems.Category) ([]CareRecord, error) {
	out := make([]CareRecord, 0)
	for _, rec := range r.byID {
		if rec.Active && rec.Category == c {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) Deactivate(ctx context.Context, id string) error {
	rec, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	rec.Active = false
	r.byID[id] = rec
	return nil
}

type testItemRepo struct {
	byID map[string]careitems.CareItem
}

func (r *testItemRepo) Create(ctx context.Context, ci careitems.CareItem) error {
	r.byID[ci.ID] = ci
	return nil
}

func (r *testItemRepo) Update(ctx context.Context, ci careitems.CareItem) error {
	r.byID[ci.ID] = ci
	return nil
}

func (r *testItemRepo) GetByID(ctx context.Context, id string) (careitems.CareItem, error) {
	ci, ok := r.byID[id]
	if !ok {
		return careitems.CareItem{}, errRepoNotFound
	}
	return ci, nil
}

func (r *testItemRepo) ListByCategory(ctx context.Context, c careitems.Category) ([]careitems.CareItem, error) {
	out := make([]careitems.CareItem, 0)
	for _, ci := range r.byID {
		if ci.Category == c {
			out = append(out, ci)
		}
	}
	return out, nil
}

func newFixture() (*Service, *testRepo, *testItemRepo) {
	repo := newTestRepo()
	itemRepo := &testItemRepo{byID: map[string]careitems.CareItem{}}
	svc := NewService(repo, careitems.NewService(itemRepo))
	return svc, repo, itemRepo
}

// -------------------------
// Tests
// -------------------------

func TestService_Log_ComputesNextDueAt(t *testing.T) {
	svc, _, itemRepo := newFixture()
	itemRepo.byID["item-1"] = careitems.CareItem{
		ID:       "item-1",
		Name:     "Antirrábica",
		Category: careitems.CategoryVaccination,
		Interval: schedule.Interval{Value: 1, Unit: schedule.UnitYears},
	}

	applied := time.Date(2026, 2, 10, 16, 45, 0, 0, time.UTC)
	rec, err := svc.Log(context.Background(), "pet-1", LogInput{
		ItemID:    "item-1",
		AppliedAt: applied,
		Notes:     "  refuerzo anual  ",
	})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}

	if rec.NextDueAt == nil {
		t.Fatalf("expected NextDueAt for a recurring item")
	}
	want := time.Date(2027, 2, 10, 0, 0, 0, 0, time.UTC)
	if !rec.NextDueAt.Equal(want) {
		t.Fatalf("NextDueAt = %s, want %s", rec.NextDueAt, want)
	}
	// AppliedAt queda truncado a día
	if rec.AppliedAt != time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expected AppliedAt truncated to day, got %s", rec.AppliedAt)
	}
	if !rec.Active {
		t.Fatalf("expected new record active")
	}
	if rec.Notes != "refuerzo anual" {
		t.Fatalf("expected trimmed notes, got %q", rec.Notes)
	}
	if rec.Category != careitems.CategoryVaccination {
		t.Fatalf("expected category denormalized from item, got %s", rec.Category)
	}
}

func TestService_Log_SingleDoseHasNoNextDue(t *testing.T) {
	svc, _, itemRepo := newFixture()
	one := 1
	itemRepo.byID["item-1"] = careitems.CareItem{
		ID:            "item-1",
		Name:          "Vacuna puppy única",
		Category:      careitems.CategoryVaccination,
		Interval:      schedule.Interval{Value: 1, Unit: schedule.UnitYears},
		DosesRequired: &one,
	}

	rec, err := svc.Log(context.Background(), "pet-1", LogInput{
		ItemID:    "item-1",
		AppliedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if rec.NextDueAt != nil {
		t.Fatalf("single-dose item must not produce a next due date, got %s", rec.NextDueAt)
	}
}

func TestService_Log_InvalidIntervalHasNoNextDue(t *testing.T) {
	svc, _, itemRepo := newFixture()
	itemRepo.byID["item-1"] = careitems.CareItem{
		ID:       "item-1",
		Name:     "Ítem mal cargado",
		Category: careitems.CategoryMedication,
		Interval: schedule.Interval{Value: 0, Unit: schedule.UnitDays},
	}

	rec, err := svc.Log(context.Background(), "pet-1", LogInput{
		ItemID:    "item-1",
		AppliedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("a bad interval is not a logging error: %v", err)
	}
	if rec.NextDueAt != nil {
		t.Fatalf("invalid interval must not produce a next due date")
	}
}

func TestService_Log_ValidatesInput(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Log(context.Background(), "", LogInput{ItemID: "item-1", AppliedAt: time.Now()})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty pet, got %v", err)
	}

	_, err = svc.Log(context.Background(), "pet-1", LogInput{AppliedAt: time.Now()})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty item, got %v", err)
	}

	_, err = svc.Log(context.Background(), "pet-1", LogInput{ItemID: "item-1"})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for zero AppliedAt, got %v", err)
	}
}

func TestService_Deactivate_KeepsHistory(t *testing.T) {
	svc, _, itemRepo := newFixture()
	itemRepo.byID["item-1"] = careitems.CareItem{
		ID:       "item-1",
		Name:     "Omeprazol",
		Category: careitems.CategoryMedication,
		Interval: schedule.Interval{Value: 15, Unit: schedule.UnitDays},
	}

	rec, err := svc.Log(context.Background(), "pet-1", LogInput{
		ItemID:    "item-1",
		AppliedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}

	got, err := svc.Deactivate(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if got.Active {
		t.Fatalf("expected inactive after deactivate")
	}

	// sigue en el historial de la mascota
	hist, err := svc.ListByPet(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("expected deactivated record kept in history, got %d", len(hist))
	}

	// pero fuera de la consulta del sweep
	active, err := svc.ListActiveByCategory(context.Background(), careitems.CategoryMedication)
	if err != nil {
		t.Fatalf("ListActiveByCategory error: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active records after deactivate, got %d", len(active))
	}
}
