package foodstock

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byPet map[string]FoodStock
}

func newTestRepo() *testRepo {
	return &testRepo{byPet: map[string]FoodStock{}}
}

func (r *testRepo) Upsert(ctx context.Context, fs FoodStock) error {
	r.byPet[fs.PetID] = fs
	return nil
}

func (r *testRepo) GetByPet(ctx context.Context, petID string) (FoodStock, error) {
	fs, ok := r.byPet[petID]
	if !ok {
		return FoodStock{}, errRepoNotFound
	}
	return fs, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]FoodStock, error) {
	out := make([]FoodStock, 0, len(r.byPet))
	for _, fs := range r.byPet {
		out = append(out, fs)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Upsert_RejectsBadInput(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Upsert(context.Background(), "", UpsertInput{CurrentGrams: grams("1000"), DailyGrams: grams("100")})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty pet, got %v", err)
	}

	_, err = svc.Upsert(context.Background(), "pet-1", UpsertInput{CurrentGrams: grams("-1"), DailyGrams: grams("100")})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for negative stock, got %v", err)
	}

	_, err = svc.Upsert(context.Background(), "pet-1", UpsertInput{CurrentGrams: grams("1000"), DailyGrams: grams("100"), AlertThresholdDays: -3})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for negative threshold, got %v", err)
	}
}

func TestService_Upsert_ReplacesExisting(t *testing.T) {
	svc := NewService(newTestRepo())

	now1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now1 }

	_, err := svc.Upsert(context.Background(), "pet-1", UpsertInput{
		CurrentGrams: grams("15000"), DailyGrams: grams("300"), AlertThresholdDays: 7,
	})
	if err != nil {
		t.Fatalf("Upsert #1 error: %v", err)
	}

	now2 := now1.AddDate(0, 0, 10)
	svc.now = func() time.Time { return now2 }

	fs, err := svc.Upsert(context.Background(), "pet-1", UpsertInput{
		CurrentGrams: grams("12000"), DailyGrams: grams("300"), AlertThresholdDays: 7,
	})
	if err != nil {
		t.Fatalf("Upsert #2 error: %v", err)
	}
	if fs.UpdatedAt != now2 {
		t.Fatalf("expected UpdatedAt refreshed on upsert")
	}

	got, err := svc.GetByPet(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("GetByPet error: %v", err)
	}
	if !got.CurrentGrams.Equal(grams("12000")) {
		t.Fatalf("expected replaced stock 12000, got %s", got.CurrentGrams)
	}
}

func TestService_Project_Flags_Low(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	p := svc.Project(FoodStock{
		PetID:              "pet-1",
		CurrentGrams:       grams("2000"),
		DailyGrams:         grams("400"),
		AlertThresholdDays: 7,
	})
	if p.DaysRemaining != 5 {
		t.Fatalf("expected 5 days remaining, got %d", p.DaysRemaining)
	}
	if !p.Low {
		t.Fatalf("expected low flag at 5 days with threshold 7")
	}

	p = svc.Project(FoodStock{
		PetID:              "pet-2",
		CurrentGrams:       grams("20000"),
		DailyGrams:         grams("400"),
		AlertThresholdDays: 7,
	})
	if p.Low {
		t.Fatalf("did not expect low flag at 50 days")
	}
}

func TestService_ListLow_SortsByDaysRemaining(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	seed := []FoodStock{
		{PetID: "pet-a", CurrentGrams: grams("2000"), DailyGrams: grams("400"), AlertThresholdDays: 7}, // 5 días
		{PetID: "pet-b", CurrentGrams: grams("400"), DailyGrams: grams("400"), AlertThresholdDays: 7},  // 1 día
		{PetID: "pet-c", CurrentGrams: grams("20000"), DailyGrams: grams("400"), AlertThresholdDays: 7}, // 50 días, fuera
		{PetID: "pet-d", CurrentGrams: grams("2000"), DailyGrams: grams("400"), AlertThresholdDays: 7}, // 5 días, empata con pet-a
	}
	for _, fs := range seed {
		if err := repo.Upsert(context.Background(), fs); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	low, err := svc.ListLow(context.Background())
	if err != nil {
		t.Fatalf("ListLow error: %v", err)
	}
	if len(low) != 3 {
		t.Fatalf("expected 3 low-stock pets, got %d", len(low))
	}

	wantOrder := []string{"pet-b", "pet-a", "pet-d"}
	for i, want := range wantOrder {
		if low[i].PetID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, low[i].PetID)
		}
	}
}
