package foodstock

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type UpsertInput struct {
	CurrentGrams       decimal.Decimal
	DailyGrams         decimal.Decimal
	AlertThresholdDays int
}

func (s *Service) Upsert(ctx context.Context, petID string, in UpsertInput) (FoodStock, error) {
	if strings.TrimSpace(petID) == "" {
		return FoodStock{}, ErrInvalidInput
	}
	if in.CurrentGrams.Sign() < 0 {
		return FoodStock{}, ErrInvalidInput
	}
	if in.AlertThresholdDays < 0 {
		return FoodStock{}, ErrInvalidInput
	}

	fs := FoodStock{
		PetID:              petID,
		CurrentGrams:       in.CurrentGrams,
		DailyGrams:         in.DailyGrams,
		AlertThresholdDays: in.AlertThresholdDays,
		UpdatedAt:          s.now(),
	}

	if err := s.repo.Upsert(ctx, fs); err != nil {
		return FoodStock{}, err
	}
	return fs, nil
}

func (s *Service) GetByPet(ctx context.Context, petID string) (FoodStock, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return FoodStock{}, ErrInvalidInput
	}
	return s.repo.GetByPet(ctx, petID)
}

// Project deriva días restantes y fecha de reposición de un stock.
func (s *Service) Project(fs FoodStock) Projection {
	days := StockDuration(fs.CurrentGrams, fs.DailyGrams)
	return Projection{
		PetID:         fs.PetID,
		DaysRemaining: days,
		RestockAt:     RestockDate(fs.CurrentGrams, fs.DailyGrams, fs.AlertThresholdDays, s.now()),
		Low:           days <= fs.AlertThresholdDays,
	}
}

// ListLow devuelve las proyecciones de las mascotas cuyo stock está en
// o bajo el umbral de alerta, ordenadas por días restantes (menos
// stock primero, empate por pet_id).
func (s *Service) ListLow(ctx context.Context) ([]Projection, error) {
	stocks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Projection, 0)
	for _, fs := range stocks {
		p := s.Project(fs)
		if p.Low {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysRemaining != out[j].DaysRemaining {
			return out[i].DaysRemaining < out[j].DaysRemaining
		}
		return out[i].PetID < out[j].PetID
	})

	return out, nil
}
