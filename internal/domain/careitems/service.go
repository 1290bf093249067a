package careitems

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-reminders/internal/domain/schedule"
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

type CreateInput struct {
	Name          string
	Category      Category
	IntervalValue int
	IntervalUnit  schedule.Unit
	DosesRequired *int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (CareItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return CareItem{}, ErrInvalidInput
	}
	if !in.Category.Valid() {
		return CareItem{}, ErrInvalidInput
	}

	iv := schedule.Interval{Value: in.IntervalValue, Unit: in.IntervalUnit}
	if !iv.Valid() {
		return CareItem{}, ErrInvalidInput
	}
	if in.DosesRequired != nil && *in.DosesRequired <= 0 {
		return CareItem{}, ErrInvalidInput
	}

	now := s.now()
	ci := CareItem{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Category:      in.Category,
		Interval:      iv,
		DosesRequired: in.DosesRequired,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, ci); err != nil {
		return CareItem{}, err
	}
	return ci, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (CareItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareItem{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCategory(ctx context.Context, c Category) ([]CareItem, error) {
	if !c.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCategory(ctx, c)
}

type UpdateIntervalInput struct {
	// Punteros para PATCH real: nil = no tocar.
	IntervalValue *int
	IntervalUnit  *schedule.Unit
	DosesRequired *int
}

// UpdateInterval es la superficie de configuración del admin: cambia la
// regla de recurrencia. Los registros ya creados conservan su nextDue
// calculado; la regla nueva aplica a las próximas aplicaciones.
func (s *Service) UpdateInterval(ctx context.Context, id string, in UpdateIntervalInput) (CareItem, error) {
	ci, err := s.GetByID(ctx, id)
	if err != nil {
		return CareItem{}, err
	}

	iv := ci.Interval
	if in.IntervalValue != nil {
		iv.Value = *in.IntervalValue
	}
	if in.IntervalUnit != nil {
		iv.Unit = *in.IntervalUnit
	}
	if !iv.Valid() {
		return CareItem{}, ErrInvalidInput
	}

	if in.DosesRequired != nil {
		if *in.DosesRequired <= 0 {
			return CareItem{}, ErrInvalidInput
		}
		ci.DosesRequired = in.DosesRequired
	}

	ci.Interval = iv
	ci.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, ci); err != nil {
		return CareItem{}, err
	}
	return ci, nil
}
