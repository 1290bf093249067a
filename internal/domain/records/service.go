package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/schedule"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo  Repository
	items *careitems.Service
	now   func() time.Time
}

func NewService(repo Repository, items *careitems.Service) *Service {
	return &Service{
		repo:  repo,
		items: items,
		now:   time.Now,
	}
}

type LogInput struct {
	ItemID    string
	AppliedAt time.Time
	Notes     string
}

// Log registra una aplicación y calcula NextDueAt en ese momento a
// partir de la regla de intervalo vigente del ítem. Un ítem de dosis
// única, o uno con intervalo inválido, produce NextDueAt nil: el
// registro queda fuera de recordatorios pero se guarda igual (no es
// un error del caller).
func (s *Service) Log(ctx context.Context, petID string, in LogInput) (CareRecord, error) {
	if strings.TrimSpace(petID) == "" {
		return CareRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.ItemID) == "" {
		return CareRecord{}, ErrInvalidInput
	}
	if in.AppliedAt.IsZero() {
		return CareRecord{}, ErrInvalidInput
	}

	item, err := s.items.GetByID(ctx, in.ItemID)
	if err != nil {
		return CareRecord{}, err
	}

	var nextDue *time.Time
	if !item.SingleDose() {
		if due, ok := schedule.NextDueDate(in.AppliedAt, item.Interval); ok {
			nextDue = &due
		}
	}

	rec := CareRecord{
		ID:         uuid.NewString(),
		PetID:      petID,
		ItemID:     item.ID,
		Category:   item.Category,
		AppliedAt:  schedule.Day(in.AppliedAt),
		RecordedAt: s.now(),
		NextDueAt:  nextDue,
		Active:     true,
		Notes:      strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return CareRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (CareRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]CareRecord, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) ListActiveByCategory(ctx context.Context, c careitems.Category) ([]CareRecord, error) {
	return s.repo.ListActiveByCategory(ctx, c)
}

// Deactivate descontinúa un registro (ej: medicación suspendida).
// El registro se conserva para el historial.
func (s *Service) Deactivate(ctx context.Context, id string) (CareRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareRecord{}, ErrInvalidInput
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return CareRecord{}, err
	}
	return s.repo.GetByID(ctx, id)
}
