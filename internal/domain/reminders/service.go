package reminders

import (
	"context"
	"sort"
	"time"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/records"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/platform/logger"
)

// Service es el agregador: recorre los registros activos de todas las
// mascotas y materializa los recordatorios accionables de la ventana.
type Service struct {
	records *records.Service
	items   *careitems.Service
	pets    *pets.Service
	log     logger.Logger
	now     func() time.Time
}

func NewService(recs *records.Service, items *careitems.Service, petsSvc *pets.Service, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		records: recs,
		items:   items,
		pets:    petsSvc,
		log:     log,
		now:     time.Now,
	}
}

// Upcoming arma el resumen de vencimientos para la ventana daysAhead.
// Solo incluye upcoming y overdue; lo que está al día no aparece.
// Un registro sin fecha, inactivo, o cuya mascota/ítem ya no resuelve,
// se salta sin abortar el barrido completo.
func (s *Service) Upcoming(ctx context.Context, daysAhead int) (Summary, error) {
	if daysAhead < 0 {
		daysAhead = 0
	}
	now := s.now()

	var out Summary
	for _, cat := range careitems.Categories {
		items, err := s.collectCategory(ctx, cat, now, daysAhead)
		if err != nil {
			return Summary{}, err
		}

		switch cat {
		case careitems.CategoryVaccination:
			out.Vaccinations = items
		case careitems.CategoryMedication:
			out.Medications = items
		case careitems.CategoryFlea:
			out.FleaTreatments = items
		case careitems.CategoryDeworming:
			out.DewormingTreatments = items
		}
		out.Total += len(items)
	}

	return out, nil
}

func (s *Service) collectCategory(ctx context.Context, cat careitems.Category, now time.Time, daysAhead int) ([]Item, error) {
	recs, err := s.records.ListActiveByCategory(ctx, cat)
	if err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(recs))
	for _, rec := range recs {
		if rec.NextDueAt == nil {
			// dosis única o intervalo inválido: sin fecha, sin recordatorio
			continue
		}

		st := schedule.Classify(*rec.NextDueAt, now, daysAhead)
		if st == schedule.StatusUpToDate {
			continue
		}

		pet, err := s.pets.GetByID(ctx, rec.PetID)
		if err != nil {
			s.log.Warn("care record skipped: pet not found", map[string]any{
				"record_id": rec.ID,
				"pet_id":    rec.PetID,
			})
			continue
		}

		item, err := s.items.GetByID(ctx, rec.ItemID)
		if err != nil {
			s.log.Warn("care record skipped: care item not found", map[string]any{
				"record_id": rec.ID,
				"item_id":   rec.ItemID,
			})
			continue
		}

		out = append(out, Item{
			RecordID:   rec.ID,
			PetID:      rec.PetID,
			PetName:    pet.Name,
			Category:   cat,
			ItemName:   item.Name,
			DueAt:      schedule.Day(*rec.NextDueAt),
			Status:     st,
			DaysUntil:  schedule.DaysUntil(*rec.NextDueAt, now),
			TutorName:  pet.TutorName,
			TutorPhone: pet.TutorPhone,
		})
	}

	// Orden: vencimiento más próximo primero; empate por pet_id para
	// que dos sweeps del mismo día produzcan el mismo resultado.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].PetID < out[j].PetID
	})

	return out, nil
}
