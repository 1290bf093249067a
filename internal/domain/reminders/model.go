package reminders

import (
	"fmt"
	"time"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/schedule"
)

// Item es un recordatorio materializado a partir de un CareRecord cuyo
// vencimiento cae dentro de la ventana (o ya pasó).
type Item struct {
	RecordID string
	PetID    string
	PetName  string

	Category careitems.Category
	ItemName string

	DueAt     time.Time
	Status    schedule.Status // upcoming u overdue; up_to_date nunca llega acá
	DaysUntil int

	// destino del mensaje (se resuelve junto con la mascota)
	TutorName  string
	TutorPhone string
}

// Summary agrupa los recordatorios accionables por categoría.
// Invariante: Total == suma de las cuatro listas.
type Summary struct {
	Vaccinations        []Item
	Medications         []Item
	FleaTreatments      []Item
	DewormingTreatments []Item
	Total               int
}

// ByCategory devuelve la lista correspondiente (orden estable de categorías).
func (s Summary) ByCategory(c careitems.Category) []Item {
	switch c {
	case careitems.CategoryVaccination:
		return s.Vaccinations
	case careitems.CategoryMedication:
		return s.Medications
	case careitems.CategoryFlea:
		return s.FleaTreatments
	case careitems.CategoryDeworming:
		return s.DewormingTreatments
	}
	return nil
}

// DedupKey identifica un envío: mismo registro + misma fecha de
// vencimiento (truncada a día) => a lo sumo una notificación.
type DedupKey struct {
	RecordID string
	DueDay   time.Time
}

func (k DedupKey) String() string {
	return fmt.Sprintf("%s:%s", k.RecordID, k.DueDay.Format("2006-01-02"))
}

func keyFor(it Item) DedupKey {
	return DedupKey{RecordID: it.RecordID, DueDay: schedule.Day(it.DueAt)}
}
