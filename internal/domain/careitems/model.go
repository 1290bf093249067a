package careitems

import (
	"time"

	"pet-care-reminders/internal/domain/schedule"
)

// Category agrupa los ítems de la biblioteca de cuidados.
type Category string

const (
	CategoryVaccination Category = "vaccination"
	CategoryMedication  Category = "medication"
	CategoryFlea        Category = "flea"
	CategoryDeworming   Category = "deworming"
)

// Categories en orden estable (se usa para iterar sweeps y armar resúmenes).
var Categories = []Category{
	CategoryVaccination,
	CategoryMedication,
	CategoryFlea,
	CategoryDeworming,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryVaccination, CategoryMedication, CategoryFlea, CategoryDeworming:
		return true
	}
	return false
}

// CareItem es un ítem de la biblioteca compartida: una vacuna, un
// medicamento o un producto preventivo, con su regla de recurrencia.
// Solo el admin lo edita; el motor de recordatorios únicamente lo lee.
type CareItem struct {
	ID       string
	Name     string
	Category Category

	Interval schedule.Interval

	// DosesRequired: nil = recurrente indefinido. 1 = dosis única
	// (no genera próxima fecha una vez aplicada).
	DosesRequired *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SingleDose reporta si el ítem se aplica una sola vez.
func (ci CareItem) SingleDose() bool {
	return ci.DosesRequired != nil && *ci.DosesRequired == 1
}
