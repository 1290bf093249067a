package records

import (
	"time"

	"pet-care-reminders/internal/domain/careitems"
)

// CareRecord es una aplicación concreta a una mascota: una dosis de
// vacuna, un curso de medicación, una pipeta antipulgas, una dosis de
// vermífugo. Nunca se borra físicamente; se desactiva (auditoría).
type CareRecord struct {
	ID    string
	PetID string

	ItemID   string
	Category careitems.Category

	// AppliedAt: fecha en que se aplicó. RecordedAt: cuándo se registró.
	AppliedAt  time.Time
	RecordedAt time.Time

	// NextDueAt se calcula al crear el registro (AppliedAt + intervalo).
	// nil = sin próxima fecha (dosis única o intervalo inválido);
	// esos registros quedan fuera de los recordatorios.
	NextDueAt *time.Time

	Active bool
	Notes  string
}
