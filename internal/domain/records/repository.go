package records

import (
	"context"

	"pet-care-reminders/internal/domain/careitems"
)

type Repository interface {
	Create(ctx context.Context, rec CareRecord) error
	GetByID(ctx context.Context, id string) (CareRecord, error)
	ListByPet(ctx context.Context, petID string) ([]CareRecord, error)

	// ListActiveByCategory devuelve todos los registros activos de una
	// categoría, de todas las mascotas. Es la consulta del sweep.
	ListActiveByCategory(ctx context.Context, c careitems.Category) ([]CareRecord, error)

	// Deactivate marca el registro como inactivo (soft delete).
	Deactivate(ctx context.Context, id string) error
}
