package careitems

import "context"

type Repository interface {
	Create(ctx context.Context, ci CareItem) error
	Update(ctx context.Context, ci CareItem) error
	GetByID(ctx context.Context, id string) (CareItem, error)
	ListByCategory(ctx context.Context, c Category) ([]CareItem, error)
}
