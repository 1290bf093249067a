package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByTutor(ctx context.Context, tutorUserID string) ([]Pet, error)
	ListAll(ctx context.Context) ([]Pet, error)
}
