package breeds

import "context"

type Repository interface {
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]Breed, error)
}
