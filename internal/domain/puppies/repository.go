package puppies

import "context"

type Repository interface {
	// Create inserta y devuelve el id generado en el mismo statement.
	// Nunca se resuelve el id con un lookup por nombre posterior:
	// dos cachorros pueden llamarse igual.
	Create(ctx context.Context, p Puppy) (int64, error)

	// CreateWithImages hace el insert del cachorro más una fila de
	// asociación por clave, todo en una transacción. Cualquier falla
	// revierte el conjunto: nunca queda un cachorro sin sus imágenes
	// ni imágenes sin dueño.
	CreateWithImages(ctx context.Context, p Puppy, keys []string) (int64, error)

	// Update reemplaza la fila completa por id (sin patch parcial).
	Update(ctx context.Context, p Puppy) error

	// Delete borra primero las filas de imagen y después el cachorro,
	// en ese orden.
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (Puppy, error)
	List(ctx context.Context, f ListFilter) ([]Puppy, error)

	AttachImages(ctx context.Context, id int64, keys []string) error
	DeleteImage(ctx context.Context, key string) error
}
