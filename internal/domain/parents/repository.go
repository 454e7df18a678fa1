package parents

import "context"

type Repository interface {
	// Create inserta y devuelve el id generado en el mismo statement.
	Create(ctx context.Context, p Parent) (int64, error)

	// CreateWithImages: insert del padre + una fila por clave, en una
	// transacción. Falla cualquiera => rollback de todo.
	CreateWithImages(ctx context.Context, p Parent, keys []string) (int64, error)

	// Update reemplaza la fila completa por id.
	Update(ctx context.Context, p Parent) error

	// Delete borra primero las filas de imagen, después el padre.
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (Parent, error)
	List(ctx context.Context, f ListFilter) ([]Parent, error)

	AttachImages(ctx context.Context, id int64, keys []string) error
	DeleteImage(ctx context.Context, key string) error
}
