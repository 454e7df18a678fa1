package uploads

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrTooLarge: el archivo supera el tamaño máximo permitido.
	ErrTooLarge = errors.New("file too large")
	// ErrNotImage: el content-type no es de imagen.
	ErrNotImage = errors.New("file is not an image")
)

// Uploader guarda un archivo en object storage y devuelve la clave generada.
// El core solo consume la clave; borrar el objeto físico queda fuera de alcance.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (key string, err error)
	Remove(ctx context.Context, key string) error
}
