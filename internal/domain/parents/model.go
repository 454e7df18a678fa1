package parents

import "time"

// Parent es un padre/madre del criadero publicado en el catálogo.
// El ID generado en el insert es el "owner id" de sus filas de imagen.
type Parent struct {
	ID          int64
	Name        string
	Breed       string
	Gender      string
	DateOfBirth *time.Time

	AKCRegistered     bool
	ChampionBloodline string
	Description       string

	// Claves de object storage asociadas (parent_images.imageid).
	Images []string
}

// ListFilter filtra el catálogo público. Campos vacíos = sin filtro.
type ListFilter struct {
	Breed  string
	Gender string
}
