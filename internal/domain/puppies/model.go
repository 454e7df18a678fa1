package puppies

import "time"

// Gender define los valores que usa el catálogo para filtrar.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Puppy es un cachorro publicado en el catálogo. El ID lo genera la base
// en el insert (RETURNING): es el "owner id" que exigen las filas de imagen.
type Puppy struct {
	ID          int64
	Name        string
	Breed       string
	Gender      string
	DateOfBirth *time.Time
	Price       int64
	MotherName  string
	FatherName  string

	AKCRegistrable bool
	Sold           bool

	// Claves de object storage asociadas (puppy_images.imageid).
	Images []string
}

// ListFilter filtra el catálogo público. Campos vacíos = sin filtro.
type ListFilter struct {
	Breed  string
	Gender string
}
