package puppies

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// ErrInvalidOwnerReference: el owner id no es un entero positivo.
	// No se escribe nada en ese caso.
	ErrInvalidOwnerReference = errors.New("invalid owner reference")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput llega con los literales del form: los booleanos vienen como
// el texto "true"/"on" y el precio puede venir en blanco.
type CreateInput struct {
	Name           string
	Breed          string
	Gender         string
	DateOfBirth    string // YYYY-MM-DD, opcional
	Price          string
	MotherName     string
	FatherName     string
	AKCRegistrable string
	Sold           string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	p, err := normalize(in)
	if err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, p)
}

// CreateWithImages crea el cachorro y asocia las claves ya subidas a object
// storage, como una sola transacción en el repo.
func (s *Service) CreateWithImages(ctx context.Context, in CreateInput, keys []string) (int64, error) {
	p, err := normalize(in)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return s.repo.Create(ctx, p)
	}
	return s.repo.CreateWithImages(ctx, p, keys)
}

// Update reemplaza todos los campos mutables: el caller manda la fila entera.
func (s *Service) Update(ctx context.Context, id int64, in CreateInput) error {
	if id <= 0 {
		return ErrInvalidOwnerReference
	}
	p, err := normalize(in)
	if err != nil {
		return err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidOwnerReference
	}
	return s.repo.Delete(ctx, id)
}

// AttachImages asocia claves a un cachorro existente. El id tiene que ser
// un entero positivo ANTES de tocar la base; inválido => cero escrituras.
func (s *Service) AttachImages(ctx context.Context, id int64, keys []string) error {
	if id <= 0 {
		return ErrInvalidOwnerReference
	}
	if len(keys) == 0 {
		return nil
	}
	return s.repo.AttachImages(ctx, id, keys)
}

// DeleteImage borra una fila de asociación. El objeto físico no se toca.
func (s *Service) DeleteImage(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteImage(ctx, key)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Puppy, error) {
	if id <= 0 {
		return Puppy{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Puppy, error) {
	f.Breed = strings.TrimSpace(f.Breed)
	f.Gender = strings.TrimSpace(f.Gender)
	return s.repo.List(ctx, f)
}

func normalize(in CreateInput) (Puppy, error) {
	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	gender := strings.TrimSpace(in.Gender)
	if name == "" || breed == "" || gender == "" {
		return Puppy{}, ErrInvalidInput
	}

	price, err := parsePrice(in.Price)
	if err != nil {
		return Puppy{}, err
	}

	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return Puppy{}, err
	}

	return Puppy{
		Name:           name,
		Breed:          breed,
		Gender:         gender,
		DateOfBirth:    dob,
		Price:          price,
		MotherName:     strings.TrimSpace(in.MotherName),
		FatherName:     strings.TrimSpace(in.FatherName),
		AKCRegistrable: parseFlag(in.AKCRegistrable),
		Sold:           parseFlag(in.Sold),
	}, nil
}

// parseFlag normaliza el literal del checkbox ("true", "on") a bool.
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1":
		return true
	default:
		return false
	}
}

// parsePrice: blanco => 0; si viene algo, tiene que ser entero no negativo.
func parsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, ErrInvalidInput
	}
	return v, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return &t, nil
}
