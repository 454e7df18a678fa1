package parents

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// ErrInvalidOwnerReference: el owner id no es un entero positivo.
	ErrInvalidOwnerReference = errors.New("invalid owner reference")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput llega con los literales del form (checkboxes como texto).
type CreateInput struct {
	Name              string
	Breed             string
	Gender            string
	DateOfBirth       string // YYYY-MM-DD, opcional
	AKCRegistered     string
	ChampionBloodline string
	Description       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	p, err := normalize(in)
	if err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, p)
}

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

func (s *Service) AttachImages(ctx context.Context, id int64, keys []string) error {
	if id <= 0 {
		return ErrInvalidOwnerReference
	}
	if len(keys) == 0 {
		return nil
	}
	return s.repo.AttachImages(ctx, id, keys)
}

func (s *Service) DeleteImage(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteImage(ctx, key)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Parent, error) {
	if id <= 0 {
		return Parent{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Parent, error) {
	f.Breed = strings.TrimSpace(f.Breed)
	f.Gender = strings.TrimSpace(f.Gender)
	return s.repo.List(ctx, f)
}

func normalize(in CreateInput) (Parent, error) {
	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	gender := strings.TrimSpace(in.Gender)
	if name == "" || breed == "" || gender == "" {
		return Parent{}, ErrInvalidInput
	}

	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return Parent{}, err
	}

	return Parent{
		Name:              name,
		Breed:             breed,
		Gender:            gender,
		DateOfBirth:       dob,
		AKCRegistered:     parseFlag(in.AKCRegistered),
		ChampionBloodline: strings.TrimSpace(in.ChampionBloodline),
		Description:       strings.TrimSpace(in.Description),
	}, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1":
		return true
	default:
		return false
	}
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
