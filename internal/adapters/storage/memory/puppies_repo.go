package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"kennel-site/internal/domain/puppies"
)

type puppiesRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]puppies.Puppy
	images map[string]int64 // clave de objeto -> owner id
}

func NewPuppiesRepo() puppies.Repository {
	return &puppiesRepo{
		byID:   make(map[int64]puppies.Puppy),
		images: make(map[string]int64),
	}
}

func (r *puppiesRepo) Create(ctx context.Context, p puppies.Puppy) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(p), nil
}

func (r *puppiesRepo) CreateWithImages(ctx context.Context, p puppies.Puppy, keys []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Emula el all-or-nothing de la transacción: se valida todo antes
	// de escribir nada.
	for _, key := range keys {
		if key == "" {
			return 0, errors.New("empty image key")
		}
		if _, exists := r.images[key]; exists {
			return 0, errors.New("image key already exists")
		}
	}

	id := r.insert(p)
	for _, key := range keys {
		r.images[key] = id
	}
	return id, nil
}

func (r *puppiesRepo) Update(ctx context.Context, p puppies.Puppy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return puppies.ErrNotFound
	}
	p.Images = nil
	r.byID[p.ID] = p
	return nil
}

func (r *puppiesRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return puppies.ErrNotFound
	}

	// imágenes primero, dueño después (mismo orden que postgres)
	for key, owner := range r.images {
		if owner == id {
			delete(r.images, key)
		}
	}
	delete(r.byID, id)
	return nil
}

func (r *puppiesRepo) GetByID(ctx context.Context, id int64) (puppies.Puppy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return puppies.Puppy{}, puppies.ErrNotFound
	}
	p.Images = r.imagesOf(id)
	return p, nil
}

func (r *puppiesRepo) List(ctx context.Context, f puppies.ListFilter) ([]puppies.Puppy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]puppies.Puppy, 0)
	for _, p := range r.byID {
		if f.Breed != "" && p.Breed != f.Breed {
			continue
		}
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		p.Images = r.imagesOf(p.ID)
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *puppiesRepo) AttachImages(ctx context.Context, id int64, keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return puppies.ErrNotFound
	}
	for _, key := range keys {
		r.images[key] = id
	}
	return nil
}

func (r *puppiesRepo) DeleteImage(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.images[key]; !exists {
		return puppies.ErrNotFound
	}
	delete(r.images, key)
	return nil
}

// insert asume el lock tomado.
func (r *puppiesRepo) insert(p puppies.Puppy) int64 {
	r.nextID++
	p.ID = r.nextID
	p.Images = nil
	r.byID[p.ID] = p
	return p.ID
}

// imagesOf asume al menos el read lock tomado.
func (r *puppiesRepo) imagesOf(id int64) []string {
	out := make([]string, 0)
	for key, owner := range r.images {
		if owner == id {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
