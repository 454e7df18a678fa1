package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"kennel-site/internal/domain/breeds"
)

type breedsRepo struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func NewBreedsRepo() breeds.Repository {
	return &breedsRepo{names: make(map[string]struct{})}
}

func (r *breedsRepo) Create(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[name]; exists {
		return errors.New("breed already exists")
	}
	r.names[name] = struct{}{}
	return nil
}

func (r *breedsRepo) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[name]; !exists {
		return breeds.ErrNotFound
	}
	delete(r.names, name)
	return nil
}

func (r *breedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]breeds.Breed, 0, len(r.names))
	for name := range r.names {
		out = append(out, breeds.Breed{Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
