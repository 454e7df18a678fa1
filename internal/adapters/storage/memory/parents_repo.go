package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"kennel-site/internal/domain/parents"
)

type parentsRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]parents.Parent
	images map[string]int64 // clave de objeto -> owner id
}

func NewParentsRepo() parents.Repository {
	return &parentsRepo{
		byID:   make(map[int64]parents.Parent),
		images: make(map[string]int64),
	}
}

func (r *parentsRepo) Create(ctx context.Context, p parents.Parent) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(p), nil
}

func (r *parentsRepo) CreateWithImages(ctx context.Context, p parents.Parent, keys []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

func (r *parentsRepo) Update(ctx context.Context, p parents.Parent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return parents.ErrNotFound
	}
	p.Images = nil
	r.byID[p.ID] = p
	return nil
}

func (r *parentsRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return parents.ErrNotFound
	}

	for key, owner := range r.images {
		if owner == id {
			delete(r.images, key)
		}
	}
	delete(r.byID, id)
	return nil
}

func (r *parentsRepo) GetByID(ctx context.Context, id int64) (parents.Parent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return parents.Parent{}, parents.ErrNotFound
	}
	p.Images = r.imagesOf(id)
	return p, nil
}

func (r *parentsRepo) List(ctx context.Context, f parents.ListFilter) ([]parents.Parent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]parents.Parent, 0)
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

func (r *parentsRepo) AttachImages(ctx context.Context, id int64, keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return parents.ErrNotFound
	}
	for _, key := range keys {
		r.images[key] = id
	}
	return nil
}

func (r *parentsRepo) DeleteImage(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.images[key]; !exists {
		return parents.ErrNotFound
	}
	delete(r.images, key)
	return nil
}

func (r *parentsRepo) insert(p parents.Parent) int64 {
	r.nextID++
	p.ID = r.nextID
	p.Images = nil
	r.byID[p.ID] = p
	return p.ID
}

func (r *parentsRepo) imagesOf(id int64) []string {
	out := make([]string, 0)
	for key, owner := range r.images {
		if owner == id {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
