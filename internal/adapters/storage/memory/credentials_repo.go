package memory

import (
	"context"
	"sync"

	"kennel-site/internal/domain/credentials"
)

// CredentialsRepo es exportado (a diferencia de los otros repos en memoria)
// porque dev y tests necesitan Seed: no hay registro self-service.
type CredentialsRepo struct {
	mu         sync.RWMutex
	byUsername map[string]credentials.Credential
}

func NewCredentialsRepo() *CredentialsRepo {
	return &CredentialsRepo{
		byUsername: make(map[string]credentials.Credential),
	}
}

func (r *CredentialsRepo) Seed(c credentials.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUsername[c.Username] = c
}

func (r *CredentialsRepo) GetByUsername(ctx context.Context, username string) (credentials.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// match exacto, case-sensitive
	c, ok := r.byUsername[username]
	if !ok {
		return credentials.Credential{}, credentials.ErrNotFound
	}
	return c, nil
}
