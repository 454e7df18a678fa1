package credentials

import "context"

type Repository interface {
	// GetByUsername hace match exacto, case-sensitive.
	GetByUsername(ctx context.Context, username string) (Credential, error)
}
