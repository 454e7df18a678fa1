package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kennel-site/internal/domain/credentials"
)

type CredentialsRepo struct {
	db *sql.DB
}

func NewCredentialsRepo(db *sql.DB) *CredentialsRepo {
	return &CredentialsRepo{db: db}
}

func (r *CredentialsRepo) GetByUsername(ctx context.Context, username string) (credentials.Credential, error) {
	if strings.TrimSpace(username) == "" {
		return credentials.Credential{}, credentials.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT username, password_hash
		FROM credentials
		WHERE username = $1
	`, username)

	var c credentials.Credential
	if err := row.Scan(&c.Username, &c.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return credentials.Credential{}, credentials.ErrNotFound
		}
		return credentials.Credential{}, err
	}

	return c, nil
}
