package postgres

import (
	"context"
	"database/sql"

	"kennel-site/internal/domain/breeds"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) Create(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (breed) VALUES ($1)
	`, name)
	return err
}

func (r *BreedsRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM breeds WHERE breed = $1
	`, name)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return breeds.ErrNotFound
	}
	return nil
}

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT breed FROM breeds ORDER BY breed ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		var b breeds.Breed
		if err := rows.Scan(&b.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
