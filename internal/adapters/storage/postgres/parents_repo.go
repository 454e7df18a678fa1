package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"kennel-site/internal/domain/parents"
)

type ParentsRepo struct {
	db *sql.DB
}

func NewParentsRepo(db *sql.DB) *ParentsRepo {
	return &ParentsRepo{db: db}
}

func (r *ParentsRepo) Create(ctx context.Context, p parents.Parent) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO parents (
			name, breed, gender, date_of_birth,
			akc_registered, champion_bloodline, description
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING parentid
	`,
		p.Name,
		p.Breed,
		p.Gender,
		toNullDate(p.DateOfBirth),
		p.AKCRegistered,
		p.ChampionBloodline,
		p.Description,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateWithImages: mismo contrato transaccional que en puppies.
func (r *ParentsRepo) CreateWithImages(ctx context.Context, p parents.Parent, keys []string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO parents (
			name, breed, gender, date_of_birth,
			akc_registered, champion_bloodline, description
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING parentid
	`,
		p.Name,
		p.Breed,
		p.Gender,
		toNullDate(p.DateOfBirth),
		p.AKCRegistered,
		p.ChampionBloodline,
		p.Description,
	).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO parent_images (imageid, parentid) VALUES ($1,$2)
		`, key, id); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ParentsRepo) Update(ctx context.Context, p parents.Parent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE parents
		SET
			name = $2,
			breed = $3,
			gender = $4,
			date_of_birth = $5,
			akc_registered = $6,
			champion_bloodline = $7,
			description = $8
		WHERE parentid = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Gender,
		toNullDate(p.DateOfBirth),
		p.AKCRegistered,
		p.ChampionBloodline,
		p.Description,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return parents.ErrNotFound
	}
	return nil
}

// Delete: imágenes primero, dueño después (mismo orden que puppies).
func (r *ParentsRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM parent_images WHERE parentid = $1
	`, id); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM parents WHERE parentid = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return parents.ErrNotFound
	}
	return nil
}

func (r *ParentsRepo) GetByID(ctx context.Context, id int64) (parents.Parent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			parentid, name, breed, gender, date_of_birth,
			akc_registered, champion_bloodline, description
		FROM parents
		WHERE parentid = $1
	`, id)

	p, err := scanParent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return parents.Parent{}, parents.ErrNotFound
		}
		return parents.Parent{}, err
	}

	images, err := r.imagesByOwner(ctx, p.ID)
	if err != nil {
		return parents.Parent{}, err
	}
	p.Images = images

	return p, nil
}

func (r *ParentsRepo) List(ctx context.Context, f parents.ListFilter) ([]parents.Parent, error) {
	query := `
		SELECT
			parentid, name, breed, gender, date_of_birth,
			akc_registered, champion_bloodline, description
		FROM parents
	`
	where := ""
	args := []any{}

	if f.Breed != "" {
		args = append(args, f.Breed)
		where = appendCond(where, fmt.Sprintf("breed = $%d", len(args)))
	}
	if f.Gender != "" {
		args = append(args, f.Gender)
		where = appendCond(where, fmt.Sprintf("gender = $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, query+where+" ORDER BY parentid ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]parents.Parent, 0)
	for rows.Next() {
		p, err := scanParent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		images, err := r.imagesByOwner(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Images = images
	}

	return out, nil
}

func (r *ParentsRepo) AttachImages(ctx context.Context, id int64, keys []string) error {
	for _, key := range keys {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO parent_images (imageid, parentid) VALUES ($1,$2)
		`, key, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *ParentsRepo) DeleteImage(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM parent_images WHERE imageid = $1
	`, key)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return parents.ErrNotFound
	}
	return nil
}

func (r *ParentsRepo) imagesByOwner(ctx context.Context, id int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT imageid FROM parent_images WHERE parentid = $1 ORDER BY imageid ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func scanParent(row scanner) (parents.Parent, error) {
	var p parents.Parent
	var dob sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Breed,
		&p.Gender,
		&dob,
		&p.AKCRegistered,
		&p.ChampionBloodline,
		&p.Description,
	); err != nil {
		return parents.Parent{}, err
	}

	if dob.Valid {
		t := dob.Time
		p.DateOfBirth = &t
	}

	return p, nil
}
