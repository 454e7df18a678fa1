package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"kennel-site/internal/domain/puppies"
)

type PuppiesRepo struct {
	db *sql.DB
}

func NewPuppiesRepo(db *sql.DB) *PuppiesRepo {
	return &PuppiesRepo{db: db}
}

// Create inserta y devuelve el id generado en el MISMO statement
// (RETURNING). Nada de insert + lookup por nombre: dos cachorros pueden
// llamarse igual y eso era una carrera.
func (r *PuppiesRepo) Create(ctx context.Context, p puppies.Puppy) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO puppies (
			name, breed, gender, date_of_birth, price,
			mother_name, father_name, akc_registrable, sold
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		p.Name,
		p.Breed,
		p.Gender,
		toNullDate(p.DateOfBirth),
		p.Price,
		p.MotherName,
		p.FatherName,
		p.AKCRegistrable,
		p.Sold,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateWithImages hace el insert del cachorro y una fila por imagen en una
// sola transacción: si algo falla, rollback de todo. Nunca queda visible un
// estado parcial.
func (r *PuppiesRepo) CreateWithImages(ctx context.Context, p puppies.Puppy, keys []string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO puppies (
			name, breed, gender, date_of_birth, price,
			mother_name, father_name, akc_registrable, sold
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		p.Name,
		p.Breed,
		p.Gender,
		toNullDate(p.DateOfBirth),
		p.Price,
		p.MotherName,
		p.FatherName,
		p.AKCRegistrable,
		p.Sold,
	).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO puppy_images (imageid, puppyid) VALUES ($1,$2)
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

func (r *PuppiesRepo) Update(ctx context.Context, p puppies.Puppy) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE puppies
		SET
			name = $2,
			breed = $3,
			gender = $4,
			date_of_birth = $5,
			price = $6,
			mother_name = $7,
			father_name = $8,
			akc_registrable = $9,
			sold = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Gender,
		toNullDate(p.DateOfBirth),
		p.Price,
		p.MotherName,
		p.FatherName,
		p.AKCRegistrable,
		p.Sold,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return puppies.ErrNotFound
	}
	return nil
}

// Delete borra primero las imágenes y después el cachorro, en ese orden:
// si algo se corta en el medio, es preferible un cachorro sin imágenes que
// imágenes apuntando a un id inexistente.
func (r *PuppiesRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM puppy_images WHERE puppyid = $1
	`, id); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM puppies WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return puppies.ErrNotFound
	}
	return nil
}

func (r *PuppiesRepo) GetByID(ctx context.Context, id int64) (puppies.Puppy, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, breed, gender, date_of_birth, price,
			mother_name, father_name, akc_registrable, sold
		FROM puppies
		WHERE id = $1
	`, id)

	p, err := scanPuppy(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return puppies.Puppy{}, puppies.ErrNotFound
		}
		return puppies.Puppy{}, err
	}

	images, err := r.imagesByOwner(ctx, p.ID)
	if err != nil {
		return puppies.Puppy{}, err
	}
	p.Images = images

	return p, nil
}

func (r *PuppiesRepo) List(ctx context.Context, f puppies.ListFilter) ([]puppies.Puppy, error) {
	query := `
		SELECT
			id, name, breed, gender, date_of_birth, price,
			mother_name, father_name, akc_registrable, sold
		FROM puppies
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

	rows, err := r.db.QueryContext(ctx, query+where+" ORDER BY id ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]puppies.Puppy, 0)
	for rows.Next() {
		p, err := scanPuppy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Una query por cachorro para las imágenes. Catálogo chico: alcanza.
	for i := range out {
		images, err := r.imagesByOwner(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Images = images
	}

	return out, nil
}

// AttachImages inserta una fila de asociación por clave. No necesita ser
// atómico entre claves, pero el dueño ya tiene que existir.
func (r *PuppiesRepo) AttachImages(ctx context.Context, id int64, keys []string) error {
	for _, key := range keys {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO puppy_images (imageid, puppyid) VALUES ($1,$2)
		`, key, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PuppiesRepo) DeleteImage(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM puppy_images WHERE imageid = $1
	`, key)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return puppies.ErrNotFound
	}
	return nil
}

func (r *PuppiesRepo) imagesByOwner(ctx context.Context, id int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT imageid FROM puppy_images WHERE puppyid = $1 ORDER BY imageid ASC
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

type scanner interface {
	Scan(dest ...any) error
}

func scanPuppy(row scanner) (puppies.Puppy, error) {
	var p puppies.Puppy
	var dob sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Breed,
		&p.Gender,
		&dob,
		&p.Price,
		&p.MotherName,
		&p.FatherName,
		&p.AKCRegistrable,
		&p.Sold,
	); err != nil {
		return puppies.Puppy{}, err
	}

	if dob.Valid {
		t := dob.Time
		p.DateOfBirth = &t
	}

	return p, nil
}

func appendCond(where, cond string) string {
	if where == "" {
		return " WHERE " + cond
	}
	return where + " AND " + cond
}
