package postgres

import (
	"context"
	"errors"
	"testing"

	"kennel-site/internal/domain/puppies"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*PuppiesRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewPuppiesRepo(db), mock
}

func samplePuppy() puppies.Puppy {
	return puppies.Puppy{
		Name:   "Milo",
		Breed:  "labrador",
		Gender: "male",
		Price:  1200,
	}
}

func TestCreate_ReturnsGeneratedID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO puppies").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), samplePuppy())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected generated id 7, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateWithImages_CommitsOwnerAndAssociations(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO puppies").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO puppy_images").
		WithArgs("k1", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO puppy_images").
		WithArgs("k2", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.CreateWithImages(context.Background(), samplePuppy(), []string{"k1", "k2"})
	if err != nil {
		t.Fatalf("create with images: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// Si una asociación falla a mitad de camino, se revierte TODO: el cachorro
// tampoco queda (estado == pre-transacción).
func TestCreateWithImages_RollsBackOnImageFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO puppies").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO puppy_images").
		WithArgs("ok", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO puppy_images").
		WithArgs("broken", int64(7)).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := repo.CreateWithImages(context.Background(), samplePuppy(), []string{"ok", "broken"})
	if err == nil {
		t.Fatal("expected error from failed association insert")
	}

	// ExpectationsWereMet prueba que el rollback efectivamente corrió
	// (y que no hubo commit).
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateWithImages_RollsBackOnOwnerFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO puppies").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := repo.CreateWithImages(context.Background(), samplePuppy(), []string{"k1"})
	if err == nil {
		t.Fatal("expected error from failed owner insert")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// Las expectativas de sqlmock son ordenadas: este test prueba que las filas
// de imagen se borran ANTES que el dueño.
func TestDelete_ImagesBeforeOwner(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM puppy_images").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM puppies").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM puppy_images").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM puppies").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 99); !errors.Is(err, puppies.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE puppies").
		WillReturnResult(sqlmock.NewResult(0, 0))

	p := samplePuppy()
	p.ID = 99
	if err := repo.Update(context.Background(), p); !errors.Is(err, puppies.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAttachImages_InsertsOneRowPerKey(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO puppy_images").
		WithArgs("k1", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO puppy_images").
		WithArgs("k2", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AttachImages(context.Background(), 7, []string{"k1", "k2"}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
