package puppies_test

import (
	"context"
	"errors"
	"testing"

	mem "kennel-site/internal/adapters/storage/memory"
	"kennel-site/internal/domain/puppies"
)

func validInput() puppies.CreateInput {
	return puppies.CreateInput{
		Name:   "Milo",
		Breed:  "labrador",
		Gender: "male",
	}
}

func TestCreate_NormalizesFormLiterals(t *testing.T) {
	repo := mem.NewPuppiesRepo()
	svc := puppies.NewService(repo)

	in := validInput()
	in.AKCRegistrable = "true" // literal del form
	in.Sold = ""               // checkbox sin marcar
	in.Price = ""              // blanco => 0

	id, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !p.AKCRegistrable {
		t.Error("akcRegistrable=\"true\" should normalize to true")
	}
	if p.Sold {
		t.Error("empty sold should normalize to false")
	}
	if p.Price != 0 {
		t.Errorf("blank price should normalize to 0, got %d", p.Price)
	}
}

func TestCreate_RejectsMissingFields(t *testing.T) {
	svc := puppies.NewService(mem.NewPuppiesRepo())

	in := validInput()
	in.Name = "   "

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, puppies.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreate_RejectsBadPrice(t *testing.T) {
	svc := puppies.NewService(mem.NewPuppiesRepo())

	in := validInput()
	in.Price = "not-a-number"

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, puppies.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAttachImages_InvalidOwnerWritesNothing(t *testing.T) {
	repo := mem.NewPuppiesRepo()
	svc := puppies.NewService(repo)

	id, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, bad := range []int64{0, -1} {
		if err := svc.AttachImages(context.Background(), bad, []string{"k1"}); !errors.Is(err, puppies.ErrInvalidOwnerReference) {
			t.Fatalf("id=%d: expected ErrInvalidOwnerReference, got %v", bad, err)
		}
	}

	// ninguna escritura quedó colgada de un id inválido
	p, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(p.Images) != 0 {
		t.Fatalf("expected no images, got %v", p.Images)
	}
}

// Regresión de la carrera por nombre: dos cachorros con el MISMO nombre,
// cada uno queda con sus propias imágenes porque el owner id sale del
// insert, no de un lookup por nombre.
func TestCreateWithImages_SameNameNoCrosstalk(t *testing.T) {
	repo := mem.NewPuppiesRepo()
	svc := puppies.NewService(repo)

	ctx := context.Background()

	id1, err := svc.CreateWithImages(ctx, validInput(), []string{"a1", "a2"})
	if err != nil {
		t.Fatalf("create 1: %v", err)
	}
	id2, err := svc.CreateWithImages(ctx, validInput(), []string{"b1", "b2", "b3"})
	if err != nil {
		t.Fatalf("create 2: %v", err)
	}

	if id1 == id2 {
		t.Fatalf("ids should differ, both %d", id1)
	}

	p1, _ := svc.GetByID(ctx, id1)
	p2, _ := svc.GetByID(ctx, id2)
	if len(p1.Images) != 2 {
		t.Errorf("puppy 1: expected 2 images, got %v", p1.Images)
	}
	if len(p2.Images) != 3 {
		t.Errorf("puppy 2: expected 3 images, got %v", p2.Images)
	}
}

func TestDelete_RemovesImageRows(t *testing.T) {
	repo := mem.NewPuppiesRepo()
	svc := puppies.NewService(repo)

	ctx := context.Background()

	id, err := svc.CreateWithImages(ctx, validInput(), []string{"x1", "x2"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, id); !errors.Is(err, puppies.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// la fila de asociación también se fue: borrarla de nuevo es not found
	if err := svc.DeleteImage(ctx, "x1"); !errors.Is(err, puppies.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for orphan image, got %v", err)
	}
}

func TestList_FiltersBreedAndGender(t *testing.T) {
	repo := mem.NewPuppiesRepo()
	svc := puppies.NewService(repo)

	ctx := context.Background()

	mk := func(name, breed, gender string) {
		t.Helper()
		in := puppies.CreateInput{Name: name, Breed: breed, Gender: gender}
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	mk("Milo", "labrador", "male")
	mk("Luna", "labrador", "female")
	mk("Rex", "beagle", "male")

	labs, err := svc.List(ctx, puppies.ListFilter{Breed: "labrador"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(labs) != 2 {
		t.Fatalf("expected 2 labradors, got %d", len(labs))
	}

	labMales, err := svc.List(ctx, puppies.ListFilter{Breed: "labrador", Gender: "male"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(labMales) != 1 || labMales[0].Name != "Milo" {
		t.Fatalf("expected only Milo, got %+v", labMales)
	}
}
