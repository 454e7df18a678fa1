package credentials_test

import (
	"context"
	"errors"
	"testing"

	mem "kennel-site/internal/adapters/storage/memory"
	"kennel-site/internal/domain/credentials"

	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T, username, password string) *credentials.Service {
	t.Helper()

	// MinCost en tests: el costo real solo cambia cuánto tarda.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo := mem.NewCredentialsRepo()
	repo.Seed(credentials.Credential{
		Username:     username,
		PasswordHash: string(hash),
	})

	return credentials.NewService(repo)
}

func TestAuthenticate_Success(t *testing.T) {
	svc := newService(t, "admin", "correct horse")

	id, err := svc.Authenticate(context.Background(), "admin", "correct horse")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if id.Username != "admin" {
		t.Fatalf("expected identity admin, got %q", id.Username)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := newService(t, "admin", "correct horse")

	_, err := svc.Authenticate(context.Background(), "admin", "wrong")
	if !errors.Is(err, credentials.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc := newService(t, "admin", "correct horse")

	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	if !errors.Is(err, credentials.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Usuario desconocido y password mala devuelven EXACTAMENTE el mismo error:
// distinguirlos permitiría enumerar usuarios.
func TestAuthenticate_GenericFailure(t *testing.T) {
	svc := newService(t, "admin", "correct horse")

	_, errUnknown := svc.Authenticate(context.Background(), "nobody", "x")
	_, errWrong := svc.Authenticate(context.Background(), "admin", "x")

	if errUnknown == nil || errWrong == nil {
		t.Fatal("expected both logins to fail")
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestAuthenticate_CaseSensitiveUsername(t *testing.T) {
	svc := newService(t, "admin", "correct horse")

	_, err := svc.Authenticate(context.Background(), "Admin", "correct horse")
	if !errors.Is(err, credentials.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for Admin, got %v", err)
	}
}
