package credentials

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials cubre tanto usuario desconocido como password
	// incorrecta. Una sola falla genérica: distinguirlas permitiría
	// enumerar usuarios.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound lo devuelven los repos cuando el username no existe.
	ErrNotFound = errors.New("not found")
)

// Costo fijo del hash, decidido al crear las credenciales.
const BcryptCost = 15

// Hash bcrypt válido que no corresponde a ninguna credencial real.
// Cuando el usuario no existe igual corremos una comparación contra este
// hash, para que el tiempo de respuesta no delate la diferencia.
const dummyHash = "$2a$15$CGJ9F1Nz8Pq0M3mYVWoJ4eX1G2h5K6L7N8P9Q0R1S2T3U4V5W6X7y"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate verifica username+password contra la credencial guardada.
// Devuelve la Identity (sin hash) o ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	username = strings.TrimSpace(username)

	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Comparamos igual contra el dummy y descartamos el resultado.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{Username: cred.Username}, nil
}

// HashPassword genera el hash con el costo fijo del sitio.
// Solo se usa para sembrar credenciales (dev) y tooling.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
