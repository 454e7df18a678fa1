package credentials

// Credential es la fila username + hash. Se crea out-of-band:
// no hay registro self-service en el sitio.
type Credential struct {
	Username     string
	PasswordHash string
}

// Identity es lo que viaja a la sesión tras un login exitoso.
// Nunca incluye el hash.
type Identity struct {
	Username string
}
