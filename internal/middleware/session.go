package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionName es el nombre de la cookie firmada.
const SessionName = "kennel_session"

const usernameField = "username"

// Sessions rehidrata la identidad desde la cookie en cada request.
// No vuelve a verificar contra la tabla de credenciales: la firma de la
// cookie es la prueba. Si la cookie está rota o ausente, el request sigue
// sin identidad y RequireAdmin decide.
func Sessions(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r, SessionName)
			if err != nil || sess == nil {
				// cookie inválida == sin sesión
				next.ServeHTTP(w, r)
				return
			}

			username, _ := sess.Values[usernameField].(string)
			if strings.TrimSpace(username) == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin corta ANTES de cualquier trabajo de base de datos:
// sin identidad => redirect a /login (no es un error).
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser devuelve el username autenticado del contexto, si hay.
func CurrentUser(ctx context.Context) (string, bool) {
	v := ctx.Value(userKey)
	if v == nil {
		return "", false
	}
	u, ok := v.(string)
	return u, ok && u != ""
}

// SignIn serializa la identidad en la sesión (login exitoso).
// Get devuelve una sesión nueva usable aunque la cookie vieja no decodifique,
// así que el error se ignora y la cookie rota se pisa.
func SignIn(store sessions.Store, w http.ResponseWriter, r *http.Request, username string) error {
	sess, _ := store.Get(r, SessionName)
	sess.Values[usernameField] = username
	return sess.Save(r, w)
}

// SignOut invalida la sesión (logout explícito).
func SignOut(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	sess, _ := store.Get(r, SessionName)
	delete(sess.Values, usernameField)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
