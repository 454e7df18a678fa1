package credentials

import (
	"encoding/json"
	"errors"
	"net/http"

	"kennel-site/internal/middleware"
	"kennel-site/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

// RegisterRoutes registra login/logout (rutas públicas).
func RegisterRoutes(r chi.Router, svc *Service, store sessions.Store, lg logger.Logger) {
	r.Get("/login", loginPageHandler())
	r.Post("/login", loginHandler(svc, store, lg))
	r.Get("/logout", logoutHandler(store))
}

// RegisterAdminRoutes registra el home del back-office.
// Debe colgarse de un grupo ya protegido por middleware.RequireAdmin.
func RegisterAdminRoutes(r chi.Router) {
	r.Get("/adminHome", adminHomeHandler())
}

func loginPageHandler() http.HandlerFunc {
	// El render real es de la capa de templating (externa); acá solo
	// confirmamos la ruta para que los redirects tengan destino.
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page":  "login",
			"error": r.URL.Query().Get("error") != "",
		})
	}
}

func loginHandler(svc *Service, store sessions.Store, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		id, err := svc.Authenticate(r.Context(), username, password)
		if err != nil {
			if !errors.Is(err, ErrInvalidCredentials) {
				lg.Error("login failed", "err", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			// Misma respuesta para usuario desconocido y password mala.
			http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
			return
		}

		if err := middleware.SignIn(store, w, r, id.Username); err != nil {
			lg.Error("session save failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/adminHome", http.StatusSeeOther)
	}
}

func logoutHandler(store sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = middleware.SignOut(store, w, r)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func adminHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _ := middleware.CurrentUser(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page":     "adminHome",
			"username": username,
		})
	}
}
