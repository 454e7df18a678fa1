package breeds

import (
	"encoding/json"
	"errors"
	"net/http"

	"kennel-site/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes registra el listado público de razas.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Get("/breeds", listBreedsHandler(svc))
}

// RegisterAdminRoutes registra alta/baja de razas.
// Debe colgarse de un grupo ya protegido por middleware.RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service, lg logger.Logger) {
	r.Get("/manageBreeds", listBreedsHandler(svc))

	r.Post("/submitNewBreed", submitNewBreedHandler(svc, lg))
	r.Post("/deleteBreed", deleteBreedHandler(svc, lg))
}

func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]string, 0, len(items))
		for _, b := range items {
			out = append(out, b.Name)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func submitNewBreedHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if err := svc.Create(r.Context(), r.PostFormValue("breed")); err != nil {
			writeDomainError(w, lg, "create breed", err)
			return
		}

		http.Redirect(w, r, "/manageBreeds", http.StatusSeeOther)
	}
}

func deleteBreedHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), r.PostFormValue("breed")); err != nil {
			writeDomainError(w, lg, "delete breed", err)
			return
		}

		http.Redirect(w, r, "/manageBreeds", http.StatusSeeOther)
	}
}

func writeDomainError(w http.ResponseWriter, lg logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "breed not found", http.StatusNotFound)
	default:
		lg.Error(op+" failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON duplicado a propósito por módulo (ver puppies/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
