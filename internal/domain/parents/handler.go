package parents

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"kennel-site/internal/platform/logger"
	"kennel-site/internal/ports/uploads"

	"github.com/go-chi/chi/v5"
)

const maxMultipartMemory = 32 << 20

const imagesField = "parentImages"

// RegisterPublicRoutes registra el catálogo público de padres.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Get("/parents", listParentsHandler(svc))
	r.Get("/parents/{parentID}", getParentHandler(svc))
}

// RegisterAdminRoutes registra las mutaciones del back-office.
// Debe colgarse de un grupo ya protegido por middleware.RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service, up uploads.Uploader, lg logger.Logger) {
	r.Get("/manageParents", listParentsHandler(svc))

	r.Post("/submitNewParent", submitNewParentHandler(svc, up, lg))
	r.Post("/updateParent", updateParentHandler(svc, lg))
	r.Post("/deleteParent", deleteParentHandler(svc, lg))
	r.Post("/addParentImages", addParentImagesHandler(svc, up, lg))
	r.Post("/deleteParentImage", deleteParentImageHandler(svc, lg))
}

type parentResponse struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Breed             string     `json:"breed"`
	Gender            string     `json:"gender"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	AKCRegistered     bool       `json:"akc_registered"`
	ChampionBloodline string     `json:"champion_bloodline"`
	Description       string     `json:"description"`
	Images            []string   `json:"images"`
}

func listParentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{
			Breed:  r.URL.Query().Get("breed"),
			Gender: r.URL.Query().Get("gender"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]parentResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toParentResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getParentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(r, "parentID"), 10, 64)
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "parent not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toParentResponse(p))
	}
}

func submitNewParentHandler(svc *Service, up uploads.Uploader, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		keys, err := uploadAll(r.Context(), up, r.MultipartForm.File[imagesField])
		if err != nil {
			writeUploadError(w, lg, err)
			return
		}

		if _, err := svc.CreateWithImages(r.Context(), createInputFromForm(r), keys); err != nil {
			writeDomainError(w, lg, "create parent", err)
			return
		}

		http.Redirect(w, r, "/manageParents", http.StatusSeeOther)
	}
}

func updateParentHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		id, _ := strconv.ParseInt(r.PostFormValue("parentId"), 10, 64)
		if err := svc.Update(r.Context(), id, createInputFromForm(r)); err != nil {
			writeDomainError(w, lg, "update parent", err)
			return
		}

		http.Redirect(w, r, "/manageParents", http.StatusSeeOther)
	}
}

func deleteParentHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		id, _ := strconv.ParseInt(r.PostFormValue("parentId"), 10, 64)
		if err := svc.Delete(r.Context(), id); err != nil {
			writeDomainError(w, lg, "delete parent", err)
			return
		}

		http.Redirect(w, r, "/manageParents", http.StatusSeeOther)
	}
}

func addParentImagesHandler(svc *Service, up uploads.Uploader, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		// Igual que en puppies: id validado antes de subir nada.
		id, _ := strconv.ParseInt(r.PostFormValue("parentId"), 10, 64)
		if id <= 0 {
			http.Error(w, ErrInvalidOwnerReference.Error(), http.StatusBadRequest)
			return
		}

		keys, err := uploadAll(r.Context(), up, r.MultipartForm.File[imagesField])
		if err != nil {
			writeUploadError(w, lg, err)
			return
		}

		if err := svc.AttachImages(r.Context(), id, keys); err != nil {
			writeDomainError(w, lg, "attach parent images", err)
			return
		}

		http.Redirect(w, r, "/manageParents", http.StatusSeeOther)
	}
}

func deleteParentImageHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if err := svc.DeleteImage(r.Context(), r.PostFormValue("imageId")); err != nil {
			writeDomainError(w, lg, "delete parent image", err)
			return
		}

		http.Redirect(w, r, "/manageParents", http.StatusSeeOther)
	}
}

func createInputFromForm(r *http.Request) CreateInput {
	return CreateInput{
		Name:              r.PostFormValue("name"),
		Breed:             r.PostFormValue("breed"),
		Gender:            r.PostFormValue("gender"),
		DateOfBirth:       r.PostFormValue("dateOfBirth"),
		AKCRegistered:     r.PostFormValue("akcRegistered"),
		ChampionBloodline: r.PostFormValue("championBloodline"),
		Description:       r.PostFormValue("description"),
	}
}

func uploadAll(ctx context.Context, up uploads.Uploader, files []*multipart.FileHeader) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		key, err := up.Upload(ctx, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func writeUploadError(w http.ResponseWriter, lg logger.Logger, err error) {
	if errors.Is(err, uploads.ErrTooLarge) || errors.Is(err, uploads.ErrNotImage) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lg.Error("upload failed", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeDomainError(w http.ResponseWriter, lg logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidOwnerReference):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "parent not found", http.StatusNotFound)
	default:
		lg.Error(op+" failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toParentResponse(p Parent) parentResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return parentResponse{
		ID:                p.ID,
		Name:              p.Name,
		Breed:             p.Breed,
		Gender:            p.Gender,
		DateOfBirth:       p.DateOfBirth,
		AKCRegistered:     p.AKCRegistered,
		ChampionBloodline: p.ChampionBloodline,
		Description:       p.Description,
		Images:            images,
	}
}

// writeJSON duplicado a propósito por módulo (ver puppies/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
