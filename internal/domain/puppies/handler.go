package puppies

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

// Memoria máxima para parsear multipart; el techo POR ARCHIVO lo aplica
// el uploader.
const maxMultipartMemory = 32 << 20

const imagesField = "puppyImages"

// RegisterPublicRoutes registra el catálogo público (JSON; el render HTML
// es un colaborador externo).
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Get("/puppies", listPuppiesHandler(svc))
	r.Get("/puppies/{puppyID}", getPuppyHandler(svc))
}

// RegisterAdminRoutes registra las mutaciones del back-office.
// Debe colgarse de un grupo ya protegido por middleware.RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service, up uploads.Uploader, lg logger.Logger) {
	r.Get("/managePuppies", listPuppiesHandler(svc))

	r.Post("/submitNewPuppy", submitNewPuppyHandler(svc, up, lg))
	r.Post("/updatePuppy", updatePuppyHandler(svc, lg))
	r.Post("/deletePuppy", deletePuppyHandler(svc, lg))
	r.Post("/addPuppyImages", addPuppyImagesHandler(svc, up, lg))
	r.Post("/deletePuppyImage", deletePuppyImageHandler(svc, lg))
}

type puppyResponse struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Breed          string     `json:"breed"`
	Gender         string     `json:"gender"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Price          int64      `json:"price"`
	MotherName     string     `json:"mother_name"`
	FatherName     string     `json:"father_name"`
	AKCRegistrable bool       `json:"akc_registrable"`
	Sold           bool       `json:"sold"`
	Images         []string   `json:"images"`
}

func listPuppiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{
			Breed:  r.URL.Query().Get("breed"),
			Gender: r.URL.Query().Get("gender"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]puppyResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPuppyResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPuppyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(r, "puppyID"), 10, 64)
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "puppy not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPuppyResponse(p))
	}
}

func submitNewPuppyHandler(svc *Service, up uploads.Uploader, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		// Primero van los archivos a object storage; recién con las claves
		// en mano se abre la transacción cachorro + asociaciones.
		keys, err := uploadAll(r.Context(), up, r.MultipartForm.File[imagesField])
		if err != nil {
			writeUploadError(w, lg, err)
			return
		}

		if _, err := svc.CreateWithImages(r.Context(), createInputFromForm(r), keys); err != nil {
			writeDomainError(w, lg, "create puppy", err)
			return
		}

		http.Redirect(w, r, "/managePuppies", http.StatusSeeOther)
	}
}

func updatePuppyHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		id, _ := strconv.ParseInt(r.PostFormValue("puppyId"), 10, 64)
		if err := svc.Update(r.Context(), id, createInputFromForm(r)); err != nil {
			writeDomainError(w, lg, "update puppy", err)
			return
		}

		http.Redirect(w, r, "/managePuppies", http.StatusSeeOther)
	}
}

func deletePuppyHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		id, _ := strconv.ParseInt(r.PostFormValue("puppyId"), 10, 64)
		if err := svc.Delete(r.Context(), id); err != nil {
			writeDomainError(w, lg, "delete puppy", err)
			return
		}

		http.Redirect(w, r, "/managePuppies", http.StatusSeeOther)
	}
}

func addPuppyImagesHandler(svc *Service, up uploads.Uploader, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		// El id se valida antes de subir nada: un id roto no debe dejar
		// objetos huérfanos en el bucket.
		id, _ := strconv.ParseInt(r.PostFormValue("puppyId"), 10, 64)
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
			writeDomainError(w, lg, "attach puppy images", err)
			return
		}

		http.Redirect(w, r, "/managePuppies", http.StatusSeeOther)
	}
}

func deletePuppyImageHandler(svc *Service, lg logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if err := svc.DeleteImage(r.Context(), r.PostFormValue("imageId")); err != nil {
			writeDomainError(w, lg, "delete puppy image", err)
			return
		}

		http.Redirect(w, r, "/managePuppies", http.StatusSeeOther)
	}
}

func createInputFromForm(r *http.Request) CreateInput {
	return CreateInput{
		Name:           r.PostFormValue("name"),
		Breed:          r.PostFormValue("breed"),
		Gender:         r.PostFormValue("gender"),
		DateOfBirth:    r.PostFormValue("dateOfBirth"),
		Price:          r.PostFormValue("price"),
		MotherName:     r.PostFormValue("motherName"),
		FatherName:     r.PostFormValue("fatherName"),
		AKCRegistrable: r.PostFormValue("akcRegistrable"),
		Sold:           r.PostFormValue("sold"),
	}
}

// uploadAll sube cada parte y junta las claves devueltas. El orden entre
// archivos no importa.
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
		http.Error(w, "puppy not found", http.StatusNotFound)
	default:
		// Falla de base (incluye rollback de transacción): se loguea acá
		// y el cliente recibe un error genérico.
		lg.Error(op+" failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPuppyResponse(p Puppy) puppyResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return puppyResponse{
		ID:             p.ID,
		Name:           p.Name,
		Breed:          p.Breed,
		Gender:         p.Gender,
		DateOfBirth:    p.DateOfBirth,
		Price:          p.Price,
		MotherName:     p.MotherName,
		FatherName:     p.FatherName,
		AKCRegistrable: p.AKCRegistrable,
		Sold:           p.Sold,
		Images:         images,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo,
// igual que en el resto del código: todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
