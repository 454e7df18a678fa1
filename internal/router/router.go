package router

import (
	"database/sql"
	"net/http"

	"kennel-site/internal/adapters/objectstore"
	mem "kennel-site/internal/adapters/storage/memory"
	pg "kennel-site/internal/adapters/storage/postgres"
	"kennel-site/internal/domain/breeds"
	"kennel-site/internal/domain/credentials"
	"kennel-site/internal/domain/parents"
	"kennel-site/internal/domain/puppies"
	"kennel-site/internal/middleware"
	"kennel-site/internal/platform/logger"
	"kennel-site/internal/ports/uploads"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

type Options struct {
	// Si viene DB, usa Postgres. Si no, repos en memoria (dev/tests).
	DB *sql.DB

	// Uploader de object storage. nil => en memoria.
	Uploader uploads.Uploader

	Logger logger.Logger

	// Secreto que firma la cookie de sesión.
	SessionSecret string

	// SeedCredential siembra el repo en memoria. Con DB se ignora:
	// las credenciales de producción se cargan out-of-band.
	SeedCredential *credentials.Credential
}

func NewRouter(opts Options) http.Handler {
	lg := opts.Logger
	if lg == nil {
		lg = logger.NewFromEnv()
	}

	secret := opts.SessionSecret
	if secret == "" {
		secret = "dev-session-secret"
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	var (
		credRepo   credentials.Repository
		puppyRepo  puppies.Repository
		parentRepo parents.Repository
		breedRepo  breeds.Repository
	)

	if opts.DB != nil {
		credRepo = pg.NewCredentialsRepo(opts.DB)
		puppyRepo = pg.NewPuppiesRepo(opts.DB)
		parentRepo = pg.NewParentsRepo(opts.DB)
		breedRepo = pg.NewBreedsRepo(opts.DB)
	} else {
		memCreds := mem.NewCredentialsRepo()
		if opts.SeedCredential != nil {
			memCreds.Seed(*opts.SeedCredential)
		}
		credRepo = memCreds
		puppyRepo = mem.NewPuppiesRepo()
		parentRepo = mem.NewParentsRepo()
		breedRepo = mem.NewBreedsRepo()
	}

	up := opts.Uploader
	if up == nil {
		up = objectstore.NewMemoryUploader(0)
	}

	// Services por módulo
	credSvc := credentials.NewService(credRepo)
	puppySvc := puppies.NewService(puppyRepo)
	parentSvc := parents.NewService(parentRepo)
	breedSvc := breeds.NewService(breedRepo)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.Sessions(store))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Home público: el render HTML vive afuera, acá solo confirmamos
	// destino para el redirect del logout.
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("kennel-site"))
	})

	// Rutas públicas: catálogo + login/logout
	credentials.RegisterRoutes(r, credSvc, store, lg)
	puppies.RegisterPublicRoutes(r, puppySvc)
	parents.RegisterPublicRoutes(r, parentSvc)
	breeds.RegisterPublicRoutes(r, breedSvc)

	// Back-office: todo detrás del guard de sesión, que corre antes de
	// cualquier mutación de base.
	r.Group(func(adm chi.Router) {
		adm.Use(middleware.RequireAdmin)

		credentials.RegisterAdminRoutes(adm)
		puppies.RegisterAdminRoutes(adm, puppySvc, up, lg)
		parents.RegisterAdminRoutes(adm, parentSvc, up, lg)
		breeds.RegisterAdminRoutes(adm, breedSvc, lg)
	})

	return r
}
