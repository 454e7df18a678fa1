package main

import (
	"log"
	"net/http"

	"kennel-site/internal/adapters/objectstore"
	pg "kennel-site/internal/adapters/storage/postgres"
	"kennel-site/internal/configuration"
	"kennel-site/internal/domain/credentials"
	"kennel-site/internal/platform/logger"
	"kennel-site/internal/ports/uploads"
	"kennel-site/internal/router"
)

func main() {
	cfg, err := configuration.Read()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg := logger.NewFromEnv()

	opts := router.Options{
		Logger:        lg,
		SessionSecret: cfg.Session.Secret,
	}

	// Postgres si hay conexión configurada; si no, modo memoria (dev).
	if cfg.DB.DSN != "" || cfg.DB.User != "" {
		db, err := pg.Open(pg.DSN(cfg.DB))
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer db.Close()
		opts.DB = db
		lg.Info("using postgres", "host", cfg.DB.Host)
	} else {
		lg.Warn("no database configured, using in-memory repos")
		if cfg.Admin.Password != "" {
			hash, err := credentials.HashPassword(cfg.Admin.Password)
			if err != nil {
				log.Fatalf("seed credential error: %v", err)
			}
			opts.SeedCredential = &credentials.Credential{
				Username:     cfg.Admin.Username,
				PasswordHash: hash,
			}
		}
	}

	// Object storage si hay bucket configurado; si no, uploader en memoria.
	if cfg.S3.Endpoint != "" {
		var up uploads.Uploader
		up, err = objectstore.NewMinioUploader(objectstore.MinioOptions{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			UseSSL:    cfg.S3.UseSSL,
			MaxBytes:  cfg.Upload.MaxBytes,
		})
		if err != nil {
			log.Fatalf("object storage error: %v", err)
		}
		opts.Uploader = up
	} else {
		lg.Warn("no object storage configured, using in-memory uploader")
		opts.Uploader = objectstore.NewMemoryUploader(cfg.Upload.MaxBytes)
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lg.Info("starting server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
