package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	// Properties agrupa toda la configuración del sitio, leída de env.
	Properties struct {
		HTTP    HTTPProperties    `envPrefix:"HTTP_"`
		DB      DBProperties      `envPrefix:"DB_"`
		Session SessionProperties `envPrefix:"SESSION_"`
		S3      S3Properties      `envPrefix:"S3_"`
		Upload  UploadProperties  `envPrefix:"UPLOAD_"`
		Admin   AdminProperties   `envPrefix:"ADMIN_"`
	}

	HTTPProperties struct {
		Port         string        `env:"PORT" envDefault:"8080"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	}

	// DBProperties acepta un DSN completo o parámetros sueltos
	// (el DSN gana si viene).
	DBProperties struct {
		DSN      string `env:"DSN"`
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     string `env:"PORT" envDefault:"5432"`
		Name     string `env:"NAME" envDefault:"kennel"`
		User     string `env:"USER"`
		Password string `env:"PASSWORD"`
		SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	}

	SessionProperties struct {
		Secret string `env:"SECRET" envDefault:"dev-session-secret"`
	}

	S3Properties struct {
		Endpoint  string `env:"ENDPOINT"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"kennel-images"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	}

	UploadProperties struct {
		// Techo por archivo. 5 MiB por defecto.
		MaxBytes int64 `env:"MAX_BYTES" envDefault:"5242880"`
	}

	// AdminProperties siembra la credencial en modo memoria (dev).
	// Con Postgres las credenciales se cargan out-of-band.
	AdminProperties struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD"`
	}
)

func Read() (*Properties, error) {
	cfg := &Properties{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
