// Package objectstore implementa el puerto uploads contra object storage.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"kennel-site/internal/ports/uploads"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// client es el subconjunto del SDK de minio que usamos (mockeable en tests).
type client interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type MinioUploader struct {
	client   client
	bucket   string
	maxBytes int64
}

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	MaxBytes  int64
}

func NewMinioUploader(opts MinioOptions) (*MinioUploader, error) {
	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioUploader{
		client:   mc,
		bucket:   opts.Bucket,
		maxBytes: opts.MaxBytes,
	}, nil
}

// Upload valida techo de tamaño y que sea imagen, y sube el archivo con una
// clave única. Devuelve la clave; asociarla a una fila es problema del caller.
func (u *MinioUploader) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if u.maxBytes > 0 && size > u.maxBytes {
		return "", uploads.ErrTooLarge
	}
	if !isImage(contentType) {
		return "", uploads.ErrNotImage
	}

	key := objectKey(filename)
	if _, err := u.client.PutObject(ctx, u.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

func (u *MinioUploader) Remove(ctx context.Context, key string) error {
	if err := u.client.RemoveObject(ctx, u.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// objectKey arma la clave: prefijo de timestamp + sufijo aleatorio + nombre
// saneado. El timestamp mantiene el orden de subida al listar el bucket.
func objectKey(filename string) string {
	base := sanitize(filepath.Base(filename))
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), suffix, base)
}

// sanitize deja solo caracteres seguros para una clave de objeto.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
