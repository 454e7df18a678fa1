package objectstore

import (
	"context"
	"io"
	"sync"

	"kennel-site/internal/ports/uploads"
)

// MemoryUploader guarda los bytes en un map. Para dev sin bucket y tests.
type MemoryUploader struct {
	mu       sync.Mutex
	objects  map[string][]byte
	maxBytes int64
}

func NewMemoryUploader(maxBytes int64) *MemoryUploader {
	return &MemoryUploader{
		objects:  make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

func (u *MemoryUploader) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if u.maxBytes > 0 && size > u.maxBytes {
		return "", uploads.ErrTooLarge
	}
	if !isImage(contentType) {
		return "", uploads.ErrNotImage
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	key := objectKey(filename)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return key, nil
}

func (u *MemoryUploader) Remove(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

// Has existe para asserts en tests.
func (u *MemoryUploader) Has(key string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.objects[key]
	return ok
}
