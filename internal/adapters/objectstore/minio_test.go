package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"kennel-site/internal/ports/uploads"

	"github.com/minio/minio-go/v7"
)

// fakeClient registra las llamadas al SDK sin red.
type fakeClient struct {
	putKeys    []string
	putTypes   []string
	removeKeys []string
	putErr     error
}

func (f *fakeClient) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	f.putTypes = append(f.putTypes, opts.ContentType)
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func (f *fakeClient) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	f.removeKeys = append(f.removeKeys, key)
	return nil
}

func newFakeUploader(maxBytes int64) (*MinioUploader, *fakeClient) {
	fc := &fakeClient{}
	return &MinioUploader{client: fc, bucket: "kennel-images", maxBytes: maxBytes}, fc
}

func TestUpload_StoresWithTimestampPrefixedKey(t *testing.T) {
	up, fc := newFakeUploader(1024)

	key, err := up.Upload(context.Background(), "Milo Photo.JPG", "image/jpeg", 9, bytes.NewReader([]byte("ninebytes")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	// <millis>-<sufijo>-<nombre saneado>
	if ok, _ := regexp.MatchString(`^\d{13}-[0-9a-f]{8}-Milo_Photo\.JPG$`, key); !ok {
		t.Fatalf("unexpected key format: %q", key)
	}
	if len(fc.putKeys) != 1 || fc.putKeys[0] != key {
		t.Fatalf("expected one put with key %q, got %v", key, fc.putKeys)
	}
	if fc.putTypes[0] != "image/jpeg" {
		t.Fatalf("expected real content type, got %q", fc.putTypes[0])
	}
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	up, fc := newFakeUploader(10)

	_, err := up.Upload(context.Background(), "big.jpg", "image/jpeg", 11, strings.NewReader("01234567890"))
	if !errors.Is(err, uploads.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if len(fc.putKeys) != 0 {
		t.Fatal("oversized file must not reach the bucket")
	}
}

func TestUpload_RejectsNonImage(t *testing.T) {
	up, fc := newFakeUploader(1024)

	_, err := up.Upload(context.Background(), "notes.txt", "text/plain", 5, strings.NewReader("hello"))
	if !errors.Is(err, uploads.ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	if len(fc.putKeys) != 0 {
		t.Fatal("non-image must not reach the bucket")
	}
}

func TestUpload_KeysAreUniquePerCall(t *testing.T) {
	up, _ := newFakeUploader(1024)

	k1, err := up.Upload(context.Background(), "same.png", "image/png", 1, strings.NewReader("a"))
	if err != nil {
		t.Fatalf("upload 1: %v", err)
	}
	k2, err := up.Upload(context.Background(), "same.png", "image/png", 1, strings.NewReader("b"))
	if err != nil {
		t.Fatalf("upload 2: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("two uploads of the same filename must not share a key: %q", k1)
	}
}

func TestRemove_DelegatesToClient(t *testing.T) {
	up, fc := newFakeUploader(1024)

	if err := up.Remove(context.Background(), "123-abc-x.png"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(fc.removeKeys) != 1 || fc.removeKeys[0] != "123-abc-x.png" {
		t.Fatalf("expected remove of key, got %v", fc.removeKeys)
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"perro lindo.png": "perro_lindo.png",
		"ñandú.jpg":       "_and_.jpg",
		"":                "file",
	}
	for in, want := range cases {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}

	key := objectKey("../../etc/passwd")
	if strings.Contains(key, "/") {
		t.Errorf("object key must not contain path separators: %q", key)
	}
}

func TestMemoryUploader_SameRules(t *testing.T) {
	up := NewMemoryUploader(10)

	if _, err := up.Upload(context.Background(), "big.png", "image/png", 11, strings.NewReader("01234567890")); !errors.Is(err, uploads.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := up.Upload(context.Background(), "a.txt", "text/plain", 1, strings.NewReader("a")); !errors.Is(err, uploads.ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}

	key, err := up.Upload(context.Background(), "ok.png", "image/png", 2, strings.NewReader("ok"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !up.Has(key) {
		t.Fatalf("expected stored object under %q", key)
	}

	if err := up.Remove(context.Background(), key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if up.Has(key) {
		t.Fatal("expected object removed")
	}
}
