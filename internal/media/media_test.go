package media

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDetectImageType(t *testing.T) {
	r := bytes.NewReader(pngHeader)
	got, err := DetectImageType(r)
	if err != nil || got != "image/png" {
		t.Fatalf("got %q, %v", got, err)
	}
	if pos, _ := r.Seek(0, 1); pos != 0 {
		t.Errorf("reader not rewound, at %d", pos)
	}

	if _, err := DetectImageType(strings.NewReader("plain text, not an image")); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("text upload: err = %v", err)
	}
}

func TestNewAssetID(t *testing.T) {
	id := NewAssetID("abc", "image/png")
	if !strings.HasPrefix(id, "restaurants/abc/") || !strings.HasSuffix(id, ".png") {
		t.Errorf("asset id = %q", id)
	}
	if id == NewAssetID("abc", "image/png") {
		t.Error("asset ids should be unique")
	}
}

func TestLocalStore_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "http://localhost:8080/media/")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	img, err := s.Upload(ctx, "restaurants/r1/logo.png", bytes.NewReader(pngHeader), "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if img.URL != "http://localhost:8080/media/restaurants/r1/logo.png" || img.AssetID != "restaurants/r1/logo.png" {
		t.Errorf("image = %+v", img)
	}
	if _, err := os.Stat(filepath.Join(dir, "restaurants", "r1", "logo.png")); err != nil {
		t.Errorf("file not written: %v", err)
	}

	if err := s.Delete(ctx, img.AssetID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, img.AssetID); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestLocalStore_RejectsEscapingPaths(t *testing.T) {
	s, _ := NewLocalStore(t.TempDir(), "http://localhost")

	for _, id := range []string{"../etc/passwd", "/abs/path", "."} {
		if err := s.Delete(context.Background(), id); !errors.Is(err, domain.ErrBadRequest) {
			t.Errorf("%q: err = %v", id, err)
		}
	}
}
