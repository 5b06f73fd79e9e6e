package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

// LocalStore writes images under a directory served at PublicURL. It is the
// development backend.
type LocalStore struct {
	dir       string
	publicURL string
}

func NewLocalStore(dir, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &LocalStore{dir: dir, publicURL: publicURL}, nil
}

func (s *LocalStore) Upload(ctx context.Context, assetID string, r io.Reader, _ string) (domain.Image, error) {
	target, err := s.path(assetID)
	if err != nil {
		return domain.Image{}, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return domain.Image{}, fmt.Errorf("failed to upload %s: %w", assetID, err)
	}

	f, err := os.Create(target)
	if err != nil {
		return domain.Image{}, fmt.Errorf("failed to upload %s: %w", assetID, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		return domain.Image{}, fmt.Errorf("failed to upload %s: %w", assetID, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(target)
		return domain.Image{}, err
	}

	return domain.Image{URL: publicURL(s.publicURL, assetID), AssetID: assetID}, nil
}

func (s *LocalStore) Delete(_ context.Context, assetID string) error {
	target, err := s.path(assetID)
	if err != nil {
		return err
	}

	err = os.Remove(target)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", assetID, err)
	}
	return nil
}

// path keeps asset ids inside the media directory.
func (s *LocalStore) path(assetID string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(assetID))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", domain.Invalid("invalid asset id %q", assetID)
	}
	return filepath.Join(s.dir, clean), nil
}
