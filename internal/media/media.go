// Package media stores restaurant images in an object store and hands back
// the public URL plus the asset id needed to delete them later.
package media

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20

type Store interface {
	Upload(ctx context.Context, assetID string, r io.Reader, contentType string) (domain.Image, error)
	Delete(ctx context.Context, assetID string) error
}

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DetectImageType sniffs the first bytes of r and rewinds it. Anything other
// than a common web image format is rejected.
func DetectImageType(r io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", domain.Invalid("unreadable image: %v", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", domain.Invalid("unreadable image: %v", err)
	}

	contentType := http.DetectContentType(head[:n])
	if _, ok := allowedTypes[contentType]; !ok {
		return "", domain.Invalid("unsupported image type %q", contentType)
	}
	return contentType, nil
}

// NewAssetID builds a unique object name under restaurants/<id>/.
func NewAssetID(restaurantID, contentType string) string {
	ext, ok := allowedTypes[contentType]
	if !ok {
		ext = ""
	}
	return path.Join("restaurants", restaurantID, uuid.NewString()+ext)
}

func publicURL(base, assetID string) string {
	return strings.TrimRight(base, "/") + "/" + assetID
}
