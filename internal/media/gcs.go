package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	Timeout         time.Duration
}

type GCSStore struct {
	service *storage.Service
	bucket  string
	timeout time.Duration
}

func NewGCSStore(ctx context.Context, cfg GCSConfig) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	service, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	return &GCSStore{
		service: service,
		bucket:  cfg.Bucket,
		timeout: cfg.Timeout,
	}, nil
}

func (s *GCSStore) Upload(ctx context.Context, assetID string, r io.Reader, contentType string) (domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	object := &storage.Object{
		Name:        assetID,
		ContentType: contentType,
	}
	_, err := s.service.Objects.Insert(s.bucket, object).
		Media(r, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return domain.Image{}, fmt.Errorf("failed to upload %s: %w", assetID, err)
	}

	return domain.Image{
		URL:     publicURL("https://storage.googleapis.com/"+s.bucket, assetID),
		AssetID: assetID,
	}, nil
}

// Delete treats a missing object as already deleted.
func (s *GCSStore) Delete(ctx context.Context, assetID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.service.Objects.Delete(s.bucket, assetID).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", assetID, err)
	}

	return nil
}
