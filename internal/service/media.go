package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/media"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetImage uploads a logo or cover image and stores it on the restaurant.
// The replaced image, if any, is released afterwards.
func (s *RestaurantService) SetImage(ctx context.Context, id primitive.ObjectID, slot domain.MediaSlot, file io.ReadSeeker) (domain.Image, error) {
	img, err := s.upload(ctx, id, file)
	if err != nil {
		return domain.Image{}, err
	}

	before, err := s.restaurants.SetImage(ctx, id, slot, img)
	if err != nil {
		s.discard(ctx, img.AssetID, domain.CleanupReasonPersistFailed)
		return domain.Image{}, err
	}

	var old *domain.Image
	switch slot {
	case domain.MediaLogo:
		old = before.Media.Logo
	case domain.MediaCover:
		old = before.Media.CoverImage
	}
	if old != nil && old.AssetID != "" {
		s.discard(ctx, old.AssetID, domain.CleanupReasonReplaced)
	}

	s.logger.Infow("restaurant image set", "restaurant_id", id.Hex(), "slot", slot, "asset_id", img.AssetID)

	return img, nil
}

func (s *RestaurantService) AddGalleryImage(ctx context.Context, id primitive.ObjectID, file io.ReadSeeker) ([]domain.Image, error) {
	img, err := s.upload(ctx, id, file)
	if err != nil {
		return nil, err
	}

	r, err := s.restaurants.AddGalleryImage(ctx, id, img)
	if err != nil {
		s.discard(ctx, img.AssetID, domain.CleanupReasonPersistFailed)
		return nil, err
	}

	return r.Media.Gallery, nil
}

func (s *RestaurantService) RemoveGalleryImage(ctx context.Context, id primitive.ObjectID, assetID string) ([]domain.Image, error) {
	r, err := s.restaurants.RemoveGalleryImage(ctx, id, assetID)
	if err != nil {
		return nil, err
	}

	s.discard(ctx, assetID, domain.CleanupReasonRemoved)

	return r.Media.Gallery, nil
}

// CleanupMedia deletes an orphaned asset on behalf of the cleanup worker.
func (s *RestaurantService) CleanupMedia(ctx context.Context, msg domain.MediaCleanupMessage) error {
	if msg.AssetID == "" {
		return domain.Invalid("asset_id is required")
	}

	if err := s.media.Delete(ctx, msg.AssetID); err != nil {
		return err
	}

	s.logger.Infow("orphaned media deleted", "asset_id", msg.AssetID, "reason", msg.Reason)

	return nil
}

// upload checks that the restaurant exists before anything is stored.
func (s *RestaurantService) upload(ctx context.Context, id primitive.ObjectID, file io.ReadSeeker) (domain.Image, error) {
	contentType, err := media.DetectImageType(file)
	if err != nil {
		return domain.Image{}, err
	}

	if _, err := s.restaurants.GetByID(ctx, id); err != nil {
		return domain.Image{}, err
	}

	img, err := s.media.Upload(ctx, media.NewAssetID(id.Hex(), contentType), file, contentType)
	if err != nil {
		s.logger.Errorw("failed to upload image", "restaurant_id", id.Hex(), "error", err)
		return domain.Image{}, err
	}

	return img, nil
}

// discard deletes an asset that is no longer referenced. When the object
// store refuses, the deletion is queued for the cleanup worker; either way
// the caller's result stands.
func (s *RestaurantService) discard(ctx context.Context, assetID, reason string) {
	ctx = context.WithoutCancel(ctx)

	err := s.media.Delete(ctx, assetID)
	if err == nil {
		return
	}
	s.logger.Warnw("failed to delete media, queueing cleanup", "asset_id", assetID, "reason", reason, "error", err)

	body, err := json.Marshal(domain.MediaCleanupMessage{
		AssetID:   assetID,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	if err != nil {
		s.logger.Errorw("failed to marshal media cleanup message", "asset_id", assetID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueMediaCleanup, body); err != nil {
		s.logger.Errorw("failed to queue media cleanup", "asset_id", assetID, "error", err)
	}
}
