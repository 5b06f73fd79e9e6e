package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"go.uber.org/zap"
)

type MediaCleaner interface {
	CleanupMedia(ctx context.Context, msg domain.MediaCleanupMessage) error
}

// MediaCleanupWorker deletes images that were uploaded but never referenced,
// or that were replaced while the object store was unavailable.
type MediaCleanupWorker struct {
	cleaner MediaCleaner
	broker  queue.Broker
	logger  *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewMediaCleanupWorker(
	cleaner MediaCleaner,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *MediaCleanupWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &MediaCleanupWorker{
		cleaner: cleaner,
		broker:  broker,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (w *MediaCleanupWorker) Start() error {
	w.logger.Info("starting media cleanup worker")

	return w.broker.Subscribe(w.ctx, queue.QueueMediaCleanup, w.handleMessage)
}

func (w *MediaCleanupWorker) Stop() {
	w.logger.Info("stopping media cleanup worker")
	w.cancel()
}

func (w *MediaCleanupWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.MediaCleanupMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return queue.Permanent(fmt.Errorf("failed to unmarshal message: %w", err))
	}

	if err := w.cleaner.CleanupMedia(ctx, msg); err != nil {
		w.logger.Errorw("failed to clean up media", "asset_id", msg.AssetID, "error", err)
		if errors.Is(err, domain.ErrBadRequest) {
			return queue.Permanent(err)
		}
		return err
	}

	return nil
}
