package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"go.uber.org/zap"
)

type OrderFinalizer interface {
	FinalizeOrder(ctx context.Context, msg domain.OrderFinalizedMessage) error
}

// OrderFinalizedWorker commits coupon redemptions and order counters for
// orders the order service has finalized.
type OrderFinalizedWorker struct {
	orders OrderFinalizer
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewOrderFinalizedWorker(
	orders OrderFinalizer,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderFinalizedWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderFinalizedWorker{
		orders: orders,
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *OrderFinalizedWorker) Start() error {
	w.logger.Info("starting order finalized worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderFinalized, w.handleMessage)
}

func (w *OrderFinalizedWorker) Stop() {
	w.logger.Info("stopping order finalized worker")
	w.cancel()
}

func (w *OrderFinalizedWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.OrderFinalizedMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return queue.Permanent(fmt.Errorf("failed to unmarshal message: %w", err))
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	w.logger.Infow("processing order finalized message", "order_id", msg.OrderID, "code", msg.CouponCode)

	if err := w.orders.FinalizeOrder(ctx, msg); err != nil {
		// a bad request or an unknown coupon will not fix itself on retry
		if errors.Is(err, domain.ErrBadRequest) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrCouponExhausted) {
			return queue.Permanent(err)
		}
		return err
	}

	return nil
}
