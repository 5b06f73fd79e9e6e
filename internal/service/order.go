package service

import (
	"context"
	"errors"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Transactor runs fn in a database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderService applies the side effects of a finalized order: the coupon
// redemption and the restaurant's order counter, together or not at all.
type OrderService struct {
	tx          Transactor
	coupons     *CouponService
	restaurants repo.RestaurantRepository
	logger      *zap.SugaredLogger
}

func NewOrderService(tx Transactor, coupons *CouponService, restaurants repo.RestaurantRepository, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{
		tx:          tx,
		coupons:     coupons,
		restaurants: restaurants,
		logger:      logger,
	}
}

// FinalizeOrder is idempotent for orders carrying a coupon: a redelivered
// message finds the user already in used_by and changes nothing.
func (s *OrderService) FinalizeOrder(ctx context.Context, msg domain.OrderFinalizedMessage) error {
	var userID, restaurantID primitive.ObjectID
	var err error

	if msg.CouponCode != "" {
		if userID, err = primitive.ObjectIDFromHex(msg.UserID); err != nil {
			return domain.Invalid("order %s: invalid user_id %q", msg.OrderID, msg.UserID)
		}
	}
	if msg.RestaurantID != "" {
		if restaurantID, err = primitive.ObjectIDFromHex(msg.RestaurantID); err != nil {
			return domain.Invalid("order %s: invalid restaurant_id %q", msg.OrderID, msg.RestaurantID)
		}
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if msg.CouponCode != "" {
			if err := s.coupons.Redeem(ctx, msg.CouponCode, userID); err != nil {
				return err
			}
		}
		if !restaurantID.IsZero() {
			if err := s.restaurants.IncrementOrders(ctx, restaurantID); err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, domain.ErrCouponAlreadyRedeemed) {
		s.logger.Infow("order already finalized", "order_id", msg.OrderID, "code", msg.CouponCode)
		return nil
	}
	if err != nil {
		s.logger.Errorw("failed to finalize order", "order_id", msg.OrderID, "error", err)
		return err
	}

	s.logger.Infow("order finalized", "order_id", msg.OrderID, "restaurant_id", msg.RestaurantID, "code", msg.CouponCode)

	return nil
}
