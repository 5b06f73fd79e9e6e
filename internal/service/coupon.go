package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/coupon"
	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/query"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CouponService struct {
	coupons repo.CouponRepository
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewCouponService(coupons repo.CouponRepository, logger *zap.SugaredLogger) *CouponService {
	return &CouponService{
		coupons: coupons,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *CouponService) Create(ctx context.Context, c *domain.Coupon) error {
	c.Code = coupon.NormalizeCode(c.Code)
	c.UsedBy = nil

	if err := coupon.ValidateNew(c); err != nil {
		return err
	}

	if err := s.coupons.Create(ctx, c); err != nil {
		return err
	}

	s.logger.Infow("coupon created", "coupon_id", c.ID.Hex(), "code", c.Code)

	return nil
}

func (s *CouponService) List(ctx context.Context, filter domain.CouponListFilter) ([]domain.Coupon, domain.Pagination, error) {
	filter.Page, filter.Limit = query.Clamp(filter.Page, filter.Limit)

	coupons, total, err := s.coupons.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	return coupons, domain.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *CouponService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	return s.coupons.GetByID(ctx, id)
}

// Update validates the merged result before writing. The stored valid_from
// is re-checked by the write itself.
func (s *CouponService) Update(ctx context.Context, id primitive.ObjectID, upd domain.CouponUpdate) (*domain.Coupon, error) {
	current, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := coupon.ApplyUpdate(current, upd); err != nil {
		return nil, err
	}

	updated, err := s.coupons.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("coupon updated", "coupon_id", id.Hex())

	return updated, nil
}

func (s *CouponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.coupons.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("coupon deleted", "coupon_id", id.Hex())

	return nil
}

func (s *CouponService) ToggleStatus(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	c, err := s.coupons.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("coupon status toggled", "coupon_id", id.Hex(), "is_active", c.IsActive)

	return c, nil
}

// Apply previews the coupon against an order.
func (s *CouponService) Apply(ctx context.Context, code string, order coupon.OrderContext) (domain.ApplyResult, error) {
	c, err := s.coupons.GetActiveByCode(ctx, coupon.NormalizeCode(code))
	if err != nil {
		return domain.ApplyResult{}, err
	}

	return coupon.Evaluate(c, order, s.now())
}

// Validate reports {valid: false} for unknown or inactive codes. Only
// storage failures are returned as errors.
func (s *CouponService) Validate(ctx context.Context, code string) (domain.ValidateResult, error) {
	c, err := s.coupons.GetActiveByCode(ctx, coupon.NormalizeCode(code))
	if errors.Is(err, domain.ErrCouponNotFound) {
		return coupon.Check(nil, s.now()), nil
	}
	if err != nil {
		return domain.ValidateResult{}, err
	}

	return coupon.Check(c, s.now()), nil
}

func (s *CouponService) ForRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Coupon, error) {
	return s.coupons.ListForRestaurant(ctx, restaurantID, s.now())
}

func (s *CouponService) ForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Coupon, error) {
	return s.coupons.ListUsedBy(ctx, userID)
}

func (s *CouponService) RemainingUses(ctx context.Context, id primitive.ObjectID) (domain.RemainingUses, error) {
	c, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return domain.RemainingUses{}, err
	}

	return coupon.Remaining(c), nil
}

// Redeem records that userID used the coupon. The write is a single
// conditional update; when it does not apply, the coupon is re-read only to
// say why.
func (s *CouponService) Redeem(ctx context.Context, code string, userID primitive.ObjectID) error {
	code = coupon.NormalizeCode(code)

	applied, err := s.coupons.AddRedemption(ctx, code, userID)
	if err != nil {
		return err
	}
	if applied {
		s.logger.Infow("coupon redeemed", "code", code, "user_id", userID.Hex())
		return nil
	}

	c, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	switch {
	case !c.IsActive:
		return domain.ErrCouponNotFound
	case c.UsedByUser(userID):
		return domain.ErrCouponAlreadyRedeemed
	case c.Exhausted():
		return domain.ErrCouponExhausted
	}

	return fmt.Errorf("%w: coupon %s changed during redemption", domain.ErrConflict, code)
}
