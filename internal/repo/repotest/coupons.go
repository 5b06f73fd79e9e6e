// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupons implements repo.CouponRepository over a map. Set Err to make every
// call fail with it.
type Coupons struct {
	Err error

	mu   sync.Mutex
	byID map[primitive.ObjectID]*domain.Coupon
}

var _ repo.CouponRepository = (*Coupons)(nil)

func NewCoupons(coupons ...domain.Coupon) *Coupons {
	c := &Coupons{byID: make(map[primitive.ObjectID]*domain.Coupon)}
	for i := range coupons {
		cp := coupons[i]
		if cp.ID.IsZero() {
			cp.ID = primitive.NewObjectID()
		}
		c.byID[cp.ID] = &cp
	}
	return c
}

func (c *Coupons) Create(_ context.Context, coupon *domain.Coupon) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}
	for _, existing := range c.byID {
		if existing.Code == coupon.Code {
			return domain.ErrDuplicateCouponCode
		}
	}
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = coupon.CreatedAt
	cp := clone(*coupon)
	c.byID[cp.ID] = &cp
	return nil
}

func (c *Coupons) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	return c.first(func(cp *domain.Coupon) bool { return cp.ID == id })
}

func (c *Coupons) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	return c.first(func(cp *domain.Coupon) bool { return cp.Code == code })
}

func (c *Coupons) GetActiveByCode(_ context.Context, code string) (*domain.Coupon, error) {
	return c.first(func(cp *domain.Coupon) bool { return cp.Code == code && cp.IsActive })
}

func (c *Coupons) List(_ context.Context, f domain.CouponListFilter) ([]domain.Coupon, int64, error) {
	all, err := c.all(func(cp *domain.Coupon) bool { return f.IsActive == nil || cp.IsActive == *f.IsActive })
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func (c *Coupons) ListForRestaurant(_ context.Context, restaurantID primitive.ObjectID, now time.Time) ([]domain.Coupon, error) {
	return c.all(func(cp *domain.Coupon) bool {
		return cp.IsActive && cp.InWindow(now) && cp.AppliesTo(restaurantID)
	})
}

func (c *Coupons) ListUsedBy(_ context.Context, userID primitive.ObjectID) ([]domain.Coupon, error) {
	return c.all(func(cp *domain.Coupon) bool { return cp.UsedByUser(userID) })
}

func (c *Coupons) Update(_ context.Context, id primitive.ObjectID, upd domain.CouponUpdate) (*domain.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	cp, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	if upd.ValidUntil != nil && !cp.ValidFrom.Before(*upd.ValidUntil) {
		return nil, domain.Invalid("valid_until must be after valid_from")
	}

	if upd.DiscountType != nil {
		cp.DiscountType = *upd.DiscountType
	}
	if upd.DiscountValue != nil {
		cp.DiscountValue = *upd.DiscountValue
	}
	if upd.ValidUntil != nil {
		cp.ValidUntil = *upd.ValidUntil
	}
	if upd.ClearMaxUses {
		cp.MaxUses = nil
	} else if upd.MaxUses != nil {
		n := *upd.MaxUses
		cp.MaxUses = &n
	}
	if upd.MinOrderValue != nil {
		cp.MinOrderValue = *upd.MinOrderValue
	}
	if upd.ApplicableRestaurants != nil {
		cp.ApplicableRestaurants = append([]primitive.ObjectID{}, (*upd.ApplicableRestaurants)...)
	}
	if upd.IsActive != nil {
		cp.IsActive = *upd.IsActive
	}
	cp.UpdatedAt = time.Now()

	out := clone(*cp)
	return &out, nil
}

func (c *Coupons) ToggleActive(_ context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	cp, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	cp.IsActive = !cp.IsActive

	out := clone(*cp)
	return &out, nil
}

func (c *Coupons) Delete(_ context.Context, id primitive.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}
	if _, ok := c.byID[id]; !ok {
		return domain.ErrCouponNotFound
	}
	delete(c.byID, id)
	return nil
}

// AddRedemption applies the same condition as the Mongo update, under the
// fake's lock.
func (c *Coupons) AddRedemption(_ context.Context, code string, userID primitive.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return false, c.Err
	}
	for _, cp := range c.byID {
		if cp.Code != code || !cp.IsActive || cp.UsedByUser(userID) || cp.Exhausted() {
			continue
		}
		cp.UsedBy = append(cp.UsedBy, userID)
		return true, nil
	}
	return false, nil
}

func (c *Coupons) first(match func(*domain.Coupon) bool) (*domain.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	for _, cp := range c.byID {
		if match(cp) {
			out := clone(*cp)
			return &out, nil
		}
	}
	return nil, domain.ErrCouponNotFound
}

func (c *Coupons) all(match func(*domain.Coupon) bool) ([]domain.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	out := []domain.Coupon{}
	for _, cp := range c.byID {
		if match(cp) {
			out = append(out, clone(*cp))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func clone(c domain.Coupon) domain.Coupon {
	c.UsedBy = append([]primitive.ObjectID{}, c.UsedBy...)
	c.ApplicableRestaurants = append([]primitive.ObjectID{}, c.ApplicableRestaurants...)
	if c.MaxUses != nil {
		n := *c.MaxUses
		c.MaxUses = &n
	}
	return c
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return items
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
