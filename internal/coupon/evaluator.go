// Package coupon holds the coupon eligibility rules. Nothing here touches
// storage; callers load the coupon and pass the evaluation time in.
package coupon

import (
	"strings"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var hundred = decimal.NewFromInt(100)

// OrderContext describes the order a coupon is previewed against.
type OrderContext struct {
	UserID       primitive.ObjectID
	RestaurantID primitive.ObjectID
	OrderValue   float64
}

// NormalizeCode is the canonical form codes are stored and looked up in.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate runs the eligibility checks on an active coupon in order and
// stops at the first failure. It never records a redemption.
func Evaluate(c *domain.Coupon, order OrderContext, now time.Time) (domain.ApplyResult, error) {
	if !c.InWindow(now) {
		return domain.ApplyResult{}, domain.ErrCouponExpiredOrNotYetValid
	}

	if !c.AppliesTo(order.RestaurantID) {
		return domain.ApplyResult{}, domain.ErrCouponNotApplicableToRestaurant
	}

	if c.UsedByUser(order.UserID) {
		return domain.ApplyResult{}, domain.ErrCouponAlreadyUsedByUser
	}

	if order.OrderValue < c.MinOrderValue {
		return domain.ApplyResult{}, &domain.OrderBelowMinimumError{Minimum: c.MinOrderValue}
	}

	value := decimal.NewFromFloat(order.OrderValue)
	discount := Discount(c.DiscountType, c.DiscountValue, order.OrderValue)

	return domain.ApplyResult{
		Valid:       true,
		Discount:    discount,
		FinalAmount: value.Sub(decimal.NewFromFloat(discount)).InexactFloat64(),
		Coupon:      c.Code,
	}, nil
}

// Discount is orderValue*value/100 for percentage coupons and the flat value
// otherwise.
func Discount(kind domain.DiscountType, value, orderValue float64) float64 {
	if kind == domain.DiscountPercentage {
		return decimal.NewFromFloat(orderValue).
			Mul(decimal.NewFromFloat(value)).
			Div(hundred).
			InexactFloat64()
	}
	return value
}

// Check is the context-free validity query: active and inside the window.
// A nil coupon (unknown code) is simply invalid.
func Check(c *domain.Coupon, now time.Time) domain.ValidateResult {
	if c == nil || !c.IsActive || !c.InWindow(now) {
		return domain.ValidateResult{Valid: false}
	}

	from, until := c.ValidFrom, c.ValidUntil
	return domain.ValidateResult{
		Valid:      true,
		ValidFrom:  &from,
		ValidUntil: &until,
	}
}

// Remaining reports the uses left. The count is not clamped at zero.
func Remaining(c *domain.Coupon) domain.RemainingUses {
	r := domain.RemainingUses{
		Code:    c.Code,
		MaxUses: c.MaxUses,
		Used:    len(c.UsedBy),
	}
	if c.MaxUses == nil {
		r.Remaining = "unlimited"
	} else {
		r.Remaining = *c.MaxUses - len(c.UsedBy)
	}
	return r
}
