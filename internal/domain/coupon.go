package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Code                  string               `bson:"code" json:"code"`
	Description           string               `bson:"description,omitempty" json:"description,omitempty"`
	DiscountType          DiscountType         `bson:"discount_type" json:"discount_type"`
	DiscountValue         float64              `bson:"discount_value" json:"discount_value"`
	ValidFrom             time.Time            `bson:"valid_from" json:"valid_from"`
	ValidUntil            time.Time            `bson:"valid_until" json:"valid_until"`
	MaxUses               *int                 `bson:"max_uses" json:"max_uses"`
	MinOrderValue         float64              `bson:"min_order_value" json:"min_order_value"`
	UsedBy                []primitive.ObjectID `bson:"used_by" json:"used_by"`
	ApplicableRestaurants []primitive.ObjectID `bson:"applicable_restaurants" json:"applicable_restaurants"`
	IsActive              bool                 `bson:"is_active" json:"is_active"`
	CreatedAt             time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time            `bson:"updated_at" json:"updated_at"`
}

// UsedByUser reports whether userID already redeemed the coupon.
func (c *Coupon) UsedByUser(userID primitive.ObjectID) bool {
	for _, id := range c.UsedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the coupon can be used at restaurantID. An empty
// restaurant list means the coupon applies everywhere.
func (c *Coupon) AppliesTo(restaurantID primitive.ObjectID) bool {
	if len(c.ApplicableRestaurants) == 0 {
		return true
	}
	for _, id := range c.ApplicableRestaurants {
		if id == restaurantID {
			return true
		}
	}
	return false
}

// InWindow reports whether now falls in [ValidFrom, ValidUntil].
func (c *Coupon) InWindow(now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidUntil)
}

// Exhausted is derived from UsedBy; it is never stored.
func (c *Coupon) Exhausted() bool {
	return c.MaxUses != nil && len(c.UsedBy) >= *c.MaxUses
}

// CouponUpdate lists the only fields an update may touch. Nil means unchanged.
type CouponUpdate struct {
	DiscountType          *DiscountType
	DiscountValue         *float64
	ValidUntil            *time.Time
	MaxUses               *int
	// ClearMaxUses makes the coupon unlimited again; it wins over MaxUses.
	ClearMaxUses          bool
	MinOrderValue         *float64
	ApplicableRestaurants *[]primitive.ObjectID
	IsActive              *bool
}

type CouponListFilter struct {
	IsActive *bool
	Page     int
	Limit    int
}

// ApplyResult is the outcome of a successful coupon preview.
type ApplyResult struct {
	Valid       bool    `json:"valid"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"final_amount"`
	Coupon      string  `json:"coupon"`
}

type ValidateResult struct {
	Valid      bool       `json:"valid"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// RemainingUses is either the string "unlimited" or a possibly negative count.
type RemainingUses struct {
	Code      string `json:"code"`
	MaxUses   *int   `json:"max_uses"`
	Used      int    `json:"used"`
	Remaining any    `json:"remaining"`
}
