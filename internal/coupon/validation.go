package coupon

import (
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

const (
	minCodeLength = 6
	maxCodeLength = 20
)

// ValidateNew checks a coupon about to be created. The code must already be
// normalized.
func ValidateNew(c *domain.Coupon) error {
	if n := len(c.Code); n < minCodeLength || n > maxCodeLength {
		return domain.Invalid("coupon code must be between %d and %d characters, got %q", minCodeLength, maxCodeLength, c.Code)
	}

	if err := validateDiscount(c.DiscountType, c.DiscountValue); err != nil {
		return err
	}

	if !c.ValidFrom.Before(c.ValidUntil) {
		return domain.Invalid("valid_from must be before valid_until")
	}

	if c.MaxUses != nil && *c.MaxUses < 1 {
		return domain.Invalid("max_uses must be a positive integer, got %d", *c.MaxUses)
	}

	if c.MinOrderValue < 0 {
		return domain.Invalid("min_order_value cannot be negative")
	}

	return nil
}

// ApplyUpdate validates upd against the stored coupon and returns the merged
// result. The stored coupon is not modified.
func ApplyUpdate(current *domain.Coupon, upd domain.CouponUpdate) (*domain.Coupon, error) {
	merged := *current

	if upd.DiscountType != nil {
		merged.DiscountType = *upd.DiscountType
	}
	if upd.DiscountValue != nil {
		merged.DiscountValue = *upd.DiscountValue
	}
	if err := validateDiscount(merged.DiscountType, merged.DiscountValue); err != nil {
		return nil, err
	}

	if upd.ValidUntil != nil {
		if !current.ValidFrom.Before(*upd.ValidUntil) {
			return nil, domain.Invalid("valid_until must be after valid_from (%s)", current.ValidFrom.Format(time.RFC3339))
		}
		merged.ValidUntil = *upd.ValidUntil
	}

	if upd.ClearMaxUses {
		merged.MaxUses = nil
	} else if upd.MaxUses != nil {
		if *upd.MaxUses < 1 {
			return nil, domain.Invalid("max_uses must be a positive integer, got %d", *upd.MaxUses)
		}
		maxUses := *upd.MaxUses
		merged.MaxUses = &maxUses
	}

	if upd.MinOrderValue != nil {
		if *upd.MinOrderValue < 0 {
			return nil, domain.Invalid("min_order_value cannot be negative")
		}
		merged.MinOrderValue = *upd.MinOrderValue
	}

	if upd.ApplicableRestaurants != nil {
		merged.ApplicableRestaurants = *upd.ApplicableRestaurants
	}
	if upd.IsActive != nil {
		merged.IsActive = *upd.IsActive
	}

	return &merged, nil
}

func validateDiscount(kind domain.DiscountType, value float64) error {
	switch kind {
	case domain.DiscountPercentage:
		if value < 1 || value > 100 {
			return domain.Invalid("percentage discount must be between 1 and 100, got %v", value)
		}
	case domain.DiscountFixed:
		if value <= 0 {
			return domain.Invalid("fixed discount must be positive, got %v", value)
		}
	default:
		return domain.Invalid("discount_type must be one of percentage, fixed; got %q", kind)
	}
	return nil
}
