package domain

import (
	"errors"
	"fmt"
)

// Base error kinds. Every error returned from the service layer wraps one of
// these so the transport can pick a status code with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrCouponNotFound                  = fmt.Errorf("%w: coupon not found or inactive", ErrNotFound)
	ErrCouponExpiredOrNotYetValid      = fmt.Errorf("%w: coupon is expired or not yet valid", ErrBadRequest)
	ErrCouponNotApplicableToRestaurant = fmt.Errorf("%w: coupon is not applicable to this restaurant", ErrBadRequest)
	ErrCouponAlreadyUsedByUser         = fmt.Errorf("%w: coupon already used by this user", ErrBadRequest)
	ErrCouponAlreadyRedeemed           = fmt.Errorf("%w: coupon already redeemed by this user", ErrConflict)
	ErrCouponExhausted                 = fmt.Errorf("%w: coupon usage limit reached", ErrConflict)
	ErrDuplicateCouponCode             = fmt.Errorf("%w: coupon code already exists", ErrConflict)

	ErrRestaurantNotFound   = fmt.Errorf("%w: restaurant not found", ErrNotFound)
	ErrDuplicateSlug        = fmt.Errorf("%w: restaurant slug already exists", ErrConflict)
	ErrMenuSectionNotFound  = fmt.Errorf("%w: menu section not found", ErrNotFound)
	ErrOfferNotFound        = fmt.Errorf("%w: offer not found", ErrNotFound)
	ErrDeliverySlotNotFound = fmt.Errorf("%w: delivery slot not found", ErrNotFound)
	ErrImageNotFound        = fmt.Errorf("%w: image not found", ErrNotFound)
)

// OrderBelowMinimumError is returned when an order does not reach the
// coupon's minimum order value.
type OrderBelowMinimumError struct {
	Minimum float64
}

func (e *OrderBelowMinimumError) Error() string {
	return fmt.Sprintf("minimum order value of %.2f required to apply this coupon", e.Minimum)
}

func (e *OrderBelowMinimumError) Unwrap() error {
	return ErrBadRequest
}

// Invalid builds a bad request error with a formatted description.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}
