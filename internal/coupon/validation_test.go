package coupon

import (
	"errors"
	"testing"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

func TestValidateNew(t *testing.T) {
	zero := 0

	tests := []struct {
		name    string
		mutate  func(c *domain.Coupon)
		wantErr bool
	}{
		{"valid", func(c *domain.Coupon) {}, false},
		{"code too short", func(c *domain.Coupon) { c.Code = "AB12" }, true},
		{"code too long", func(c *domain.Coupon) { c.Code = "ABCDEFGHIJKLMNOPQRSTU" }, true},
		{"percentage over 100", func(c *domain.Coupon) { c.DiscountValue = 101 }, true},
		{"percentage under 1", func(c *domain.Coupon) { c.DiscountValue = 0.5 }, true},
		{"fixed large value", func(c *domain.Coupon) {
			c.DiscountType = domain.DiscountFixed
			c.DiscountValue = 500
		}, false},
		{"unknown type", func(c *domain.Coupon) { c.DiscountType = "bogo" }, true},
		{"window inverted", func(c *domain.Coupon) { c.ValidUntil = c.ValidFrom.Add(-time.Hour) }, true},
		{"window empty", func(c *domain.Coupon) { c.ValidUntil = c.ValidFrom }, true},
		{"max uses zero", func(c *domain.Coupon) { c.MaxUses = &zero }, true},
		{"negative minimum", func(c *domain.Coupon) { c.MinOrderValue = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := save20()
			tt.mutate(c)

			err := ValidateNew(c)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrBadRequest) {
					t.Errorf("expected bad request error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyUpdate(t *testing.T) {
	current := save20()

	t.Run("valid_until before valid_from is rejected", func(t *testing.T) {
		until := current.ValidFrom.Add(-time.Minute)
		if _, err := ApplyUpdate(current, domain.CouponUpdate{ValidUntil: &until}); !errors.Is(err, domain.ErrBadRequest) {
			t.Errorf("expected bad request, got %v", err)
		}
	})

	t.Run("switching to percentage re-checks the stored value", func(t *testing.T) {
		fixed := *current
		fixed.DiscountType = domain.DiscountFixed
		fixed.DiscountValue = 250

		kind := domain.DiscountPercentage
		if _, err := ApplyUpdate(&fixed, domain.CouponUpdate{DiscountType: &kind}); !errors.Is(err, domain.ErrBadRequest) {
			t.Errorf("expected bad request, got %v", err)
		}
	})

	t.Run("merges allowed fields", func(t *testing.T) {
		value := 30.0
		maxUses := 10
		active := false
		merged, err := ApplyUpdate(current, domain.CouponUpdate{
			DiscountValue: &value,
			MaxUses:       &maxUses,
			IsActive:      &active,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if merged.DiscountValue != 30 || *merged.MaxUses != 10 || merged.IsActive {
			t.Errorf("merge result %+v", merged)
		}
		if current.DiscountValue != 20 || current.MaxUses != nil || !current.IsActive {
			t.Error("ApplyUpdate must not modify the stored coupon")
		}
	})

	t.Run("clearing max_uses makes the coupon unlimited", func(t *testing.T) {
		limited := *current
		maxUses := 5
		limited.MaxUses = &maxUses

		merged, err := ApplyUpdate(&limited, domain.CouponUpdate{ClearMaxUses: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if merged.MaxUses != nil {
			t.Errorf("max_uses = %d, want unlimited", *merged.MaxUses)
		}
		if limited.MaxUses == nil || *limited.MaxUses != 5 {
			t.Error("ApplyUpdate must not modify the stored coupon")
		}
	})
}
