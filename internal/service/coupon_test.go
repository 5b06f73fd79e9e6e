package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/coupon"
	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo/repotest"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func save20() domain.Coupon {
	return domain.Coupon{
		ID:            primitive.NewObjectID(),
		Code:          "SAVE20",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 20,
		ValidFrom:     testNow.AddDate(0, -1, 0),
		ValidUntil:    testNow.AddDate(0, 1, 0),
		MinOrderValue: 100,
		IsActive:      true,
	}
}

func newCouponService(coupons ...domain.Coupon) (*CouponService, *repotest.Coupons) {
	repo := repotest.NewCoupons(coupons...)
	svc := NewCouponService(repo, zap.NewNop().Sugar())
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func TestCouponService_Create(t *testing.T) {
	svc, _ := newCouponService()
	ctx := context.Background()

	c := save20()
	c.ID = primitive.NilObjectID
	c.Code = "  summer25 "
	c.UsedBy = []primitive.ObjectID{primitive.NewObjectID()}

	if err := svc.Create(ctx, &c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Code != "SUMMER25" {
		t.Errorf("code = %q, want SUMMER25", c.Code)
	}
	if len(c.UsedBy) != 0 {
		t.Errorf("used_by should start empty, got %v", c.UsedBy)
	}

	dup := save20()
	dup.ID = primitive.NilObjectID
	dup.Code = "Summer25"
	if err := svc.Create(ctx, &dup); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate code: err = %v, want conflict", err)
	}

	bad := save20()
	bad.Code = "ABC"
	if err := svc.Create(ctx, &bad); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("short code: err = %v, want bad request", err)
	}
}

func TestCouponService_Apply(t *testing.T) {
	c := save20()
	svc, _ := newCouponService(c)
	ctx := context.Background()
	user, restaurant := primitive.NewObjectID(), primitive.NewObjectID()

	got, err := svc.Apply(ctx, "save20", coupon.OrderContext{UserID: user, RestaurantID: restaurant, OrderValue: 200})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := domain.ApplyResult{Valid: true, Discount: 40, FinalAmount: 160, Coupon: "SAVE20"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	_, err = svc.Apply(ctx, "SAVE20", coupon.OrderContext{UserID: user, RestaurantID: restaurant, OrderValue: 50})
	var below *domain.OrderBelowMinimumError
	if !errors.As(err, &below) || below.Minimum != 100 {
		t.Errorf("err = %v, want minimum 100", err)
	}

	if _, err := svc.Apply(ctx, "NOPE2024", coupon.OrderContext{OrderValue: 200}); !errors.Is(err, domain.ErrCouponNotFound) {
		t.Errorf("unknown code: err = %v", err)
	}
}

func TestCouponService_ApplyNeverRecordsUse(t *testing.T) {
	c := save20()
	svc, repo := newCouponService(c)
	ctx := context.Background()
	user := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		if _, err := svc.Apply(ctx, "SAVE20", coupon.OrderContext{UserID: user, OrderValue: 500}); err != nil {
			t.Fatalf("Apply #%d: %v", i, err)
		}
	}

	stored, _ := repo.GetByID(ctx, c.ID)
	if len(stored.UsedBy) != 0 {
		t.Errorf("preview mutated used_by: %v", stored.UsedBy)
	}
}

func TestCouponService_InactiveIsNotFound(t *testing.T) {
	c := save20()
	c.IsActive = false
	svc, _ := newCouponService(c)

	if _, err := svc.Apply(context.Background(), "SAVE20", coupon.OrderContext{OrderValue: 500}); !errors.Is(err, domain.ErrCouponNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestCouponService_Validate(t *testing.T) {
	c := save20()
	expired := save20()
	expired.ID = primitive.NewObjectID()
	expired.Code = "OLDDEAL"
	expired.ValidUntil = testNow.Add(-time.Hour)
	svc, _ := newCouponService(c, expired)
	ctx := context.Background()

	got, err := svc.Validate(ctx, "save20")
	if err != nil || !got.Valid || got.ValidFrom == nil || got.ValidUntil == nil {
		t.Errorf("active coupon: got %+v, %v", got, err)
	}

	got, err = svc.Validate(ctx, "OLDDEAL")
	if err != nil || got.Valid {
		t.Errorf("expired coupon: got %+v, %v", got, err)
	}

	got, err = svc.Validate(ctx, "MISSING1")
	if err != nil || got.Valid || got.ValidFrom != nil {
		t.Errorf("unknown code: got %+v, %v", got, err)
	}
}

func TestCouponService_ValidateStorageFailure(t *testing.T) {
	svc, repo := newCouponService()
	repo.Err = errors.New("connection reset")

	if _, err := svc.Validate(context.Background(), "SAVE20"); err == nil {
		t.Error("storage failures should surface")
	}
}

func TestCouponService_Redeem(t *testing.T) {
	c := save20()
	c.MaxUses = intPtr(2)
	svc, repo := newCouponService(c)
	ctx := context.Background()
	alice, bob, carol := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	if err := svc.Redeem(ctx, "save20", alice); err != nil {
		t.Fatalf("first redemption: %v", err)
	}
	if err := svc.Redeem(ctx, "SAVE20", alice); !errors.Is(err, domain.ErrCouponAlreadyRedeemed) {
		t.Errorf("repeat redemption: err = %v", err)
	}
	if err := svc.Redeem(ctx, "SAVE20", bob); err != nil {
		t.Fatalf("second user: %v", err)
	}
	if err := svc.Redeem(ctx, "SAVE20", carol); !errors.Is(err, domain.ErrCouponExhausted) {
		t.Errorf("over cap: err = %v", err)
	}
	if err := svc.Redeem(ctx, "UNKNOWN1", carol); !errors.Is(err, domain.ErrCouponNotFound) {
		t.Errorf("unknown: err = %v", err)
	}

	stored, _ := repo.GetByID(ctx, c.ID)
	if len(stored.UsedBy) != 2 {
		t.Errorf("used_by = %v, want 2 entries", stored.UsedBy)
	}
}

func TestCouponService_RedeemInactive(t *testing.T) {
	c := save20()
	c.IsActive = false
	svc, _ := newCouponService(c)

	if err := svc.Redeem(context.Background(), "SAVE20", primitive.NewObjectID()); !errors.Is(err, domain.ErrCouponNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestCouponService_Update(t *testing.T) {
	c := save20()
	svc, _ := newCouponService(c)
	ctx := context.Background()

	value := 30.0
	updated, err := svc.Update(ctx, c.ID, domain.CouponUpdate{DiscountValue: &value})
	if err != nil || updated.DiscountValue != 30 {
		t.Fatalf("got %+v, %v", updated, err)
	}

	tooEarly := c.ValidFrom.Add(-time.Hour)
	if _, err := svc.Update(ctx, c.ID, domain.CouponUpdate{ValidUntil: &tooEarly}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("valid_until before valid_from: err = %v", err)
	}

	over := 150.0
	if _, err := svc.Update(ctx, c.ID, domain.CouponUpdate{DiscountValue: &over}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("percentage over 100: err = %v", err)
	}

	if _, err := svc.Update(ctx, primitive.NewObjectID(), domain.CouponUpdate{DiscountValue: &value}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing coupon: err = %v", err)
	}
}

func TestCouponService_ToggleAndRemaining(t *testing.T) {
	c := save20()
	c.MaxUses = intPtr(1)
	c.UsedBy = []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	svc, _ := newCouponService(c)
	ctx := context.Background()

	toggled, err := svc.ToggleStatus(ctx, c.ID)
	if err != nil || toggled.IsActive {
		t.Fatalf("toggle: %+v, %v", toggled, err)
	}
	toggled, _ = svc.ToggleStatus(ctx, c.ID)
	if !toggled.IsActive {
		t.Error("second toggle should reactivate")
	}

	remaining, err := svc.RemainingUses(ctx, c.ID)
	if err != nil || remaining.Remaining != -1 {
		t.Errorf("remaining = %+v, %v; want unclamped -1", remaining, err)
	}
}

func TestCouponService_ForRestaurantAndUser(t *testing.T) {
	restaurant, other, user := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	everywhere := save20()
	scoped := save20()
	scoped.ID, scoped.Code = primitive.NewObjectID(), "PIZZA50"
	scoped.ApplicableRestaurants = []primitive.ObjectID{restaurant}
	elsewhere := save20()
	elsewhere.ID, elsewhere.Code = primitive.NewObjectID(), "BURGER10"
	elsewhere.ApplicableRestaurants = []primitive.ObjectID{other}
	elsewhere.UsedBy = []primitive.ObjectID{user}

	svc, _ := newCouponService(everywhere, scoped, elsewhere)
	ctx := context.Background()

	got, err := svc.ForRestaurant(ctx, restaurant)
	if err != nil || len(got) != 2 {
		t.Errorf("for restaurant = %d coupons, %v; want 2", len(got), err)
	}

	got, err = svc.ForUser(ctx, user)
	if err != nil || len(got) != 1 || got[0].Code != "BURGER10" {
		t.Errorf("for user = %+v, %v", got, err)
	}
}

func TestCouponService_List(t *testing.T) {
	a, b := save20(), save20()
	b.ID, b.Code, b.IsActive = primitive.NewObjectID(), "WINTER10", false
	svc, _ := newCouponService(a, b)

	active := true
	coupons, page, err := svc.List(context.Background(), domain.CouponListFilter{IsActive: &active, Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(coupons) != 1 || page.Total != 1 || page.Page != 1 || page.Limit != 100 {
		t.Errorf("coupons = %d, page = %+v", len(coupons), page)
	}
}
