package repo

import (
	"context"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	GetActiveByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context, filter domain.CouponListFilter) ([]domain.Coupon, int64, error)
	ListForRestaurant(ctx context.Context, restaurantID primitive.ObjectID, now time.Time) ([]domain.Coupon, error)
	ListUsedBy(ctx context.Context, userID primitive.ObjectID) ([]domain.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.CouponUpdate) (*domain.Coupon, error)
	ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddRedemption appends userID to used_by only if the coupon is active,
	// the user is absent and the cap is not reached. It reports whether the
	// conditional update applied.
	AddRedemption(ctx context.Context, code string, userID primitive.ObjectID) (bool, error)
}
