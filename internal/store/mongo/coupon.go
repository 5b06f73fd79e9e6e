package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/query"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CouponRepository struct {
	collection *mongo.Collection
}

var _ repo.CouponRepository = (*CouponRepository)(nil)

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{
		collection: db.Collection("coupons"),
	}
}

func (r *CouponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	if coupon.UsedBy == nil {
		coupon.UsedBy = []primitive.ObjectID{}
	}
	if coupon.ApplicableRestaurants == nil {
		coupon.ApplicableRestaurants = []primitive.ObjectID{}
	}
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = coupon.CreatedAt

	_, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCouponCode
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *CouponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *CouponRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return r.findOne(ctx, bson.M{"code": code, "is_active": true})
}

func (r *CouponRepository) findOne(ctx context.Context, filter bson.M) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var coupon domain.Coupon
	err := r.collection.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

func (r *CouponRepository) List(ctx context.Context, f domain.CouponListFilter) ([]domain.Coupon, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(query.Skip(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))

	coupons, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}

func (r *CouponRepository) ListForRestaurant(ctx context.Context, restaurantID primitive.ObjectID, now time.Time) ([]domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"is_active":   true,
		"valid_from":  bson.M{"$lte": now},
		"valid_until": bson.M{"$gte": now},
		"$or": bson.A{
			bson.M{"applicable_restaurants": restaurantID},
			bson.M{"applicable_restaurants": bson.M{"$size": 0}},
		},
	}

	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "valid_until", Value: 1}}))
}

func (r *CouponRepository) ListUsedBy(ctx context.Context, userID primitive.ObjectID) ([]domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.find(ctx, bson.M{"used_by": userID}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
}

func (r *CouponRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Coupon, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find coupons: %w", err)
	}
	defer cursor.Close(ctx)

	coupons := []domain.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

// Update applies the allow-listed fields. A new valid_until is only written
// while it is still after the stored valid_from.
func (r *CouponRepository) Update(ctx context.Context, id primitive.ObjectID, upd domain.CouponUpdate) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if upd.DiscountType != nil {
		set["discount_type"] = *upd.DiscountType
	}
	if upd.DiscountValue != nil {
		set["discount_value"] = *upd.DiscountValue
	}
	if upd.ValidUntil != nil {
		set["valid_until"] = *upd.ValidUntil
	}
	if upd.ClearMaxUses {
		set["max_uses"] = nil
	} else if upd.MaxUses != nil {
		set["max_uses"] = *upd.MaxUses
	}
	if upd.MinOrderValue != nil {
		set["min_order_value"] = *upd.MinOrderValue
	}
	if upd.ApplicableRestaurants != nil {
		restaurants := *upd.ApplicableRestaurants
		if restaurants == nil {
			restaurants = []primitive.ObjectID{}
		}
		set["applicable_restaurants"] = restaurants
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	filter := bson.M{"_id": id}
	if upd.ValidUntil != nil {
		filter["valid_from"] = bson.M{"$lt": *upd.ValidUntil}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var coupon domain.Coupon
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&coupon)
	if err == nil {
		return &coupon, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	if upd.ValidUntil != nil {
		n, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr != nil {
			return nil, fmt.Errorf("failed to update coupon: %w", countErr)
		}
		if n > 0 {
			return nil, domain.Invalid("valid_until must be after valid_from")
		}
	}

	return nil, domain.ErrCouponNotFound
}

func (r *CouponRepository) ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: bson.D{{Key: "$not", Value: bson.A{"$is_active"}}}},
			{Key: "updated_at", Value: time.Now()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var coupon domain.Coupon
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to toggle coupon status: %w", err)
	}

	return &coupon, nil
}

func (r *CouponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.ErrCouponNotFound
	}

	return nil
}

func (r *CouponRepository) AddRedemption(ctx context.Context, code string, userID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"code":      code,
		"is_active": true,
		"used_by":   bson.M{"$ne": userID},
		"$or": bson.A{
			bson.M{"max_uses": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$used_by", bson.A{}}}},
				"$max_uses",
			}}},
		},
	}
	update := bson.M{
		"$addToSet": bson.M{"used_by": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	return result.MatchedCount == 1, nil
}
