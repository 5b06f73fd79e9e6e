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

type RestaurantRepository struct {
	collection *mongo.Collection
}

var _ repo.RestaurantRepository = (*RestaurantRepository)(nil)

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{
		collection: db.Collection("restaurants"),
	}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	fillEmptyLists(restaurant)
	restaurant.Version = 0
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = restaurant.CreatedAt

	_, err := r.collection.InsertOne(ctx, restaurant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

// fillEmptyLists stores empty arrays instead of nulls so array operators
// ($push, $size, $addToSet) always have something to work on.
func fillEmptyLists(rs *domain.Restaurant) {
	if rs.Managers == nil {
		rs.Managers = []primitive.ObjectID{}
	}
	if rs.FoodType == nil {
		rs.FoodType = []string{}
	}
	if rs.CuisineType == nil {
		rs.CuisineType = []string{}
	}
	if rs.OpeningHours == nil {
		rs.OpeningHours = []domain.OpeningHours{}
	}
	if rs.Holidays == nil {
		rs.Holidays = []time.Time{}
	}
	if rs.Menu == nil {
		rs.Menu = []domain.MenuSection{}
	}
	if rs.Offers == nil {
		rs.Offers = []domain.Offer{}
	}
	if rs.DeliverySlots == nil {
		rs.DeliverySlots = []domain.DeliverySlot{}
	}
	if rs.Media.Gallery == nil {
		rs.Media.Gallery = []domain.Image{}
	}
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RestaurantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *RestaurantRepository) findOne(ctx context.Context, filter bson.M) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var restaurant domain.Restaurant
	err := r.collection.FindOne(ctx, filter).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return &restaurant, nil
}

func (r *RestaurantRepository) List(ctx context.Context, q query.Restaurants) ([]domain.Restaurant, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	opts := options.Find().
		SetSort(q.Sort).
		SetProjection(q.Projection).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	restaurants, err := r.find(ctx, q.Filter, opts)
	if err != nil {
		return nil, 0, err
	}

	return restaurants, total, nil
}

func (r *RestaurantRepository) Nearby(ctx context.Context, lng, lat, radiusMeters float64, limit int) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"is_active": true,
		"location.coordinates": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    domain.NewGeoPoint(lng, lat),
				"$maxDistance": radiusMeters,
			},
		},
	}

	return r.find(ctx, filter, options.Find().SetLimit(int64(limit)).SetProjection(bson.M{"version": 0}))
}

func (r *RestaurantRepository) Trending(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{
			{Key: "view_count", Value: -1},
			{Key: "order_count", Value: -1},
			{Key: "rating.average", Value: -1},
		}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"version": 0})

	return r.find(ctx, bson.M{"is_active": true}, opts)
}

func (r *RestaurantRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Restaurant, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	restaurants := []domain.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	return restaurants, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, id primitive.ObjectID, upd domain.RestaurantUpdate) (*domain.Restaurant, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Slug != nil {
		set["slug"] = *upd.Slug
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Contact != nil {
		set["contact"] = *upd.Contact
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.FoodType != nil {
		set["food_type"] = *upd.FoodType
	}
	if upd.CuisineType != nil {
		set["cuisine_type"] = *upd.CuisineType
	}
	if upd.IsPureVeg != nil {
		set["is_pure_veg"] = *upd.IsPureVeg
	}

	restaurant, err := r.modify(ctx, bson.M{"_id": id}, bson.M{"$set": set}, options.After)
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.ErrDuplicateSlug
	}
	return restaurant, err
}

// Delete removes the restaurant and returns the deleted document.
func (r *RestaurantRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var restaurant domain.Restaurant
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to delete restaurant: %w", err)
	}

	return &restaurant, nil
}

func (r *RestaurantRepository) SetStatus(ctx context.Context, id primitive.ObjectID, upd domain.StatusUpdate) (*domain.Restaurant, error) {
	set := bson.M{}
	if upd.IsOpenNow != nil {
		set["is_open_now"] = *upd.IsOpenNow
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if upd.IsBusy != nil {
		set["is_busy"] = *upd.IsBusy
	}
	if upd.IsAcceptingOrders != nil {
		set["is_accepting_orders"] = *upd.IsAcceptingOrders
	}

	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$set": set}, options.After)
}

func (r *RestaurantRepository) SetOpeningHours(ctx context.Context, id primitive.ObjectID, hours []domain.OpeningHours) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"opening_hours": hours}}, options.After)
}

func (r *RestaurantRepository) SetHolidays(ctx context.Context, id primitive.ObjectID, holidays []time.Time) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"holidays": holidays}}, options.After)
}

func (r *RestaurantRepository) AddMenuSections(ctx context.Context, id primitive.ObjectID, sections []domain.MenuSection) (*domain.Restaurant, error) {
	update := bson.M{"$push": bson.M{"menu": bson.M{"$each": sections}}}
	return r.modify(ctx, bson.M{"_id": id}, update, options.After)
}

func (r *RestaurantRepository) ReplaceMenuSection(ctx context.Context, id primitive.ObjectID, section domain.MenuSection) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "menu._id": section.ID}
	update := bson.M{"$set": bson.M{"menu.$": section}}
	return r.modifyNested(ctx, filter, update, domain.ErrMenuSectionNotFound)
}

func (r *RestaurantRepository) DeleteMenuSection(ctx context.Context, id, sectionID primitive.ObjectID) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "menu._id": sectionID}
	update := bson.M{"$pull": bson.M{"menu": bson.M{"_id": sectionID}}}
	return r.modifyNested(ctx, filter, update, domain.ErrMenuSectionNotFound)
}

func (r *RestaurantRepository) AddMenuItems(ctx context.Context, id, sectionID primitive.ObjectID, items []primitive.ObjectID) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "menu._id": sectionID}
	update := bson.M{"$addToSet": bson.M{"menu.$.items": bson.M{"$each": items}}}
	return r.modifyNested(ctx, filter, update, domain.ErrMenuSectionNotFound)
}

func (r *RestaurantRepository) RemoveMenuItem(ctx context.Context, id, sectionID, itemID primitive.ObjectID) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "menu._id": sectionID}
	update := bson.M{"$pull": bson.M{"menu.$.items": itemID}}
	return r.modifyNested(ctx, filter, update, domain.ErrMenuSectionNotFound)
}

// SetImage returns the document as it was before the write.
func (r *RestaurantRepository) SetImage(ctx context.Context, id primitive.ObjectID, slot domain.MediaSlot, img domain.Image) (*domain.Restaurant, error) {
	update := bson.M{"$set": bson.M{"media." + string(slot): img}}
	return r.modify(ctx, bson.M{"_id": id}, update, options.Before)
}

func (r *RestaurantRepository) AddGalleryImage(ctx context.Context, id primitive.ObjectID, img domain.Image) (*domain.Restaurant, error) {
	update := bson.M{"$push": bson.M{"media.gallery": img}}
	return r.modify(ctx, bson.M{"_id": id}, update, options.After)
}

func (r *RestaurantRepository) RemoveGalleryImage(ctx context.Context, id primitive.ObjectID, assetID string) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "media.gallery.asset_id": assetID}
	update := bson.M{"$pull": bson.M{"media.gallery": bson.M{"asset_id": assetID}}}
	return r.modifyNested(ctx, filter, update, domain.ErrImageNotFound)
}

func (r *RestaurantRepository) SetDeliveryDetails(ctx context.Context, id primitive.ObjectID, details domain.DeliveryDetails) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"delivery_details": details}}, options.After)
}

func (r *RestaurantRepository) AddDeliverySlot(ctx context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"delivery_slots": slot}}, options.After)
}

func (r *RestaurantRepository) ReplaceDeliverySlot(ctx context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "delivery_slots._id": slot.ID}
	update := bson.M{"$set": bson.M{"delivery_slots.$": slot}}
	return r.modifyNested(ctx, filter, update, domain.ErrDeliverySlotNotFound)
}

func (r *RestaurantRepository) DeleteDeliverySlot(ctx context.Context, id, slotID primitive.ObjectID) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "delivery_slots._id": slotID}
	update := bson.M{"$pull": bson.M{"delivery_slots": bson.M{"_id": slotID}}}
	return r.modifyNested(ctx, filter, update, domain.ErrDeliverySlotNotFound)
}

func (r *RestaurantRepository) AddOffer(ctx context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"offers": offer}}, options.After)
}

func (r *RestaurantRepository) ReplaceOffer(ctx context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "offers._id": offer.ID}
	update := bson.M{"$set": bson.M{"offers.$": offer}}
	return r.modifyNested(ctx, filter, update, domain.ErrOfferNotFound)
}

func (r *RestaurantRepository) DeleteOffer(ctx context.Context, id, offerID primitive.ObjectID) (*domain.Restaurant, error) {
	filter := bson.M{"_id": id, "offers._id": offerID}
	update := bson.M{"$pull": bson.M{"offers": bson.M{"_id": offerID}}}
	return r.modifyNested(ctx, filter, update, domain.ErrOfferNotFound)
}

// Counter bumps leave version and updated_at alone.
func (r *RestaurantRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"view_count": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}

	return nil
}

func (r *RestaurantRepository) IncrementOrders(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"order_count": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment orders: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}

	return nil
}

// AddRating folds score into the running average in a single pipeline
// update, so concurrent ratings never overwrite each other.
func (r *RestaurantRepository) AddRating(ctx context.Context, id primitive.ObjectID, score float64) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count := bson.M{"$ifNull": bson.A{"$rating.count", 0}}
	average := bson.M{"$ifNull": bson.A{"$rating.average", 0}}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "rating.average", Value: bson.M{"$round": bson.A{
				bson.M{"$divide": bson.A{
					bson.M{"$add": bson.A{bson.M{"$multiply": bson.A{average, count}}, score}},
					bson.M{"$add": bson.A{count, 1}},
				}},
				2,
			}}},
			{Key: "rating.count", Value: bson.M{"$add": bson.A{count, 1}}},
			{Key: "updated_at", Value: time.Now()},
			{Key: "version", Value: bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$version", 0}}, 1}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var restaurant domain.Restaurant
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to add rating: %w", err)
	}

	return &restaurant, nil
}

func (r *RestaurantRepository) Analytics(ctx context.Context, id primitive.ObjectID, now time.Time) (*domain.RestaurantAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	orEmpty := func(path string) bson.M {
		return bson.M{"$ifNull": bson.A{path, bson.A{}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$project", Value: bson.M{
			"name":          1,
			"view_count":    1,
			"order_count":   1,
			"rating":        1,
			"menu_sections": bson.M{"$size": orEmpty("$menu")},
			"menu_items": bson.M{"$sum": bson.M{"$map": bson.M{
				"input": orEmpty("$menu"),
				"as":    "section",
				"in":    bson.M{"$size": orEmpty("$$section.items")},
			}}},
			"active_offers": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": orEmpty("$offers"),
				"as":    "offer",
				"cond": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$$offer.is_active", true}},
					bson.M{"$gt": bson.A{"$$offer.valid_till", now}},
				}},
			}}},
			"delivery_slots": bson.M{"$size": orEmpty("$delivery_slots")},
			"gallery_images": bson.M{"$size": orEmpty("$media.gallery")},
			"conversion_percent": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$view_count", 0}},
				bson.M{"$round": bson.A{
					bson.M{"$multiply": bson.A{bson.M{"$divide": bson.A{"$order_count", "$view_count"}}, 100}},
					2,
				}},
				0.0,
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate restaurant analytics: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.RestaurantAnalytics
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode restaurant analytics: %w", err)
	}

	if len(results) == 0 {
		return nil, domain.ErrRestaurantNotFound
	}

	return &results[0], nil
}

func (r *RestaurantRepository) CityStats(ctx context.Context) ([]domain.CityStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_active": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$location.city",
			"restaurants":    bson.M{"$sum": 1},
			"verified":       bson.M{"$sum": bson.M{"$cond": bson.A{"$is_verified", 1, 0}}},
			"average_rating": bson.M{"$avg": "$rating.average"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "restaurants", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate city stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []domain.CityStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode city stats: %w", err)
	}

	return stats, nil
}

func (r *RestaurantRepository) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_verified": verified}}, options.After)
}

func (r *RestaurantRepository) SetOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"owner": ownerID}}, options.After)
}

func (r *RestaurantRepository) AddManager(ctx context.Context, id, managerID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"managers": managerID}}, options.After)
}

func (r *RestaurantRepository) RemoveManager(ctx context.Context, id, managerID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"managers": managerID}}, options.After)
}

// modify runs a single-document update that stamps updated_at and bumps
// version.
func (r *RestaurantRepository) modify(ctx context.Context, filter, update bson.M, ret options.ReturnDocument) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updated_at"] = time.Now()
	update["$inc"] = bson.M{"version": 1}

	opts := options.FindOneAndUpdate().SetReturnDocument(ret)

	var restaurant domain.Restaurant
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	return &restaurant, nil
}

// modifyNested is modify for updates whose filter also matches an embedded
// element. When nothing matched it tells a missing restaurant apart from a
// missing element.
func (r *RestaurantRepository) modifyNested(ctx context.Context, filter, update bson.M, missing error) (*domain.Restaurant, error) {
	restaurant, err := r.modify(ctx, filter, update, options.After)
	if !errors.Is(err, domain.ErrRestaurantNotFound) {
		return restaurant, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": filter["_id"]})
	if countErr != nil {
		return nil, fmt.Errorf("failed to check restaurant: %w", countErr)
	}
	if n > 0 {
		return nil, missing
	}

	return nil, domain.ErrRestaurantNotFound
}
