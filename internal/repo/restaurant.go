package repo

import (
	"context"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	List(ctx context.Context, q query.Restaurants) ([]domain.Restaurant, int64, error)
	Nearby(ctx context.Context, lng, lat, radiusMeters float64, limit int) ([]domain.Restaurant, error)
	Trending(ctx context.Context, limit int) ([]domain.Restaurant, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.RestaurantUpdate) (*domain.Restaurant, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)

	SetStatus(ctx context.Context, id primitive.ObjectID, update domain.StatusUpdate) (*domain.Restaurant, error)
	SetOpeningHours(ctx context.Context, id primitive.ObjectID, hours []domain.OpeningHours) (*domain.Restaurant, error)
	SetHolidays(ctx context.Context, id primitive.ObjectID, holidays []time.Time) (*domain.Restaurant, error)

	AddMenuSections(ctx context.Context, id primitive.ObjectID, sections []domain.MenuSection) (*domain.Restaurant, error)
	ReplaceMenuSection(ctx context.Context, id primitive.ObjectID, section domain.MenuSection) (*domain.Restaurant, error)
	DeleteMenuSection(ctx context.Context, id, sectionID primitive.ObjectID) (*domain.Restaurant, error)
	AddMenuItems(ctx context.Context, id, sectionID primitive.ObjectID, items []primitive.ObjectID) (*domain.Restaurant, error)
	RemoveMenuItem(ctx context.Context, id, sectionID, itemID primitive.ObjectID) (*domain.Restaurant, error)

	// SetImage stores img in slot and returns the restaurant as it was
	// before the write, so the caller can release the replaced asset.
	SetImage(ctx context.Context, id primitive.ObjectID, slot domain.MediaSlot, img domain.Image) (*domain.Restaurant, error)
	AddGalleryImage(ctx context.Context, id primitive.ObjectID, img domain.Image) (*domain.Restaurant, error)
	RemoveGalleryImage(ctx context.Context, id primitive.ObjectID, assetID string) (*domain.Restaurant, error)

	SetDeliveryDetails(ctx context.Context, id primitive.ObjectID, details domain.DeliveryDetails) (*domain.Restaurant, error)
	AddDeliverySlot(ctx context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.Restaurant, error)
	ReplaceDeliverySlot(ctx context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.Restaurant, error)
	DeleteDeliverySlot(ctx context.Context, id, slotID primitive.ObjectID) (*domain.Restaurant, error)

	AddOffer(ctx context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Restaurant, error)
	ReplaceOffer(ctx context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Restaurant, error)
	DeleteOffer(ctx context.Context, id, offerID primitive.ObjectID) (*domain.Restaurant, error)

	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	IncrementOrders(ctx context.Context, id primitive.ObjectID) error
	AddRating(ctx context.Context, id primitive.ObjectID, score float64) (*domain.Restaurant, error)
	Analytics(ctx context.Context, id primitive.ObjectID, now time.Time) (*domain.RestaurantAnalytics, error)
	CityStats(ctx context.Context) ([]domain.CityStats, error)

	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*domain.Restaurant, error)
	SetOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Restaurant, error)
	AddManager(ctx context.Context, id, managerID primitive.ObjectID) (*domain.Restaurant, error)
	RemoveManager(ctx context.Context, id, managerID primitive.ObjectID) (*domain.Restaurant, error)
}
