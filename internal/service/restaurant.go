package service

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"slices"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/availability"
	"github.com/TejashHub/FoodDelivery-sub001/internal/cache"
	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/media"
	"github.com/TejashHub/FoodDelivery-sub001/internal/query"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	trendingKey = "restaurants:trending"
	trendingTTL = 5 * time.Minute

	defaultNearbyRadiusKm = 5.0
	maxNearbyRadiusKm     = 50.0
)

// MenuSource imports menu sections from an external document.
type MenuSource interface {
	ParseMenuSections(ctx context.Context, spreadsheetID, readRange string) ([]domain.MenuSection, error)
}

type RestaurantService struct {
	restaurants repo.RestaurantRepository
	media       media.Store
	broker      queue.Broker
	cache       cache.Cache
	menus       MenuSource
	location    *time.Location
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewRestaurantService(
	restaurants repo.RestaurantRepository,
	store media.Store,
	broker queue.Broker,
	c cache.Cache,
	menus MenuSource,
	location *time.Location,
	logger *zap.SugaredLogger,
) *RestaurantService {
	if location == nil {
		location = time.UTC
	}
	return &RestaurantService{
		restaurants: restaurants,
		media:       store,
		broker:      broker,
		cache:       c,
		menus:       menus,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *RestaurantService) Create(ctx context.Context, r *domain.Restaurant) error {
	if r.Slug == "" {
		r.Slug = r.Name
	}
	r.Slug = domain.Slugify(r.Slug)
	if r.Slug == "" {
		return domain.Invalid("name must contain at least one letter or digit")
	}

	if err := validateProfile(r.FoodType, r.CuisineType, &r.Location); err != nil {
		return err
	}
	if err := availability.ValidateOpeningHours(r.OpeningHours); err != nil {
		return err
	}

	r.IsActive = true
	r.IsAcceptingOrders = true
	r.IsOpenNow = false
	r.IsVerified = false
	r.Menu, r.Offers, r.DeliverySlots = nil, nil, nil
	r.Media = domain.Media{}
	r.Rating = domain.Rating{}
	r.ViewCount, r.OrderCount = 0, 0

	if err := s.restaurants.Create(ctx, r); err != nil {
		return err
	}

	s.invalidateTrending(ctx)
	s.logger.Infow("restaurant created", "restaurant_id", r.ID.Hex(), "slug", r.Slug)

	return nil
}

func (s *RestaurantService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	return s.restaurants.GetByID(ctx, id)
}

func (s *RestaurantService) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return s.restaurants.GetBySlug(ctx, slug)
}

func (s *RestaurantService) List(ctx context.Context, params url.Values) ([]domain.Restaurant, domain.Pagination, error) {
	q, err := query.Build(params)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return s.page(ctx, q)
}

func (s *RestaurantService) ByCity(ctx context.Context, city string, page, limit int) ([]domain.Restaurant, domain.Pagination, error) {
	return s.page(ctx, query.Page(bson.M{"location.city": exactFold(city), "is_active": true}, page, limit))
}

func (s *RestaurantService) ByZone(ctx context.Context, zone string, page, limit int) ([]domain.Restaurant, domain.Pagination, error) {
	return s.page(ctx, query.Page(bson.M{"location.zone": exactFold(zone), "is_active": true}, page, limit))
}

func (s *RestaurantService) page(ctx context.Context, q query.Restaurants) ([]domain.Restaurant, domain.Pagination, error) {
	restaurants, total, err := s.restaurants.List(ctx, q)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return restaurants, domain.NewPagination(q.Page, q.Limit, total), nil
}

// exactFold matches the whole value case-insensitively.
func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func (s *RestaurantService) Nearby(ctx context.Context, lng, lat, radiusKm float64, limit int) ([]domain.Restaurant, error) {
	if err := validateCoordinates(lng, lat); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = defaultNearbyRadiusKm
	}
	if radiusKm > maxNearbyRadiusKm {
		return nil, domain.Invalid("radius must be at most %.0f km", maxNearbyRadiusKm)
	}
	_, limit = query.Clamp(1, limit)

	return s.restaurants.Nearby(ctx, lng, lat, radiusKm*1000, limit)
}

// Trending serves from the cache; the cached list is the top MaxLimit
// restaurants and each request takes a prefix of it.
func (s *RestaurantService) Trending(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	_, limit = query.Clamp(1, limit)

	var restaurants []domain.Restaurant
	err := cache.GetJSON(ctx, s.cache, trendingKey, &restaurants)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			s.logger.Warnw("trending cache read failed", "error", err)
		}

		restaurants, err = s.restaurants.Trending(ctx, query.MaxLimit)
		if err != nil {
			return nil, err
		}
		if err := cache.SetJSON(ctx, s.cache, trendingKey, restaurants, trendingTTL); err != nil {
			s.logger.Warnw("trending cache write failed", "error", err)
		}
	}

	if len(restaurants) > limit {
		restaurants = restaurants[:limit]
	}
	return restaurants, nil
}

func (s *RestaurantService) invalidateTrending(ctx context.Context) {
	if err := s.cache.Delete(ctx, trendingKey); err != nil {
		s.logger.Warnw("failed to invalidate trending cache", "error", err)
	}
}

func (s *RestaurantService) Update(ctx context.Context, id primitive.ObjectID, upd domain.RestaurantUpdate) (*domain.Restaurant, error) {
	switch {
	case upd.Slug != nil:
		slug := domain.Slugify(*upd.Slug)
		upd.Slug = &slug
	case upd.Name != nil:
		slug := domain.Slugify(*upd.Name)
		upd.Slug = &slug
	}
	if upd.Slug != nil && *upd.Slug == "" {
		return nil, domain.Invalid("slug must contain at least one letter or digit")
	}

	var foodType, cuisineType []string
	if upd.FoodType != nil {
		foodType = *upd.FoodType
	}
	if upd.CuisineType != nil {
		cuisineType = *upd.CuisineType
	}
	if err := validateProfile(foodType, cuisineType, upd.Location); err != nil {
		return nil, err
	}

	r, err := s.restaurants.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.invalidateTrending(ctx)
	s.logger.Infow("restaurant updated", "restaurant_id", id.Hex())

	return r, nil
}

// Delete removes the restaurant, then releases its images.
func (s *RestaurantService) Delete(ctx context.Context, id primitive.ObjectID) error {
	r, err := s.restaurants.Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, img := range imagesOf(r) {
		s.discard(ctx, img.AssetID, domain.CleanupReasonRemoved)
	}

	s.invalidateTrending(ctx)
	s.logger.Infow("restaurant deleted", "restaurant_id", id.Hex())

	return nil
}

func imagesOf(r *domain.Restaurant) []domain.Image {
	var images []domain.Image
	if r.Media.Logo != nil {
		images = append(images, *r.Media.Logo)
	}
	if r.Media.CoverImage != nil {
		images = append(images, *r.Media.CoverImage)
	}
	return append(images, r.Media.Gallery...)
}

func (s *RestaurantService) Status(ctx context.Context, id primitive.ObjectID) (domain.RestaurantStatus, error) {
	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return domain.RestaurantStatus{}, err
	}

	return domain.RestaurantStatus{
		AvailabilityStatus: availability.ComputeStatus(r.OpeningHours, r.Holidays, s.localNow()),
		IsOpenNow:          r.IsOpenNow,
		IsActive:           r.IsActive,
		IsBusy:             r.IsBusy,
		IsAcceptingOrders:  r.IsAcceptingOrders,
	}, nil
}

func (s *RestaurantService) IsOpen(ctx context.Context, id primitive.ObjectID) (domain.OpenCheck, error) {
	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return domain.OpenCheck{}, err
	}

	status := availability.ComputeStatus(r.OpeningHours, r.Holidays, s.localNow())
	return availability.OpenCheck(status, r.IsOpenNow), nil
}

func (s *RestaurantService) localNow() time.Time {
	return s.now().In(s.location)
}

func (s *RestaurantService) SetStatus(ctx context.Context, id primitive.ObjectID, upd domain.StatusUpdate) (*domain.Restaurant, error) {
	if upd.IsOpenNow == nil && upd.IsActive == nil && upd.IsBusy == nil && upd.IsAcceptingOrders == nil {
		return nil, domain.Invalid("at least one status flag is required")
	}

	r, err := s.restaurants.SetStatus(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	if upd.IsActive != nil {
		s.invalidateTrending(ctx)
	}
	s.logger.Infow("restaurant status changed", "restaurant_id", id.Hex(),
		"is_open_now", r.IsOpenNow, "is_active", r.IsActive, "is_busy", r.IsBusy, "is_accepting_orders", r.IsAcceptingOrders)

	return r, nil
}

func (s *RestaurantService) SetOpeningHours(ctx context.Context, id primitive.ObjectID, hours []domain.OpeningHours) ([]domain.OpeningHours, error) {
	if err := availability.ValidateOpeningHours(hours); err != nil {
		return nil, err
	}

	r, err := s.restaurants.SetOpeningHours(ctx, id, hours)
	if err != nil {
		return nil, err
	}

	return r.OpeningHours, nil
}

// SetHolidays replaces the holiday list. Duplicates collapse and the stored
// list is in date order.
func (s *RestaurantService) SetHolidays(ctx context.Context, id primitive.ObjectID, values []string) ([]time.Time, error) {
	holidays, err := availability.ParseHolidays(values)
	if err != nil {
		return nil, err
	}

	r, err := s.restaurants.SetHolidays(ctx, id, uniqueSorted(holidays))
	if err != nil {
		return nil, err
	}

	return r.Holidays, nil
}

func uniqueSorted(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	slices.SortFunc(out, time.Time.Compare)
	return out
}

func (s *RestaurantService) Analytics(ctx context.Context, id primitive.ObjectID) (*domain.RestaurantAnalytics, error) {
	return s.restaurants.Analytics(ctx, id, s.now())
}

func (s *RestaurantService) RecordView(ctx context.Context, id primitive.ObjectID) error {
	return s.restaurants.IncrementViews(ctx, id)
}

func (s *RestaurantService) Rate(ctx context.Context, id primitive.ObjectID, score float64) (domain.Rating, error) {
	if score < 1 || score > 5 {
		return domain.Rating{}, domain.Invalid("rating must be between 1 and 5, got %v", score)
	}

	r, err := s.restaurants.AddRating(ctx, id, score)
	if err != nil {
		return domain.Rating{}, err
	}

	return r.Rating, nil
}

func (s *RestaurantService) CityStats(ctx context.Context) ([]domain.CityStats, error) {
	return s.restaurants.CityStats(ctx)
}

func (s *RestaurantService) Verify(ctx context.Context, id primitive.ObjectID, verified bool) (*domain.Restaurant, error) {
	r, err := s.restaurants.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("restaurant verification changed", "restaurant_id", id.Hex(), "is_verified", verified)

	return r, nil
}

func (s *RestaurantService) SetOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Restaurant, error) {
	if ownerID.IsZero() {
		return nil, domain.Invalid("owner id is required")
	}

	r, err := s.restaurants.SetOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("restaurant owner changed", "restaurant_id", id.Hex(), "owner", ownerID.Hex())

	return r, nil
}

func (s *RestaurantService) AddManager(ctx context.Context, id, managerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	if managerID.IsZero() {
		return nil, domain.Invalid("manager id is required")
	}

	r, err := s.restaurants.AddManager(ctx, id, managerID)
	if err != nil {
		return nil, err
	}

	return r.Managers, nil
}

func (s *RestaurantService) RemoveManager(ctx context.Context, id, managerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r, err := s.restaurants.RemoveManager(ctx, id, managerID)
	if err != nil {
		return nil, err
	}

	return r.Managers, nil
}

func validateProfile(foodType, cuisineType []string, location *domain.Location) error {
	for _, ft := range foodType {
		if !contains(query.FoodTypes, ft) {
			return domain.Invalid("invalid food type %q", ft)
		}
	}
	for _, ct := range cuisineType {
		if !contains(query.CuisineTypes, ct) {
			return domain.Invalid("invalid cuisine type %q", ct)
		}
	}

	if location == nil {
		return nil
	}
	coords := location.Coordinates.Coordinates
	if len(coords) != 2 {
		return domain.Invalid("coordinates must be [longitude, latitude]")
	}
	if err := validateCoordinates(coords[0], coords[1]); err != nil {
		return err
	}
	location.Coordinates.Type = "Point"

	return nil
}

func validateCoordinates(lng, lat float64) error {
	if lng < -180 || lng > 180 {
		return domain.Invalid("longitude must be between -180 and 180, got %v", lng)
	}
	if lat < -90 || lat > 90 {
		return domain.Invalid("latitude must be between -90 and 90, got %v", lat)
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
