package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/cache"
	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo/repotest"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockStore struct {
	UploadFunc func(ctx context.Context, assetID string, r io.Reader, contentType string) (domain.Image, error)
	DeleteFunc func(ctx context.Context, assetID string) error

	deleted []string
}

func (m *mockStore) Upload(ctx context.Context, assetID string, r io.Reader, contentType string) (domain.Image, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, assetID, r, contentType)
	}
	return domain.Image{URL: "https://cdn.test/" + assetID, AssetID: assetID}, nil
}

func (m *mockStore) Delete(ctx context.Context, assetID string) error {
	m.deleted = append(m.deleted, assetID)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, assetID)
	}
	return nil
}

type mockMenuSource struct {
	ParseFunc func(ctx context.Context, spreadsheetID, readRange string) ([]domain.MenuSection, error)
}

func (m *mockMenuSource) ParseMenuSections(ctx context.Context, spreadsheetID, readRange string) ([]domain.MenuSection, error) {
	return m.ParseFunc(ctx, spreadsheetID, readRange)
}

type restaurantFixture struct {
	svc         *RestaurantService
	restaurants *repotest.Restaurants
	store       *mockStore
	broker      *queue.MemoryBroker
	cache       *cache.MemoryCache
}

func newRestaurantFixture(restaurants ...domain.Restaurant) restaurantFixture {
	f := restaurantFixture{
		restaurants: repotest.NewRestaurants(restaurants...),
		store:       &mockStore{},
		broker:      queue.NewMemoryBroker(),
		cache:       cache.NewMemoryCache(),
	}
	f.svc = NewRestaurantService(f.restaurants, f.store, f.broker, f.cache, nil, time.UTC, zap.NewNop().Sugar())
	f.svc.now = func() time.Time { return testNow }
	return f
}

func dosaCorner() domain.Restaurant {
	return domain.Restaurant{
		ID:   primitive.NewObjectID(),
		Name: "Dosa Corner",
		Slug: "dosa-corner",
		Location: domain.Location{
			City:        "Bengaluru",
			Coordinates: domain.NewGeoPoint(77.59, 12.97),
		},
		OpeningHours: []domain.OpeningHours{
			{Day: "Monday", Open: "09:00", Close: "22:00"},
		},
		IsOpenNow: true,
		IsActive:  true,
	}
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestRestaurantService_Create(t *testing.T) {
	f := newRestaurantFixture()
	ctx := context.Background()

	r := &domain.Restaurant{
		Name:        "Tandoori Nights & Co.",
		FoodType:    []string{"Non-Vegetarian"},
		CuisineType: []string{"North Indian", "Mughlai"},
		Location:    domain.Location{City: "Delhi", Coordinates: domain.GeoPoint{Coordinates: []float64{77.2, 28.6}}},
		IsVerified:  true,
		ViewCount:   999,
	}
	if err := f.svc.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if r.Slug != "tandoori-nights--co" {
		t.Errorf("slug = %q", r.Slug)
	}
	if !r.IsActive || r.IsVerified || r.ViewCount != 0 {
		t.Errorf("server-owned fields not reset: %+v", r)
	}
	if r.Location.Coordinates.Type != "Point" {
		t.Errorf("coordinates type = %q", r.Location.Coordinates.Type)
	}

	dup := &domain.Restaurant{
		Name:     "Tandoori Nights & Co.",
		Location: domain.Location{Coordinates: domain.NewGeoPoint(77.2, 28.6)},
	}
	if err := f.svc.Create(ctx, dup); !errors.Is(err, domain.ErrDuplicateSlug) {
		t.Errorf("duplicate slug: err = %v", err)
	}
}

func TestRestaurantService_CreateRejects(t *testing.T) {
	tests := map[string]domain.Restaurant{
		"unknown food type": {Name: "A", FoodType: []string{"Pescatarian"}},
		"unknown cuisine":   {Name: "B", CuisineType: []string{"Martian"}},
		"latitude range":    {Name: "C", Location: domain.Location{Coordinates: domain.NewGeoPoint(10, 95)}},
		"one coordinate":    {Name: "D", Location: domain.Location{Coordinates: domain.GeoPoint{Coordinates: []float64{1}}}},
		"no slug material":  {Name: "!!!"},
		"bad hours":         {Name: "E", OpeningHours: []domain.OpeningHours{{Day: "Funday", Open: "09:00", Close: "10:00"}}},
	}

	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			f := newRestaurantFixture()
			r := r
			if r.Location.Coordinates.Coordinates == nil {
				r.Location.Coordinates = domain.NewGeoPoint(0, 0)
			}
			if err := f.svc.Create(context.Background(), &r); !errors.Is(err, domain.ErrBadRequest) {
				t.Errorf("err = %v, want bad request", err)
			}
		})
	}
}

func TestRestaurantService_UpdateRegeneratesSlug(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)

	name := "Dosa Corner Express"
	got, err := f.svc.Update(context.Background(), r.ID, domain.RestaurantUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Slug != "dosa-corner-express" {
		t.Errorf("slug = %q", got.Slug)
	}
}

func TestRestaurantService_ListRejectsBadParams(t *testing.T) {
	f := newRestaurantFixture(dosaCorner())

	if _, _, err := f.svc.List(context.Background(), url.Values{"foodType": {"Pescatarian"}}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("err = %v", err)
	}

	items, page, err := f.svc.List(context.Background(), url.Values{"limit": {"5"}})
	if err != nil || len(items) != 1 || page.Total != 1 || page.Pages != 1 || page.Limit != 5 {
		t.Errorf("items = %d, page = %+v, err = %v", len(items), page, err)
	}
}

func TestRestaurantService_Status(t *testing.T) {
	r := dosaCorner()
	r.IsOpenNow = false
	f := newRestaurantFixture(r)
	ctx := context.Background()

	status, err := f.svc.Status(ctx, r.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.ShouldBeOpen || status.TodayHours == nil || status.IsOpenNow {
		t.Errorf("status = %+v", status)
	}

	check, err := f.svc.IsOpen(ctx, r.ID)
	if err != nil {
		t.Fatalf("IsOpen: %v", err)
	}
	if check.IsOpen || !check.ManualOverride {
		t.Errorf("staff closed the restaurant; got %+v", check)
	}
}

func TestRestaurantService_StatusUsesConfiguredZone(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	// 10:00 UTC is 15:30 in IST, still inside 09:00-22:00; 18:00 UTC is 23:30 IST.
	f.svc.location = time.FixedZone("IST", 5*3600+1800)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }

	status, err := f.svc.Status(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.ShouldBeOpen {
		t.Error("23:30 local should be closed")
	}
}

func TestRestaurantService_SetStatusNeedsAFlag(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)

	if _, err := f.svc.SetStatus(context.Background(), r.ID, domain.StatusUpdate{}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("err = %v", err)
	}

	busy := true
	got, err := f.svc.SetStatus(context.Background(), r.ID, domain.StatusUpdate{IsBusy: &busy})
	if err != nil || !got.IsBusy || !got.IsOpenNow {
		t.Errorf("got %+v, %v", got, err)
	}
}

func TestRestaurantService_OpeningHoursBatchIsAtomic(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)

	hours := []domain.OpeningHours{
		{Day: "Tuesday", Open: "10:00", Close: "20:00"},
		{Day: "Wednesday", Open: "10:00", Close: "25:00"},
	}
	if _, err := f.svc.SetOpeningHours(context.Background(), r.ID, hours); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("err = %v", err)
	}

	stored, _ := f.restaurants.Stored(r.ID)
	if len(stored.OpeningHours) != 1 || stored.OpeningHours[0].Day != "Monday" {
		t.Errorf("opening hours changed: %+v", stored.OpeningHours)
	}
}

func TestRestaurantService_SetHolidays(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)

	got, err := f.svc.SetHolidays(context.Background(), r.ID, []string{"2026-12-25", "2026-01-26", "2026-12-25T10:00:00Z"})
	if err != nil {
		t.Fatalf("SetHolidays: %v", err)
	}
	if len(got) != 2 || got[0].Month() != time.January || got[1].Month() != time.December {
		t.Errorf("holidays = %v", got)
	}

	if _, err := f.svc.SetHolidays(context.Background(), r.ID, []string{"2026-01-01", "tomorrow"}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("err = %v", err)
	}
}

func TestRestaurantService_Trending(t *testing.T) {
	a, b := dosaCorner(), dosaCorner()
	a.ViewCount = 10
	b.ID, b.Name, b.Slug, b.ViewCount = primitive.NewObjectID(), "Biryani House", "biryani-house", 50
	f := newRestaurantFixture(a, b)
	ctx := context.Background()

	got, err := f.svc.Trending(ctx, 1)
	if err != nil || len(got) != 1 || got[0].Name != "Biryani House" {
		t.Fatalf("got %+v, %v", got, err)
	}

	// served from cache while the repository is down
	f.restaurants.Fail["Trending"] = errors.New("mongo down")
	got, err = f.svc.Trending(ctx, 10)
	if err != nil || len(got) != 2 {
		t.Errorf("cached trending: %d, %v", len(got), err)
	}

	// a write invalidates the cache
	if err := f.svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.svc.Trending(ctx, 10); err == nil {
		t.Error("expected repository error after invalidation")
	}
}

func TestRestaurantService_SetImageReplacesOld(t *testing.T) {
	r := dosaCorner()
	r.Media.Logo = &domain.Image{URL: "https://cdn.test/old", AssetID: "old-logo"}
	f := newRestaurantFixture(r)

	img, err := f.svc.SetImage(context.Background(), r.ID, domain.MediaLogo, bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("SetImage: %v", err)
	}

	stored, _ := f.restaurants.Stored(r.ID)
	if stored.Media.Logo == nil || stored.Media.Logo.AssetID != img.AssetID {
		t.Errorf("logo = %+v, want %+v", stored.Media.Logo, img)
	}
	if len(f.store.deleted) != 1 || f.store.deleted[0] != "old-logo" {
		t.Errorf("deleted = %v, want old-logo", f.store.deleted)
	}
}

func TestRestaurantService_SetImagePersistFailureCleansUp(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	f.restaurants.Fail["SetImage"] = errors.New("write conflict")

	_, err := f.svc.SetImage(context.Background(), r.ID, domain.MediaCover, bytes.NewReader(pngBytes))
	if err == nil {
		t.Fatal("expected persist error")
	}
	if len(f.store.deleted) != 1 {
		t.Errorf("uploaded asset not deleted: %v", f.store.deleted)
	}
	if got := f.broker.Messages(queue.QueueMediaCleanup); len(got) != 0 {
		t.Errorf("nothing should be queued when the delete works, got %d", len(got))
	}
}

func TestRestaurantService_FailedCleanupIsQueued(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	f.restaurants.Fail["AddGalleryImage"] = errors.New("write conflict")
	f.store.DeleteFunc = func(context.Context, string) error { return errors.New("bucket unavailable") }

	if _, err := f.svc.AddGalleryImage(context.Background(), r.ID, bytes.NewReader(pngBytes)); err == nil {
		t.Fatal("expected persist error")
	}

	queued := f.broker.Messages(queue.QueueMediaCleanup)
	if len(queued) != 1 {
		t.Fatalf("queued = %d, want 1", len(queued))
	}
	var msg domain.MediaCleanupMessage
	if err := json.Unmarshal(queued[0], &msg); err != nil {
		t.Fatalf("bad message: %v", err)
	}
	if msg.AssetID != f.store.deleted[0] || msg.Reason != domain.CleanupReasonPersistFailed {
		t.Errorf("message = %+v", msg)
	}
}

func TestRestaurantService_UploadRejects(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	uploads := 0
	f.store.UploadFunc = func(_ context.Context, assetID string, _ io.Reader, _ string) (domain.Image, error) {
		uploads++
		return domain.Image{AssetID: assetID}, nil
	}

	if _, err := f.svc.AddGalleryImage(context.Background(), r.ID, bytes.NewReader([]byte("%PDF-1.4"))); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("non-image: err = %v", err)
	}
	if _, err := f.svc.AddGalleryImage(context.Background(), primitive.NewObjectID(), bytes.NewReader(pngBytes)); !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Errorf("missing restaurant: err = %v", err)
	}
	if uploads != 0 {
		t.Errorf("nothing should be uploaded, got %d", uploads)
	}
}

func TestRestaurantService_RemoveGalleryImage(t *testing.T) {
	r := dosaCorner()
	r.Media.Gallery = []domain.Image{{AssetID: "a1"}, {AssetID: "a2"}}
	f := newRestaurantFixture(r)

	gallery, err := f.svc.RemoveGalleryImage(context.Background(), r.ID, "a1")
	if err != nil || len(gallery) != 1 || gallery[0].AssetID != "a2" {
		t.Fatalf("gallery = %+v, %v", gallery, err)
	}
	if len(f.store.deleted) != 1 || f.store.deleted[0] != "a1" {
		t.Errorf("deleted = %v", f.store.deleted)
	}

	if _, err := f.svc.RemoveGalleryImage(context.Background(), r.ID, "a1"); !errors.Is(err, domain.ErrImageNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestRestaurantService_DeleteReleasesMedia(t *testing.T) {
	r := dosaCorner()
	r.Media = domain.Media{
		Logo:       &domain.Image{AssetID: "logo"},
		CoverImage: &domain.Image{AssetID: "cover"},
		Gallery:    []domain.Image{{AssetID: "g1"}},
	}
	f := newRestaurantFixture(r)

	if err := f.svc.Delete(context.Background(), r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(f.store.deleted) != 3 {
		t.Errorf("deleted = %v", f.store.deleted)
	}
}

func TestRestaurantService_CleanupMedia(t *testing.T) {
	f := newRestaurantFixture()

	if err := f.svc.CleanupMedia(context.Background(), domain.MediaCleanupMessage{}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("empty asset: err = %v", err)
	}
	if err := f.svc.CleanupMedia(context.Background(), domain.MediaCleanupMessage{AssetID: "x"}); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestRestaurantService_Menu(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	ctx := context.Background()
	category, item := primitive.NewObjectID(), primitive.NewObjectID()

	menu, err := f.svc.AddMenuSections(ctx, r.ID, []domain.MenuSection{{Category: category}})
	if err != nil || len(menu) != 1 || menu[0].ID.IsZero() {
		t.Fatalf("menu = %+v, %v", menu, err)
	}
	sectionID := menu[0].ID

	section, err := f.svc.AddMenuItems(ctx, r.ID, sectionID, []primitive.ObjectID{item, item})
	if err != nil || len(section.Items) != 1 {
		t.Fatalf("section = %+v, %v", section, err)
	}

	section, err = f.svc.RemoveMenuItem(ctx, r.ID, sectionID, item)
	if err != nil || len(section.Items) != 0 {
		t.Fatalf("section = %+v, %v", section, err)
	}

	if _, err := f.svc.AddMenuSections(ctx, r.ID, []domain.MenuSection{{Category: category}, {}}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("section without category: err = %v", err)
	}
	if err := f.svc.DeleteMenuSection(ctx, r.ID, primitive.NewObjectID()); !errors.Is(err, domain.ErrMenuSectionNotFound) {
		t.Errorf("missing section: err = %v", err)
	}
	if err := f.svc.DeleteMenuSection(ctx, r.ID, sectionID); err != nil {
		t.Errorf("delete: %v", err)
	}
}

func TestRestaurantService_ImportMenu(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	ctx := context.Background()

	if _, err := f.svc.ImportMenu(ctx, r.ID, "sheet", ""); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("unconfigured import: err = %v", err)
	}

	f.svc.menus = &mockMenuSource{
		ParseFunc: func(_ context.Context, spreadsheetID, _ string) ([]domain.MenuSection, error) {
			if spreadsheetID != "sheet-1" {
				t.Errorf("spreadsheet = %q", spreadsheetID)
			}
			return []domain.MenuSection{{Category: primitive.NewObjectID()}, {Category: primitive.NewObjectID()}}, nil
		},
	}
	menu, err := f.svc.ImportMenu(ctx, r.ID, "sheet-1", "")
	if err != nil || len(menu) != 2 {
		t.Errorf("menu = %d, %v", len(menu), err)
	}
}

func TestRestaurantService_DeliverySlots(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	ctx := context.Background()

	slot, err := f.svc.AddDeliverySlot(ctx, r.ID, domain.DeliverySlot{Day: "Friday", StartTime: "18:00", EndTime: "21:00", MaxOrders: 40, IsActive: true})
	if err != nil {
		t.Fatalf("AddDeliverySlot: %v", err)
	}

	invalid := []domain.DeliverySlot{
		{Day: "friday", StartTime: "18:00", EndTime: "21:00", MaxOrders: 1},
		{Day: "Friday", StartTime: "21:00", EndTime: "18:00", MaxOrders: 1},
		{Day: "Friday", StartTime: "18:00", EndTime: "24:00", MaxOrders: 1},
		{Day: "Friday", StartTime: "18:00", EndTime: "21:00", MaxOrders: 0},
	}
	for _, s := range invalid {
		if _, err := f.svc.AddDeliverySlot(ctx, r.ID, s); !errors.Is(err, domain.ErrBadRequest) {
			t.Errorf("%+v: err = %v", s, err)
		}
	}

	slot.MaxOrders = 60
	if _, err := f.svc.ReplaceDeliverySlot(ctx, r.ID, *slot); err != nil {
		t.Fatalf("ReplaceDeliverySlot: %v", err)
	}
	slots, _ := f.svc.DeliverySlots(ctx, r.ID)
	if len(slots) != 1 || slots[0].MaxOrders != 60 {
		t.Errorf("slots = %+v", slots)
	}

	if err := f.svc.DeleteDeliverySlot(ctx, r.ID, primitive.NewObjectID()); !errors.Is(err, domain.ErrDeliverySlotNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestRestaurantService_Offers(t *testing.T) {
	r := dosaCorner()
	r.Offers = []domain.Offer{
		{ID: primitive.NewObjectID(), Title: "expired", DiscountPercentage: 10, ValidTill: testNow.Add(-time.Hour), IsActive: true},
		{ID: primitive.NewObjectID(), Title: "paused", DiscountPercentage: 10, ValidTill: testNow.Add(time.Hour), IsActive: false},
	}
	f := newRestaurantFixture(r)
	ctx := context.Background()

	offer, err := f.svc.AddOffer(ctx, r.ID, domain.Offer{Title: "Weekend 15", DiscountPercentage: 15, ValidTill: testNow.AddDate(0, 0, 7), IsActive: true})
	if err != nil {
		t.Fatalf("AddOffer: %v", err)
	}
	if !offer.CreatedAt.Equal(testNow) {
		t.Errorf("created_at = %v", offer.CreatedAt)
	}

	all, _ := f.svc.Offers(ctx, r.ID, false)
	live, _ := f.svc.Offers(ctx, r.ID, true)
	if len(all) != 3 || len(live) != 1 || live[0].Title != "Weekend 15" {
		t.Errorf("all = %d, live = %+v", len(all), live)
	}

	if _, err := f.svc.AddOffer(ctx, r.ID, domain.Offer{Title: "x", DiscountPercentage: 10, ValidTill: testNow.Add(-time.Minute)}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("past offer: err = %v", err)
	}

	edited := *offer
	edited.DiscountPercentage = 20
	edited.CreatedAt = time.Time{}
	got, err := f.svc.ReplaceOffer(ctx, r.ID, edited)
	if err != nil || got.DiscountPercentage != 20 || !got.CreatedAt.Equal(testNow) {
		t.Errorf("replace = %+v, %v", got, err)
	}

	edited.ID = primitive.NewObjectID()
	if _, err := f.svc.ReplaceOffer(ctx, r.ID, edited); !errors.Is(err, domain.ErrOfferNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestRestaurantService_RatingAndViews(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	ctx := context.Background()

	f.svc.Rate(ctx, r.ID, 5)
	rating, err := f.svc.Rate(ctx, r.ID, 4)
	if err != nil || rating.Count != 2 || rating.Average != 4.5 {
		t.Errorf("rating = %+v, %v", rating, err)
	}
	if _, err := f.svc.Rate(ctx, r.ID, 6); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("err = %v", err)
	}

	if err := f.svc.RecordView(ctx, r.ID); err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	a, err := f.svc.Analytics(ctx, r.ID)
	if err != nil || a.ViewCount != 1 {
		t.Errorf("analytics = %+v, %v", a, err)
	}
}

func TestRestaurantService_Management(t *testing.T) {
	r := dosaCorner()
	f := newRestaurantFixture(r)
	ctx := context.Background()
	manager := primitive.NewObjectID()

	managers, err := f.svc.AddManager(ctx, r.ID, manager)
	if err != nil || len(managers) != 1 {
		t.Fatalf("managers = %v, %v", managers, err)
	}
	managers, _ = f.svc.AddManager(ctx, r.ID, manager)
	if len(managers) != 1 {
		t.Errorf("manager added twice: %v", managers)
	}
	managers, _ = f.svc.RemoveManager(ctx, r.ID, manager)
	if len(managers) != 0 {
		t.Errorf("managers = %v", managers)
	}

	if _, err := f.svc.SetOwner(ctx, r.ID, primitive.NilObjectID); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("zero owner: err = %v", err)
	}
	got, err := f.svc.Verify(ctx, r.ID, true)
	if err != nil || !got.IsVerified {
		t.Errorf("verify = %+v, %v", got, err)
	}
}

func TestRestaurantService_Nearby(t *testing.T) {
	f := newRestaurantFixture(dosaCorner())
	ctx := context.Background()

	if _, err := f.svc.Nearby(ctx, 200, 10, 5, 10); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("longitude: err = %v", err)
	}
	if _, err := f.svc.Nearby(ctx, 77, 12, 500, 10); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("radius: err = %v", err)
	}
	got, err := f.svc.Nearby(ctx, 77, 12, 0, 10)
	if err != nil || len(got) != 1 {
		t.Errorf("got %d, %v", len(got), err)
	}
}
