package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/query"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurants implements repo.RestaurantRepository over a map. List, Nearby
// and Trending ignore filters and only paginate. Fail maps a method name to
// the error that method should return.
type Restaurants struct {
	Fail map[string]error

	mu   sync.Mutex
	byID map[primitive.ObjectID]*domain.Restaurant
}

var _ repo.RestaurantRepository = (*Restaurants)(nil)

func NewRestaurants(restaurants ...domain.Restaurant) *Restaurants {
	r := &Restaurants{
		Fail: make(map[string]error),
		byID: make(map[primitive.ObjectID]*domain.Restaurant),
	}
	for i := range restaurants {
		rs := cloneRestaurant(restaurants[i])
		if rs.ID.IsZero() {
			rs.ID = primitive.NewObjectID()
		}
		r.byID[rs.ID] = &rs
	}
	return r
}

func (r *Restaurants) Create(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.Fail["Create"]; err != nil {
		return err
	}
	for _, existing := range r.byID {
		if existing.Slug == restaurant.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = restaurant.CreatedAt
	rs := cloneRestaurant(*restaurant)
	r.byID[rs.ID] = &rs
	return nil
}

func (r *Restaurants) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.Fail["GetByID"]; err != nil {
		return nil, err
	}
	rs, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	out := cloneRestaurant(*rs)
	return &out, nil
}

func (r *Restaurants) GetBySlug(_ context.Context, slug string) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rs := range r.byID {
		if rs.Slug == slug {
			out := cloneRestaurant(*rs)
			return &out, nil
		}
	}
	return nil, domain.ErrRestaurantNotFound
}

func (r *Restaurants) List(_ context.Context, q query.Restaurants) ([]domain.Restaurant, int64, error) {
	if err := r.failure("List"); err != nil {
		return nil, 0, err
	}
	all := r.sorted()
	return paginate(all, q.Page, q.Limit), int64(len(all)), nil
}

func (r *Restaurants) Nearby(_ context.Context, _, _, _ float64, limit int) ([]domain.Restaurant, error) {
	return paginate(r.sorted(), 1, limit), nil
}

func (r *Restaurants) Trending(_ context.Context, limit int) ([]domain.Restaurant, error) {
	if err := r.failure("Trending"); err != nil {
		return nil, err
	}
	all := r.sorted()
	sort.SliceStable(all, func(i, j int) bool { return all[i].ViewCount > all[j].ViewCount })
	return paginate(all, 1, limit), nil
}

func (r *Restaurants) Update(_ context.Context, id primitive.ObjectID, upd domain.RestaurantUpdate) (*domain.Restaurant, error) {
	if upd.Slug != nil {
		r.mu.Lock()
		for otherID, other := range r.byID {
			if otherID != id && other.Slug == *upd.Slug {
				r.mu.Unlock()
				return nil, domain.ErrDuplicateSlug
			}
		}
		r.mu.Unlock()
	}

	return r.modify("Update", id, false, func(rs *domain.Restaurant) error {
		if upd.Name != nil {
			rs.Name = *upd.Name
		}
		if upd.Slug != nil {
			rs.Slug = *upd.Slug
		}
		if upd.Description != nil {
			rs.Description = *upd.Description
		}
		if upd.Contact != nil {
			rs.Contact = *upd.Contact
		}
		if upd.Location != nil {
			rs.Location = *upd.Location
		}
		if upd.FoodType != nil {
			rs.FoodType = *upd.FoodType
		}
		if upd.CuisineType != nil {
			rs.CuisineType = *upd.CuisineType
		}
		if upd.IsPureVeg != nil {
			rs.IsPureVeg = *upd.IsPureVeg
		}
		return nil
	})
}

func (r *Restaurants) Delete(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	delete(r.byID, id)
	return rs, nil
}

func (r *Restaurants) SetStatus(_ context.Context, id primitive.ObjectID, upd domain.StatusUpdate) (*domain.Restaurant, error) {
	return r.modify("SetStatus", id, false, func(rs *domain.Restaurant) error {
		if upd.IsOpenNow != nil {
			rs.IsOpenNow = *upd.IsOpenNow
		}
		if upd.IsActive != nil {
			rs.IsActive = *upd.IsActive
		}
		if upd.IsBusy != nil {
			rs.IsBusy = *upd.IsBusy
		}
		if upd.IsAcceptingOrders != nil {
			rs.IsAcceptingOrders = *upd.IsAcceptingOrders
		}
		return nil
	})
}

func (r *Restaurants) SetOpeningHours(_ context.Context, id primitive.ObjectID, hours []domain.OpeningHours) (*domain.Restaurant, error) {
	return r.modify("SetOpeningHours", id, false, func(rs *domain.Restaurant) error {
		rs.OpeningHours = append([]domain.OpeningHours{}, hours...)
		return nil
	})
}

func (r *Restaurants) SetHolidays(_ context.Context, id primitive.ObjectID, holidays []time.Time) (*domain.Restaurant, error) {
	return r.modify("SetHolidays", id, false, func(rs *domain.Restaurant) error {
		rs.Holidays = append([]time.Time{}, holidays...)
		return nil
	})
}

func (r *Restaurants) AddMenuSections(_ context.Context, id primitive.ObjectID, sections []domain.MenuSection) (*domain.Restaurant, error) {
	return r.modify("AddMenuSections", id, false, func(rs *domain.Restaurant) error {
		rs.Menu = append(rs.Menu, sections...)
		return nil
	})
}

func (r *Restaurants) ReplaceMenuSection(_ context.Context, id primitive.ObjectID, section domain.MenuSection) (*domain.Restaurant, error) {
	return r.modify("ReplaceMenuSection", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.Menu, func(s domain.MenuSection) bool { return s.ID == section.ID })
		if i < 0 {
			return domain.ErrMenuSectionNotFound
		}
		rs.Menu[i] = section
		return nil
	})
}

func (r *Restaurants) DeleteMenuSection(_ context.Context, id, sectionID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("DeleteMenuSection", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.Menu, func(s domain.MenuSection) bool { return s.ID == sectionID })
		if i < 0 {
			return domain.ErrMenuSectionNotFound
		}
		rs.Menu = append(rs.Menu[:i], rs.Menu[i+1:]...)
		return nil
	})
}

func (r *Restaurants) AddMenuItems(_ context.Context, id, sectionID primitive.ObjectID, items []primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("AddMenuItems", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.Menu, func(s domain.MenuSection) bool { return s.ID == sectionID })
		if i < 0 {
			return domain.ErrMenuSectionNotFound
		}
		for _, item := range items {
			if indexOf(rs.Menu[i].Items, func(id primitive.ObjectID) bool { return id == item }) < 0 {
				rs.Menu[i].Items = append(rs.Menu[i].Items, item)
			}
		}
		return nil
	})
}

func (r *Restaurants) RemoveMenuItem(_ context.Context, id, sectionID, itemID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("RemoveMenuItem", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.Menu, func(s domain.MenuSection) bool { return s.ID == sectionID })
		if i < 0 {
			return domain.ErrMenuSectionNotFound
		}
		items := []primitive.ObjectID{}
		for _, item := range rs.Menu[i].Items {
			if item != itemID {
				items = append(items, item)
			}
		}
		rs.Menu[i].Items = items
		return nil
	})
}

func (r *Restaurants) SetImage(_ context.Context, id primitive.ObjectID, slot domain.MediaSlot, img domain.Image) (*domain.Restaurant, error) {
	return r.modify("SetImage", id, true, func(rs *domain.Restaurant) error {
		stored := img
		switch slot {
		case domain.MediaLogo:
			rs.Media.Logo = &stored
		case domain.MediaCover:
			rs.Media.CoverImage = &stored
		}
		return nil
	})
}

func (r *Restaurants) AddGalleryImage(_ context.Context, id primitive.ObjectID, img domain.Image) (*domain.Restaurant, error) {
	return r.modify("AddGalleryImage", id, false, func(rs *domain.Restaurant) error {
		rs.Media.Gallery = append(rs.Media.Gallery, img)
		return nil
	})
}

func (r *Restaurants) RemoveGalleryImage(_ context.Context, id primitive.ObjectID, assetID string) (*domain.Restaurant, error) {
	return r.modify("RemoveGalleryImage", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.Media.Gallery, func(img domain.Image) bool { return img.AssetID == assetID })
		if i < 0 {
			return domain.ErrImageNotFound
		}
		rs.Media.Gallery = append(rs.Media.Gallery[:i], rs.Media.Gallery[i+1:]...)
		return nil
	})
}

func (r *Restaurants) SetDeliveryDetails(_ context.Context, id primitive.ObjectID, details domain.DeliveryDetails) (*domain.Restaurant, error) {
	return r.modify("SetDeliveryDetails", id, false, func(rs *domain.Restaurant) error {
		rs.DeliveryDetails = details
		return nil
	})
}

func (r *Restaurants) AddDeliverySlot(_ context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.Restaurant, error) {
	return r.modify("AddDeliverySlot", id, false, func(rs *domain.Restaurant) error {
		rs.DeliverySlots = append(rs.DeliverySlots, slot)
		return nil
	})
}

func (r *Restaurants) ReplaceDeliverySlot(_ context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.Restaurant, error) {
	return r.modify("ReplaceDeliverySlot", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.DeliverySlots, func(s domain.DeliverySlot) bool { return s.ID == slot.ID })
		if i < 0 {
			return domain.ErrDeliverySlotNotFound
		}
		rs.DeliverySlots[i] = slot
		return nil
	})
}

func (r *Restaurants) DeleteDeliverySlot(_ context.Context, id, slotID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("DeleteDeliverySlot", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.DeliverySlots, func(s domain.DeliverySlot) bool { return s.ID == slotID })
		if i < 0 {
			return domain.ErrDeliverySlotNotFound
		}
		rs.DeliverySlots = append(rs.DeliverySlots[:i], rs.DeliverySlots[i+1:]...)
		return nil
	})
}

func (r *Restaurants) AddOffer(_ context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Restaurant, error) {
	return r.modify("AddOffer", id, false, func(rs *domain.Restaurant) error {
		rs.Offers = append(rs.Offers, offer)
		return nil
	})
}

func (r *Restaurants) ReplaceOffer(_ context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Restaurant, error) {
	return r.modify("ReplaceOffer", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.Offers, func(o domain.Offer) bool { return o.ID == offer.ID })
		if i < 0 {
			return domain.ErrOfferNotFound
		}
		rs.Offers[i] = offer
		return nil
	})
}

func (r *Restaurants) DeleteOffer(_ context.Context, id, offerID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("DeleteOffer", id, false, func(rs *domain.Restaurant) error {
		i := indexOf(rs.Offers, func(o domain.Offer) bool { return o.ID == offerID })
		if i < 0 {
			return domain.ErrOfferNotFound
		}
		rs.Offers = append(rs.Offers[:i], rs.Offers[i+1:]...)
		return nil
	})
}

func (r *Restaurants) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	_, err := r.modify("IncrementViews", id, false, func(rs *domain.Restaurant) error {
		rs.ViewCount++
		return nil
	})
	return err
}

func (r *Restaurants) IncrementOrders(_ context.Context, id primitive.ObjectID) error {
	_, err := r.modify("IncrementOrders", id, false, func(rs *domain.Restaurant) error {
		rs.OrderCount++
		return nil
	})
	return err
}

func (r *Restaurants) AddRating(_ context.Context, id primitive.ObjectID, score float64) (*domain.Restaurant, error) {
	return r.modify("AddRating", id, false, func(rs *domain.Restaurant) error {
		total := rs.Rating.Average*float64(rs.Rating.Count) + score
		rs.Rating.Count++
		rs.Rating.Average = total / float64(rs.Rating.Count)
		return nil
	})
}

func (r *Restaurants) Analytics(_ context.Context, id primitive.ObjectID, now time.Time) (*domain.RestaurantAnalytics, error) {
	rs, err := r.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}

	a := &domain.RestaurantAnalytics{
		RestaurantID:  rs.ID,
		Name:          rs.Name,
		ViewCount:     rs.ViewCount,
		OrderCount:    rs.OrderCount,
		Rating:        rs.Rating,
		MenuSections:  len(rs.Menu),
		DeliverySlots: len(rs.DeliverySlots),
		GalleryImages: len(rs.Media.Gallery),
	}
	for _, s := range rs.Menu {
		a.MenuItems += len(s.Items)
	}
	for _, o := range rs.Offers {
		if o.Live(now) {
			a.ActiveOffers++
		}
	}
	if rs.ViewCount > 0 {
		a.ConversionPercent = float64(rs.OrderCount) / float64(rs.ViewCount) * 100
	}
	return a, nil
}

func (r *Restaurants) CityStats(_ context.Context) ([]domain.CityStats, error) {
	byCity := map[string]*domain.CityStats{}
	var cities []string
	for _, rs := range r.sorted() {
		st, ok := byCity[rs.Location.City]
		if !ok {
			st = &domain.CityStats{City: rs.Location.City}
			byCity[rs.Location.City] = st
			cities = append(cities, rs.Location.City)
		}
		st.AverageRating = (st.AverageRating*float64(st.Restaurants) + rs.Rating.Average) / float64(st.Restaurants+1)
		st.Restaurants++
		if rs.IsVerified {
			st.Verified++
		}
	}

	out := []domain.CityStats{}
	for _, c := range cities {
		out = append(out, *byCity[c])
	}
	return out, nil
}

func (r *Restaurants) SetVerified(_ context.Context, id primitive.ObjectID, verified bool) (*domain.Restaurant, error) {
	return r.modify("SetVerified", id, false, func(rs *domain.Restaurant) error {
		rs.IsVerified = verified
		return nil
	})
}

func (r *Restaurants) SetOwner(_ context.Context, id, ownerID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("SetOwner", id, false, func(rs *domain.Restaurant) error {
		rs.Owner = ownerID
		return nil
	})
}

func (r *Restaurants) AddManager(_ context.Context, id, managerID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("AddManager", id, false, func(rs *domain.Restaurant) error {
		if indexOf(rs.Managers, func(m primitive.ObjectID) bool { return m == managerID }) < 0 {
			rs.Managers = append(rs.Managers, managerID)
		}
		return nil
	})
}

func (r *Restaurants) RemoveManager(_ context.Context, id, managerID primitive.ObjectID) (*domain.Restaurant, error) {
	return r.modify("RemoveManager", id, false, func(rs *domain.Restaurant) error {
		managers := []primitive.ObjectID{}
		for _, m := range rs.Managers {
			if m != managerID {
				managers = append(managers, m)
			}
		}
		rs.Managers = managers
		return nil
	})
}

// Stored returns a copy of the stored restaurant, for assertions.
func (r *Restaurants) Stored(id primitive.ObjectID) (domain.Restaurant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, ok := r.byID[id]
	if !ok {
		return domain.Restaurant{}, false
	}
	return cloneRestaurant(*rs), true
}

// modify applies fn to the stored document. fn's error leaves it unchanged.
func (r *Restaurants) modify(method string, id primitive.ObjectID, returnBefore bool, fn func(*domain.Restaurant) error) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.Fail[method]; err != nil {
		return nil, err
	}
	rs, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}

	before := cloneRestaurant(*rs)
	working := cloneRestaurant(*rs)
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.Version++
	working.UpdatedAt = time.Now()
	r.byID[id] = &working

	if returnBefore {
		return &before, nil
	}
	after := cloneRestaurant(working)
	return &after, nil
}

func (r *Restaurants) failure(method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Fail[method]
}

func (r *Restaurants) sorted() []domain.Restaurant {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Restaurant, 0, len(r.byID))
	for _, rs := range r.byID {
		out = append(out, cloneRestaurant(*rs))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func cloneRestaurant(rs domain.Restaurant) domain.Restaurant {
	rs.Managers = append([]primitive.ObjectID{}, rs.Managers...)
	rs.FoodType = append([]string{}, rs.FoodType...)
	rs.CuisineType = append([]string{}, rs.CuisineType...)
	rs.OpeningHours = append([]domain.OpeningHours{}, rs.OpeningHours...)
	rs.Holidays = append([]time.Time{}, rs.Holidays...)
	rs.Offers = append([]domain.Offer{}, rs.Offers...)
	rs.DeliverySlots = append([]domain.DeliverySlot{}, rs.DeliverySlots...)
	rs.Media.Gallery = append([]domain.Image{}, rs.Media.Gallery...)

	menu := make([]domain.MenuSection, len(rs.Menu))
	for i, s := range rs.Menu {
		s.Items = append([]primitive.ObjectID{}, s.Items...)
		menu[i] = s
	}
	rs.Menu = menu

	if rs.Media.Logo != nil {
		logo := *rs.Media.Logo
		rs.Media.Logo = &logo
	}
	if rs.Media.CoverImage != nil {
		cover := *rs.Media.CoverImage
		rs.Media.CoverImage = &cover
	}
	rs.Location.Coordinates.Coordinates = append([]float64{}, rs.Location.Coordinates.Coordinates...)
	return rs
}
