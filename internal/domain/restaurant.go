package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Restaurant struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	Slug              string               `bson:"slug" json:"slug"`
	Description       string               `bson:"description,omitempty" json:"description,omitempty"`
	Owner             primitive.ObjectID   `bson:"owner" json:"owner"`
	Managers          []primitive.ObjectID `bson:"managers" json:"managers"`
	Contact           Contact              `bson:"contact" json:"contact"`
	Location          Location             `bson:"location" json:"location"`
	FoodType          []string             `bson:"food_type" json:"food_type"`
	CuisineType       []string             `bson:"cuisine_type" json:"cuisine_type"`
	IsPureVeg         bool                 `bson:"is_pure_veg" json:"is_pure_veg"`
	OpeningHours      []OpeningHours       `bson:"opening_hours" json:"opening_hours"`
	Holidays          []time.Time          `bson:"holidays" json:"holidays"`
	IsOpenNow         bool                 `bson:"is_open_now" json:"is_open_now"`
	IsActive          bool                 `bson:"is_active" json:"is_active"`
	IsBusy            bool                 `bson:"is_busy" json:"is_busy"`
	IsAcceptingOrders bool                 `bson:"is_accepting_orders" json:"is_accepting_orders"`
	IsVerified        bool                 `bson:"is_verified" json:"is_verified"`
	Menu              []MenuSection        `bson:"menu" json:"menu"`
	Offers            []Offer              `bson:"offers" json:"offers"`
	DeliveryDetails   DeliveryDetails      `bson:"delivery_details" json:"delivery_details"`
	DeliverySlots     []DeliverySlot       `bson:"delivery_slots" json:"delivery_slots"`
	Media             Media                `bson:"media" json:"media"`
	Rating            Rating               `bson:"rating" json:"rating"`
	ViewCount         int64                `bson:"view_count" json:"view_count"`
	OrderCount        int64                `bson:"order_count" json:"order_count"`
	Version           int64                `bson:"version" json:"-"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
}

type Contact struct {
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

type Location struct {
	Address     string   `bson:"address" json:"address"`
	City        string   `bson:"city" json:"city"`
	Zone        string   `bson:"zone,omitempty" json:"zone,omitempty"`
	Pincode     string   `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Coordinates GeoPoint `bson:"coordinates" json:"coordinates"`
}

// GeoPoint is a GeoJSON point; Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

type OpeningHours struct {
	Day      string `bson:"day" json:"day"`
	Open     string `bson:"open" json:"open"`
	Close    string `bson:"close" json:"close"`
	IsClosed bool   `bson:"is_closed" json:"is_closed"`
}

type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int64   `bson:"count" json:"count"`
}

// RestaurantUpdate carries the general-purpose editable fields. Status
// flags, schedule, menu, media and management fields have their own
// operations.
type RestaurantUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	Contact     *Contact
	Location    *Location
	FoodType    *[]string
	CuisineType *[]string
	IsPureVeg   *bool
}

type StatusUpdate struct {
	IsOpenNow         *bool
	IsActive          *bool
	IsBusy            *bool
	IsAcceptingOrders *bool
}

// AvailabilityStatus is the schedule-derived view of a restaurant.
type AvailabilityStatus struct {
	ShouldBeOpen bool          `json:"should_be_open"`
	IsHoliday    bool          `json:"is_holiday"`
	TodayHours   *OpeningHours `json:"today_hours,omitempty"`
	NextHoliday  *time.Time    `json:"next_holiday,omitempty"`
}

type RestaurantStatus struct {
	AvailabilityStatus
	IsOpenNow         bool `json:"is_open_now"`
	IsActive          bool `json:"is_active"`
	IsBusy            bool `json:"is_busy"`
	IsAcceptingOrders bool `json:"is_accepting_orders"`
}

type OpenCheck struct {
	IsOpen         bool `json:"is_open"`
	ShouldBeOpen   bool `json:"should_be_open"`
	IsOpenNow      bool `json:"is_open_now"`
	ManualOverride bool `json:"manual_override"`
}

type RestaurantAnalytics struct {
	RestaurantID      primitive.ObjectID `bson:"_id" json:"restaurant_id"`
	Name              string             `bson:"name" json:"name"`
	ViewCount         int64              `bson:"view_count" json:"view_count"`
	OrderCount        int64              `bson:"order_count" json:"order_count"`
	Rating            Rating             `bson:"rating" json:"rating"`
	MenuSections      int                `bson:"menu_sections" json:"menu_sections"`
	MenuItems         int                `bson:"menu_items" json:"menu_items"`
	ActiveOffers      int                `bson:"active_offers" json:"active_offers"`
	DeliverySlots     int                `bson:"delivery_slots" json:"delivery_slots"`
	GalleryImages     int                `bson:"gallery_images" json:"gallery_images"`
	ConversionPercent float64            `bson:"conversion_percent" json:"conversion_percent"`
}

type CityStats struct {
	City          string  `bson:"_id" json:"city"`
	Restaurants   int64   `bson:"restaurants" json:"restaurants"`
	Verified      int64   `bson:"verified" json:"verified"`
	AverageRating float64 `bson:"average_rating" json:"average_rating"`
}
