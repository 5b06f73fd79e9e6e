package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuSection struct {
	ID       primitive.ObjectID   `bson:"_id" json:"id"`
	Category primitive.ObjectID   `bson:"category" json:"category"`
	Items    []primitive.ObjectID `bson:"items" json:"items"`
}

type Offer struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	DiscountPercentage float64            `bson:"discount_percentage" json:"discount_percentage"`
	MinOrderValue      float64            `bson:"min_order_value" json:"min_order_value"`
	ValidTill          time.Time          `bson:"valid_till" json:"valid_till"`
	IsActive           bool               `bson:"is_active" json:"is_active"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}

// Live reports whether the offer is active and not past its ValidTill.
func (o Offer) Live(now time.Time) bool {
	return o.IsActive && now.Before(o.ValidTill)
}

type DeliveryDetails struct {
	MinOrderAmount       float64 `bson:"min_order_amount" json:"min_order_amount"`
	DeliveryFee          float64 `bson:"delivery_fee" json:"delivery_fee"`
	FreeDeliveryAbove    float64 `bson:"free_delivery_above" json:"free_delivery_above"`
	EstimatedTimeMinutes int     `bson:"estimated_time_minutes" json:"estimated_time_minutes"`
	DeliveryRadiusKm     float64 `bson:"delivery_radius_km" json:"delivery_radius_km"`
}

type DeliverySlot struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Day       string             `bson:"day" json:"day"`
	StartTime string             `bson:"start_time" json:"start_time"`
	EndTime   string             `bson:"end_time" json:"end_time"`
	MaxOrders int                `bson:"max_orders" json:"max_orders"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
}

type Image struct {
	URL     string `bson:"url" json:"url"`
	AssetID string `bson:"asset_id" json:"asset_id"`
}

type Media struct {
	Logo       *Image  `bson:"logo,omitempty" json:"logo,omitempty"`
	CoverImage *Image  `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Gallery    []Image `bson:"gallery" json:"gallery"`
}

// MediaSlot names a single-image media field of a restaurant.
type MediaSlot string

const (
	MediaLogo  MediaSlot = "logo"
	MediaCover MediaSlot = "cover_image"
)
