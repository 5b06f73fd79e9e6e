package domain

import "time"

// OrderFinalizedMessage is published by the order service once an order is
// paid. A non-empty CouponCode commits the coupon redemption for UserID.
type OrderFinalizedMessage struct {
	OrderID      string    `json:"order_id"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	CouponCode   string    `json:"coupon_code,omitempty"`
	UserID       string    `json:"user_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// MediaCleanupMessage asks the cleanup worker to delete an orphaned asset.
type MediaCleanupMessage struct {
	AssetID   string    `json:"asset_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	CleanupReasonPersistFailed = "persist_failed"
	CleanupReasonReplaced      = "replaced"
	CleanupReasonRemoved       = "removed"
)
