package service

import (
	"context"

	"github.com/TejashHub/FoodDelivery-sub001/internal/availability"
	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *RestaurantService) SetDeliveryDetails(ctx context.Context, id primitive.ObjectID, d domain.DeliveryDetails) (*domain.DeliveryDetails, error) {
	switch {
	case d.MinOrderAmount < 0:
		return nil, domain.Invalid("min_order_amount cannot be negative")
	case d.DeliveryFee < 0:
		return nil, domain.Invalid("delivery_fee cannot be negative")
	case d.FreeDeliveryAbove < 0:
		return nil, domain.Invalid("free_delivery_above cannot be negative")
	case d.EstimatedTimeMinutes < 0:
		return nil, domain.Invalid("estimated_time_minutes cannot be negative")
	case d.DeliveryRadiusKm < 0:
		return nil, domain.Invalid("delivery_radius_km cannot be negative")
	}

	r, err := s.restaurants.SetDeliveryDetails(ctx, id, d)
	if err != nil {
		return nil, err
	}

	return &r.DeliveryDetails, nil
}

func (s *RestaurantService) DeliverySlots(ctx context.Context, id primitive.ObjectID) ([]domain.DeliverySlot, error) {
	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.DeliverySlots, nil
}

func (s *RestaurantService) AddDeliverySlot(ctx context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.DeliverySlot, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	slot.ID = primitive.NewObjectID()

	if _, err := s.restaurants.AddDeliverySlot(ctx, id, slot); err != nil {
		return nil, err
	}

	return &slot, nil
}

func (s *RestaurantService) ReplaceDeliverySlot(ctx context.Context, id primitive.ObjectID, slot domain.DeliverySlot) (*domain.DeliverySlot, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	if _, err := s.restaurants.ReplaceDeliverySlot(ctx, id, slot); err != nil {
		return nil, err
	}

	return &slot, nil
}

func (s *RestaurantService) DeleteDeliverySlot(ctx context.Context, id, slotID primitive.ObjectID) error {
	_, err := s.restaurants.DeleteDeliverySlot(ctx, id, slotID)
	return err
}

func validateSlot(slot domain.DeliverySlot) error {
	if !availability.ValidDay(slot.Day) {
		return domain.Invalid("invalid day %q: must be one of Monday..Sunday", slot.Day)
	}
	if !availability.ValidClock(slot.StartTime) {
		return domain.Invalid("invalid start_time %q: expected HH:MM (24-hour)", slot.StartTime)
	}
	if !availability.ValidClock(slot.EndTime) {
		return domain.Invalid("invalid end_time %q: expected HH:MM (24-hour)", slot.EndTime)
	}
	if slot.StartTime >= slot.EndTime {
		return domain.Invalid("start_time %s must be before end_time %s", slot.StartTime, slot.EndTime)
	}
	if slot.MaxOrders < 1 {
		return domain.Invalid("max_orders must be at least 1")
	}
	return nil
}

// Offers lists the restaurant's offers; liveOnly keeps the active ones that
// have not expired.
func (s *RestaurantService) Offers(ctx context.Context, id primitive.ObjectID, liveOnly bool) ([]domain.Offer, error) {
	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !liveOnly {
		return r.Offers, nil
	}

	now := s.now()
	live := []domain.Offer{}
	for _, o := range r.Offers {
		if o.Live(now) {
			live = append(live, o)
		}
	}
	return live, nil
}

func (s *RestaurantService) AddOffer(ctx context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Offer, error) {
	if err := s.validateOffer(offer); err != nil {
		return nil, err
	}
	offer.ID = primitive.NewObjectID()
	offer.CreatedAt = s.now()

	if _, err := s.restaurants.AddOffer(ctx, id, offer); err != nil {
		return nil, err
	}

	s.logger.Infow("offer added", "restaurant_id", id.Hex(), "offer_id", offer.ID.Hex())

	return &offer, nil
}

// ReplaceOffer keeps the original creation time.
func (s *RestaurantService) ReplaceOffer(ctx context.Context, id primitive.ObjectID, offer domain.Offer) (*domain.Offer, error) {
	if err := s.validateOffer(offer); err != nil {
		return nil, err
	}

	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	found := false
	for _, o := range r.Offers {
		if o.ID == offer.ID {
			offer.CreatedAt = o.CreatedAt
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrOfferNotFound
	}

	if _, err := s.restaurants.ReplaceOffer(ctx, id, offer); err != nil {
		return nil, err
	}

	return &offer, nil
}

func (s *RestaurantService) DeleteOffer(ctx context.Context, id, offerID primitive.ObjectID) error {
	_, err := s.restaurants.DeleteOffer(ctx, id, offerID)
	return err
}

func (s *RestaurantService) validateOffer(o domain.Offer) error {
	switch {
	case o.Title == "":
		return domain.Invalid("title is required")
	case o.DiscountPercentage < 1 || o.DiscountPercentage > 100:
		return domain.Invalid("discount_percentage must be between 1 and 100, got %v", o.DiscountPercentage)
	case o.MinOrderValue < 0:
		return domain.Invalid("min_order_value cannot be negative")
	case !o.ValidTill.After(s.now()):
		return domain.Invalid("valid_till must be in the future")
	}
	return nil
}
