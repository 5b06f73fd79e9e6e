package main

import (
	"net/http"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

type DeliveryDetailsRequest struct {
	MinOrderAmount       float64 `json:"min_order_amount" validate:"min=0"`
	DeliveryFee          float64 `json:"delivery_fee" validate:"min=0"`
	FreeDeliveryAbove    float64 `json:"free_delivery_above" validate:"min=0"`
	EstimatedTimeMinutes int     `json:"estimated_time_minutes" validate:"min=0"`
	DeliveryRadiusKm     float64 `json:"delivery_radius_km" validate:"min=0"`
}

type DeliverySlotRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	MaxOrders int    `json:"max_orders" validate:"required,min=1"`
	IsActive  *bool  `json:"is_active"`
}

type OfferRequest struct {
	Title              string    `json:"title" validate:"required,max=120"`
	Description        string    `json:"description" validate:"max=500"`
	DiscountPercentage float64   `json:"discount_percentage" validate:"required,gte=1,lte=100"`
	MinOrderValue      float64   `json:"min_order_value" validate:"min=0"`
	ValidTill          time.Time `json:"valid_till" validate:"required"`
	IsActive           *bool     `json:"is_active"`
}

func (req DeliverySlotRequest) toDomain() domain.DeliverySlot {
	return domain.DeliverySlot{
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		MaxOrders: req.MaxOrders,
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
}

func (req OfferRequest) toDomain() domain.Offer {
	return domain.Offer{
		Title:              req.Title,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		MinOrderValue:      req.MinOrderValue,
		ValidTill:          req.ValidTill,
		IsActive:           req.IsActive == nil || *req.IsActive,
	}
}

// setDeliveryDetailsHandler godoc
//
//	@Summary	Set delivery details
//	@Tags		delivery
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string					true	"Restaurant ID"
//	@Param		request			body		DeliveryDetailsRequest	true	"Delivery details"
//	@Success	200				{object}	domain.DeliveryDetails
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/delivery [patch]
func (app *application) setDeliveryDetailsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req DeliveryDetailsRequest
	if !app.decode(w, r, &req) {
		return
	}

	details, err := app.restaurantService.SetDeliveryDetails(r.Context(), id, domain.DeliveryDetails(req))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "delivery details updated", details); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listDeliverySlotsHandler godoc
//
//	@Summary	List delivery slots
//	@Tags		delivery
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{array}		domain.DeliverySlot
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/delivery-slots [get]
func (app *application) listDeliverySlotsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	slots, err := app.restaurantService.DeliverySlots(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, slots); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addDeliverySlotHandler godoc
//
//	@Summary		Add delivery slot
//	@Description	start_time must be before end_time on the same day.
//	@Tags			delivery
//	@Accept			json
//	@Produce		json
//	@Param			restaurant_id	path		string				true	"Restaurant ID"
//	@Param			request			body		DeliverySlotRequest	true	"Slot"
//	@Success		201				{object}	domain.DeliverySlot
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/delivery-slots [post]
func (app *application) addDeliverySlotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req DeliverySlotRequest
	if !app.decode(w, r, &req) {
		return
	}

	slot, err := app.restaurantService.AddDeliverySlot(r.Context(), id, req.toDomain())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "delivery slot added", slot); err != nil {
		app.internalServerError(w, r, err)
	}
}

// replaceDeliverySlotHandler godoc
//
//	@Summary	Replace delivery slot
//	@Tags		delivery
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string				true	"Restaurant ID"
//	@Param		slot_id			path		string				true	"Slot ID"
//	@Param		request			body		DeliverySlotRequest	true	"Slot"
//	@Success	200				{object}	domain.DeliverySlot
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/delivery-slots/{slot_id} [put]
func (app *application) replaceDeliverySlotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	slotID, err := objectIDParam(r, "slot_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req DeliverySlotRequest
	if !app.decode(w, r, &req) {
		return
	}
	slot := req.toDomain()
	slot.ID = slotID

	updated, err := app.restaurantService.ReplaceDeliverySlot(r.Context(), id, slot)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "delivery slot updated", updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteDeliverySlotHandler godoc
//
//	@Summary	Delete delivery slot
//	@Tags		delivery
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Param		slot_id			path		string	true	"Slot ID"
//	@Success	200				{object}	map[string]interface{}
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/delivery-slots/{slot_id} [delete]
func (app *application) deleteDeliverySlotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	slotID, err := objectIDParam(r, "slot_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.restaurantService.DeleteDeliverySlot(r.Context(), id, slotID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "delivery slot deleted", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOffersHandler godoc
//
//	@Summary	List offers
//	@Tags		offers
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Param		active			query		bool	false	"Only active, unexpired offers"
//	@Success	200				{array}		domain.Offer
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/offers [get]
func (app *application) listOffersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	offers, err := app.restaurantService.Offers(r.Context(), id, r.URL.Query().Get("active") == "true")
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, offers); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addOfferHandler godoc
//
//	@Summary	Add offer
//	@Tags		offers
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string			true	"Restaurant ID"
//	@Param		request			body		OfferRequest	true	"Offer"
//	@Success	201				{object}	domain.Offer
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/offers [post]
func (app *application) addOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req OfferRequest
	if !app.decode(w, r, &req) {
		return
	}

	offer, err := app.restaurantService.AddOffer(r.Context(), id, req.toDomain())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "offer added", offer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// replaceOfferHandler godoc
//
//	@Summary	Replace offer
//	@Tags		offers
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string			true	"Restaurant ID"
//	@Param		offer_id		path		string			true	"Offer ID"
//	@Param		request			body		OfferRequest	true	"Offer"
//	@Success	200				{object}	domain.Offer
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/offers/{offer_id} [put]
func (app *application) replaceOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	offerID, err := objectIDParam(r, "offer_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req OfferRequest
	if !app.decode(w, r, &req) {
		return
	}
	offer := req.toDomain()
	offer.ID = offerID

	updated, err := app.restaurantService.ReplaceOffer(r.Context(), id, offer)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "offer updated", updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteOfferHandler godoc
//
//	@Summary	Delete offer
//	@Tags		offers
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Param		offer_id		path		string	true	"Offer ID"
//	@Success	200				{object}	map[string]interface{}
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/offers/{offer_id} [delete]
func (app *application) deleteOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	offerID, err := objectIDParam(r, "offer_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.restaurantService.DeleteOffer(r.Context(), id, offerID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "offer deleted", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}
