package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/coupon"
	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCouponRequest struct {
	Code                  string    `json:"code" validate:"required,min=6,max=20"`
	Description           string    `json:"description" validate:"max=500"`
	DiscountType          string    `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue         float64   `json:"discount_value" validate:"required,gt=0"`
	ValidFrom             time.Time `json:"valid_from" validate:"required"`
	ValidUntil            time.Time `json:"valid_until" validate:"required"`
	MaxUses               *int      `json:"max_uses" validate:"omitempty,min=1"`
	MinOrderValue         float64   `json:"min_order_value" validate:"min=0"`
	ApplicableRestaurants []string  `json:"applicable_restaurants"`
	IsActive              *bool     `json:"is_active"`
}

type UpdateCouponRequest struct {
	DiscountType          *string     `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue         *float64    `json:"discount_value" validate:"omitempty,gt=0"`
	ValidUntil            *time.Time  `json:"valid_until"`
	MaxUses               nullableInt `json:"max_uses" swaggertype:"integer"`
	MinOrderValue         *float64    `json:"min_order_value" validate:"omitempty,min=0"`
	ApplicableRestaurants *[]string   `json:"applicable_restaurants"`
	IsActive              *bool       `json:"is_active"`
}

// nullableInt tells an absent field apart from an explicit null.
type nullableInt struct {
	Set   bool
	Value *int
}

func (n *nullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type ApplyCouponRequest struct {
	Code         string  `json:"code" validate:"required"`
	UserID       string  `json:"user_id" validate:"required"`
	RestaurantID string  `json:"restaurant_id"`
	OrderValue   float64 `json:"order_value" validate:"gt=0"`
}

type RedeemCouponRequest struct {
	Code   string `json:"code" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

// createCouponHandler godoc
//
//	@Summary		Create coupon
//	@Description	Creates a discount coupon. Codes are stored upper-case and must be unique.
//	@Tags			coupons
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateCouponRequest	true	"Coupon"
//	@Success		201		{object}	domain.Coupon
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/coupons [post]
func (app *application) createCouponHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequest
	if !app.decode(w, r, &req) {
		return
	}

	restaurants, err := objectIDs("restaurant", req.ApplicableRestaurants)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := &domain.Coupon{
		Code:                  req.Code,
		Description:           req.Description,
		DiscountType:          domain.DiscountType(req.DiscountType),
		DiscountValue:         req.DiscountValue,
		ValidFrom:             req.ValidFrom,
		ValidUntil:            req.ValidUntil,
		MaxUses:               req.MaxUses,
		MinOrderValue:         req.MinOrderValue,
		ApplicableRestaurants: restaurants,
		IsActive:              req.IsActive == nil || *req.IsActive,
	}

	if err := app.couponService.Create(r.Context(), c); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "coupon created", c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCouponsHandler godoc
//
//	@Summary		List coupons
//	@Tags			coupons
//	@Produce		json
//	@Param			page		query		int		false	"Page"
//	@Param			limit		query		int		false	"Page size (max 100)"
//	@Param			isActive	query		bool	false	"Filter by active flag"
//	@Success		200			{array}		domain.Coupon
//	@Failure		400			{object}	map[string]string
//	@Router			/coupons [get]
func (app *application) listCouponsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := domain.CouponListFilter{Page: page, Limit: limit}

	switch raw := r.URL.Query().Get("isActive"); raw {
	case "":
	case "true", "false":
		active := raw == "true"
		filter.IsActive = &active
	default:
		app.badRequestResponse(w, r, domain.Invalid("isActive must be \"true\" or \"false\", got %q", raw))
		return
	}

	coupons, pagination, err := app.couponService.List(r.Context(), filter)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.pageResponse(w, coupons, pagination); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCouponHandler godoc
//
//	@Summary	Get coupon by ID
//	@Tags		coupons
//	@Produce	json
//	@Param		coupon_id	path		string	true	"Coupon ID"
//	@Success	200			{object}	domain.Coupon
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/coupons/{coupon_id} [get]
func (app *application) getCouponHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "coupon_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c, err := app.couponService.Get(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCouponHandler godoc
//
//	@Summary		Update coupon
//	@Description	Updates the editable fields. The code, valid_from and redemptions cannot be changed.
//	@Tags			coupons
//	@Accept			json
//	@Produce		json
//	@Param			coupon_id	path		string				true	"Coupon ID"
//	@Param			request		body		UpdateCouponRequest	true	"Fields to change"
//	@Success		200			{object}	domain.Coupon
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/coupons/{coupon_id} [patch]
func (app *application) updateCouponHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "coupon_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateCouponRequest
	if !app.decode(w, r, &req) {
		return
	}

	upd := domain.CouponUpdate{
		DiscountValue: req.DiscountValue,
		ValidUntil:    req.ValidUntil,
		MinOrderValue: req.MinOrderValue,
		IsActive:      req.IsActive,
	}
	if req.MaxUses.Set {
		upd.MaxUses = req.MaxUses.Value
		upd.ClearMaxUses = req.MaxUses.Value == nil
	}
	if req.DiscountType != nil {
		kind := domain.DiscountType(*req.DiscountType)
		upd.DiscountType = &kind
	}
	if req.ApplicableRestaurants != nil {
		ids, err := objectIDs("restaurant", *req.ApplicableRestaurants)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		upd.ApplicableRestaurants = &ids
	}

	c, err := app.couponService.Update(r.Context(), id, upd)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "coupon updated", c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCouponHandler godoc
//
//	@Summary	Delete coupon
//	@Tags		coupons
//	@Produce	json
//	@Param		coupon_id	path		string	true	"Coupon ID"
//	@Success	200			{object}	map[string]interface{}
//	@Failure	404			{object}	map[string]string
//	@Router		/coupons/{coupon_id} [delete]
func (app *application) deleteCouponHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "coupon_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.couponService.Delete(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "coupon deleted", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// toggleCouponHandler godoc
//
//	@Summary	Toggle coupon active flag
//	@Tags		coupons
//	@Produce	json
//	@Param		coupon_id	path		string	true	"Coupon ID"
//	@Success	200			{object}	domain.Coupon
//	@Failure	404			{object}	map[string]string
//	@Router		/coupons/{coupon_id}/toggle-status [patch]
func (app *application) toggleCouponHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "coupon_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c, err := app.couponService.ToggleStatus(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// remainingUsesHandler godoc
//
//	@Summary		Remaining uses
//	@Description	Returns "unlimited" when the coupon has no max_uses.
//	@Tags			coupons
//	@Produce		json
//	@Param			coupon_id	path		string	true	"Coupon ID"
//	@Success		200			{object}	domain.RemainingUses
//	@Failure		404			{object}	map[string]string
//	@Router			/coupons/{coupon_id}/remaining-uses [get]
func (app *application) remainingUsesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "coupon_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	remaining, err := app.couponService.RemainingUses(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, remaining); err != nil {
		app.internalServerError(w, r, err)
	}
}

// applyCouponHandler godoc
//
//	@Summary		Preview a coupon against an order
//	@Description	Checks eligibility and computes the discount. Nothing is recorded.
//	@Tags			coupons
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ApplyCouponRequest	true	"Order"
//	@Success		200		{object}	domain.ApplyResult
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/coupons/apply [post]
func (app *application) applyCouponHandler(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequest
	if !app.decode(w, r, &req) {
		return
	}

	userID, err := optionalObjectID("user_id", req.UserID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	restaurantID, err := optionalObjectID("restaurant_id", req.RestaurantID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.couponService.Apply(r.Context(), req.Code, coupon.OrderContext{
		UserID:       userID,
		RestaurantID: restaurantID,
		OrderValue:   req.OrderValue,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// redeemCouponHandler godoc
//
//	@Summary		Redeem coupon
//	@Description	Records the redemption for the user. A user can redeem a coupon once.
//	@Tags			coupons
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RedeemCouponRequest	true	"Redemption"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/coupons/redeem [post]
func (app *application) redeemCouponHandler(w http.ResponseWriter, r *http.Request) {
	var req RedeemCouponRequest
	if !app.decode(w, r, &req) {
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		app.badRequestResponse(w, r, domain.Invalid("invalid user_id %q", req.UserID))
		return
	}

	if err := app.couponService.Redeem(r.Context(), req.Code, userID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "coupon redeemed", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// validateCouponHandler godoc
//
//	@Summary		Validate coupon code
//	@Description	Checks only the active flag and validity window. Unknown codes are not an error.
//	@Tags			coupons
//	@Produce		json
//	@Param			code	query		string	true	"Coupon code"
//	@Success		200		{object}	domain.ValidateResult
//	@Failure		400		{object}	map[string]string
//	@Router			/coupons/validate [get]
func (app *application) validateCouponHandler(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		app.badRequestResponse(w, r, domain.Invalid("code is required"))
		return
	}

	result, err := app.couponService.Validate(r.Context(), code)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// restaurantCouponsHandler godoc
//
//	@Summary		Coupons usable at a restaurant
//	@Description	Active, currently valid coupons that list the restaurant or apply everywhere.
//	@Tags			coupons
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Success		200				{array}		domain.Coupon
//	@Failure		400				{object}	map[string]string
//	@Router			/coupons/restaurant/{restaurant_id} [get]
func (app *application) restaurantCouponsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	coupons, err := app.couponService.ForRestaurant(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, coupons); err != nil {
		app.internalServerError(w, r, err)
	}
}

// userCouponsHandler godoc
//
//	@Summary	Coupons redeemed by a user
//	@Tags		coupons
//	@Produce	json
//	@Param		user_id	path		string	true	"User ID"
//	@Success	200		{array}		domain.Coupon
//	@Failure	400		{object}	map[string]string
//	@Router		/coupons/user/{user_id} [get]
func (app *application) userCouponsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "user_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	coupons, err := app.couponService.ForUser(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, coupons); err != nil {
		app.internalServerError(w, r, err)
	}
}
