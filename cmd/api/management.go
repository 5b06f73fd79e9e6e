package main

import (
	"net/http"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingRequest struct {
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
}

type VerifyRequest struct {
	IsVerified *bool `json:"is_verified" validate:"required"`
}

type OwnerRequest struct {
	Owner string `json:"owner" validate:"required"`
}

type ManagerRequest struct {
	Manager string `json:"manager" validate:"required"`
}

// analyticsHandler godoc
//
//	@Summary	Restaurant analytics
//	@Tags		analytics
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{object}	domain.RestaurantAnalytics
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/analytics [get]
func (app *application) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	analytics, err := app.restaurantService.Analytics(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, analytics); err != nil {
		app.internalServerError(w, r, err)
	}
}

// recordViewHandler godoc
//
//	@Summary	Count a profile view
//	@Tags		analytics
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{object}	map[string]interface{}
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/views [post]
func (app *application) recordViewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.restaurantService.RecordView(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "view recorded", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// rateRestaurantHandler godoc
//
//	@Summary	Rate a restaurant
//	@Tags		analytics
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string			true	"Restaurant ID"
//	@Param		request			body		RatingRequest	true	"Rating 1-5"
//	@Success	200				{object}	domain.Rating
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/rating [post]
func (app *application) rateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req RatingRequest
	if !app.decode(w, r, &req) {
		return
	}

	rating, err := app.restaurantService.Rate(r.Context(), id, req.Rating)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, rating); err != nil {
		app.internalServerError(w, r, err)
	}
}

// verifyRestaurantHandler godoc
//
//	@Summary	Set verification
//	@Tags		management
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string			true	"Restaurant ID"
//	@Param		request			body		VerifyRequest	true	"Verification"
//	@Success	200				{object}	domain.Restaurant
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/verify [patch]
func (app *application) verifyRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req VerifyRequest
	if !app.decode(w, r, &req) {
		return
	}

	restaurant, err := app.restaurantService.Verify(r.Context(), id, *req.IsVerified)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// setOwnerHandler godoc
//
//	@Summary	Transfer ownership
//	@Tags		management
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string			true	"Restaurant ID"
//	@Param		request			body		OwnerRequest	true	"New owner"
//	@Success	200				{object}	domain.Restaurant
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/owner [patch]
func (app *application) setOwnerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req OwnerRequest
	if !app.decode(w, r, &req) {
		return
	}
	owner, err := primitive.ObjectIDFromHex(req.Owner)
	if err != nil {
		app.badRequestResponse(w, r, domain.Invalid("invalid owner %q", req.Owner))
		return
	}

	restaurant, err := app.restaurantService.SetOwner(r.Context(), id, owner)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "owner updated", restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addManagerHandler godoc
//
//	@Summary	Add manager
//	@Tags		management
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string			true	"Restaurant ID"
//	@Param		request			body		ManagerRequest	true	"Manager"
//	@Success	200				{array}		string
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/managers [post]
func (app *application) addManagerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req ManagerRequest
	if !app.decode(w, r, &req) {
		return
	}
	manager, err := primitive.ObjectIDFromHex(req.Manager)
	if err != nil {
		app.badRequestResponse(w, r, domain.Invalid("invalid manager %q", req.Manager))
		return
	}

	managers, err := app.restaurantService.AddManager(r.Context(), id, manager)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "manager added", managers); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeManagerHandler godoc
//
//	@Summary	Remove manager
//	@Tags		management
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Param		manager_id		path		string	true	"Manager ID"
//	@Success	200				{array}		string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/managers/{manager_id} [delete]
func (app *application) removeManagerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	manager, err := objectIDParam(r, "manager_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	managers, err := app.restaurantService.RemoveManager(r.Context(), id, manager)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "manager removed", managers); err != nil {
		app.internalServerError(w, r, err)
	}
}
