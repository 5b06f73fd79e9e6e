package main

import (
	"net/http"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

type UpdateStatusRequest struct {
	IsOpenNow         *bool `json:"is_open_now"`
	IsActive          *bool `json:"is_active"`
	IsBusy            *bool `json:"is_busy"`
	IsAcceptingOrders *bool `json:"is_accepting_orders"`
}

type OpeningHoursRequest struct {
	OpeningHours []domain.OpeningHours `json:"opening_hours" validate:"required"`
}

type HolidaysRequest struct {
	Holidays []string `json:"holidays" validate:"required"`
}

// restaurantStatusHandler godoc
//
//	@Summary		Restaurant status
//	@Description	Schedule-derived availability plus the staff-controlled flags.
//	@Tags			status
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Success		200				{object}	domain.RestaurantStatus
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/status [get]
func (app *application) restaurantStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	status, err := app.restaurantService.Status(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, status); err != nil {
		app.internalServerError(w, r, err)
	}
}

// isOpenHandler godoc
//
//	@Summary		Is the restaurant open
//	@Description	Open only when the schedule and the staff flag agree.
//	@Tags			status
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Success		200				{object}	domain.OpenCheck
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/is-open [get]
func (app *application) isOpenHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	check, err := app.restaurantService.IsOpen(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, check); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantStatusHandler godoc
//
//	@Summary	Set status flags
//	@Tags		status
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string				true	"Restaurant ID"
//	@Param		request			body		UpdateStatusRequest	true	"Flags to change"
//	@Success	200				{object}	domain.Restaurant
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/status [patch]
func (app *application) updateRestaurantStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateStatusRequest
	if !app.decode(w, r, &req) {
		return
	}

	restaurant, err := app.restaurantService.SetStatus(r.Context(), id, domain.StatusUpdate(req))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "status updated", restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// setOpeningHoursHandler godoc
//
//	@Summary		Replace opening hours
//	@Description	Days are Monday..Sunday, times HH:MM. One bad entry rejects the whole table.
//	@Tags			status
//	@Accept			json
//	@Produce		json
//	@Param			restaurant_id	path		string				true	"Restaurant ID"
//	@Param			request			body		OpeningHoursRequest	true	"Weekly table"
//	@Success		200				{array}		domain.OpeningHours
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/opening-hours [put]
func (app *application) setOpeningHoursHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req OpeningHoursRequest
	if !app.decode(w, r, &req) {
		return
	}

	hours, err := app.restaurantService.SetOpeningHours(r.Context(), id, req.OpeningHours)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "opening hours updated", hours); err != nil {
		app.internalServerError(w, r, err)
	}
}

// setHolidaysHandler godoc
//
//	@Summary		Replace holidays
//	@Description	Dates as YYYY-MM-DD or RFC 3339. Only the calendar date is kept.
//	@Tags			status
//	@Accept			json
//	@Produce		json
//	@Param			restaurant_id	path		string			true	"Restaurant ID"
//	@Param			request			body		HolidaysRequest	true	"Holidays"
//	@Success		200				{array}		string
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/holidays [put]
func (app *application) setHolidaysHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req HolidaysRequest
	if !app.decode(w, r, &req) {
		return
	}

	holidays, err := app.restaurantService.SetHolidays(r.Context(), id, req.Holidays)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "holidays updated", holidays); err != nil {
		app.internalServerError(w, r, err)
	}
}
