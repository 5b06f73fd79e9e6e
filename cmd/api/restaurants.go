package main

import (
	"net/http"
	"strconv"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/query"
	"github.com/go-chi/chi/v5"
)

type LocationRequest struct {
	Address     string    `json:"address" validate:"required"`
	City        string    `json:"city" validate:"required"`
	Zone        string    `json:"zone"`
	Pincode     string    `json:"pincode" validate:"omitempty,numeric,len=6"`
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
}

type ContactRequest struct {
	Phone string `json:"phone" validate:"omitempty,numeric,len=10"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CreateRestaurantRequest struct {
	Name         string                `json:"name" validate:"required,max=120"`
	Slug         string                `json:"slug"`
	Description  string                `json:"description" validate:"max=1000"`
	Owner        string                `json:"owner"`
	Contact      ContactRequest        `json:"contact"`
	Location     LocationRequest       `json:"location"`
	FoodType     []string              `json:"food_type"`
	CuisineType  []string              `json:"cuisine_type"`
	IsPureVeg    bool                  `json:"is_pure_veg"`
	OpeningHours []domain.OpeningHours `json:"opening_hours"`
}

type UpdateRestaurantRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=120"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Contact     *ContactRequest  `json:"contact"`
	Location    *LocationRequest `json:"location"`
	FoodType    *[]string        `json:"food_type"`
	CuisineType *[]string        `json:"cuisine_type"`
	IsPureVeg   *bool            `json:"is_pure_veg"`
}

func (l LocationRequest) toDomain() domain.Location {
	loc := domain.Location{
		Address: l.Address,
		City:    l.City,
		Zone:    l.Zone,
		Pincode: l.Pincode,
	}
	if len(l.Coordinates) == 2 {
		loc.Coordinates = domain.NewGeoPoint(l.Coordinates[0], l.Coordinates[1])
	} else {
		loc.Coordinates = domain.GeoPoint{Type: "Point", Coordinates: l.Coordinates}
	}
	return loc
}

// createRestaurantHandler godoc
//
//	@Summary		Create restaurant
//	@Description	The slug is derived from the name unless given. Coordinates are [longitude, latitude].
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRestaurantRequest	true	"Restaurant"
//	@Success		201		{object}	domain.Restaurant
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRestaurantRequest
	if !app.decode(w, r, &req) {
		return
	}

	owner, err := optionalObjectID("owner", req.Owner)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant := &domain.Restaurant{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Owner:        owner,
		Contact:      domain.Contact(req.Contact),
		Location:     req.Location.toDomain(),
		FoodType:     req.FoodType,
		CuisineType:  req.CuisineType,
		IsPureVeg:    req.IsPureVeg,
		OpeningHours: req.OpeningHours,
	}

	if err := app.restaurantService.Create(r.Context(), restaurant); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "restaurant created", restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRestaurantsHandler godoc
//
//	@Summary		List restaurants
//	@Description	Filters, sorting and field selection are restricted to known fields.
//	@Tags			restaurants
//	@Produce		json
//	@Param			page		query		int		false	"Page"
//	@Param			limit		query		int		false	"Page size (max 100)"
//	@Param			search		query		string	false	"Text search, or an id matching the restaurant, owner or a manager"
//	@Param			foodType	query		string	false	"Comma separated food types"
//	@Param			cuisineType	query		string	false	"Comma separated cuisines"
//	@Param			owner		query		string	false	"Owner ID"
//	@Param			manager		query		string	false	"Manager ID"
//	@Param			menu		query		string	false	"Menu section ID"
//	@Param			contact		query		string	false	"Phone (10 digits) or email"
//	@Param			city		query		string	false	"City, case-insensitive"
//	@Param			isPureVeg	query		bool	false	"Pure veg"
//	@Param			isActive	query		bool	false	"Active"
//	@Param			isVerified	query		bool	false	"Verified"
//	@Param			sort		query		string	false	"field:asc|desc pairs, comma separated"
//	@Param			fields		query		string	false	"Comma separated fields to return"
//	@Success		200			{array}		domain.Restaurant
//	@Failure		400			{object}	map[string]string
//	@Router			/restaurants [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	restaurants, pagination, err := app.restaurantService.List(r.Context(), r.URL.Query())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.pageResponse(w, restaurants, pagination); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantHandler godoc
//
//	@Summary	Get restaurant by ID
//	@Tags		restaurants
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{object}	domain.Restaurant
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.restaurantService.Get(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantBySlugHandler godoc
//
//	@Summary	Get restaurant by slug
//	@Tags		restaurants
//	@Produce	json
//	@Param		slug	path		string	true	"Slug"
//	@Success	200		{object}	domain.Restaurant
//	@Failure	404		{object}	map[string]string
//	@Router		/restaurants/slug/{slug} [get]
func (app *application) getRestaurantBySlugHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := app.restaurantService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary		Update restaurant
//	@Description	Changing the name regenerates the slug.
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			restaurant_id	path		string					true	"Restaurant ID"
//	@Param			request			body		UpdateRestaurantRequest	true	"Fields to change"
//	@Success		200				{object}	domain.Restaurant
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		409				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id} [patch]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateRestaurantRequest
	if !app.decode(w, r, &req) {
		return
	}

	upd := domain.RestaurantUpdate{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		FoodType:    req.FoodType,
		CuisineType: req.CuisineType,
		IsPureVeg:   req.IsPureVeg,
	}
	if req.Contact != nil {
		contact := domain.Contact(*req.Contact)
		upd.Contact = &contact
	}
	if req.Location != nil {
		loc := req.Location.toDomain()
		upd.Location = &loc
	}

	restaurant, err := app.restaurantService.Update(r.Context(), id, upd)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "restaurant updated", restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantHandler godoc
//
//	@Summary	Delete restaurant
//	@Tags		restaurants
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{object}	map[string]interface{}
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id} [delete]
func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.restaurantService.Delete(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "restaurant deleted", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// nearbyRestaurantsHandler godoc
//
//	@Summary	Restaurants near a point
//	@Tags		restaurants
//	@Produce	json
//	@Param		lat		query		number	true	"Latitude"
//	@Param		lng		query		number	true	"Longitude"
//	@Param		radius	query		number	false	"Radius in km (default 5, max 50)"
//	@Param		limit	query		int		false	"Max results"
//	@Success	200		{array}		domain.Restaurant
//	@Failure	400		{object}	map[string]string
//	@Router		/restaurants/nearby [get]
func (app *application) nearbyRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		app.badRequestResponse(w, r, domain.Invalid("lat is required and must be a number"))
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		app.badRequestResponse(w, r, domain.Invalid("lng is required and must be a number"))
		return
	}
	var radius float64
	if raw := q.Get("radius"); raw != "" {
		if radius, err = strconv.ParseFloat(raw, 64); err != nil {
			app.badRequestResponse(w, r, domain.Invalid("radius must be a number"))
			return
		}
	}

	restaurants, err := app.restaurantService.Nearby(r.Context(), lng, lat, radius, query.IntParam(q.Get("limit"), query.DefaultLimit))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// trendingRestaurantsHandler godoc
//
//	@Summary		Trending restaurants
//	@Description	Most viewed and ordered restaurants; cached for a few minutes.
//	@Tags			restaurants
//	@Produce		json
//	@Param			limit	query	int	false	"Max results"
//	@Success		200		{array}	domain.Restaurant
//	@Router			/restaurants/trending [get]
func (app *application) trendingRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	limit := query.IntParam(r.URL.Query().Get("limit"), query.DefaultLimit)

	restaurants, err := app.restaurantService.Trending(r.Context(), limit)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// restaurantsByCityHandler godoc
//
//	@Summary	Active restaurants in a city
//	@Tags		restaurants
//	@Produce	json
//	@Param		city	path	string	true	"City"
//	@Param		page	query	int		false	"Page"
//	@Param		limit	query	int		false	"Page size"
//	@Success	200		{array}	domain.Restaurant
//	@Router		/restaurants/city/{city} [get]
func (app *application) restaurantsByCityHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	restaurants, pagination, err := app.restaurantService.ByCity(r.Context(), chi.URLParam(r, "city"), page, limit)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.pageResponse(w, restaurants, pagination); err != nil {
		app.internalServerError(w, r, err)
	}
}

// restaurantsByZoneHandler godoc
//
//	@Summary	Active restaurants in a delivery zone
//	@Tags		restaurants
//	@Produce	json
//	@Param		zone	path	string	true	"Zone"
//	@Param		page	query	int		false	"Page"
//	@Param		limit	query	int		false	"Page size"
//	@Success	200		{array}	domain.Restaurant
//	@Router		/restaurants/zone/{zone} [get]
func (app *application) restaurantsByZoneHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	restaurants, pagination, err := app.restaurantService.ByZone(r.Context(), chi.URLParam(r, "zone"), page, limit)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.pageResponse(w, restaurants, pagination); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cityStatsHandler godoc
//
//	@Summary	Restaurant counts and ratings per city
//	@Tags		restaurants
//	@Produce	json
//	@Success	200	{array}	domain.CityStats
//	@Router		/restaurants/stats/cities [get]
func (app *application) cityStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.restaurantService.CityStats(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
