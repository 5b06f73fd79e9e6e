package main

import (
	"net/http"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuSectionRequest struct {
	Category string   `json:"category" validate:"required"`
	Items    []string `json:"items"`
}

type AddMenuSectionsRequest struct {
	Sections []MenuSectionRequest `json:"sections" validate:"required,min=1,dive"`
}

type ImportMenuRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required"`
	Range         string `json:"range"`
}

type MenuItemsRequest struct {
	Items []string `json:"items" validate:"required,min=1"`
}

func (req MenuSectionRequest) toDomain(position int) (domain.MenuSection, error) {
	category, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return domain.MenuSection{}, domain.Invalid("menu section %d: invalid category %q", position, req.Category)
	}
	items, err := objectIDs("item", req.Items)
	if err != nil {
		return domain.MenuSection{}, err
	}
	return domain.MenuSection{Category: category, Items: items}, nil
}

// getMenuHandler godoc
//
//	@Summary	Get restaurant menu
//	@Tags		menu
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{array}		domain.MenuSection
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/menu [get]
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	menu, err := app.restaurantService.Menu(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, menu); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addMenuSectionsHandler godoc
//
//	@Summary		Add menu sections
//	@Description	Every section needs a category. One bad section rejects the batch.
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			restaurant_id	path		string					true	"Restaurant ID"
//	@Param			request			body		AddMenuSectionsRequest	true	"Sections"
//	@Success		201				{array}		domain.MenuSection
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/menu [post]
func (app *application) addMenuSectionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req AddMenuSectionsRequest
	if !app.decode(w, r, &req) {
		return
	}

	sections := make([]domain.MenuSection, 0, len(req.Sections))
	for i, s := range req.Sections {
		section, err := s.toDomain(i + 1)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		sections = append(sections, section)
	}

	menu, err := app.restaurantService.AddMenuSections(r.Context(), id, sections)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "menu sections added", menu); err != nil {
		app.internalServerError(w, r, err)
	}
}

// importMenuHandler godoc
//
//	@Summary		Import menu sections from Google Sheets
//	@Description	Reads category_id | item_ids rows (header first) and appends them as sections.
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			restaurant_id	path		string				true	"Restaurant ID"
//	@Param			request			body		ImportMenuRequest	true	"Spreadsheet"
//	@Success		201				{array}		domain.MenuSection
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/menu/import [post]
func (app *application) importMenuHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req ImportMenuRequest
	if !app.decode(w, r, &req) {
		return
	}

	menu, err := app.restaurantService.ImportMenu(r.Context(), id, req.SpreadsheetID, req.Range)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "menu imported", menu); err != nil {
		app.internalServerError(w, r, err)
	}
}

// replaceMenuSectionHandler godoc
//
//	@Summary	Replace a menu section
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string				true	"Restaurant ID"
//	@Param		section_id		path		string				true	"Section ID"
//	@Param		request			body		MenuSectionRequest	true	"Section"
//	@Success	200				{object}	domain.MenuSection
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/menu/{section_id} [put]
func (app *application) replaceMenuSectionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	sectionID, err := objectIDParam(r, "section_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req MenuSectionRequest
	if !app.decode(w, r, &req) {
		return
	}
	section, err := req.toDomain(1)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	section.ID = sectionID

	updated, err := app.restaurantService.ReplaceMenuSection(r.Context(), id, section)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "menu section updated", updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuSectionHandler godoc
//
//	@Summary	Delete a menu section
//	@Tags		menu
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Param		section_id		path		string	true	"Section ID"
//	@Success	200				{object}	map[string]interface{}
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/menu/{section_id} [delete]
func (app *application) deleteMenuSectionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	sectionID, err := objectIDParam(r, "section_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.restaurantService.DeleteMenuSection(r.Context(), id, sectionID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "menu section deleted", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addMenuItemsHandler godoc
//
//	@Summary	Add items to a menu section
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string				true	"Restaurant ID"
//	@Param		section_id		path		string				true	"Section ID"
//	@Param		request			body		MenuItemsRequest	true	"Item IDs"
//	@Success	200				{object}	domain.MenuSection
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/menu/{section_id}/items [post]
func (app *application) addMenuItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	sectionID, err := objectIDParam(r, "section_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req MenuItemsRequest
	if !app.decode(w, r, &req) {
		return
	}
	items, err := objectIDs("item", req.Items)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	section, err := app.restaurantService.AddMenuItems(r.Context(), id, sectionID, items)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, section); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeMenuItemHandler godoc
//
//	@Summary	Remove an item from a menu section
//	@Tags		menu
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Param		section_id		path		string	true	"Section ID"
//	@Param		item_id			path		string	true	"Item ID"
//	@Success	200				{object}	domain.MenuSection
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/menu/{section_id}/items/{item_id} [delete]
func (app *application) removeMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	sectionID, err := objectIDParam(r, "section_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	itemID, err := objectIDParam(r, "item_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	section, err := app.restaurantService.RemoveMenuItem(r.Context(), id, sectionID, itemID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, section); err != nil {
		app.internalServerError(w, r, err)
	}
}
