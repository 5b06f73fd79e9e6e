package main

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/media"
	"github.com/go-chi/chi/v5"
)

const imageField = "image"

// readImage returns the uploaded file in the "image" form field. The caller
// closes it.
func readImage(w http.ResponseWriter, r *http.Request) (multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageSize+1<<10)

	if err := r.ParseMultipartForm(media.MaxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.Invalid("image must be at most %d MB", media.MaxImageSize>>20)
		}
		return nil, domain.Invalid("expected a multipart form with an %q file", imageField)
	}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		return nil, domain.Invalid("%q file is required", imageField)
	}
	if header.Size > media.MaxImageSize {
		file.Close()
		return nil, domain.Invalid("image must be at most %d MB", media.MaxImageSize>>20)
	}

	return file, nil
}

func (app *application) setImage(w http.ResponseWriter, r *http.Request, slot domain.MediaSlot) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	file, err := readImage(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	img, err := app.restaurantService.SetImage(r.Context(), id, slot, file)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, string(slot)+" uploaded", img); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadLogoHandler godoc
//
//	@Summary		Upload logo
//	@Description	JPEG, PNG, WebP or GIF up to 5 MB. The previous logo is deleted.
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Param			image			formData	file	true	"Image"
//	@Success		200				{object}	domain.Image
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/logo [put]
func (app *application) uploadLogoHandler(w http.ResponseWriter, r *http.Request) {
	app.setImage(w, r, domain.MediaLogo)
}

// uploadCoverHandler godoc
//
//	@Summary		Upload cover image
//	@Description	JPEG, PNG, WebP or GIF up to 5 MB. The previous cover is deleted.
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Param			image			formData	file	true	"Image"
//	@Success		200				{object}	domain.Image
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/cover [put]
func (app *application) uploadCoverHandler(w http.ResponseWriter, r *http.Request) {
	app.setImage(w, r, domain.MediaCover)
}

// addGalleryImageHandler godoc
//
//	@Summary	Add gallery image
//	@Tags		media
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Param		image			formData	file	true	"Image"
//	@Success	201				{array}		domain.Image
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/gallery [post]
func (app *application) addGalleryImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	file, err := readImage(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	gallery, err := app.restaurantService.AddGalleryImage(r.Context(), id, file)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "image added", gallery); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeGalleryImageHandler godoc
//
//	@Summary		Remove gallery image
//	@Description	The asset id may contain slashes.
//	@Tags			media
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Param			asset_id		path		string	true	"Asset ID"
//	@Success		200				{array}		domain.Image
//	@Failure		404				{object}	map[string]string
//	@Router			/restaurants/{restaurant_id}/gallery/{asset_id} [delete]
func (app *application) removeGalleryImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	assetID := chi.URLParam(r, "*")
	if assetID == "" {
		app.badRequestResponse(w, r, domain.Invalid("asset id is required"))
		return
	}

	gallery, err := app.restaurantService.RemoveGalleryImage(r.Context(), id, assetID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "image removed", gallery); err != nil {
		app.internalServerError(w, r, err)
	}
}
