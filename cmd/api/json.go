package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
}

// envelope is the body of every response.
type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       any                `json:"data"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func writeJson(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func readJson(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 // 1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

func writeJsonError(w http.ResponseWriter, status int, message string) error {
	return writeJson(w, status, envelope{Success: false, Message: message})
}

func (app *application) jsonRespone(w http.ResponseWriter, status int, data any) error {
	return writeJson(w, status, envelope{Success: true, Data: data})
}

func (app *application) messageResponse(w http.ResponseWriter, status int, message string, data any) error {
	return writeJson(w, status, envelope{Success: true, Message: message, Data: data})
}

func (app *application) pageResponse(w http.ResponseWriter, data any, page domain.Pagination) error {
	return writeJson(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &page})
}

// decode reads and validates a request body; it writes the 400 itself.
func (app *application) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := readJson(w, r, dst); err != nil {
		app.badRequestResponse(w, r, err)
		return false
	}
	if err := Validate.Struct(dst); err != nil {
		app.badRequestResponse(w, r, err)
		return false
	}
	return true
}
