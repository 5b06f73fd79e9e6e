package main

import (
	"net/http"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectIDParam parses a hex ObjectID path parameter.
func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domain.Invalid("invalid %s %q", name, raw)
	}
	return id, nil
}

// objectIDs parses a list of hex ids from a request body.
func objectIDs(field string, raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, domain.Invalid("invalid %s id %q", field, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func optionalObjectID(field, raw string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domain.Invalid("invalid %s %q", field, raw)
	}
	return id, nil
}

func pageParams(r *http.Request) (int, int) {
	q := r.URL.Query()
	return query.IntParam(q.Get("page"), query.DefaultPage), query.IntParam(q.Get("limit"), query.DefaultLimit)
}
