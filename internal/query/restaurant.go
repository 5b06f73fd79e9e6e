// Package query turns untrusted restaurant listing parameters into a MongoDB
// filter, sort and projection. Field names only ever come from the
// whitelists declared here.
package query

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit inside int for any allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

var FoodTypes = []string{"Vegetarian", "Non-Vegetarian", "Vegan", "Eggitarian", "Jain"}

var CuisineTypes = []string{
	"North Indian", "South Indian", "Chinese", "Italian", "Mexican", "Thai",
	"Continental", "Mughlai", "Street Food", "Fast Food", "Desserts", "Beverages",
	"Bakery", "Biryani", "Seafood", "Japanese", "Korean", "Mediterranean",
}

// sortFields maps public sort keys to stored paths.
var sortFields = map[string]string{
	"name":          "name",
	"rating":        "rating.average",
	"rating_count":  "rating.count",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
	"view_count":    "view_count",
	"order_count":   "order_count",
	"delivery_fee":  "delivery_details.delivery_fee",
	"delivery_time": "delivery_details.estimated_time_minutes",
	"min_order":     "delivery_details.min_order_amount",
}

// projectionFields are the top-level fields a caller may select.
var projectionFields = map[string]bool{
	"name":                true,
	"slug":                true,
	"description":         true,
	"owner":               true,
	"managers":            true,
	"contact":             true,
	"location":            true,
	"food_type":           true,
	"cuisine_type":        true,
	"is_pure_veg":         true,
	"opening_hours":       true,
	"holidays":            true,
	"is_open_now":         true,
	"is_active":           true,
	"is_busy":             true,
	"is_accepting_orders": true,
	"is_verified":         true,
	"menu":                true,
	"offers":              true,
	"delivery_details":    true,
	"delivery_slots":      true,
	"media":               true,
	"rating":              true,
	"view_count":          true,
	"order_count":         true,
	"created_at":          true,
	"updated_at":          true,
}

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Restaurants is a validated listing query.
type Restaurants struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Page       int
	Limit      int
}

// Skip is the number of documents before the requested page.
func (q Restaurants) Skip() int64 {
	return Skip(q.Page, q.Limit)
}

// Skip is the offset of a clamped page.
func Skip(page, limit int) int64 {
	page, limit = Clamp(page, limit)
	return int64(page-1) * int64(limit)
}

// Build validates params and assembles the listing query.
func Build(params url.Values) (Restaurants, error) {
	q := Restaurants{
		Filter:     bson.M{},
		Page:       IntParam(params.Get("page"), DefaultPage),
		Limit:      IntParam(params.Get("limit"), DefaultLimit),
		Sort:       buildSort(params.Get("sort")),
		Projection: buildProjection(params.Get("fields")),
	}
	q.Page, q.Limit = Clamp(q.Page, q.Limit)

	if search := strings.TrimSpace(params.Get("search")); search != "" {
		if id, err := primitive.ObjectIDFromHex(search); err == nil {
			q.Filter["$or"] = bson.A{
				bson.M{"_id": id},
				bson.M{"owner": id},
				bson.M{"managers": id},
			}
		} else {
			q.Filter["$text"] = bson.M{"$search": search}
		}
	}

	if raw := params.Get("foodType"); raw != "" {
		values, err := whitelisted(raw, FoodTypes)
		if err != nil {
			return Restaurants{}, domain.Invalid("invalid foodType %q: allowed values are %s", raw, strings.Join(FoodTypes, ", "))
		}
		if len(values) > 0 {
			q.Filter["food_type"] = bson.M{"$in": values}
		}
	}

	if raw := params.Get("cuisineType"); raw != "" {
		values, err := whitelisted(raw, CuisineTypes)
		if err != nil {
			return Restaurants{}, domain.Invalid("invalid cuisineType %q: allowed values are %s", raw, strings.Join(CuisineTypes, ", "))
		}
		if len(values) > 0 {
			q.Filter["cuisine_type"] = bson.M{"$in": values}
		}
	}

	idParams := []struct {
		param string
		field string
	}{
		{"manager", "managers"},
		{"owner", "owner"},
		{"menu", "menu._id"},
	}
	for _, p := range idParams {
		raw := params.Get(p.param)
		if raw == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return Restaurants{}, domain.Invalid("invalid %s id %q", p.param, raw)
		}
		q.Filter[p.field] = id
	}

	if contact := strings.TrimSpace(params.Get("contact")); contact != "" {
		switch {
		case phonePattern.MatchString(contact):
			q.Filter["contact.phone"] = contact
		case emailPattern.MatchString(contact):
			q.Filter["contact.email"] = exactFold(contact)
		}
	}

	if city := strings.TrimSpace(params.Get("city")); city != "" {
		q.Filter["location.city"] = primitive.Regex{Pattern: regexp.QuoteMeta(city), Options: "i"}
	}

	boolParams := []struct {
		param string
		field string
	}{
		{"isPureVeg", "is_pure_veg"},
		{"isActive", "is_active"},
		{"isVerified", "is_verified"},
	}
	for _, p := range boolParams {
		raw := params.Get(p.param)
		if raw == "" {
			continue
		}
		b, err := literalBool(raw)
		if err != nil {
			return Restaurants{}, domain.Invalid("%s must be \"true\" or \"false\", got %q", p.param, raw)
		}
		q.Filter[p.field] = b
	}

	return q, nil
}

// Page is a bare paginated query with the default sort and projection, for
// listings whose filter is fixed by the caller (city, zone).
func Page(filter bson.M, page, limit int) Restaurants {
	page, limit = Clamp(page, limit)
	return Restaurants{
		Filter:     filter,
		Sort:       buildSort(""),
		Projection: buildProjection(""),
		Page:       page,
		Limit:      limit,
	}
}

// IntParam parses a pagination value, falling back to def when it is not a
// number.
func IntParam(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}

// Clamp forces page into [1, MaxPage] and limit into [1, MaxLimit].
func Clamp(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func buildSort(raw string) bson.D {
	var sort bson.D
	seen := make(map[string]bool)
	for _, pair := range splitList(raw) {
		field, dir, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		path, allowed := sortFields[strings.TrimSpace(field)]
		if !allowed || seen[path] {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "asc":
			sort = append(sort, bson.E{Key: path, Value: 1})
			seen[path] = true
		case "desc":
			sort = append(sort, bson.E{Key: path, Value: -1})
			seen[path] = true
		}
	}

	if len(sort) == 0 {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return sort
}

func buildProjection(raw string) bson.M {
	projection := bson.M{}
	for _, field := range splitList(raw) {
		if projectionFields[field] {
			projection[field] = 1
		}
	}

	if len(projection) == 0 {
		return bson.M{"version": 0}
	}
	return projection
}

// exactFold matches the whole stored value case-insensitively; emails are
// stored as typed.
func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func whitelisted(raw string, allowed []string) ([]string, error) {
	values := splitList(raw)
	for _, v := range values {
		if !contains(allowed, v) {
			return nil, domain.Invalid("%q is not an allowed value", v)
		}
	}
	return values, nil
}

func literalBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, domain.Invalid("not a boolean literal: %q", raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
