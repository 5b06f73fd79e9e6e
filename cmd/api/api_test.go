package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/cache"
	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"github.com/TejashHub/FoodDelivery-sub001/internal/ratelimiter"
	"github.com/TejashHub/FoodDelivery-sub001/internal/repo/repotest"
	"github.com/TejashHub/FoodDelivery-sub001/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeStore struct {
	uploaded []string
}

func (s *fakeStore) Upload(_ context.Context, assetID string, r io.Reader, _ string) (domain.Image, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return domain.Image{}, err
	}
	s.uploaded = append(s.uploaded, assetID)
	return domain.Image{URL: "https://cdn.test/" + assetID, AssetID: assetID}, nil
}

func (s *fakeStore) Delete(context.Context, string) error { return nil }

type fakeStorage struct {
	pingErr error
}

func (s *fakeStorage) Ping(context.Context) error  { return s.pingErr }
func (s *fakeStorage) Close(context.Context) error { return nil }

type testApp struct {
	app         *application
	handler     http.Handler
	coupons     *repotest.Coupons
	restaurants *repotest.Restaurants
	store       *fakeStore
}

func newTestApp(t *testing.T, restaurants ...domain.Restaurant) *testApp {
	t.Helper()

	logger := zap.NewNop().Sugar()
	couponRepo := repotest.NewCoupons()
	restaurantRepo := repotest.NewRestaurants(restaurants...)
	store := &fakeStore{}

	app := &application{
		config: config{
			addr: ":0",
			env:  "test",
		},
		logger:        logger,
		storage:       &fakeStorage{},
		broker:        queue.NewMemoryBroker(),
		couponService: service.NewCouponService(couponRepo, logger),
		restaurantService: service.NewRestaurantService(
			restaurantRepo,
			store,
			queue.NewMemoryBroker(),
			cache.NewMemoryCache(),
			nil,
			time.UTC,
			logger,
		),
	}

	return &testApp{
		app:         app,
		handler:     app.mount(),
		coupons:     couponRepo,
		restaurants: restaurantRepo,
		store:       store,
	}
}

func (ta *testApp) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: response is not an envelope: %v (%s)", method, path, err, rr.Body.String())
	}
	return rr, env
}

func couponBody(code string) string {
	from := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	until := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	return `{"code":"` + code + `","discount_type":"percentage","discount_value":10,` +
		`"valid_from":"` + from + `","valid_until":"` + until + `","max_uses":1,"min_order_value":100}`
}

func TestHealthCheck(t *testing.T) {
	ta := newTestApp(t)

	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	ta.app.storage = &fakeStorage{pingErr: errors.New("connection refused")}
	rr = httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

func TestHealthCheck_BrokerDown(t *testing.T) {
	ta := newTestApp(t)
	ta.app.broker.Close()

	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health.Dependencies["queue"].Status != "error" || health.Dependencies["database"].Status != "ok" {
		t.Errorf("dependencies = %+v", health.Dependencies)
	}
}

func TestCouponLifecycle(t *testing.T) {
	ta := newTestApp(t)
	user := primitive.NewObjectID().Hex()

	rr, env := ta.do(t, http.MethodPost, "/api/v1/coupons", couponBody("welcome10"))
	if rr.Code != http.StatusCreated || !env.Success {
		t.Fatalf("create: status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr, _ = ta.do(t, http.MethodPost, "/api/v1/coupons", couponBody("WELCOME10"))
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate code: status = %d, want 409", rr.Code)
	}

	rr, env = ta.do(t, http.MethodPost, "/api/v1/coupons/apply",
		`{"code":"welcome10","user_id":"`+user+`","order_value":500}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("apply: status = %d, body %s", rr.Code, rr.Body.String())
	}
	result := env.Data.(map[string]any)
	if result["discount"] != 50.0 || result["final_amount"] != 450.0 {
		t.Errorf("apply result = %v", result)
	}

	rr, env = ta.do(t, http.MethodPost, "/api/v1/coupons/apply",
		`{"code":"welcome10","user_id":"`+user+`","order_value":50}`)
	if rr.Code != http.StatusBadRequest || env.Success {
		t.Errorf("below minimum: status = %d, want 400", rr.Code)
	}

	rr, _ = ta.do(t, http.MethodPost, "/api/v1/coupons/redeem", `{"code":"welcome10","user_id":"`+user+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("redeem: status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr, _ = ta.do(t, http.MethodPost, "/api/v1/coupons/redeem", `{"code":"welcome10","user_id":"`+user+`"}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("second redeem: status = %d, want 409", rr.Code)
	}
}

func TestValidateCoupon(t *testing.T) {
	ta := newTestApp(t)
	ta.do(t, http.MethodPost, "/api/v1/coupons", couponBody("FESTIVE25"))

	tests := []struct {
		path       string
		wantStatus int
		wantValid  bool
	}{
		{"/api/v1/coupons/validate?code=festive25", http.StatusOK, true},
		{"/api/v1/coupons/validate?code=NOPE404", http.StatusOK, false},
		{"/api/v1/coupons/validate", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		rr, env := ta.do(t, http.MethodGet, tt.path, "")
		if rr.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.path, rr.Code, tt.wantStatus)
			continue
		}
		if tt.wantStatus != http.StatusOK {
			continue
		}
		if valid := env.Data.(map[string]any)["valid"]; valid != tt.wantValid {
			t.Errorf("%s: valid = %v, want %v", tt.path, valid, tt.wantValid)
		}
	}
}

func TestRequestBodyRejected(t *testing.T) {
	ta := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"code":"ABCDEF","is_admin":true}`},
		{"trailing data", couponBody("ABCDEF") + `{}`},
		{"empty", ""},
		{"failed validation", `{"code":"AB","discount_type":"bogus"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			ta.handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (%s)", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestNotFoundMapping(t *testing.T) {
	ta := newTestApp(t)
	missing := primitive.NewObjectID().Hex()

	for _, path := range []string{
		"/api/v1/coupons/" + missing,
		"/api/v1/restaurants/" + missing,
		"/api/v1/restaurants/" + missing + "/status",
		"/api/v1/restaurants/slug/nowhere",
	} {
		rr, env := ta.do(t, http.MethodGet, path, "")
		if rr.Code != http.StatusNotFound || env.Success {
			t.Errorf("%s: status = %d, want 404", path, rr.Code)
		}
	}

	if rr, _ := ta.do(t, http.MethodGet, "/api/v1/coupons/not-an-id", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", rr.Code)
	}
}

func TestRestaurantCreateAndList(t *testing.T) {
	ta := newTestApp(t)

	body := `{"name":"Tandoori Nights","food_type":["Non-Vegetarian"],"cuisine_type":["North Indian"],` +
		`"location":{"address":"12 MG Road","city":"Bengaluru","zone":"central","coordinates":[77.59,12.97]},` +
		`"opening_hours":[{"day":"Monday","open":"09:00","close":"22:00"}]}`
	rr, env := ta.do(t, http.MethodPost, "/api/v1/restaurants", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rr.Code, rr.Body.String())
	}
	if slug := env.Data.(map[string]any)["slug"]; slug != "tandoori-nights" {
		t.Errorf("slug = %v", slug)
	}

	rr, env = ta.do(t, http.MethodGet, "/api/v1/restaurants?page=1&limit=5", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rr.Code)
	}
	if env.Pagination == nil || env.Pagination.Total != 1 || env.Pagination.Limit != 5 {
		t.Errorf("pagination = %+v", env.Pagination)
	}

	for _, bad := range []string{"?foodType=Pescatarian", "?isPureVeg=yes", "?owner=xyz"} {
		if rr, _ := ta.do(t, http.MethodGet, "/api/v1/restaurants"+bad, ""); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", bad, rr.Code)
		}
	}
}

func TestRestaurantStatusEndpoints(t *testing.T) {
	id := primitive.NewObjectID()
	ta := newTestApp(t, domain.Restaurant{ID: id, Name: "Dosa Corner", Slug: "dosa-corner", IsActive: true})
	base := "/api/v1/restaurants/" + id.Hex()

	if rr, _ := ta.do(t, http.MethodPatch, base+"/status", `{}`); rr.Code != http.StatusBadRequest {
		t.Errorf("empty status update: status = %d, want 400", rr.Code)
	}

	rr, _ := ta.do(t, http.MethodPut, base+"/opening-hours",
		`{"opening_hours":[{"day":"Monday","open":"09:00","close":"22:00"},{"day":"Funday","open":"09:00","close":"22:00"}]}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad day: status = %d, want 400", rr.Code)
	}
	stored, _ := ta.restaurants.Stored(id)
	if len(stored.OpeningHours) != 0 {
		t.Errorf("rejected batch must not be stored, got %v", stored.OpeningHours)
	}

	rr, env := ta.do(t, http.MethodGet, base+"/is-open", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("is-open: status = %d", rr.Code)
	}
	if open := env.Data.(map[string]any)["is_open"]; open != false {
		t.Errorf("is_open = %v, want false", open)
	}
}

func TestRateLimiter(t *testing.T) {
	ta := newTestApp(t)
	ta.app.config.rateLimiter = ratelimiter.Config{Enabled: true, RequestsPerTimeFrame: 2, TimeFrame: time.Minute}
	ta.app.rateLimiter = ratelimiter.NewFixedWindowLimiter(2, time.Minute)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		ta.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	other := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	other.RemoteAddr = "198.51.100.7:4000"
	rr = httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, other)
	if rr.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", rr.Code)
	}
}

func multipartImage(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "logo.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadLogo(t *testing.T) {
	id := primitive.NewObjectID()
	ta := newTestApp(t, domain.Restaurant{ID: id, Name: "Dosa Corner", Slug: "dosa-corner", IsActive: true})
	path := "/api/v1/restaurants/" + id.Hex() + "/logo"
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	body, contentType := multipartImage(t, "image", png)
	req := httptest.NewRequest(http.MethodPut, path, body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if len(ta.store.uploaded) != 1 {
		t.Fatalf("uploaded = %v", ta.store.uploaded)
	}
	stored, _ := ta.restaurants.Stored(id)
	if stored.Media.Logo == nil || stored.Media.Logo.AssetID != ta.store.uploaded[0] {
		t.Errorf("logo = %+v", stored.Media.Logo)
	}

	tests := []struct {
		name    string
		field   string
		content []byte
	}{
		{"wrong field", "file", png},
		{"not an image", "image", []byte("just some text, not an image at all")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartImage(t, tt.field, tt.content)
			req := httptest.NewRequest(http.MethodPut, path, body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()
			ta.handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestManagers(t *testing.T) {
	id := primitive.NewObjectID()
	ta := newTestApp(t, domain.Restaurant{ID: id, Name: "Dosa Corner", Slug: "dosa-corner", IsActive: true})
	base := "/api/v1/restaurants/" + id.Hex() + "/managers"
	manager := primitive.NewObjectID().Hex()

	rr, env := ta.do(t, http.MethodPost, base, `{"manager":"`+manager+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("add: status = %d, body %s", rr.Code, rr.Body.String())
	}
	if managers := env.Data.([]any); len(managers) != 1 || managers[0] != manager {
		t.Errorf("managers = %v", managers)
	}

	if rr, _ := ta.do(t, http.MethodPost, base, `{"manager":"nope"}`); rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", rr.Code)
	}

	rr, _ = ta.do(t, http.MethodDelete, base+"/"+manager, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("remove: status = %d", rr.Code)
	}
	stored, _ := ta.restaurants.Stored(id)
	if len(stored.Managers) != 0 {
		t.Errorf("managers after remove = %v", stored.Managers)
	}
}

func TestRateRestaurant(t *testing.T) {
	id := primitive.NewObjectID()
	ta := newTestApp(t, domain.Restaurant{ID: id, Name: "Dosa Corner", Slug: "dosa-corner", IsActive: true})
	path := "/api/v1/restaurants/" + id.Hex() + "/rating"

	if rr, _ := ta.do(t, http.MethodPost, path, `{"rating":6}`); rr.Code != http.StatusBadRequest {
		t.Errorf("out of range: status = %d, want 400", rr.Code)
	}

	rr, env := ta.do(t, http.MethodPost, path, `{"rating":4}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if avg := env.Data.(map[string]any)["average"]; avg != 4.0 {
		t.Errorf("average = %v, want 4", avg)
	}
}

func TestUpdateCouponMaxUses(t *testing.T) {
	ta := newTestApp(t)

	rr, env := ta.do(t, http.MethodPost, "/api/v1/coupons", couponBody("LIMITED50"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rr.Code, rr.Body.String())
	}
	path := "/api/v1/coupons/" + env.Data.(map[string]any)["id"].(string)

	rr, env = ta.do(t, http.MethodPatch, path, `{"discount_value":15}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("partial update: status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got := env.Data.(map[string]any)["max_uses"]; got != 1.0 {
		t.Errorf("absent max_uses must stay 1, got %v", got)
	}

	if rr, _ := ta.do(t, http.MethodPatch, path, `{"max_uses":0}`); rr.Code != http.StatusBadRequest {
		t.Errorf("max_uses 0: status = %d, want 400", rr.Code)
	}

	rr, env = ta.do(t, http.MethodPatch, path, `{"max_uses":null}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("clear: status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got, ok := env.Data.(map[string]any)["max_uses"]; !ok || got != nil {
		t.Errorf("max_uses = %v, want null", got)
	}

	rr, env = ta.do(t, http.MethodPatch, path, `{"max_uses":3}`)
	if rr.Code != http.StatusOK || env.Data.(map[string]any)["max_uses"] != 3.0 {
		t.Errorf("set again: status = %d, data %v", rr.Code, env.Data)
	}
}

func TestEnvelopeAlwaysCarriesData(t *testing.T) {
	ta := newTestApp(t)

	rr, env := ta.do(t, http.MethodPost, "/api/v1/coupons", couponBody("BYEBYE10"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rr.Code)
	}
	id := env.Data.(map[string]any)["id"].(string)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/coupons/"+id, nil)
	rr = httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rr.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	data, ok := raw["data"]
	if !ok {
		t.Fatalf("data missing from %s", rr.Body.String())
	}
	if string(data) != "null" {
		t.Errorf("data = %s, want null", data)
	}
	if string(raw["success"]) != "true" {
		t.Errorf("success = %s", raw["success"])
	}
}
