package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)

	if got, err := c.Get(ctx, "k"); err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	now = now.Add(time.Minute)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired key: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	c.Set(ctx, "a", []byte("1"), time.Hour)
	c.Set(ctx, "b", []byte("2"), time.Hour)

	c.Delete(ctx, "a", "b", "missing")

	for _, k := range []string{"a", "b"} {
		if _, err := c.Get(ctx, k); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s still cached", k)
		}
	}
}

func TestJSONHelpers(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	type item struct {
		Name string `json:"name"`
	}
	if err := SetJSON(ctx, c, "items", []item{{"Dosa Corner"}}, time.Hour); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got []item
	if err := GetJSON(ctx, c, "items", &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Dosa Corner" {
		t.Errorf("got %+v", got)
	}

	if err := GetJSON(ctx, c, "missing", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key: err = %v", err)
	}
}
