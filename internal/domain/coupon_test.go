package domain

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCouponDerivedState(t *testing.T) {
	user := primitive.NewObjectID()
	restaurant := primitive.NewObjectID()
	maxUses := 2

	c := &Coupon{
		ValidFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		MaxUses:    &maxUses,
		UsedBy:     []primitive.ObjectID{user},
	}

	if !c.UsedByUser(user) {
		t.Error("UsedByUser should report an existing redemption")
	}
	if c.UsedByUser(primitive.NewObjectID()) {
		t.Error("UsedByUser should be false for other users")
	}
	if !c.AppliesTo(restaurant) {
		t.Error("empty restaurant list applies everywhere")
	}

	c.ApplicableRestaurants = []primitive.ObjectID{primitive.NewObjectID()}
	if c.AppliesTo(restaurant) {
		t.Error("restaurant outside the list should not apply")
	}

	if !c.InWindow(c.ValidFrom) || !c.InWindow(c.ValidUntil) {
		t.Error("window bounds are inclusive")
	}
	if c.InWindow(c.ValidUntil.Add(time.Second)) {
		t.Error("time after ValidUntil is outside the window")
	}

	if c.Exhausted() {
		t.Error("one of two uses consumed should not be exhausted")
	}
	c.UsedBy = append(c.UsedBy, primitive.NewObjectID())
	if !c.Exhausted() {
		t.Error("coupon at max uses should be exhausted")
	}

	c.MaxUses = nil
	if c.Exhausted() {
		t.Error("unlimited coupon is never exhausted")
	}
}
