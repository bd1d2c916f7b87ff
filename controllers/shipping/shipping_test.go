package shippingControllers

import (
	"testing"

	"github.com/Myakey/onlineShop-sub000/courier"
)

func TestFilterOptionsKeepsPreferredServices(t *testing.T) {
	raw := []courier.CostOption{
		{Courier: "jne", Service: "REG", Cost: 12000},
		{Courier: "jne", Service: "JTR", Cost: 9000}, // trucking, filtered
		{Courier: "pos", Service: "REG", Cost: 8000}, // courier not whitelisted
		{Courier: "sicepat", Service: "BEST", Cost: 15000},
		{Courier: "jnt", Service: "EZ", Cost: 10000},
	}

	got := FilterOptions(raw)
	if len(got) != 3 {
		t.Fatalf("filtered = %d options, want 3: %+v", len(got), got)
	}
	// Cheapest first.
	for i := 1; i < len(got); i++ {
		if got[i-1].Cost > got[i].Cost {
			t.Fatalf("options not sorted by cost: %+v", got)
		}
	}
	if got[0].Courier != "jnt" || got[0].Cost != 10000 {
		t.Errorf("cheapest = %+v, want jnt EZ 10000", got[0])
	}
}

func TestFilterOptionsFallsBackToRaw(t *testing.T) {
	raw := []courier.CostOption{
		{Courier: "pos", Service: "NEXTDAY", Cost: 30000},
		{Courier: "wahana", Service: "NORMAL", Cost: 7000},
	}

	got := FilterOptions(raw)
	if len(got) != 2 {
		t.Fatalf("fallback should keep the raw options, got %d", len(got))
	}
	if got[0].Cost != 7000 {
		t.Errorf("fallback not sorted by cost: %+v", got)
	}
}

func TestFilterOptionsFallbackIsCapped(t *testing.T) {
	raw := make([]courier.CostOption, 0, rawFallbackCount+3)
	for i := 0; i < rawFallbackCount+3; i++ {
		raw = append(raw, courier.CostOption{Courier: "pos", Service: "NEXTDAY", Cost: int64(1000 * (i + 1))})
	}
	got := FilterOptions(raw)
	if len(got) != rawFallbackCount {
		t.Fatalf("fallback = %d options, want %d", len(got), rawFallbackCount)
	}
}

func TestCacheKeyIgnoresItemOrder(t *testing.T) {
	a := CacheKey(7, []ShippingItemInput{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}})
	b := CacheKey(7, []ShippingItemInput{{ProductID: 3, Quantity: 1}, {ProductID: 1, Quantity: 2}})
	if a != b {
		t.Errorf("same cart in different order must share a key: %q vs %q", a, b)
	}
}

func TestCacheKeyDistinguishesCarts(t *testing.T) {
	a := CacheKey(7, []ShippingItemInput{{ProductID: 1, Quantity: 2}})
	b := CacheKey(7, []ShippingItemInput{{ProductID: 1, Quantity: 3}})
	c := CacheKey(8, []ShippingItemInput{{ProductID: 1, Quantity: 2}})
	if a == b || a == c {
		t.Errorf("different carts/destinations must not collide: %q %q %q", a, b, c)
	}
}
