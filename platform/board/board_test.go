package board

import (
	"testing"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

func TestNewBoardPositions(t *testing.T) {
	b := New()

	occupied := []int{
		0, 10, 30, // corners
		2, 17, 33, // community chests
		5, 15, 25, 35, // railroads
		1, 3, 6, 8, 9, 11, 13, 14, 16, 18, 19,
		21, 23, 24, 26, 27, 29, 31, 32, 34, 37, 39, // deeds
	}
	for _, pos := range occupied {
		if _, ok := b.FindSquare(pos); !ok {
			t.Errorf("no square at position %d", pos)
		}
	}
	if len(occupied) != 32 {
		t.Fatalf("expected 32 occupied positions, listed %d", len(occupied))
	}

	// Positions without behavior stay empty.
	for _, pos := range []int{4, 7, 12, 20, 22, 28, 36, 38} {
		if _, ok := b.FindSquare(pos); ok {
			t.Errorf("unexpected square at position %d", pos)
		}
	}
}

func TestCapabilities(t *testing.T) {
	b := New()

	deedSquare, _ := b.FindSquare(1)
	if _, ok := AsPurchasable(deedSquare); !ok {
		t.Error("deed should be purchasable")
	}
	if _, ok := AsMortgageable(deedSquare); !ok {
		t.Error("deed should be mortgageable")
	}
	if _, ok := AsTradable(deedSquare); !ok {
		t.Error("deed should be tradable")
	}
	if _, ok := AsDeed(deedSquare); !ok {
		t.Error("deed downcast failed")
	}

	railSquare, _ := b.FindSquare(5)
	if _, ok := AsPurchasable(railSquare); !ok {
		t.Error("railroad should be purchasable")
	}
	if _, ok := AsDeed(railSquare); ok {
		t.Error("railroad is not a deed")
	}

	chest, _ := b.FindSquare(2)
	if _, ok := AsPurchasable(chest); ok {
		t.Error("chest is not purchasable")
	}
	if _, ok := AsTradable(chest); ok {
		t.Error("chest is not tradable")
	}
}

func TestTradableIndex(t *testing.T) {
	b := New()

	if _, ok := b.Tradable(KeyDollar); !ok {
		t.Fatal("dollar tradable missing")
	}
	if _, ok := b.Tradable(TradableKey("Brown 1")); !ok {
		t.Fatal("deed tradable missing")
	}
	if _, ok := b.Tradable(TradableKey("Railroad 4")); !ok {
		t.Fatal("railroad tradable missing")
	}
	if _, ok := b.Tradable(TradableKey("Free Parking")); ok {
		t.Fatal("unexpected tradable")
	}
}

func TestResolveTradable(t *testing.T) {
	b := New()

	got, ok := b.ResolveTradable("brown 1")
	if !ok || got.DisplayName() != "Brown 1" {
		t.Fatalf("brown 1 resolved to %v, %v", got, ok)
	}

	// Typo tolerant.
	got, ok = b.ResolveTradable("ralroad 3")
	if !ok || got.DisplayName() != "Railroad 3" {
		t.Fatalf("ralroad 3 resolved to %v, %v", got, ok)
	}

	if _, ok := b.ResolveTradable("xyzzy quux"); ok {
		t.Fatal("nonsense query should not resolve")
	}
}

func TestResolveTradableStableTieBreak(t *testing.T) {
	// "railroad" matches all four railroads at the same rank; the lowest
	// board position must win on every build.
	for i := 0; i < 5; i++ {
		got, ok := New().ResolveTradable("railroad")
		if !ok || got.DisplayName() != "Railroad 1" {
			t.Fatalf("build %d: ResolveTradable(railroad) = %v, %v", i, got, ok)
		}
	}
}

func TestRentTier(t *testing.T) {
	rent := DeedRent{Base: 2, Set: 4, House1: 10, House2: 30, House3: 90, House4: 160, Hotel: 250}

	cases := []struct {
		houses int
		hotel  bool
		want   int
	}{
		{0, false, 2},
		{1, false, 10},
		{2, false, 30},
		{3, false, 90},
		{4, false, 160},
		{0, true, 250},
		{4, true, 250},
	}
	for _, c := range cases {
		if got := rentTier(rent, c.houses, c.hotel); got != c.want {
			t.Errorf("rentTier(%d houses, hotel=%v) = %d, want %d", c.houses, c.hotel, got, c.want)
		}
	}
}

func TestColorSets(t *testing.T) {
	brown := colorSets[Brown]
	if len(brown) != 2 || brown[0] != "Brown 1" || brown[1] != "Brown 2" {
		t.Fatalf("brown set = %v", brown)
	}
	if len(colorSets[Red]) != 3 {
		t.Fatalf("red set = %v", colorSets[Red])
	}
}

func TestOwnsFullSet(t *testing.T) {
	names := []string{"Brown 1", "Brown 2"}

	set := map[string]*models.Deed{
		"Brown 1": {DeedName: "Brown 1", UserId: "alice"},
		"Brown 2": {DeedName: "Brown 2", UserId: "alice"},
	}
	if !ownsFullSet(set, names, "alice") {
		t.Error("alice owns both deeds")
	}
	if ownsFullSet(set, names, "bob") {
		t.Error("bob owns nothing")
	}

	delete(set, "Brown 2")
	if ownsFullSet(set, names, "alice") {
		t.Error("unowned deed in set")
	}
}

func TestCanBuildEvenly(t *testing.T) {
	names := []string{"Brown 1", "Brown 2"}
	set := map[string]*models.Deed{
		"Brown 1": {DeedName: "Brown 1", Houses: 1},
		"Brown 2": {DeedName: "Brown 2", Houses: 2},
	}

	// Brown 1 is behind, building there is fine.
	if !canBuildEvenly(set["Brown 1"], set, names) {
		t.Error("should build on the deed that is behind")
	}
	// Brown 2 is already ahead.
	if canBuildEvenly(set["Brown 2"], set, names) {
		t.Error("should not build further ahead")
	}

	set["Brown 1"].Houses = 2
	if !canBuildEvenly(set["Brown 2"], set, names) {
		t.Error("level sets may build anywhere")
	}
}
