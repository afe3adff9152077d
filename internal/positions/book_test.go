package positions

import (
	"errors"
	"path/filepath"
	"testing"

	"lp_bot/internal/models"
)

func newTestBook(t *testing.T, semantics AddSemantics) *Book {
	t.Helper()
	return NewBook(NewStore(filepath.Join(t.TempDir(), "positions.json")), semantics)
}

func TestAddUpsertReplacesPrice(t *testing.T) {
	b := newTestBook(t, AddUpsert)
	if _, _, err := b.Add("market-a", models.SideYes, 0.40); err != nil {
		t.Fatal(err)
	}
	updated, old, err := b.Add("market-a", models.SideYes, 0.45)
	if err != nil {
		t.Fatal(err)
	}
	if !updated || old != 0.40 {
		t.Fatalf("updated=%v old=%v, want updated with old 0.40", updated, old)
	}
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
}

func TestAddUpsertMatchesBySlugAndSide(t *testing.T) {
	b := newTestBook(t, AddUpsert)
	// URL and raw slug are the same market.
	b.Add("https://polymarket.com/event/foo/market-a", models.SideYes, 0.40)
	updated, _, _ := b.Add("market-a", models.SideYes, 0.42)
	if !updated {
		t.Fatal("URL and slug for the same market should collide")
	}
	// Different side is a different position.
	updated, _, _ = b.Add("market-a", models.SideNo, 0.30)
	if updated {
		t.Fatal("NO side must not collide with YES side")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestAddStrictRejectsDuplicate(t *testing.T) {
	b := newTestBook(t, AddStrict)
	b.Add("market-a", models.SideYes, 0.40)
	_, _, err := b.Add("market-a", models.SideYes, 0.45)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	// Rejection must not apply anything.
	if got := b.List()[0].LimitPrice; got != 0.40 {
		t.Fatalf("price changed to %v under strict rejection", got)
	}
}

func TestAddValidatesPriceBounds(t *testing.T) {
	b := newTestBook(t, AddUpsert)
	for _, p := range []float64{0, 1, -0.2, 1.7} {
		if _, _, err := b.Add("m", models.SideYes, p); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price %v: err = %v, want ErrInvalidPrice", p, err)
		}
	}
}

func TestEditPriceOnly(t *testing.T) {
	b := newTestBook(t, AddUpsert)
	b.Add("market-a", models.SideYes, 0.40)
	p, old, err := b.Edit(1, 0.33)
	if err != nil {
		t.Fatal(err)
	}
	if old != 0.40 || p.LimitPrice != 0.33 || p.MarketSlug != "market-a" {
		t.Fatalf("edit result %+v old %v", p, old)
	}
	if _, _, err := b.Edit(5, 0.5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemoveBulkWithInvalidIndices(t *testing.T) {
	b := newTestBook(t, AddUpsert)
	b.Add("a", models.SideYes, 0.40)
	b.Add("b", models.SideYes, 0.40)
	b.Add("c", models.SideYes, 0.40)

	removed, ignored, err := b.Remove(1, 3, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 || len(ignored) != 1 || ignored[0] != 9 {
		t.Fatalf("removed=%v ignored=%v", removed, ignored)
	}
	left := b.List()
	if len(left) != 1 || left[0].MarketSlug != "b" {
		t.Fatalf("remaining = %+v, want just b", left)
	}

	if _, _, err := b.Remove(7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("all-invalid removal: err = %v", err)
	}
}

func TestParseBulk(t *testing.T) {
	b := newTestBook(t, AddStrict) // bulk always upserts, regardless of mode
	b.Add("a", models.SideYes, 0.40)

	text := "a YES 0.45\n" +
		"b NO 0.30\n" +
		"\n" +
		"c MAYBE 0.5\n" + // bad side
		"d YES notaprice\n" + // bad price
		"e YES\n" // too few fields
	res, err := b.ParseBulk(text)
	if err != nil {
		t.Fatal(err)
	}
	if res.Added != 1 || res.Updated != 1 || res.Skipped != 3 {
		t.Fatalf("result = %+v", res)
	}
	if got := b.List()[0].LimitPrice; got != 0.45 {
		t.Fatalf("bulk upsert did not replace price, got %v", got)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	store := NewStore(path)

	in := []models.Position{
		{MarketSlug: "m1", Side: models.SideYes, LimitPrice: 0.42},
		{MarketSlug: "m2", Side: models.SideNo, LimitPrice: 0.31},
		{MarketSlug: "m3", Side: models.SideYes, LimitPrice: 0.75},
	}
	if err := store.Save(in); err != nil {
		t.Fatal(err)
	}
	out, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("loaded %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].MarketSlug != in[i].MarketSlug || out[i].Side != in[i].Side || out[i].LimitPrice != in[i].LimitPrice {
			t.Fatalf("row %d: %+v != %+v", i, out[i], in[i])
		}
	}
}

func TestStoreMissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	out, err := store.Load()
	if err != nil || len(out) != 0 {
		t.Fatalf("out=%v err=%v", out, err)
	}
}
