package positions

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"lp_bot/internal/helper"
	"lp_bot/internal/models"
)

// AddSemantics controls what /add_position does when a position for the
// same market+side already exists. Both policies have shipped at
// different times, so it stays configurable.
type AddSemantics string

const (
	AddUpsert AddSemantics = "upsert" // replace the existing price
	AddStrict AddSemantics = "strict" // reject, require an explicit edit
)

var (
	ErrInvalidPrice    = errors.New("limit price must be between 0 and 1 exclusive")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDuplicate       = errors.New("position already exists for this market/side")
)

// Book owns the ordered position list. All mutations go through the
// book's lock and are persisted before returning, so the monitor never
// observes a half-applied edit and a failed save never loses the
// previous file.
type Book struct {
	mu        sync.Mutex
	items     []models.Position
	store     *Store
	semantics AddSemantics
}

func NewBook(store *Store, semantics AddSemantics) *Book {
	if semantics != AddStrict {
		semantics = AddUpsert
	}
	return &Book{store: store, semantics: semantics}
}

// Load replaces the in-memory list from the store. Indices renumber
// densely 1..N on reload.
func (b *Book) Load() error {
	items, err := b.store.Load()
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	return nil
}

func (b *Book) SetSemantics(s AddSemantics) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s == AddStrict || s == AddUpsert {
		b.semantics = s
	}
}

// List returns a copy of the ordered positions.
func (b *Book) List() []models.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Position, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Add creates or, under upsert semantics, updates a position. It
// returns the previous price when an existing position was updated.
func (b *Book) Add(slug string, side models.Side, price float64) (updated bool, oldPrice float64, err error) {
	if price <= 0 || price >= 1 {
		return false, 0, ErrInvalidPrice
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.findLocked(slug, side); i >= 0 {
		if b.semantics == AddStrict {
			return false, 0, ErrDuplicate
		}
		old := b.items[i].LimitPrice
		b.items[i].LimitPrice = price
		return true, old, b.saveLocked()
	}

	b.items = append(b.items, models.Position{
		MarketSlug: slug,
		Side:       side,
		LimitPrice: price,
	})
	return false, 0, b.saveLocked()
}

// Edit changes the price of the position at the given 1-based index.
// Market and side are immutable; remove and re-add to change them.
func (b *Book) Edit(index int, price float64) (models.Position, float64, error) {
	if price <= 0 || price >= 1 {
		return models.Position{}, 0, ErrInvalidPrice
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 1 || index > len(b.items) {
		return models.Position{}, 0, errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", index, len(b.items))
	}
	old := b.items[index-1].LimitPrice
	b.items[index-1].LimitPrice = price
	return b.items[index-1], old, b.saveLocked()
}

// Remove deletes the positions at the given 1-based indices and returns
// the removed entries (in removal order) plus any ignored out-of-range
// indices. Nothing is applied when every index is invalid.
func (b *Book) Remove(indices ...int) (removed []models.Position, ignored []int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := map[int]bool{}
	valid := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 1 || i > len(b.items) {
			ignored = append(ignored, i)
			continue
		}
		if !seen[i] {
			seen[i] = true
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return nil, ignored, ErrIndexOutOfRange
	}
	// Highest first so earlier removals don't shift later indices.
	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	for _, i := range valid {
		removed = append(removed, b.items[i-1])
		b.items = append(b.items[:i-1], b.items[i:]...)
	}
	return removed, ignored, b.saveLocked()
}

// BulkResult summarizes one multi-line bulk add.
type BulkResult struct {
	Added   int
	Updated int
	Skipped int
}

// ParseBulk consumes "<slug-or-url> <YES/NO> <price>" lines. Malformed
// lines are counted, not fatal; valid lines always apply with upsert
// semantics (bulk input is an operator dump of their real orders, so
// strict-mode rejection would be noise here).
func (b *Book) ParseBulk(text string) (BulkResult, error) {
	var res BulkResult
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			res.Skipped++
			continue
		}
		side, err := models.ParseSide(parts[1])
		if err != nil {
			res.Skipped++
			continue
		}
		price, err := strconv.ParseFloat(parts[2], 64)
		if err != nil || price <= 0 || price >= 1 {
			res.Skipped++
			continue
		}
		if i := b.findLocked(parts[0], side); i >= 0 {
			b.items[i].LimitPrice = price
			res.Updated++
		} else {
			b.items = append(b.items, models.Position{MarketSlug: parts[0], Side: side, LimitPrice: price})
			res.Added++
		}
	}
	if res.Added == 0 && res.Updated == 0 {
		return res, nil
	}
	return res, b.saveLocked()
}

func (b *Book) findLocked(slug string, side models.Side) int {
	norm := helper.NormalizeSlug(slug)
	for i, p := range b.items {
		if p.Side == side && helper.NormalizeSlug(p.MarketSlug) == norm {
			return i
		}
	}
	return -1
}

func (b *Book) saveLocked() error {
	if b.store == nil {
		return nil
	}
	return b.store.Save(b.items)
}

// FormatEntry renders a position the way commands echo it back.
func FormatEntry(index int, p models.Position) string {
	return fmt.Sprintf("%d. %s @ %.3f on %s", index, p.Side, p.LimitPrice, p.MarketSlug)
}
