package monitor

import (
	"sort"

	"lp_bot/internal/helper"
	"lp_bot/internal/models"
)

// MarketState is everything the monitor needs about one market in one
// poll cycle. A nil Record marks the market as unresolvable this cycle.
type MarketState struct {
	Record *models.MarketRecord
	Books  map[models.Side]*models.OrderBook
}

// Snapshot maps normalized market slug to its current state.
type Snapshot map[string]MarketState

// AlertState records which positions are currently below the alert
// threshold. It is owned by the caller and passed in each cycle, which
// keeps Evaluate a pure function of (previous state, snapshot).
type AlertState map[models.PositionKey]bool

type Config struct {
	ThresholdCents  float64 // alert when distance crosses below this
	OutOfRangeCents float64 // informational "stale quote" marker
}

func DefaultConfig() Config {
	return Config{ThresholdCents: 1.0, OutOfRangeCents: 5.0}
}

// Evaluate computes a MonitorRow per position, the risk ordering, the
// next alert state, and the alerts to fire this cycle. Alerts are
// edge-triggered: one alert when a position crosses below the
// threshold, nothing while it stays there, re-armed once it crosses
// back above.
func Evaluate(positions []models.Position, snap Snapshot, prev AlertState, cfg Config) ([]models.MonitorRow, AlertState, []models.Alert) {
	rows := make([]models.MonitorRow, 0, len(positions))
	next := make(AlertState, len(positions))
	var alerts []models.Alert

	for i, pos := range positions {
		slug := helper.NormalizeSlug(pos.MarketSlug)
		key := models.PositionKey{Slug: slug, Side: pos.Side}

		state, ok := snap[slug]
		if !ok || state.Record == nil {
			// Delisted or typo'd slug: surface it, never drop it.
			rows = append(rows, models.MonitorRow{
				Index:      i + 1,
				Position:   pos,
				Question:   pos.MarketSlug,
				Unresolved: true,
			})
			// Carry arm state through an outage so a blip doesn't re-alert.
			if prev[key] {
				next[key] = true
			}
			continue
		}

		m := state.Record
		current := m.PriceForSide(pos.Side)
		dist := Distance(current, pos.LimitPrice)

		var book *models.OrderBook
		if state.Books != nil {
			book = state.Books[pos.Side]
		}

		row := models.MonitorRow{
			Index:         i + 1,
			Position:      pos,
			Question:      m.Question,
			URL:           m.URL(),
			CurrentPrice:  current,
			DistanceCents: dist,
			BidsBefore:    book.DollarsAtOrAbove(pos.LimitPrice),
			OutOfRange:    dist >= cfg.OutOfRangeCents || dist <= -cfg.OutOfRangeCents,
		}
		rows = append(rows, row)

		below := dist < cfg.ThresholdCents
		next[key] = below
		if below && !prev[key] {
			alerts = append(alerts, models.Alert{Row: row, Rising: current < pos.LimitPrice})
		}
	}

	sortRows(rows)
	return rows, next, alerts
}

// Distance is the signed gap, in cents, between the current price and
// the limit, measured toward the side an adverse fill comes from. A
// tracked limit is a resting bid below the market: price falling toward
// it shrinks the distance to 0; past it the distance goes negative
// (breached). A favorable move only grows it.
func Distance(current, limit float64) float64 {
	return (current - limit) * 100
}

// Rows order ascending by distance (closest to being filled first),
// ties by ascending bids-before (thinner cover is more exposed), stable
// in original position order. Unresolved rows sink to the end.
func sortRows(rows []models.MonitorRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Unresolved != b.Unresolved {
			return !a.Unresolved
		}
		if a.Unresolved {
			return false
		}
		if a.DistanceCents != b.DistanceCents {
			return a.DistanceCents < b.DistanceCents
		}
		return a.BidsBefore < b.BidsBefore
	})
}
