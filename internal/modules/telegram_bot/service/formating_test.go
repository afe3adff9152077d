package service

import (
	"strings"
	"testing"

	"lp_bot/internal/models"
)

func TestFormatMonitorRows(t *testing.T) {
	rows := []models.MonitorRow{
		{
			Index:         2,
			Position:      models.Position{MarketSlug: "fed-cut", Side: models.SideYes, LimitPrice: 0.40},
			Question:      "Will Fed cut rates in March?",
			CurrentPrice:  0.412,
			DistanceCents: 1.2,
			BidsBefore:    1500,
		},
		{
			Index:      5,
			Position:   models.Position{MarketSlug: "dead-market", Side: models.SideNo, LimitPrice: 0.25},
			Question:   "dead-market",
			Unresolved: true,
		},
	}
	blocks := formatMonitorRows(rows)
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if !strings.Contains(blocks[0], "Distance: <b>1.2¢</b>") {
		t.Errorf("missing distance: %q", blocks[0])
	}
	if !strings.Contains(blocks[0], "Bids before: <b>$1,500.00</b>") {
		t.Errorf("missing bids: %q", blocks[0])
	}
	if !strings.Contains(blocks[1], "Current: <b>n/a</b>") {
		t.Errorf("unresolved row should show n/a: %q", blocks[1])
	}
}

func TestFormatMonitorRowsOutOfRange(t *testing.T) {
	rows := []models.MonitorRow{{
		Index:         1,
		Position:      models.Position{Side: models.SideYes, LimitPrice: 0.40},
		Question:      "Q",
		CurrentPrice:  0.47,
		DistanceCents: 7.0,
		OutOfRange:    true,
	}}
	if got := formatMonitorRows(rows)[0]; !strings.Contains(got, "7.0¢ OUT OF RANGE") {
		t.Fatalf("missing out-of-range marker: %q", got)
	}
}
