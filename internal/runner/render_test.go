package runner

import (
	"bytes"
	"strings"
	"testing"

	"lp_bot/internal/models"
)

func TestMonitorRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf) // not a TTY: no escape codes
	rows := []models.MonitorRow{
		{
			Index:         1,
			Position:      models.Position{MarketSlug: "fed-cut", Side: models.SideYes, LimitPrice: 0.40},
			Question:      "Will Fed cut rates in March?",
			CurrentPrice:  0.47,
			DistanceCents: 7.0,
			BidsBefore:    1234.5,
		},
		{
			Index:      2,
			Position:   models.Position{MarketSlug: "gone-market", Side: models.SideNo, LimitPrice: 0.30},
			Unresolved: true,
		},
	}
	r.Monitor(rows)
	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Fatalf("expected no ANSI codes for non-TTY sink: %q", out)
	}
	if !strings.Contains(out, "OUT OF RANGE") {
		t.Errorf("7¢ row should be flagged out of range: %q", out)
	}
	if !strings.Contains(out, "bids before: $1,234.50") {
		t.Errorf("missing bids column: %q", out)
	}
	if !strings.Contains(out, "market not found") {
		t.Errorf("unresolved row should say so: %q", out)
	}
}

func TestDistanceLabelBuckets(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	cases := map[float64]string{
		0.5:  "0.5¢",
		1.8:  "1.8¢",
		3.0:  "3.0¢",
		6.0:  "6.0¢ OUT OF RANGE",
		-6.0: "-6.0¢ OUT OF RANGE",
	}
	for dist, want := range cases {
		row := models.MonitorRow{DistanceCents: dist}
		if got := r.distanceLabel(row); got != want {
			t.Errorf("distanceLabel(%v) = %q, want %q", dist, got, want)
		}
	}
}
