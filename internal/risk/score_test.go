package risk

import (
	"testing"
	"time"

	"lp_bot/internal/models"
)

func hoursFromNow(now time.Time, h float64) *time.Time {
	d := now.Add(time.Duration(h * float64(time.Hour)))
	return &d
}

func TestTimeProximityRiskBands(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		hours float64
		want  int
	}{
		{-5, 100},
		{-0.1, 100},
		{1, 98},
		{12, 90},
		{48, 75},
		{100, 55},
		{500, 35},
		{1000, 20},
		{2160, 8},
		{9000, 8},
	}
	for _, c := range cases {
		got := TimeProximityRisk(now, hoursFromNow(now, c.hours), nil)
		if got != c.want {
			t.Fatalf("TimeProximityRisk(%vh) = %d, want %d", c.hours, got, c.want)
		}
	}
}

func TestTimeProximityRiskMonotonic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prev := 101
	for h := -48.0; h < 4000; h += 7.3 {
		got := TimeProximityRisk(now, hoursFromNow(now, h), nil)
		if got > prev {
			t.Fatalf("time risk increased at %vh: %d > %d", h, got, prev)
		}
		prev = got
	}
}

func TestTimeProximityRiskNearerDateWins(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	far := hoursFromNow(now, 5000)
	spike := hoursFromNow(now, 10)
	if got := TimeProximityRisk(now, far, spike); got != 90 {
		t.Fatalf("known spike date should win: got %d, want 90", got)
	}
	if got := TimeProximityRisk(now, nil, nil); got != 40 {
		t.Fatalf("no dates should yield neutral 40, got %d", got)
	}
}

func TestScoreCompositeInRange(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Worst case everywhere: imminent binary, extreme price, no
	// liquidity, no competition. Amplification must stay capped.
	m := &models.MarketRecord{
		Question: "Will the president resign tomorrow?",
		EndDate:  hoursFromNow(now, 1),
		YesPrice: 0.99,
		NoPrice:  0.01,
	}
	c := Classify(m.Question)
	rb := ScoreAt(now, m, c)
	if rb.Composite < 0 || rb.Composite > 100 {
		t.Fatalf("composite out of range: %v", rb.Composite)
	}
	if rb.SpikeRisk > 100 {
		t.Fatalf("spike not capped: %v", rb.SpikeRisk)
	}
	// 85*1.15 is 97.74999… in float64, so one-decimal rounding gives
	// 97.7, under the cap.
	if rb.SpikeRisk != 97.7 {
		t.Fatalf("amplified spike = %v, want 97.7", rb.SpikeRisk)
	}
}

func TestScoreNoAmplificationWhenFar(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := &models.MarketRecord{
		Question: "Will the president resign by 2027?",
		EndDate:  hoursFromNow(now, 5000),
		YesPrice: 0.5,
		NoPrice:  0.5,
	}
	rb := ScoreAt(now, m, Classify(m.Question))
	if rb.SpikeRisk != 85 {
		t.Fatalf("spike = %v, want unamplified 85", rb.SpikeRisk)
	}
}

// End-to-end fixture: scheduled Fed market 40 days out.
func TestScoreFedExample(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := now.Add(40 * 24 * time.Hour)
	m := &models.MarketRecord{
		Question:        "Will Fed cut rates in March?",
		EndDate:         &end,
		YesPrice:        0.145,
		NoPrice:         0.855,
		Liquidity:       255980,
		Competitiveness: 0.888,
	}
	c := Classify(m.Question)
	if c.Category != models.CategoryScheduled || c.BaseSpikeRisk != 65 {
		t.Fatalf("classification = %+v", c)
	}
	rb := ScoreAt(now, m, c)
	if rb.TimeRisk != 20 { // ~960h falls in the <2160 band
		t.Fatalf("time risk = %d, want 20", rb.TimeRisk)
	}
	// extremity 0.355*80=28.4, liquidity 5, competition 3.36
	if rb.AdverseSelectionRisk != 36.8 {
		t.Fatalf("adverse = %v, want 36.8", rb.AdverseSelectionRisk)
	}
	// 65*.5 + 20*.3 + 36.76*.2 = 45.852
	if rb.Composite != 45.9 {
		t.Fatalf("composite = %v, want 45.9", rb.Composite)
	}
}

func TestAdverseSelectionWorstCaseDefaults(t *testing.T) {
	// Missing liquidity/competitiveness parse to zero and must score as
	// maximal sub-risk; an even price contributes nothing.
	m := &models.MarketRecord{YesPrice: 0.5, NoPrice: 0.5}
	if got := AdverseSelectionRisk(m); got != 60 {
		t.Fatalf("adverse = %v, want 30+30=60", got)
	}
}
