package risk

import (
	"math"
	"time"

	"lp_bot/internal/models"
)

const (
	weightSpike   = 0.50
	weightTime    = 0.30
	weightAdverse = 0.20

	// Spike amplification when a binary event is also imminent.
	binaryImminentFactor  = 1.15
	binaryImminentTimeCut = 70

	neutralTimeRisk = 40
)

// TimeProximityRisk maps hours-to-resolution onto fixed risk bands.
// This is deliberately a step function, not interpolated decay: each
// band is a discrete news-cycle regime. Uses the nearer of end date and
// known spike date; with neither, a neutral 40.
func TimeProximityRisk(now time.Time, endDate, knownSpikeDate *time.Time) int {
	hours := math.Inf(1)
	for _, d := range []*time.Time{endDate, knownSpikeDate} {
		if d == nil {
			continue
		}
		if h := d.Sub(now).Hours(); h < hours {
			hours = h
		}
	}
	if math.IsInf(hours, 1) {
		return neutralTimeRisk
	}
	switch {
	case hours < 0:
		return 100 // already past; never negative or undefined
	case hours < 6:
		return 98
	case hours < 24:
		return 90
	case hours < 72:
		return 75
	case hours < 168:
		return 55
	case hours < 720:
		return 35
	case hours < 2160:
		return 20
	default:
		return 8
	}
}

// AdverseSelectionRisk scores how likely a resting quote is to be picked
// off: price extremity + thin liquidity + lack of competition, capped at
// 100. Missing liquidity/competitiveness score as worst case.
func AdverseSelectionRisk(m *models.MarketRecord) float64 {
	extremity := math.Abs(m.YesPrice-0.50) * 80

	var liquidityRisk float64
	switch {
	case m.Liquidity < 10_000:
		liquidityRisk = 30
	case m.Liquidity < 50_000:
		liquidityRisk = 20
	case m.Liquidity < 200_000:
		liquidityRisk = 10
	default:
		liquidityRisk = 5
	}

	competitionRisk := (1 - m.Competitiveness) * 30

	return math.Min(extremity+liquidityRisk+competitionRisk, 100)
}

// Score combines spike, time and adverse-selection risk into the
// composite breakdown. It always returns a number: field problems have
// already degraded to neutral defaults during record parsing.
func Score(m *models.MarketRecord, c models.EventClassification) models.RiskBreakdown {
	return ScoreAt(time.Now().UTC(), m, c)
}

func ScoreAt(now time.Time, m *models.MarketRecord, c models.EventClassification) models.RiskBreakdown {
	timeRisk := TimeProximityRisk(now, m.EndDate, m.KnownSpikeDate)
	adverse := AdverseSelectionRisk(m)

	spike := c.BaseSpikeRisk
	// An imminent binary resolution is strictly more dangerous than
	// either factor alone.
	if c.IsBinary && timeRisk > binaryImminentTimeCut {
		spike = math.Min(spike*binaryImminentFactor, 100)
	}

	composite := spike*weightSpike + float64(timeRisk)*weightTime + adverse*weightAdverse
	return models.RiskBreakdown{
		Composite:            round1(composite),
		SpikeRisk:            round1(spike),
		TimeRisk:             timeRisk,
		AdverseSelectionRisk: round1(adverse),
		Category:             c.Category,
		IsBinaryEvent:        c.IsBinary,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
