package rank

import (
	"math"
	"sort"
	"time"

	"lp_bot/internal/models"
)

const (
	// Composite risk at or below this qualifies for the low-risk list.
	MaxRiskForDisplay = 35.0
	// Markets below this total volume are too thin to bother with.
	MinVolumeUSD = 25_000.0
	TopN         = 25

	minCapitalFloor = 100.0
	missingEndDays  = 365
)

// Row is one scanner result: a scored market with its capital math.
type Row struct {
	Market            *models.MarketRecord
	Risk              models.RiskBreakdown
	DaysRemaining     int
	MinCapital        float64 // USD estimate to maintain a qualifying quote
	CapitalEfficiency float64 // daily rewards per dollar of min capital
	EstimatedAPY      float64 // percent
}

// Build derives the capital-efficiency figures for one scored market.
func Build(now time.Time, m *models.MarketRecord, rb models.RiskBreakdown) Row {
	minCapital := math.Max(m.Liquidity*0.01, minCapitalFloor)
	eff := m.DailyRewardRate / minCapital
	return Row{
		Market:            m,
		Risk:              rb,
		DaysRemaining:     daysRemaining(now, m.EndDate),
		MinCapital:        math.Round(minCapital*100) / 100,
		CapitalEfficiency: math.Round(eff*10000) / 10000,
		EstimatedAPY:      math.Round(eff*365*100*100) / 100,
	}
}

func daysRemaining(now time.Time, end *time.Time) int {
	if end == nil {
		return missingEndDays
	}
	d := int(math.Floor(end.Sub(now).Hours() / 24))
	if d < 0 {
		return 0
	}
	return d
}

// LowRisk filters out asset-price and risky/thin markets and orders the
// rest best-first: descending capital efficiency, ties broken by
// descending daily reward rate.
func LowRisk(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Risk.Category == models.CategoryAssetPrice {
			continue
		}
		if r.Risk.Composite > MaxRiskForDisplay {
			continue
		}
		if r.Market.Volume < MinVolumeUSD {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CapitalEfficiency != out[j].CapitalEfficiency {
			return out[i].CapitalEfficiency > out[j].CapitalEfficiency
		}
		return out[i].Market.DailyRewardRate > out[j].Market.DailyRewardRate
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// RiskLabel buckets a composite score for display.
func RiskLabel(score float64) string {
	switch {
	case score <= 25:
		return "Low"
	case score <= 45:
		return "Moderate"
	case score <= 65:
		return "Elevated"
	case score <= 80:
		return "High"
	default:
		return "Extreme"
	}
}
