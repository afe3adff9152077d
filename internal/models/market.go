package models

import "time"

// MarketRecord is one Gamma market snapshot, already parsed into typed
// fields. A fresh record is fetched each scan/poll cycle; records are
// never mutated in place.
type MarketRecord struct {
	Question        string
	Slug            string
	EventSlug       string
	EndDate         *time.Time
	KnownSpikeDate  *time.Time // overrides EndDate for time-risk when nearer
	Spread          float64    // fraction, 0..1
	Liquidity       float64    // USD
	Competitiveness float64    // fraction, 0..1
	DailyRewardRate float64    // USD/day from clobRewards
	YesPrice        float64
	NoPrice         float64
	Volume          float64 // USD
	YesTokenID      string
	NoTokenID       string
}

func (m *MarketRecord) PriceForSide(side Side) float64 {
	if side == SideNo {
		return m.NoPrice
	}
	return m.YesPrice
}

func (m *MarketRecord) TokenForSide(side Side) string {
	if side == SideNo {
		return m.NoTokenID
	}
	return m.YesTokenID
}

func (m *MarketRecord) URL() string {
	if m.EventSlug != "" && m.Slug != "" {
		return "https://polymarket.com/event/" + m.EventSlug + "/" + m.Slug
	}
	if m.Slug != "" {
		return "https://polymarket.com/event/" + m.Slug
	}
	return ""
}
