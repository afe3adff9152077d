package models

import (
	"fmt"
	"strings"
)

type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return SideYes, nil
	case "NO":
		return SideNo, nil
	}
	return "", fmt.Errorf("side must be YES or NO, got %q", s)
}

// Position is one tracked LP limit order. MarketSlug may be a raw slug
// or a full polymarket.com URL, as entered by the operator.
type Position struct {
	MarketSlug string  `json:"market_slug"`
	Side       Side    `json:"side"`
	LimitPrice float64 `json:"my_limit_price"` // fraction, 0..1 exclusive
	Notes      string  `json:"notes,omitempty"`
}

// PositionKey identifies a position by market+side, independent of its
// place in the list. Alert arm/disarm state is keyed by this so that
// inserts/removals elsewhere don't corrupt it.
type PositionKey struct {
	Slug string
	Side Side
}
