package models

// PriceLevel is a single price+size entry in an orderbook.
type PriceLevel struct {
	Price float64
	Size  float64
}

// OrderBook holds the resting orders for one outcome token.
type OrderBook struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// DollarsAtOrAbove sums the USD notional (price*size) of resting bids
// at or above the given limit. These are the orders that must trade
// through before a quote at the limit is reached.
func (b *OrderBook) DollarsAtOrAbove(limit float64) float64 {
	if b == nil {
		return 0
	}
	total := 0.0
	for _, lvl := range b.Bids {
		if lvl.Price >= limit {
			total += lvl.Price * lvl.Size
		}
	}
	return total
}
