package models

// MonitorRow is the per-position output of one monitor evaluation.
type MonitorRow struct {
	Index        int // 1-based position in the persisted sequence
	Position     Position
	Question     string
	URL          string
	CurrentPrice float64 // fraction
	// DistanceCents is signed and fill-direction aware: the gap, in
	// cents, between the current price and the limit measured toward
	// the side an adverse fill would come from. Positive = safe,
	// shrinking toward 0 as price approaches; negative = breached.
	DistanceCents float64
	BidsBefore    float64 // USD notional resting at or past the limit
	OutOfRange    bool    // |distance| >= 5 cents, informational only
	Unresolved    bool    // market could not be fetched this cycle
}

// Alert is the structured payload handed to the alert channel when a
// position crosses below the alert threshold.
type Alert struct {
	Row MonitorRow
	// Rising is true when price is coming up toward the limit from
	// below, false when it is falling toward it.
	Rising bool
}
