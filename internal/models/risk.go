package models

type EventCategory string

const (
	CategoryBinary     EventCategory = "binary"
	CategoryScheduled  EventCategory = "scheduled"
	CategoryGradual    EventCategory = "gradual"
	CategoryAssetPrice EventCategory = "asset_price"
	CategoryUnknown    EventCategory = "unknown"
)

// EventClassification is derived from question text only.
type EventClassification struct {
	Category      EventCategory
	BaseSpikeRisk float64
	IsBinary      bool
	IsScheduled   bool
	IsGradual     bool
	IsAssetPrice  bool
}

// RiskBreakdown is recomputed on every evaluation; markets move
// continuously, so it is never cached or persisted.
type RiskBreakdown struct {
	Composite            float64 // 0..100, one decimal
	SpikeRisk            float64
	TimeRisk             int
	AdverseSelectionRisk float64
	Category             EventCategory
	IsBinaryEvent        bool
}
