package risk

import (
	"regexp"
	"strings"

	"lp_bot/internal/models"
)

// Trigger lists are data, not control flow: each set can be extended or
// tested on its own. Matching is case-insensitive substring search.
var (
	binaryTriggers = []string{
		"resign", "resigns", "out as", "step down", "fired", "removed",
		"strike", "strikes", "attack", "invade", "invasion", "war",
		"die", "dies", "death", "assassin",
		"announce", "announcement", "declare",
		"shut down", "shutdown", "default",
		"ceasefire", "peace deal", "treaty",
	}
	scheduledTriggers = []string{
		"fed ", "fomc", "interest rate", "rate cut", "rate hike",
		"election", "vote", "referendum",
		"nominee", "nomination", "primary", "democratic nominee",
		"republican nominee", "general election",
		"super bowl", "world cup", "championship", "finals",
		"earnings", "quarterly", "q1", "q2", "q3", "q4",
		"meeting", "summit", "conference",
	}
	// Asset price markets are excluded from low-risk LP outright: one
	// pump/dump can move price violently, whatever else the question says.
	assetPriceTriggers = []string{
		"bitcoin", "btc", "eth", "crypto", "price above", "price below",
		"stock", "s&p", "nasdaq", "dow", "spx", "sp500",
		"silver", "gold", " hit ", " above $", " below $",
		"close over", "close above", "close below",
		" (si)", " (gc)", "gc)", "si)",
	}
	gradualTriggers = []string{
		"gdp", "inflation", "unemployment",
		"subscribers", "followers", "views", "streams",
		"before gta", "by end of year", "by 2027", "by 2028",
	}

	// Congressional district tokens (PA-03, FL-19, ...) mark a scheduled
	// primary/nomination. Matched on the raw question: the pattern is
	// case-sensitive by construction.
	districtPattern = regexp.MustCompile(`\b[A-Z]{2}-\d{1,2}\b`)
)

const (
	spikeAssetPrice = 72
	spikeBinary     = 85
	spikeScheduled  = 65
	spikeGradual    = 25
	spikeUnknown    = 50
)

func anyTrigger(q string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// Classify maps question text to an event category and base spike risk.
// Asset-price detection is exclusive: it wins over every other trigger
// set, so an asset bet containing "announce" stays asset_price.
func Classify(question string) models.EventClassification {
	q := strings.ToLower(question)

	c := models.EventClassification{
		IsBinary:     anyTrigger(q, binaryTriggers),
		IsScheduled:  anyTrigger(q, scheduledTriggers),
		IsAssetPrice: anyTrigger(q, assetPriceTriggers),
		IsGradual:    anyTrigger(q, gradualTriggers),
	}
	if districtPattern.MatchString(question) {
		c.IsScheduled = true
	}

	switch {
	case c.IsAssetPrice:
		c.Category, c.BaseSpikeRisk = models.CategoryAssetPrice, spikeAssetPrice
	case c.IsBinary:
		c.Category, c.BaseSpikeRisk = models.CategoryBinary, spikeBinary
	case c.IsScheduled:
		c.Category, c.BaseSpikeRisk = models.CategoryScheduled, spikeScheduled
	case c.IsGradual:
		c.Category, c.BaseSpikeRisk = models.CategoryGradual, spikeGradual
	default:
		c.Category, c.BaseSpikeRisk = models.CategoryUnknown, spikeUnknown
	}
	return c
}
