package exchange

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"lp_bot/internal/models"
)

// Gamma serves numbers inconsistently: sometimes JSON numbers, sometimes
// quoted strings, sometimes null. flexFloat accepts all of them and
// degrades to 0 instead of failing the record.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type gammaReward struct {
	RewardsDailyRate flexFloat `json:"rewardsDailyRate"`
}

type gammaMarket struct {
	Question       string          `json:"question"`
	Slug           string          `json:"slug"`
	EventSlug      string          `json:"eventSlug"`
	EndDate        string          `json:"endDate"`
	KnownSpikeDate string          `json:"knownSpikeDate"`
	Spread         flexFloat       `json:"spread"`
	Liquidity      flexFloat       `json:"liquidity"`
	Competitive    flexFloat       `json:"competitive"`
	Volume         flexFloat       `json:"volume"`
	OutcomePrices  json.RawMessage `json:"outcomePrices"`
	ClobTokenIDs   json.RawMessage `json:"clobTokenIds"`
	ClobRewards    []gammaReward   `json:"clobRewards"`
}

func (g gammaMarket) toRecord() models.MarketRecord {
	yes, no := parseOutcomePrices(g.OutcomePrices)
	yesTok, noTok := parseTokenPair(g.ClobTokenIDs)

	rec := models.MarketRecord{
		Question:        g.Question,
		Slug:            g.Slug,
		EventSlug:       g.EventSlug,
		EndDate:         parseDate(g.EndDate),
		KnownSpikeDate:  parseDate(g.KnownSpikeDate),
		Spread:          float64(g.Spread),
		Liquidity:       float64(g.Liquidity),
		Competitiveness: float64(g.Competitive),
		Volume:          float64(g.Volume),
		YesPrice:        yes,
		NoPrice:         no,
		YesTokenID:      yesTok,
		NoTokenID:       noTok,
	}
	if len(g.ClobRewards) > 0 {
		rec.DailyRewardRate = float64(g.ClobRewards[0].RewardsDailyRate)
	}
	return rec
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// outcomePrices is usually a JSON string containing another JSON array
// (occasionally with single quotes), sometimes an actual array. Any
// parse failure falls back to an even 0.5/0.5 split.
func parseOutcomePrices(raw json.RawMessage) (yes, no float64) {
	yes, no = 0.5, 0.5
	arr, ok := decodeStringArray(raw)
	if !ok || len(arr) == 0 {
		return yes, no
	}
	if v, err := strconv.ParseFloat(arr[0], 64); err == nil {
		yes = v
		no = 1 - v
	}
	if len(arr) > 1 {
		if v, err := strconv.ParseFloat(arr[1], 64); err == nil {
			no = v
		}
	}
	return yes, no
}

func parseTokenPair(raw json.RawMessage) (yesTok, noTok string) {
	arr, ok := decodeStringArray(raw)
	if !ok || len(arr) < 2 {
		return "", ""
	}
	return arr[0], arr[1]
}

func decodeStringArray(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	data := []byte(strings.TrimSpace(string(raw)))
	if len(data) == 0 {
		return nil, false
	}
	// Unwrap the string-encoded variant first.
	if data[0] == '"' {
		var inner string
		if err := sonic.Unmarshal(data, &inner); err != nil {
			return nil, false
		}
		data = []byte(strings.ReplaceAll(inner, "'", `"`))
	}
	var arr []string
	if err := sonic.Unmarshal(data, &arr); err != nil {
		// Numeric-array variant.
		var nums []float64
		if err := sonic.Unmarshal(data, &nums); err != nil {
			return nil, false
		}
		arr = make([]string, len(nums))
		for i, n := range nums {
			arr[i] = strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	return arr, true
}
