package runner

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"lp_bot/internal/models"
)

// Short-lived "Up or Down" markets pay rewards before they open, while
// the price cannot move. The watcher flags reward-paying ones that
// start soon so the bot owner can park liquidity risk-free.

const upDownLeadHours = 1.5

var upDownAssets = []string{
	"bitcoin", "btc", "ethereum", "eth", "solana", "sol", "xrp", "crypto",
	"spx", "s&p", "sp500", "s&p 500", "nasdaq", "dow", "stock",
}

var upDownPhrases = []string{"up or down", "up/down", "up or down market"}

func isUpDownMarket(question string) bool {
	q := strings.ToLower(question)
	asset := false
	for _, a := range upDownAssets {
		if containsWord(q, a) {
			asset = true
			break
		}
	}
	if !asset {
		return false
	}
	for _, p := range upDownPhrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// containsWord reports whether w occurs in q on word boundaries, so
// "dow" matches "Dow Jones" but not "down".
func containsWord(q, w string) bool {
	for start := 0; ; start++ {
		i := strings.Index(q[start:], w)
		if i < 0 {
			return false
		}
		start += i
		end := start + len(w)
		if (start == 0 || !isWordByte(q[start-1])) && (end == len(q) || !isWordByte(q[end])) {
			return true
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// e.g. "Bitcoin Up or Down - February 13, 12:00PM-12:05PM ET"
var sessionWindowPattern = regexp.MustCompile(
	`(?i)([A-Za-z]+)\s+(\d{1,2}),\s+(\d{1,2}):(\d{2})(AM|PM)\s*-\s*(\d{1,2}):(\d{2})(AM|PM)\s*(ET|EST|EDT)`)

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// parseSessionWindow extracts the trading window from the question
// text. The question gives no year, so the current one is assumed, and
// ET is treated as UTC-4 (EDT) year-round.
func parseSessionWindow(now time.Time, question string) (start, end time.Time, ok bool) {
	m := sessionWindowPattern.FindStringSubmatch(question)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}
	month, ok := monthNumbers[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])

	startHour := to24Hour(m[3], m[5])
	startMin, _ := strconv.Atoi(m[4])
	endHour := to24Hour(m[6], m[8])
	endMin, _ := strconv.Atoi(m[7])

	year := now.UTC().Year()
	start = time.Date(year, month, day, startHour, startMin, 0, 0, time.UTC).Add(4 * time.Hour)
	end = time.Date(year, month, day, endHour, endMin, 0, 0, time.UTC).Add(4 * time.Hour)
	return start, end, true
}

func to24Hour(hourStr, ampm string) int {
	h, _ := strconv.Atoi(hourStr)
	switch strings.ToUpper(ampm) {
	case "PM":
		if h != 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	}
	return h
}

// UpDownAlert is a pre-open opportunity: a reward-paying Up/Down market
// whose window starts within the lead time.
type UpDownAlert struct {
	Market     *models.MarketRecord
	Start      time.Time
	HoursUntil float64
}

// UpDownWatcher remembers which slugs it already alerted on.
type UpDownWatcher struct {
	mu      sync.Mutex
	alerted map[string]bool
}

func NewUpDownWatcher() *UpDownWatcher {
	return &UpDownWatcher{alerted: make(map[string]bool)}
}

// Check scans reward markets for soon-opening Up/Down sessions. Each
// slug alerts at most once per process lifetime.
func (w *UpDownWatcher) Check(now time.Time, markets []models.MarketRecord) []UpDownAlert {
	var out []UpDownAlert
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range markets {
		m := &markets[i]
		if m.DailyRewardRate <= 0 || !isUpDownMarket(m.Question) {
			continue
		}
		if w.alerted[m.Slug] {
			continue
		}
		start, _, ok := parseSessionWindow(now, m.Question)
		if !ok {
			continue
		}
		hours := start.Sub(now).Hours()
		if hours > upDownLeadHours || hours < 0 {
			continue
		}
		w.alerted[m.Slug] = true
		out = append(out, UpDownAlert{Market: m, Start: start, HoursUntil: hours})
	}
	return out
}
