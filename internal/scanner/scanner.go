package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"

	"lp_bot/internal/models"
	"lp_bot/internal/rank"
	"lp_bot/internal/risk"
	"lp_bot/pkg/logger"
)

// MarketSource delivers the full market universe. *exchange.Gamma is
// the real one.
type MarketSource interface {
	AllMarkets(ctx context.Context) ([]models.MarketRecord, error)
}

type Scanner struct {
	source MarketSource
}

func New(source MarketSource) *Scanner {
	return &Scanner{source: source}
}

// Result is one completed scan.
type Result struct {
	TotalMarkets  int
	RewardMarkets int
	LowRiskCount  int
	Top           []rank.Row
}

// Scan fetches, scores and ranks every reward-paying market.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	sp, ctx := opentracing.StartSpanFromContext(ctx, "scanner.scan")
	defer sp.Finish()

	markets, err := s.source.AllMarkets(ctx)
	if err != nil {
		return nil, err
	}
	return s.rank(time.Now().UTC(), markets), nil
}

func (s *Scanner) rank(now time.Time, markets []models.MarketRecord) *Result {
	res := &Result{TotalMarkets: len(markets)}

	var rows []rank.Row
	for i := range markets {
		m := &markets[i]
		if m.DailyRewardRate <= 0 {
			continue
		}
		res.RewardMarkets++
		c := risk.Classify(m.Question)
		rb := risk.ScoreAt(now, m, c)
		rows = append(rows, rank.Build(now, m, rb))
	}
	logger.Info("scan: %d markets, %d with rewards", res.TotalMarkets, res.RewardMarkets)

	low := rank.LowRisk(rows)
	res.Top = low
	res.LowRiskCount = countLowRisk(rows)
	return res
}

// countLowRisk is the pre-truncation count shown in the scan header.
func countLowRisk(rows []rank.Row) int {
	n := 0
	for _, r := range rows {
		if r.Risk.Category == models.CategoryAssetPrice {
			continue
		}
		if r.Risk.Composite > rank.MaxRiskForDisplay {
			continue
		}
		if r.Market.Volume < rank.MinVolumeUSD {
			continue
		}
		n++
	}
	return n
}

// Reasoning is a short prose summary of why a row scored the way it
// did, for the scan output.
func Reasoning(r rank.Row) string {
	var parts []string

	end := "unknown"
	if r.Market.EndDate != nil {
		end = r.Market.EndDate.Format("Jan 2, 2006")
	}
	parts = append(parts, fmt.Sprintf(
		"This market resolves on %s, leaving ~%d days to farm LP rewards.", end, r.DaysRemaining))

	switch {
	case r.Market.Volume < 50_000 && r.Market.Liquidity < 20_000:
		parts = append(parts, "Low total volume and liquidity — consider sizing down or monitoring spread.")
	case r.Market.Volume < 200_000:
		parts = append(parts, "Moderate volume; liquidity is adequate but not deep.")
	default:
		parts = append(parts, "Solid volume and liquidity for the size of the market.")
	}

	switch r.Risk.Category {
	case models.CategoryScheduled:
		parts = append(parts, "Risk is scheduled: there is a known window when the outcome can move sharply.")
	case models.CategoryBinary:
		parts = append(parts, "Binary-style event — a single headline could move the market sharply; keep position size in check.")
	case models.CategoryGradual:
		parts = append(parts, "Gradual-type event; probability tends to move incrementally rather than in one spike.")
	default:
		parts = append(parts, "Event type is generic; monitor for news that could create a sudden move.")
	}

	q := strings.ToLower(r.Market.Question)
	for _, kw := range []string{"opening weekend", "box office", "top grossing", "movie", "film"} {
		if strings.Contains(q, kw) {
			parts = append(parts, "Performance of related releases through the year may move the probability; no fixed release calendar is applied here.")
			break
		}
	}
	return strings.Join(parts, " ")
}
