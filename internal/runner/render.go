package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"lp_bot/internal/helper"
	"lp_bot/internal/models"
	"lp_bot/internal/rank"
	"lp_bot/internal/scanner"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// Renderer writes human-readable monitor and scan output. Colors are on
// only when the sink is a terminal.
type Renderer struct {
	w     io.Writer
	color bool
}

func NewRenderer(w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		if st, err := f.Stat(); err == nil {
			color = st.Mode()&os.ModeCharDevice != 0
		}
	}
	return &Renderer{w: w, color: color}
}

func (r *Renderer) paint(s, code string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// distanceLabel colors by urgency: red within 1¢, amber within 2¢,
// bright-red OUT OF RANGE at 5¢ and beyond, green otherwise.
func (r *Renderer) distanceLabel(row models.MonitorRow) string {
	d := row.DistanceCents
	abs := d
	if abs < 0 {
		abs = -abs
	}
	s := fmt.Sprintf("%.1f¢", d)
	switch {
	case abs >= 5.0:
		return r.paint(s+" OUT OF RANGE", ansiRed)
	case abs <= 1.0:
		return r.paint(s, ansiRed)
	case abs <= 2.0:
		return r.paint(s, ansiYellow)
	default:
		return r.paint(s, ansiGreen)
	}
}

// Monitor prints the per-cycle position table, already sorted by the
// evaluator (closest to limit first).
func (r *Renderer) Monitor(rows []models.MonitorRow) {
	if len(rows) == 0 {
		fmt.Fprintln(r.w, "No positions to monitor.")
		return
	}
	fmt.Fprintln(r.w)
	for _, row := range rows {
		if row.Unresolved {
			fmt.Fprintf(r.w, "%d. %s — %s: market not found\n",
				row.Index, row.Position.MarketSlug, row.Position.Side)
			continue
		}
		title := row.Question
		if title == "" {
			title = row.URL
		}
		title = helper.Truncate(title, 120)
		fmt.Fprintf(r.w, "%d. %s — %s current: %.3f, limit: %.3f, distance: %s, bids before: $%s\n",
			row.Index,
			r.paint(title, ansiBold),
			row.Position.Side,
			row.CurrentPrice,
			row.Position.LimitPrice,
			r.distanceLabel(row),
			helper.CommaUSD(row.BidsBefore),
		)
	}
}

func (r *Renderer) riskLabel(score float64) string {
	label := rank.RiskLabel(score)
	switch label {
	case "Low":
		return r.paint(label, ansiGreen)
	case "Moderate":
		return r.paint(label, ansiYellow)
	default:
		return r.paint(label, ansiRed)
	}
}

// Scan prints the ranked low-risk market list.
func (r *Renderer) Scan(res *scanner.Result) {
	fmt.Fprintf(r.w, "Total markets: %d\n", res.TotalMarkets)
	fmt.Fprintf(r.w, "Markets with LP rewards (rewardsDailyRate > 0): %d\n", res.RewardMarkets)
	fmt.Fprintf(r.w, "Markets with minimal risk (composite risk <= %.0f): %d\n",
		rank.MaxRiskForDisplay, res.LowRiskCount)
	fmt.Fprintf(r.w, "Showing top %d by capital efficiency (then by highest daily rewards):\n\n", len(res.Top))

	sep := strings.Repeat("-", 100)
	fmt.Fprintln(r.w, sep)
	for i, row := range res.Top {
		fmt.Fprintf(r.w, "  %d. %s\n", i+1, r.paint(helper.Truncate(row.Market.Question, 70), ansiBold))
		fmt.Fprintf(r.w, "     Risk: %.1f (%s)  Spike: %.1f  Time: %d  Adverse: %.1f  Category: %s\n",
			row.Risk.Composite,
			r.riskLabel(row.Risk.Composite),
			row.Risk.SpikeRisk,
			row.Risk.TimeRisk,
			row.Risk.AdverseSelectionRisk,
			row.Risk.Category,
		)
		fmt.Fprintf(r.w, "     Daily rewards: $%.2f  Days left: %d  Est. min capital: $%s  Est. APY: %.1f%%  Total vol: $%s  Liquidity: $%s\n",
			row.Market.DailyRewardRate,
			row.DaysRemaining,
			helper.CommaUSD(row.MinCapital),
			row.EstimatedAPY,
			helper.CommaUSD(row.Market.Volume),
			helper.CommaUSD(row.Market.Liquidity),
		)
		fmt.Fprintf(r.w, "     %s\n", r.paint(row.Market.URL(), ansiCyan))
		fmt.Fprintf(r.w, "     Reasoning — %s\n", scanner.Reasoning(row))
		fmt.Fprintln(r.w, sep)
	}
	if len(res.Top) == 0 {
		fmt.Fprintln(r.w, "No markets in the minimal-risk range.")
	}
	fmt.Fprintln(r.w, "\nScan complete.")
}
