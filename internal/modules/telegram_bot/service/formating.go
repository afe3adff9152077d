package service

import (
	"fmt"

	"lp_bot/internal/exchange"
	"lp_bot/internal/helper"
	"lp_bot/internal/models"
	"lp_bot/internal/rank"
	"lp_bot/internal/scanner"
)

func formatMonitorRows(rows []models.MonitorRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Unresolved {
			out = append(out, fmt.Sprintf(
				"\n\n<b>%d. %s</b>\n"+
					"Side: <b>%s</b> • "+
					"Limit: <b>%.3f</b> • "+
					"Current: <b>n/a</b> • "+
					"Distance: <b>n/a</b> • "+
					"Bids before: <b>n/a</b>",
				r.Index, helper.Truncate(r.Question, 120), r.Position.Side, r.Position.LimitPrice))
			continue
		}
		out = append(out, fmt.Sprintf(
			"\n\n<b>%d. %s</b>\n"+
				"Side: <b>%s</b> • "+
				"Current: <b>%.3f</b> • "+
				"Limit: <b>%.3f</b> • "+
				"Distance: <b>%s</b> • "+
				"Bids before: <b>$%s</b>",
			r.Index,
			helper.Truncate(r.Question, 120),
			r.Position.Side,
			r.CurrentPrice,
			r.Position.LimitPrice,
			distanceText(r),
			helper.CommaUSD(r.BidsBefore)))
	}
	return out
}

func distanceText(r models.MonitorRow) string {
	s := fmt.Sprintf("%.1f¢", r.DistanceCents)
	if r.OutOfRange {
		return s + " OUT OF RANGE"
	}
	return s
}

func formatWalletRows(rows []exchange.UserPosition) []string {
	out := make([]string, 0, len(rows))
	for i, p := range rows {
		line := fmt.Sprintf(
			"\n\n<b>%d. %s</b>\n"+
				"Outcome: <b>%s</b> • "+
				"Size: <b>%.2f</b> • "+
				"Avg: <b>%.3f</b> • "+
				"Now: <b>%.3f</b> • "+
				"PnL: <b>$%.2f (%.1f%%)</b>",
			i+1,
			helper.Truncate(p.Title, 120),
			p.Outcome,
			float64(p.Size),
			float64(p.AvgPrice),
			float64(p.CurPrice),
			float64(p.CashPnL),
			float64(p.PercentPnL))
		if url := p.URL(); url != "" {
			line += fmt.Sprintf("\n<a href='%s'>View market</a>", url)
		}
		out = append(out, line)
	}
	return out
}

func formatScanResult(res *scanner.Result) string {
	if len(res.Top) == 0 {
		return fmt.Sprintf(
			"Scanned %d markets (%d with rewards). No markets in the minimal-risk range.",
			res.TotalMarkets, res.RewardMarkets)
	}
	msg := fmt.Sprintf(
		"<b>Low-risk LP markets</b>\n"+
			"Scanned %d markets, %d with rewards, %d under risk %.0f.\n"+
			"Top %d by capital efficiency:",
		res.TotalMarkets, res.RewardMarkets, res.LowRiskCount, rank.MaxRiskForDisplay, len(res.Top))
	for i, row := range res.Top {
		msg += fmt.Sprintf(
			"\n\n<b>%d. %s</b>\n"+
				"Risk: <b>%.1f (%s)</b> • Category: <b>%s</b>\n"+
				"Daily rewards: <b>$%.2f</b> • Days left: <b>%d</b>\n"+
				"Min capital: <b>$%s</b> • Est. APY: <b>%.1f%%</b>\n"+
				"<a href='%s'>View market</a>",
			i+1,
			helper.Truncate(row.Market.Question, 100),
			row.Risk.Composite,
			rank.RiskLabel(row.Risk.Composite),
			row.Risk.Category,
			row.Market.DailyRewardRate,
			row.DaysRemaining,
			helper.CommaUSD(row.MinCapital),
			row.EstimatedAPY,
			row.Market.URL())
	}
	return msg
}

// sendBlocks joins per-position blocks into chunks under the message
// limit, repeating the header on each chunk.
func (t *Telegram) sendBlocks(chatID int64, header string, blocks []string) {
	current := header
	var chunks []string
	for _, b := range blocks {
		if len(current)+len(b) > maxMessageLen {
			chunks = append(chunks, current)
			current = header + b
		} else {
			current += b
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	for _, c := range chunks {
		t.replyHTML(chatID, c)
	}
}
