package runner

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"

	"lp_bot/internal/exchange"
	"lp_bot/internal/helper"
	"lp_bot/internal/models"
	"lp_bot/internal/monitor"
	"lp_bot/internal/notify"
	"lp_bot/internal/positions"
	"lp_bot/internal/settings"
	"lp_bot/pkg/logger"
)

const upDownCheckEvery = 10

// Monitor is the position watch loop: every poll interval it snapshots
// the markets behind the stored positions, evaluates distances, prints
// the table and pushes alerts.
type Monitor struct {
	ctx    context.Context
	cancel context.CancelFunc

	snap    *Snapshotter
	book    *positions.Book
	st      *settings.Store
	gamma   *exchange.Gamma
	n       notify.Notifier
	watcher *UpDownWatcher
	render  *Renderer
	wsURL   string

	prev  monitor.AlertState
	cycle int

	streamCancel context.CancelFunc
	streamTokens string // sorted joined token ids of the running stream
}

func NewMonitor(snap *Snapshotter, book *positions.Book, st *settings.Store, gamma *exchange.Gamma, wsURL string, n notify.Notifier) *Monitor {
	return &Monitor{
		snap:    snap,
		book:    book,
		st:      st,
		gamma:   gamma,
		n:       n,
		watcher: NewUpDownWatcher(),
		render:  NewRenderer(os.Stdout),
		wsURL:   wsURL,
		prev:    make(monitor.AlertState),
	}
}

func (m *Monitor) Start(parent context.Context) {
	m.ctx, m.cancel = context.WithCancel(parent)
	logger.Info("position monitor started")
	for {
		m.runCycle(m.ctx)

		interval := time.Duration(m.st.Get().PollIntervalSeconds) * time.Second
		select {
		case <-m.ctx.Done():
			if m.streamCancel != nil {
				m.streamCancel()
			}
			logger.Info("position monitor stopped")
			return
		case <-time.After(interval):
		}
	}
}

func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Monitor) runCycle(ctx context.Context) {
	sp, ctx := opentracing.StartSpanFromContext(ctx, "monitor.cycle")
	defer sp.Finish()

	m.cycle++
	pos := m.book.List()
	if len(pos) == 0 {
		m.render.Monitor(nil)
		return
	}

	cfg := monitor.DefaultConfig()
	cfg.ThresholdCents = m.st.Get().AlertThresholdCents

	snap := m.snap.Take(ctx, pos)
	rows, state, alerts := monitor.Evaluate(pos, snap, m.prev, cfg)
	m.prev = state
	sp.SetTag("positions", len(rows))

	m.render.Monitor(rows)
	for _, a := range alerts {
		if err := m.n.SendHTML(ctx, formatPriceAlert(a)); err != nil {
			logger.Error("send price alert: %v", err)
		}
	}

	m.syncStream(snap)

	if m.cycle%upDownCheckEvery == 0 {
		m.checkUpDown(ctx)
	}
}

// syncStream keeps a market-channel subscription alive for the tokens
// currently monitored, restarting it when the set changes.
func (m *Monitor) syncStream(snap monitor.Snapshot) {
	var tokens []string
	for _, state := range snap {
		for side := range state.Books {
			if tok := state.Record.TokenForSide(side); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	sort.Strings(tokens)
	joined := strings.Join(tokens, ",")
	if joined == m.streamTokens {
		return
	}
	if m.streamCancel != nil {
		m.streamCancel()
	}
	m.streamTokens = joined
	if len(tokens) == 0 {
		m.streamCancel = nil
		return
	}
	streamCtx, cancel := context.WithCancel(m.ctx)
	m.streamCancel = cancel
	stream := exchange.NewBookStream(m.wsURL, tokens, m.snap.PushBook)
	go stream.Run(streamCtx)
}

func (m *Monitor) checkUpDown(ctx context.Context) {
	markets, err := m.gamma.AllMarkets(ctx)
	if err != nil {
		logger.Error("up/down check: %v", err)
		return
	}
	for _, a := range m.watcher.Check(time.Now().UTC(), markets) {
		if err := m.n.SendHTML(ctx, formatUpDownAlert(a)); err != nil {
			logger.Error("send up/down alert: %v", err)
		}
	}
}

func formatPriceAlert(a models.Alert) string {
	row := a.Row
	direction := "falling toward"
	if a.Rising {
		direction = "rising toward"
	}
	dist := row.DistanceCents
	if dist < 0 {
		dist = -dist
	}
	return fmt.Sprintf(
		"🚨 <b>PRICE ALERT</b>\n\n"+
			"<b>%d. %s</b>\n\n"+
			"Price %s your limit on <b>%s</b>.\n"+
			"• Current: <b>%.3f</b>\n"+
			"• Your limit: <b>%.3f</b>\n"+
			"• Distance: <b>%.1f¢</b>\n\n"+
			"<a href='%s'>View market</a>",
		row.Index,
		helper.Truncate(row.Question, 80),
		direction,
		row.Position.Side,
		row.CurrentPrice,
		row.Position.LimitPrice,
		dist,
		row.URL,
	)
}

func formatUpDownAlert(a UpDownAlert) string {
	return fmt.Sprintf(
		"🚀 <b>UP/DOWN MARKET OPPORTUNITY</b>\n\n"+
			"<b>%s</b>\n\n"+
			"• Start: <b>%s</b> (%.1f hours from now)\n"+
			"• Daily rewards: <b>$%.2f</b>\n"+
			"• <b>Zero risk until market opens</b> (price cannot move when closed)\n\n"+
			"<a href='%s'>View market</a>",
		a.Market.Question,
		a.Start.Format("2006-01-02 15:04 UTC"),
		a.HoursUntil,
		a.Market.DailyRewardRate,
		a.Market.URL(),
	)
}
