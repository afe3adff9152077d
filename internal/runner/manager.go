package runner

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"lp_bot/internal/exchange"
	"lp_bot/internal/modules/config"
	"lp_bot/internal/notify"
	"lp_bot/internal/positions"
	"lp_bot/internal/settings"
)

// Manager owns the single monitor loop: start/stop from chat commands
// or from app lifecycle, never two loops at once.
type Manager struct {
	mu      sync.Mutex
	current *Monitor

	snap  *Snapshotter
	book  *positions.Book
	st    *settings.Store
	gamma *exchange.Gamma
	wsURL string
}

func NewManager(cfg *config.Config, snap *Snapshotter, book *positions.Book, st *settings.Store, gamma *exchange.Gamma) *Manager {
	return &Manager{
		snap:  snap,
		book:  book,
		st:    st,
		gamma: gamma,
		wsURL: cfg.API.MarketWS,
	}
}

// Run starts the monitor loop in its own goroutine. The notifier is
// passed here rather than at construction so the Telegram service can
// both own the Manager and be its alert sink.
func (m *Manager) Run(ctx context.Context, n notify.Notifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return errors.New("monitor already running")
	}

	mon := NewMonitor(m.snap, m.book, m.st, m.gamma, m.wsURL, n)
	m.current = mon

	go func() {
		mon.Start(ctx)
		m.mu.Lock()
		if m.current == mon {
			m.current = nil
		}
		m.mu.Unlock()
	}()
	return nil
}

func (m *Manager) Stop() error {
	m.mu.Lock()
	mon := m.current
	m.current = nil
	m.mu.Unlock()
	if mon == nil {
		return errors.New("monitor not running")
	}
	mon.Stop()
	return nil
}

func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}
