package runner

import (
	"context"
	"sync"

	"lp_bot/internal/exchange"
	"lp_bot/internal/helper"
	"lp_bot/internal/models"
	"lp_bot/internal/monitor"
	"lp_bot/pkg/logger"
)

// Snapshotter assembles one market snapshot per poll cycle: market
// records by slug plus order books for the sides held. Books are cached
// per token within a cycle, and the websocket stream (when running) can
// push fresher ones between cycles.
type Snapshotter struct {
	gamma *exchange.Gamma
	clob  *exchange.Clob

	mu     sync.Mutex
	pushed map[string]*models.OrderBook // token id -> latest streamed book
}

func NewSnapshotter(gamma *exchange.Gamma, clob *exchange.Clob) *Snapshotter {
	return &Snapshotter{
		gamma:  gamma,
		clob:   clob,
		pushed: make(map[string]*models.OrderBook),
	}
}

// PushBook accepts a streamed book update. Satisfies exchange.BookHandler.
func (s *Snapshotter) PushBook(tokenID string, book *models.OrderBook) {
	s.mu.Lock()
	s.pushed[tokenID] = book
	s.mu.Unlock()
}

func (s *Snapshotter) streamedBook(tokenID string) *models.OrderBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushed[tokenID]
}

// Take fetches the markets and books behind the given positions.
// Unresolvable slugs are simply absent from the snapshot; the monitor
// marks those rows unresolved.
func (s *Snapshotter) Take(ctx context.Context, positions []models.Position) monitor.Snapshot {
	snap := make(monitor.Snapshot)
	bookCache := make(map[string]*models.OrderBook)

	for _, pos := range positions {
		slug := helper.NormalizeSlug(pos.MarketSlug)
		state, ok := snap[slug]
		if !ok {
			rec := s.fetchMarket(ctx, slug)
			if rec == nil {
				continue
			}
			state = monitor.MarketState{
				Record: rec,
				Books:  make(map[models.Side]*models.OrderBook),
			}
			snap[slug] = state
		}
		if _, ok := state.Books[pos.Side]; ok {
			continue
		}
		token := state.Record.TokenForSide(pos.Side)
		if token == "" {
			continue
		}
		book, cached := bookCache[token]
		if !cached {
			book = s.fetchBook(ctx, token)
			bookCache[token] = book
		}
		if book != nil {
			state.Books[pos.Side] = book
		}
	}
	return snap
}

// fetchMarket retries once: a single flaky response should not blank a
// row for the whole cycle.
func (s *Snapshotter) fetchMarket(ctx context.Context, slug string) *models.MarketRecord {
	for attempt := 0; attempt < 2; attempt++ {
		rec, err := s.gamma.MarketBySlug(ctx, slug)
		if err != nil {
			logger.Error("fetch market %q: %v", slug, err)
			continue
		}
		return rec
	}
	return nil
}

func (s *Snapshotter) fetchBook(ctx context.Context, tokenID string) *models.OrderBook {
	if book := s.streamedBook(tokenID); book != nil {
		return book
	}
	for attempt := 0; attempt < 2; attempt++ {
		book, err := s.clob.Book(ctx, tokenID)
		if err != nil {
			logger.Error("fetch book %s: %v", tokenID, err)
			continue
		}
		return book
	}
	return nil
}
