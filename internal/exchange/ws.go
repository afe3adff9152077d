package exchange

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"lp_bot/internal/models"
	"lp_bot/pkg/logger"
)

const DefaultMarketWSURL = "wss://ws-subscriptions-clob.polymarket.com/ws/market"

// BookHandler receives full book snapshots pushed over the market
// websocket, keyed by outcome token id.
type BookHandler func(tokenID string, book *models.OrderBook)

// BookStream subscribes to the CLOB market channel for a set of tokens
// and feeds book snapshots to the handler. It gives the monitor fresher
// books between Gamma polls; losing the stream is harmless because the
// poll cycle refetches everything anyway.
type BookStream struct {
	url      string
	tokenIDs []string
	onBook   BookHandler
	dialer   *websocket.Dialer
}

func NewBookStream(url string, tokenIDs []string, onBook BookHandler) *BookStream {
	if url == "" {
		url = DefaultMarketWSURL
	}
	return &BookStream{
		url:      url,
		tokenIDs: tokenIDs,
		onBook:   onBook,
		dialer:   &websocket.Dialer{},
	}
}

type wsEvent struct {
	EventType string      `json:"event_type"`
	AssetID   string      `json:"asset_id"`
	Bids      []clobLevel `json:"bids"`
	Asks      []clobLevel `json:"asks"`
	// Older payloads used buys/sells.
	Buys  []clobLevel `json:"buys"`
	Sells []clobLevel `json:"sells"`
}

// Run blocks until ctx is done, reconnecting with backoff on any error.
func (s *BookStream) Run(ctx context.Context) {
	if len(s.tokenIDs) == 0 {
		return
	}
	retry := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if err := s.runConnection(ctx); err != nil && ctx.Err() == nil {
			retry++
			logger.Error("market ws disconnected (attempt %d): %v", retry, err)
		}
		backoff := time.Duration(retry) * time.Second
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

func (s *BookStream) runConnection(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	sub := map[string]any{"assets_ids": s.tokenIDs, "type": "market"}
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}

	// Close the socket when ctx dies so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		s.handleMessage(msg)
	}
}

func (s *BookStream) handleMessage(msg []byte) {
	var events []wsEvent
	if err := sonic.Unmarshal(msg, &events); err != nil {
		var single wsEvent
		if err := sonic.Unmarshal(msg, &single); err != nil {
			return
		}
		events = []wsEvent{single}
	}
	for _, ev := range events {
		if ev.EventType != "book" || ev.AssetID == "" {
			continue
		}
		bids, asks := ev.Bids, ev.Asks
		if len(bids) == 0 && len(ev.Buys) > 0 {
			bids = ev.Buys
		}
		if len(asks) == 0 && len(ev.Sells) > 0 {
			asks = ev.Sells
		}
		s.onBook(ev.AssetID, clobBook{Bids: bids, Asks: asks}.toBook())
	}
}
