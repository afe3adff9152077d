package exchange

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"lp_bot/internal/models"
)

const DefaultClobBase = "https://clob.polymarket.com"

// Clob is the order-book source: resting (price, size) levels per
// outcome token.
type Clob struct {
	base string
	http *http.Client
}

func NewClob(base string) *Clob {
	if base == "" {
		base = DefaultClobBase
	}
	return &Clob{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type clobLevel struct {
	Price flexFloat `json:"price"`
	// Size key varies across book endpoints/streams.
	Size      flexFloat `json:"size"`
	Quantity  flexFloat `json:"quantity"`
	Remaining flexFloat `json:"remaining"`
}

func (l clobLevel) size() float64 {
	switch {
	case l.Quantity != 0:
		return float64(l.Quantity)
	case l.Size != 0:
		return float64(l.Size)
	default:
		return float64(l.Remaining)
	}
}

type clobBook struct {
	Bids []clobLevel `json:"bids"`
	Asks []clobLevel `json:"asks"`
}

func (b clobBook) toBook() *models.OrderBook {
	out := &models.OrderBook{
		Bids: make([]models.PriceLevel, 0, len(b.Bids)),
		Asks: make([]models.PriceLevel, 0, len(b.Asks)),
	}
	for _, l := range b.Bids {
		out.Bids = append(out.Bids, models.PriceLevel{Price: float64(l.Price), Size: l.size()})
	}
	for _, l := range b.Asks {
		out.Asks = append(out.Asks, models.PriceLevel{Price: float64(l.Price), Size: l.size()})
	}
	return out
}

// Book fetches the current order book for one token.
func (c *Clob) Book(ctx context.Context, tokenID string) (*models.OrderBook, error) {
	q := url.Values{"token_id": {tokenID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/book?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "book for token %s", tokenID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("book for token %s: status %d", tokenID, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	var raw clobBook
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "decode book")
	}
	return raw.toBook(), nil
}
