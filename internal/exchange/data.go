package exchange

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const (
	DefaultDataBase = "https://data-api.polymarket.com"

	userPositionsPageLimit = 500
)

// Data is the read-only Data API client. It needs only a public wallet
// address, no key or auth.
type Data struct {
	base string
	http *http.Client
}

func NewData(base string) *Data {
	if base == "" {
		base = DefaultDataBase
	}
	return &Data{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// UserPosition is one open on-chain position of a wallet as reported by
// the Data API.
type UserPosition struct {
	Title      string    `json:"title"`
	Outcome    string    `json:"outcome"`
	Size       flexFloat `json:"size"`
	AvgPrice   flexFloat `json:"avgPrice"`
	CurPrice   flexFloat `json:"curPrice"`
	CashPnL    flexFloat `json:"cashPnl"`
	PercentPnL flexFloat `json:"percentPnl"`
	Slug       string    `json:"slug"`
	EventSlug  string    `json:"eventSlug"`
}

func (p UserPosition) URL() string {
	if p.EventSlug != "" && p.Slug != "" {
		return "https://polymarket.com/event/" + p.EventSlug + "/" + p.Slug
	}
	if p.Slug != "" {
		return "https://polymarket.com/event/" + p.Slug
	}
	return ""
}

// UserPositions pages through all open positions for the address.
func (d *Data) UserPositions(ctx context.Context, address string) ([]UserPosition, error) {
	var out []UserPosition
	offset := 0
	for {
		q := url.Values{
			"user":          {address},
			"sizeThreshold": {"0"},
			"limit":         {strconv.Itoa(userPositionsPageLimit)},
			"offset":        {strconv.Itoa(offset)},
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.base+"/positions?"+q.Encode(), nil)
		if err != nil {
			return nil, errors.Wrap(err, "new request")
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := d.http.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "positions page at offset %d", offset)
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, errors.Wrap(err, "read body")
		}
		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("positions page at offset %d: status %d", offset, resp.StatusCode)
		}
		var page []UserPosition
		if err := sonic.Unmarshal(body, &page); err != nil {
			return nil, errors.Wrap(err, "decode positions")
		}
		if len(page) == 0 {
			break
		}
		out = append(out, page...)
		if len(page) < userPositionsPageLimit {
			break
		}
		offset += userPositionsPageLimit
	}
	return out, nil
}
