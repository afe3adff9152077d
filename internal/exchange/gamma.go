package exchange

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"lp_bot/internal/helper"
	"lp_bot/internal/models"
)

const (
	DefaultGammaBase = "https://gamma-api.polymarket.com"

	pageLimit = 100
	userAgent = "LPScan/1.0 (LP rewards analyzer)"
)

// Gamma is the market data provider: it delivers complete, de-paginated
// market snapshots from the Polymarket Gamma API.
type Gamma struct {
	base string
	http *http.Client
}

func NewGamma(base string) *Gamma {
	if base == "" {
		base = DefaultGammaBase
	}
	return &Gamma{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// AllMarkets pages through every active, non-closed market.
func (g *Gamma) AllMarkets(ctx context.Context) ([]models.MarketRecord, error) {
	sp, ctx := opentracing.StartSpanFromContext(ctx, "gamma.all_markets")
	defer sp.Finish()

	var out []models.MarketRecord
	offset := 0
	for {
		u := fmt.Sprintf("%s/markets?active=true&closed=false&limit=%d&offset=%d", g.base, pageLimit, offset)
		var page []gammaMarket
		if err := g.getJSON(ctx, u, &page); err != nil {
			return nil, errors.Wrapf(err, "markets page at offset %d", offset)
		}
		for _, m := range page {
			out = append(out, m.toRecord())
		}
		if len(page) < pageLimit {
			break
		}
		offset += pageLimit
	}
	sp.SetTag("markets", len(out))
	return out, nil
}

// MarketBySlug fetches one market. Returns (nil, nil) when the slug
// does not resolve; the caller decides how to surface that.
func (g *Gamma) MarketBySlug(ctx context.Context, slug string) (*models.MarketRecord, error) {
	q := url.Values{"slug": {helper.NormalizeSlug(slug)}}
	var page []gammaMarket
	if err := g.getJSON(ctx, g.base+"/markets?"+q.Encode(), &page); err != nil {
		return nil, errors.Wrapf(err, "market by slug %q", slug)
	}
	if len(page) == 0 {
		return nil, nil
	}
	rec := page[0].toRecord()
	return &rec, nil
}

func (g *Gamma) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, "decode body")
	}
	return nil
}
