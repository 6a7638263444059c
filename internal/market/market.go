package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// Quote is a point-in-time view of the token's market data.
type Quote struct {
	Symbol       string    `json:"symbol"`
	PriceUSD     float64   `json:"priceUsd"`
	Change24h    float64   `json:"change24h"`
	MarketCapUSD float64   `json:"marketCapUsd"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Available    bool      `json:"available"`
}

// Fetch results reported to the observer.
const (
	ResultHit         = "hit"
	ResultRemote      = "remote"
	ResultStale       = "stale"
	ResultUnavailable = "unavailable"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 30 * time.Second
	defaultSymbol   = "CULTR"
)

// ErrUnavailable indicates no quote could be produced, neither remote nor cached.
var ErrUnavailable = errors.New("market: quote unavailable")

// Client fetches token quotes from a DexScreener-style endpoint with an in-memory cache.
// A stale cached quote is served when the remote call fails.
type Client struct {
	endpoint string
	symbol   string
	http     *http.Client
	ttl      time.Duration
	now      func() time.Time
	observe  func(result string)
	tracer   trace.Tracer
	flight   singleflight.Group

	mu      sync.Mutex
	cached  Quote
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCacheTTL sets how long a fetched quote is served without a remote call.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithSymbol sets the symbol reported when the remote payload omits it.
func WithSymbol(sym string) Option {
	return func(c *Client) {
		if s := strings.TrimSpace(sym); s != "" {
			c.symbol = s
		}
	}
}

// WithNow overrides the time source (tests).
func WithNow(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithObserver registers fn to receive one Result* value per Quote call.
func WithObserver(fn func(result string)) Option {
	return func(c *Client) { c.observe = fn }
}

// NewClient builds a quote client. When endpoint is empty, every call returns an
// unavailable quote without touching the network.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		symbol:   defaultSymbol,
		http:     &http.Client{Timeout: defaultTimeout},
		ttl:      defaultCacheTTL,
		now:      time.Now,
		tracer:   otel.Tracer("cultr.xyz/cultr-web/internal/market"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quote returns the current quote. On a remote failure it returns the last good quote
// (if any) together with the error, so callers can render and log independently.
func (c *Client) Quote(ctx context.Context) (Quote, error) {
	if c == nil {
		return Quote{Symbol: defaultSymbol}, ErrUnavailable
	}
	ctx, span := c.tracer.Start(ctx, "market.Quote")
	defer span.End()

	if q, ok := c.fresh(); ok {
		span.SetAttributes(attribute.String("market.result", ResultHit))
		c.report(ResultHit)
		return q, nil
	}

	if c.endpoint == "" {
		c.report(ResultUnavailable)
		span.SetAttributes(attribute.String("market.result", ResultUnavailable))
		return Quote{Symbol: c.symbol}, ErrUnavailable
	}

	// Concurrent misses share one remote call. The shared call outlives a caller that
	// gives up, bounded by the HTTP client timeout.
	v, err, _ := c.flight.Do("quote", func() (any, error) {
		if q, ok := c.fresh(); ok {
			return q, nil
		}
		now := c.now()
		q, err := c.fetchRemote(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cached = q
		c.expires = now.Add(c.ttl)
		c.mu.Unlock()
		return q, nil
	})
	if err == nil {
		span.SetAttributes(attribute.String("market.result", ResultRemote))
		c.report(ResultRemote)
		return v.(Quote), nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	c.mu.Lock()
	stale := c.cached
	c.mu.Unlock()
	if stale.Available {
		span.SetAttributes(attribute.String("market.result", ResultStale))
		c.report(ResultStale)
		return stale, err
	}
	span.SetAttributes(attribute.String("market.result", ResultUnavailable))
	c.report(ResultUnavailable)
	return Quote{Symbol: c.symbol}, fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// fresh returns the cached quote while it is within its TTL.
func (c *Client) fresh() (Quote, bool) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached.Available && now.Before(c.expires) {
		return c.cached, true
	}
	return Quote{}, false
}

func (c *Client) report(result string) {
	if c.observe != nil {
		c.observe(result)
	}
}

func (c *Client) fetchRemote(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Quote{}, fmt.Errorf("market: remote status %d", resp.StatusCode)
	}

	var payload remotePayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("market: decode: %w", err)
	}
	return c.mapRemote(payload)
}

func (c *Client) mapRemote(raw remotePayload) (Quote, error) {
	pairs := raw.Pairs
	if len(pairs) == 0 && raw.Pair != nil {
		pairs = []remotePair{*raw.Pair}
	}
	if len(pairs) == 0 {
		return Quote{}, errors.New("market: no pairs in payload")
	}
	p := pairs[0]
	price, err := strconv.ParseFloat(strings.TrimSpace(p.PriceUSD), 64)
	if err != nil {
		return Quote{}, fmt.Errorf("market: price %q: %w", p.PriceUSD, err)
	}
	symbol := strings.TrimSpace(p.BaseToken.Symbol)
	if symbol == "" {
		symbol = c.symbol
	}
	mcap := p.MarketCap
	if mcap == 0 {
		mcap = p.FDV
	}
	return Quote{
		Symbol:       symbol,
		PriceUSD:     price,
		Change24h:    p.PriceChange.H24,
		MarketCapUSD: mcap,
		UpdatedAt:    c.now().UTC(),
		Available:    true,
	}, nil
}

type remotePayload struct {
	Pairs []remotePair `json:"pairs"`
	Pair  *remotePair  `json:"pair"`
}

type remotePair struct {
	BaseToken struct {
		Symbol string `json:"symbol"`
	} `json:"baseToken"`
	PriceUSD    string  `json:"priceUsd"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	MarketCap float64 `json:"marketCap"`
	FDV       float64 `json:"fdv"`
}
