// Package rates fetches currency exchange rates from exchangerate-api.com
// and caches them in process. With an API key the client talks to the v6
// endpoints; without one it falls back to the rate-limited free v4 service.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Default endpoints for the two API generations.
const (
	DefaultFreeURL  = "https://api.exchangerate-api.com/v4/latest"
	DefaultKeyedURL = "https://v6.exchangerate-api.com/v6"
)

const (
	defaultTimeout = 10 * time.Second
	defaultTTL     = time.Hour
)

var (
	// ErrUnknownCurrency reports a currency code absent from the rate table.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrBadResponse reports a response without a recognizable rate table.
	ErrBadResponse = errors.New("unexpected response format")
)

// Config holds the client settings. Zero values select the public
// endpoints, a 10 second request timeout, and a one hour cache.
type Config struct {
	APIKey   string
	FreeURL  string
	KeyedURL string
	Timeout  time.Duration
	TTL      time.Duration
}

// Client looks up exchange rates over HTTP. Rate tables are cached per
// base currency for the configured TTL; a cache hit never touches the
// network. Safe for concurrent use.
type Client struct {
	config Config
	http   *http.Client
	log    *zap.SugaredLogger

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

type cacheEntry struct {
	rates   map[string]float64
	fetched time.Time
}

// NewClient builds a client, filling unset config fields with defaults.
// A nil logger is replaced with a no-op logger.
func NewClient(config Config, log *zap.SugaredLogger) *Client {
	if config.FreeURL == "" {
		config.FreeURL = DefaultFreeURL
	}
	if config.KeyedURL == "" {
		config.KeyedURL = DefaultKeyedURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.TTL <= 0 {
		config.TTL = defaultTTL
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		log:    log,
		cache:  make(map[string]cacheEntry),
		now:    time.Now,
	}
}

// envelope covers both API generations: the keyed v6 endpoints nest rates
// under conversion_rates, the free v4 endpoint under rates.
type envelope struct {
	ConversionRates map[string]float64 `json:"conversion_rates"`
	Rates           map[string]float64 `json:"rates"`
}

// Latest returns the rate table for the base currency, serving from cache
// when a fetch younger than the TTL exists.
func (c *Client) Latest(ctx context.Context, base string) (map[string]float64, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, ErrUnknownCurrency
	}

	c.mu.Lock()
	if entry, ok := c.cache[base]; ok && c.now().Sub(entry.fetched) < c.config.TTL {
		rates := copyRates(entry.rates)
		c.mu.Unlock()
		return rates, nil
	}
	c.mu.Unlock()

	rates, err := c.fetchLatest(ctx, base)
	if err != nil {
		c.log.Warnw("fetching exchange rates", "base", base, "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.cache[base] = cacheEntry{rates: rates, fetched: c.now()}
	c.mu.Unlock()
	return copyRates(rates), nil
}

func (c *Client) fetchLatest(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", c.config.FreeURL, base)
	if c.config.APIKey != "" {
		url = fmt.Sprintf("%s/%s/latest/%s", c.config.KeyedURL, c.config.APIKey, base)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rate request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting rates: unexpected status %s", resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding rate response: %w", err)
	}
	switch {
	case env.ConversionRates != nil:
		return env.ConversionRates, nil
	case env.Rates != nil:
		return env.Rates, nil
	}
	return nil, ErrBadResponse
}

// Convert exchanges the amount between two currencies and reports the rate
// applied. Same-currency conversions return the amount untouched with rate
// 1.0 and skip the network entirely; everything else rounds to 2 decimal
// places.
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return amount, 1.0, nil
	}

	rates, err := c.Latest(ctx, from)
	if err != nil {
		return decimal.Decimal{}, 0, err
	}
	rate, ok := rates[to]
	if !ok {
		return decimal.Decimal{}, 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}

	converted := amount.Mul(decimal.NewFromFloat(rate)).Round(2)
	return converted, rate, nil
}

func copyRates(rates map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(rates))
	for code, rate := range rates {
		out[code] = rate
	}
	return out
}
