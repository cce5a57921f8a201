// Package catalog maintains the set of candidate tokens the scanner round-trips.
package catalog

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Synt4xB4ndit/sol-arb-bot/internal/config"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/metrics"
)

// TokenEntry identifies one tradable candidate. Entries are replaced wholesale
// on refresh, never mutated in place.
type TokenEntry struct {
	Symbol  string
	Address string
}

// Metrics carries the market figures a lister attaches to each candidate.
// Listers that cannot supply a figure leave it at zero; the matching filter is
// then skipped for that candidate.
type Metrics struct {
	MarketCapUSD      float64
	LiquidityUSD      float64
	Volume24hUSD      float64
	PriceChange24hPct float64
}

// Candidate is a discovered token plus the metrics used for qualification.
type Candidate struct {
	TokenEntry
	Metrics Metrics
}

// Lister is the capability interface over a discovery provider: list candidate
// assets with market metrics. Implementations are interchangeable and selected
// once at startup.
type Lister interface {
	List(ctx context.Context) ([]Candidate, error)
}

// ErrRateLimited signals the provider asked us to back off. Refresh retries
// with fixed backoff only for this error.
var ErrRateLimited = errors.New("discovery provider rate limited")

// seedTokens keeps the scanner alive before the first successful discovery.
var seedTokens = []TokenEntry{
	{Symbol: "USDC", Address: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"},
	{Symbol: "USDT", Address: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"},
	{Symbol: "JUP", Address: "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"},
	{Symbol: "BONK", Address: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"},
	{Symbol: "WIF", Address: "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm"},
	{Symbol: "RAY", Address: "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R"},
	{Symbol: "JTO", Address: "jtojtomepa8beP8AuQc6eXt5FriJwfFMwQx2v2f9mCL"},
	{Symbol: "PYTH", Address: "HZ1JovNiVvGrGNiiYvEozEVgZ58xaU3RKwX8eACQBCt3"},
}

const (
	rateLimitRetries = 2
	rateLimitBackoff = 2 * time.Second
)

// Catalog owns the current candidate set. Refresh fails soft: any provider
// error or an empty qualifying result leaves the previous snapshot untouched.
type Catalog struct {
	log    zerolog.Logger
	lister Lister
	cfg    config.Discovery
	sleep  func(time.Duration)

	mu     sync.RWMutex
	tokens map[string]TokenEntry
}

func New(log zerolog.Logger, lister Lister, cfg config.Discovery) *Catalog {
	return &Catalog{
		log:    log,
		lister: lister,
		cfg:    cfg,
		sleep:  time.Sleep,
		tokens: make(map[string]TokenEntry),
	}
}

// Refresh pulls a fresh candidate list, applies the qualification filters, and
// replaces the snapshot. On any failure (or zero qualifying candidates) the
// previous snapshot is retained; if there has never been one, the builtin seed
// set is installed so scanning always has candidates.
func (c *Catalog) Refresh(ctx context.Context) {
	candidates, err := c.listWithRetry(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("token discovery failed, keeping catalog")
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		c.seedIfEmpty()
		return
	}

	qualified := make(map[string]TokenEntry)
	for _, cand := range candidates {
		if cand.Symbol == "" || cand.Address == "" {
			continue
		}
		if !c.qualifies(cand.Metrics) {
			continue
		}
		qualified[cand.Symbol] = cand.TokenEntry
	}

	if len(qualified) == 0 {
		c.log.Warn().Int("listed", len(candidates)).Msg("no qualifying tokens, keeping catalog")
		metrics.CatalogRefreshTotal.WithLabelValues("empty").Inc()
		c.seedIfEmpty()
		return
	}

	c.mu.Lock()
	c.tokens = qualified
	c.mu.Unlock()
	metrics.CatalogRefreshTotal.WithLabelValues("ok").Inc()
	metrics.CatalogSize.Set(float64(len(qualified)))
	c.log.Info().Int("tokens", len(qualified)).Msg("catalog refreshed")
}

func (c *Catalog) listWithRetry(ctx context.Context) ([]Candidate, error) {
	candidates, err := c.lister.List(ctx)
	for attempt := 0; errors.Is(err, ErrRateLimited) && attempt < rateLimitRetries; attempt++ {
		c.log.Warn().Int("attempt", attempt+1).Msg("discovery rate limited, backing off")
		c.sleep(rateLimitBackoff)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		candidates, err = c.lister.List(ctx)
	}
	return candidates, err
}

func (c *Catalog) qualifies(m Metrics) bool {
	if c.cfg.MinMarketCapUSD > 0 && m.MarketCapUSD > 0 && m.MarketCapUSD < c.cfg.MinMarketCapUSD {
		return false
	}
	if c.cfg.MinLiquidityUSD > 0 && m.LiquidityUSD > 0 && m.LiquidityUSD < c.cfg.MinLiquidityUSD {
		return false
	}
	// Volume-to-mcap band rejects both dead and wash-traded tokens.
	if m.MarketCapUSD > 0 && m.Volume24hUSD > 0 {
		ratio := m.Volume24hUSD / m.MarketCapUSD
		if c.cfg.VolumeToMcapMin > 0 && ratio < c.cfg.VolumeToMcapMin {
			return false
		}
		if c.cfg.VolumeToMcapMax > 0 && ratio > c.cfg.VolumeToMcapMax {
			return false
		}
	}
	if c.cfg.MaxPriceChange24h > 0 && math.Abs(m.PriceChange24hPct) > c.cfg.MaxPriceChange24h {
		return false
	}
	return true
}

func (c *Catalog) seedIfEmpty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tokens) > 0 {
		return
	}
	seeded := make(map[string]TokenEntry, len(seedTokens))
	for _, entry := range seedTokens {
		seeded[entry.Symbol] = entry
	}
	c.tokens = seeded
	metrics.CatalogSize.Set(float64(len(seeded)))
	c.log.Info().Int("tokens", len(seeded)).Msg("catalog seeded from builtin list")
}

// Snapshot returns the entries sorted by symbol. The copy is the caller's; the
// catalog may rebind its own map at any time.
func (c *Catalog) Snapshot() []TokenEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]TokenEntry, 0, len(c.tokens))
	for _, entry := range c.tokens {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Size reports the current candidate count.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tokens)
}
