package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBirdeyeBase = "https://public-api.birdeye.so"

// BirdeyeLister pulls a ranked token list and enriches each entry with a
// per-token overview so the catalog can filter on market metrics.
type BirdeyeLister struct {
	log    zerolog.Logger
	client *http.Client
	base   string
	apiKey string
	limit  int
}

type birdeyeListResponse struct {
	Data struct {
		Items []birdeyeToken `json:"items"`
	} `json:"data"`
}

type birdeyeToken struct {
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
}

type birdeyeOverviewResponse struct {
	Data birdeyeOverview `json:"data"`
}

type birdeyeOverview struct {
	MarketCap      float64 `json:"marketCap"`
	Liquidity      float64 `json:"liquidity"`
	Volume24h      float64 `json:"volume24h"`
	PriceChange24h float64 `json:"priceChange24h"`
}

func NewBirdeyeLister(log zerolog.Logger, base, apiKey string, limit int) *BirdeyeLister {
	if base == "" {
		base = defaultBirdeyeBase
	}
	if limit <= 0 {
		limit = 99
	}
	return &BirdeyeLister{
		log:    log,
		client: &http.Client{Timeout: 10 * time.Second},
		base:   strings.TrimSuffix(base, "/"),
		apiKey: apiKey,
		limit:  limit,
	}
}

// List fetches the token list and a per-token overview. Tokens whose overview
// cannot be fetched are dropped, not fatal: partial discovery still beats
// none.
func (b *BirdeyeLister) List(ctx context.Context) ([]Candidate, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("birdeye api key not set")
	}

	tokens, err := b.list(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(tokens))
	for _, token := range tokens {
		if token.Symbol == "" || token.Address == "" {
			continue
		}
		overview, err := b.overview(ctx, token.Address)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.log.Debug().Err(err).Str("address", token.Address).Msg("birdeye overview failed")
			continue
		}
		candidates = append(candidates, Candidate{
			TokenEntry: TokenEntry{Symbol: token.Symbol, Address: token.Address},
			Metrics: Metrics{
				MarketCapUSD:      overview.MarketCap,
				LiquidityUSD:      overview.Liquidity,
				Volume24hUSD:      overview.Volume24h,
				PriceChange24hPct: overview.PriceChange24h,
			},
		})
	}
	return candidates, nil
}

func (b *BirdeyeLister) list(ctx context.Context) ([]birdeyeToken, error) {
	endpoint := fmt.Sprintf("%s/defi/v3/token/list?limit=%d", b.base, b.limit)
	var payload birdeyeListResponse
	if err := b.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Items, nil
}

func (b *BirdeyeLister) overview(ctx context.Context, address string) (*birdeyeOverview, error) {
	endpoint := fmt.Sprintf("%s/defi/token_overview?address=%s", b.base, url.QueryEscape(address))
	var payload birdeyeOverviewResponse
	if err := b.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (b *BirdeyeLister) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-KEY", b.apiKey)
	req.Header.Set("accept", "application/json")
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
