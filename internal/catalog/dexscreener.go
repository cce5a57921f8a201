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

const defaultDexScreenerBase = "https://api.dexscreener.com"

// DexScreenerLister discovers candidates through keyword search. It is the
// key-less fallback behind the same Lister contract as Birdeye.
type DexScreenerLister struct {
	log      zerolog.Logger
	client   *http.Client
	base     string
	keywords []string
	limit    int
}

type dexscreenerSearchResponse struct {
	Pairs []dexscreenerPair `json:"pairs"`
	Pair  *dexscreenerPair  `json:"pair"`
}

type dexscreenerPair struct {
	ChainID     string                 `json:"chainId"`
	PairAddress string                 `json:"pairAddress"`
	BaseToken   dexscreenerToken       `json:"baseToken"`
	QuoteToken  dexscreenerToken       `json:"quoteToken"`
	FDV         float64                `json:"fdv"`
	Volume      dexscreenerVolumes     `json:"volume"`
	Liquidity   dexscreenerLiquidity   `json:"liquidity"`
	PriceChange dexscreenerPriceChange `json:"priceChange"`
}

type dexscreenerToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type dexscreenerVolumes struct {
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

type dexscreenerLiquidity struct {
	USD float64 `json:"usd"`
}

type dexscreenerPriceChange struct {
	H24 float64 `json:"h24"`
}

func NewDexScreenerLister(log zerolog.Logger, base string, keywords []string, limit int) *DexScreenerLister {
	if base == "" {
		base = defaultDexScreenerBase
	}
	if len(keywords) == 0 {
		keywords = []string{"sol", "bonk", "wif"}
	}
	if limit <= 0 {
		limit = 25
	}
	return &DexScreenerLister{
		log:      log,
		client:   &http.Client{Timeout: 10 * time.Second},
		base:     strings.TrimSuffix(base, "/"),
		keywords: append([]string(nil), keywords...),
		limit:    limit,
	}
}

// List searches every configured keyword and keeps Solana pairs. A failed
// keyword is skipped; the whole call fails only when no keyword succeeds.
func (d *DexScreenerLister) List(ctx context.Context) ([]Candidate, error) {
	seen := make(map[string]struct{})
	candidates := make([]Candidate, 0, d.limit)
	var lastErr error
	succeeded := false

	for _, keyword := range d.keywords {
		if len(candidates) >= d.limit {
			break
		}
		pairs, err := d.search(ctx, keyword)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if err == ErrRateLimited {
				return nil, err
			}
			d.log.Debug().Err(err).Str("keyword", keyword).Msg("dexscreener search failed")
			lastErr = err
			continue
		}
		succeeded = true
		for _, pair := range pairs {
			if len(candidates) >= d.limit {
				break
			}
			if !strings.EqualFold(pair.ChainID, "solana") {
				continue
			}
			symbol := pair.BaseToken.Symbol
			if symbol == "" {
				symbol = pair.BaseToken.Name
			}
			address := pair.BaseToken.Address
			if symbol == "" || address == "" {
				continue
			}
			if _, ok := seen[address]; ok {
				continue
			}
			volume := pair.Volume.H24
			if volume <= 0 {
				volume = pair.Volume.H6
			}
			if volume <= 0 {
				volume = pair.Volume.H1
			}
			candidates = append(candidates, Candidate{
				TokenEntry: TokenEntry{Symbol: symbol, Address: address},
				Metrics: Metrics{
					MarketCapUSD:      pair.FDV,
					LiquidityUSD:      pair.Liquidity.USD,
					Volume24hUSD:      volume,
					PriceChange24hPct: pair.PriceChange.H24,
				},
			})
			seen[address] = struct{}{}
		}
	}

	if !succeeded && lastErr != nil {
		return nil, lastErr
	}
	return candidates, nil
}

func (d *DexScreenerLister) search(ctx context.Context, keyword string) ([]dexscreenerPair, error) {
	endpoint := fmt.Sprintf("%s/latest/dex/search?q=%s", d.base, url.QueryEscape(keyword))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "sol-arb-bot/1.0 (discovery)")
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var payload dexscreenerSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Pairs) > 0 {
		return payload.Pairs, nil
	}
	if payload.Pair != nil {
		return []dexscreenerPair{*payload.Pair}, nil
	}
	return nil, nil
}
