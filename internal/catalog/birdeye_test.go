package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestBirdeyeListerList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Fatalf("missing api key header")
		}
		switch r.URL.Path {
		case "/defi/v3/token/list":
			_, _ = w.Write([]byte(`{"data":{"items":[
				{"symbol":"AAA","address":"addr1"},
				{"symbol":"","address":"addr2"},
				{"symbol":"BBB","address":"addr3"}
			]}}`))
		case "/defi/token_overview":
			switch r.URL.Query().Get("address") {
			case "addr1":
				_, _ = w.Write([]byte(`{"data":{"marketCap":2000000,"liquidity":300000,"volume24h":2500000,"priceChange24h":5}}`))
			case "addr3":
				w.WriteHeader(http.StatusInternalServerError)
			default:
				t.Fatalf("unexpected overview address %s", r.URL.Query().Get("address"))
			}
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	lister := NewBirdeyeLister(zerolog.Nop(), server.URL, "test-key", 99)
	lister.client = server.Client()

	candidates, err := lister.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate (failed overview dropped), got %d", len(candidates))
	}
	cand := candidates[0]
	if cand.Symbol != "AAA" || cand.Address != "addr1" {
		t.Fatalf("unexpected candidate: %+v", cand)
	}
	if cand.Metrics.MarketCapUSD != 2000000 || cand.Metrics.LiquidityUSD != 300000 {
		t.Fatalf("unexpected metrics: %+v", cand.Metrics)
	}
}

func TestBirdeyeListerRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	lister := NewBirdeyeLister(zerolog.Nop(), server.URL, "test-key", 99)
	lister.client = server.Client()

	_, err := lister.List(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestBirdeyeListerMissingKey(t *testing.T) {
	lister := NewBirdeyeLister(zerolog.Nop(), "", "", 0)
	if _, err := lister.List(context.Background()); err == nil {
		t.Fatalf("expected error when api key missing")
	}
}
