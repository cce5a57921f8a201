// Package scanner drives one round-trip evaluation pass over the token catalog.
package scanner

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Synt4xB4ndit/sol-arb-bot/internal/catalog"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/config"
	dex "github.com/Synt4xB4ndit/sol-arb-bot/internal/dex/solana"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/execution"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/metrics"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/risk"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/signal"
)

// QuoteProvider abstracts "how much of outputMint for amount of inputMint".
// A nil quote with a nil error means no viable route; only transport failures
// come back as errors.
type QuoteProvider interface {
	GetQuote(ctx context.Context, inputMint, outputMint string, amount uint64, slippageBps int) (*dex.Quote, error)
}

// Scanner walks the catalog once per cycle, quoting SOL -> token -> SOL and
// executing when the profit gate opens. Per-entry failures never abort the
// rest of the cycle.
type Scanner struct {
	log     zerolog.Logger
	quotes  QuoteProvider
	catalog *catalog.Catalog
	exec    execution.Executor
	gate    risk.Gate
	cfg     config.Trading
	notify  func(signal.Result)
}

func New(log zerolog.Logger, quotes QuoteProvider, cat *catalog.Catalog, exec execution.Executor, cfg config.Trading) *Scanner {
	return &Scanner{
		log:     log,
		quotes:  quotes,
		catalog: cat,
		exec:    exec,
		gate:    risk.Gate{MinProfitUSD: cfg.MinProfitUSD},
		cfg:     cfg,
	}
}

// OnResult registers a callback invoked for every evaluated entry. Used by the
// control plane to stream results; nil disables it.
func (s *Scanner) OnResult(fn func(signal.Result)) {
	s.notify = fn
}

func (s *Scanner) quoteTimeout() time.Duration {
	if s.cfg.QuoteTimeoutSecs > 0 {
		return time.Duration(s.cfg.QuoteTimeoutSecs) * time.Second
	}
	return 8 * time.Second
}

// Cycle runs one scan over the current catalog snapshot. An empty catalog is a
// no-op. The reference price is fetched once per cycle to bound request
// volume; if it cannot be obtained the cycle is skipped entirely.
func (s *Scanner) Cycle(ctx context.Context) {
	entries := s.catalog.Snapshot()
	if len(entries) == 0 {
		return
	}

	refPrice, ok := s.referencePrice(ctx)
	if !ok {
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		s.scanEntry(ctx, entry, refPrice)
	}
	metrics.ScanCyclesTotal.Inc()
}

// referencePrice quotes the trade amount of SOL into USDC and converts to USD
// per whole SOL.
func (s *Scanner) referencePrice(ctx context.Context) (float64, bool) {
	quote, err := s.getQuote(ctx, dex.SOLMint, dex.USDCMint, s.cfg.TradeAmountLamports)
	if err != nil {
		s.log.Warn().Err(err).Msg("reference price quote failed, skipping cycle")
		return 0, false
	}
	if quote == nil {
		s.log.Warn().Msg("no reference price route, skipping cycle")
		return 0, false
	}
	out, err := quote.OutAmountLamports()
	if err != nil || out == 0 {
		s.log.Warn().Err(err).Msg("unusable reference price quote, skipping cycle")
		return 0, false
	}
	usd := float64(out) / dex.USDCPerUnit
	sol := float64(s.cfg.TradeAmountLamports) / dex.LamportsPerSOL
	return usd / sol, true
}

func (s *Scanner) scanEntry(ctx context.Context, entry catalog.TokenEntry, refPrice float64) {
	outbound, err := s.getQuote(ctx, dex.SOLMint, entry.Address, s.cfg.TradeAmountLamports)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", entry.Symbol).Msg("outbound quote failed")
		return
	}
	if outbound == nil {
		return // no route is an expected, silent skip
	}

	tokenAmount, err := outbound.OutAmountLamports()
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", entry.Symbol).Msg("unparsable outbound quote")
		return
	}

	ret, err := s.getQuote(ctx, entry.Address, dex.SOLMint, tokenAmount)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", entry.Symbol).Msg("return quote failed")
		return
	}
	if ret == nil {
		return
	}

	returned, err := ret.OutAmountLamports()
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", entry.Symbol).Msg("unparsable return quote")
		return
	}

	result := newResult(entry.Symbol, entry.Address, s.cfg.TradeAmountLamports, returned, refPrice)
	s.log.Info().
		Str("symbol", entry.Symbol).
		Int64("profitLamports", result.ProfitLamports).
		Float64("profitUsd", result.ProfitUSD).
		Msg("round trip evaluated")

	if s.gate.Allow(result.ProfitUSD) {
		metrics.OpportunitiesTotal.WithLabelValues(entry.Symbol).Inc()
		s.log.Info().Str("symbol", entry.Symbol).Float64("profitUsd", result.ProfitUSD).Msg("arbitrage found")

		receipt, err := s.exec.Execute(ctx, outbound)
		if err != nil {
			s.log.Error().Err(err).Str("symbol", entry.Symbol).Msg("execution failed")
		} else {
			result.Executed = true
			result.Simulated = receipt.Simulated
			result.Signature = receipt.Signature
		}
	}

	if s.notify != nil {
		s.notify(result)
	}
}

func (s *Scanner) getQuote(ctx context.Context, inputMint, outputMint string, amount uint64) (*dex.Quote, error) {
	qctx, cancel := context.WithTimeout(ctx, s.quoteTimeout())
	defer cancel()
	quote, err := s.quotes.GetQuote(qctx, inputMint, outputMint, amount, s.cfg.SlippageBps)
	switch {
	case err != nil:
		metrics.QuotesTotal.WithLabelValues("error").Inc()
	case quote == nil:
		metrics.QuotesTotal.WithLabelValues("absent").Inc()
	default:
		metrics.QuotesTotal.WithLabelValues("ok").Inc()
	}
	return quote, err
}
