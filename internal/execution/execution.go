// Package execution handles the one operation with real-world consequence: submitting a swap.
package execution

import (
	"context"

	"github.com/rs/zerolog"

	dex "github.com/Synt4xB4ndit/sol-arb-bot/internal/dex/solana"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/metrics"
)

// Receipt records the outcome of one execution request.
type Receipt struct {
	Simulated bool
	Signature string
}

// Executor is implemented twice: a no-op simulator and the live submitter.
// The implementation is chosen once at construction so call sites never
// branch on mode.
type Executor interface {
	Execute(ctx context.Context, quote *dex.Quote) (Receipt, error)
}

// SimExecutor never touches the network. It always succeeds.
type SimExecutor struct {
	log zerolog.Logger
}

func NewSimExecutor(log zerolog.Logger) *SimExecutor {
	return &SimExecutor{log: log}
}

func (e *SimExecutor) Execute(ctx context.Context, quote *dex.Quote) (Receipt, error) {
	metrics.ExecutionsTotal.WithLabelValues("sim", "ok").Inc()
	e.log.Info().Str("inputMint", quote.InputMint).Str("outputMint", quote.OutputMint).Msg("simulation: swap skipped")
	return Receipt{Simulated: true}, nil
}

// LiveExecutor builds a swap transaction from the quote's route, signs it, and
// submits it on-chain. The submission is never retried: a duplicate could
// double-spend the trade.
type LiveExecutor struct {
	log    zerolog.Logger
	client *dex.JupiterClient
}

func NewLiveExecutor(log zerolog.Logger, client *dex.JupiterClient) *LiveExecutor {
	return &LiveExecutor{log: log, client: client}
}

func (e *LiveExecutor) Execute(ctx context.Context, quote *dex.Quote) (Receipt, error) {
	sig, err := e.client.BuildAndSendSwap(ctx, quote)
	if err != nil {
		metrics.ExecutionsTotal.WithLabelValues("live", "failed").Inc()
		return Receipt{}, err
	}
	metrics.ExecutionsTotal.WithLabelValues("live", "ok").Inc()
	e.log.Info().Str("signature", sig.String()).Msg("swap submitted")
	return Receipt{Signature: sig.String()}, nil
}
