package scanner

import (
	"time"

	dex "github.com/Synt4xB4ndit/sol-arb-bot/internal/dex/solana"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/signal"
)

// Evaluate computes round-trip profit for one candidate. Both amounts are in
// lamports, so the subtraction never mixes units; the USD figure converts
// whole SOL at the cycle's reference price. Pure function, no side effects.
func Evaluate(returnOutLamports, inputLamports uint64, refPrice float64) (profitLamports int64, profitUSD float64) {
	profitLamports = int64(returnOutLamports) - int64(inputLamports)
	profitUSD = float64(profitLamports) / dex.LamportsPerSOL * refPrice
	return profitLamports, profitUSD
}

func newResult(symbol, address string, input, output uint64, refPrice float64) signal.Result {
	profitLamports, profitUSD := Evaluate(output, input, refPrice)
	return signal.Result{
		Symbol:         symbol,
		Address:        address,
		InputLamports:  input,
		OutputLamports: output,
		ProfitLamports: profitLamports,
		ProfitUSD:      profitUSD,
		ReferencePrice: refPrice,
		Ts:             time.Now().UTC(),
	}
}
