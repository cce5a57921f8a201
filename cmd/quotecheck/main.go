// Binary quotecheck runs one round-trip quote against Jupiter and prints the
// evaluated profit. Useful for checking connectivity and a single mint without
// starting the full bot.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Synt4xB4ndit/sol-arb-bot/internal/config"
	dex "github.com/Synt4xB4ndit/sol-arb-bot/internal/dex/solana"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/scanner"
)

func main() {
	mint := flag.String("mint", "", "candidate token mint address")
	amount := flag.Uint64("amount", 50_000_000, "trade size in lamports")
	flag.Parse()
	if *mint == "" {
		log.Fatal("usage: quotecheck -mint <address> [-amount lamports]")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "internal/config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Quoting needs no signing identity.
	client := dex.NewJupiterClient(cfg.Dex.RpcURL, cfg.Dex.JupiterBase, nil, cfg.Dex.Commitment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	refQuote, err := client.GetQuote(ctx, dex.SOLMint, dex.USDCMint, *amount, cfg.Trading.SlippageBps)
	if err != nil || refQuote == nil {
		log.Fatalf("reference quote unavailable: %v", err)
	}
	refOut, err := refQuote.OutAmountLamports()
	if err != nil {
		log.Fatalf("reference quote: %v", err)
	}
	refPrice := (float64(refOut) / dex.USDCPerUnit) / (float64(*amount) / dex.LamportsPerSOL)

	outbound, err := client.GetQuote(ctx, dex.SOLMint, *mint, *amount, cfg.Trading.SlippageBps)
	if err != nil {
		log.Fatalf("outbound quote: %v", err)
	}
	if outbound == nil {
		log.Fatalf("no outbound route for %s", *mint)
	}
	tokenAmount, err := outbound.OutAmountLamports()
	if err != nil {
		log.Fatalf("outbound quote: %v", err)
	}

	ret, err := client.GetQuote(ctx, *mint, dex.SOLMint, tokenAmount, cfg.Trading.SlippageBps)
	if err != nil {
		log.Fatalf("return quote: %v", err)
	}
	if ret == nil {
		log.Fatalf("no return route for %s", *mint)
	}
	returned, err := ret.OutAmountLamports()
	if err != nil {
		log.Fatalf("return quote: %v", err)
	}

	profitLamports, profitUSD := scanner.Evaluate(returned, *amount, refPrice)
	log.Printf("mint %s: in=%d out=%d profit=%d lamports (%.4f USD at %.2f USD/SOL)",
		*mint, *amount, returned, profitLamports, profitUSD, refPrice)
}
