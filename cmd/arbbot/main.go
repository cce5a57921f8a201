package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	solanasdk "github.com/gagliardetto/solana-go"

	"github.com/Synt4xB4ndit/sol-arb-bot/internal/catalog"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/config"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/control"
	dex "github.com/Synt4xB4ndit/sol-arb-bot/internal/dex/solana"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/execution"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/metrics"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/scanner"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/scheduler"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/server"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/util"
)

func main() {
	log := util.NewLogger("info")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "internal/config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Live mode needs signing material at startup; a bad key must never be
	// discovered mid-trade.
	var wallet solanasdk.PrivateKey
	if !cfg.Trading.Simulation {
		wallet, err = dex.LoadPrivateKey(cfg.Wallet.PrivateKeyBase58)
		if err != nil {
			log.Fatal().Err(err).Msg("load wallet")
		}
	}

	jupiter := dex.NewJupiterClient(cfg.Dex.RpcURL, cfg.Dex.JupiterBase, wallet, cfg.Dex.Commitment)

	var lister catalog.Lister
	switch cfg.Discovery.Provider {
	case "dexscreener":
		lister = catalog.NewDexScreenerLister(
			log.With().Str("component", "discovery").Logger(),
			cfg.Discovery.DexScreenerBase, cfg.Discovery.Keywords, cfg.Discovery.ListLimit,
		)
	default:
		lister = catalog.NewBirdeyeLister(
			log.With().Str("component", "discovery").Logger(),
			cfg.Discovery.BirdeyeBase, cfg.Discovery.BirdeyeAPIKey, cfg.Discovery.ListLimit,
		)
	}
	cat := catalog.New(log.With().Str("component", "catalog").Logger(), lister, cfg.Discovery)

	var exec execution.Executor
	if cfg.Trading.Simulation {
		exec = execution.NewSimExecutor(log.With().Str("component", "executor").Logger())
	} else {
		exec = execution.NewLiveExecutor(log.With().Str("component", "executor").Logger(), jupiter)
	}

	scan := scanner.New(log.With().Str("component", "scanner").Logger(), jupiter, cat, exec, cfg.Trading)

	state := &control.RunState{}
	srv := server.New(log.With().Str("component", "control").Logger(), state, cfg.Control.Addr, cfg.Control.APIKey, cfg.Trading.Simulation)
	scan.OnResult(srv.Hub().Publish)
	srv.Start()
	log.Info().Str("addr", cfg.Control.Addr).Bool("simulation", cfg.Trading.Simulation).Msg("control plane up")

	sched := scheduler.New(
		log.With().Str("component", "scheduler").Logger(),
		state, cat, scan,
		time.Duration(cfg.Trading.ScanIntervalSecs)*time.Second,
		time.Duration(cfg.Discovery.RefreshIntervalSecs)*time.Second,
	)
	sched.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("control server shutdown")
	}
	log.Info().Msg("shut down")
}
