package execution

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	dex "github.com/Synt4xB4ndit/sol-arb-bot/internal/dex/solana"
)

func TestSimExecutorNeverTouchesNetwork(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	exec := NewSimExecutor(zerolog.Nop())
	quote := &dex.Quote{InputMint: "AAA", OutputMint: "BBB", InAmount: "10", OutAmount: "20"}

	for i := 0; i < 25; i++ {
		receipt, err := exec.Execute(context.Background(), quote)
		if err != nil {
			t.Fatalf("sim execute must always succeed, got %v", err)
		}
		if !receipt.Simulated {
			t.Fatalf("expected simulated receipt")
		}
		if receipt.Signature != "" {
			t.Fatalf("simulated receipt must carry no signature")
		}
	}
	if hits != 0 {
		t.Fatalf("simulated executor issued %d network calls", hits)
	}
}

func TestLiveExecutorSurfacesRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	wallet := solana.NewWallet()
	client := dex.NewJupiterClient("https://rpc", server.URL, wallet.PrivateKey, "confirmed")
	client.Http = server.Client()

	exec := NewLiveExecutor(zerolog.Nop(), client)
	quote := &dex.Quote{InputMint: "AAA", OutputMint: "BBB", InAmount: "10", OutAmount: "20"}

	if _, err := exec.Execute(context.Background(), quote); err == nil {
		t.Fatalf("expected error when provider rejects the submission")
	}
}
