package solana

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
)

func TestLoadPrivateKey(t *testing.T) {
	wallet := solana.NewWallet()

	key, err := LoadPrivateKey(wallet.PrivateKey.String())
	if err != nil {
		t.Fatalf("expected key, got error: %v", err)
	}
	if !key.PublicKey().Equals(wallet.PublicKey()) {
		t.Fatalf("expected public key %s, got %s", wallet.PublicKey(), key.PublicKey())
	}
}

func TestLoadPrivateKeyEmpty(t *testing.T) {
	if _, err := LoadPrivateKey(""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestLoadPrivateKeyMalformed(t *testing.T) {
	if _, err := LoadPrivateKey("not-base58-%%%"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}
