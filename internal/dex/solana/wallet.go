package solana

import (
	"errors"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
)

// LoadPrivateKey parses base58 signing-key material. An unparsable key is a
// startup-fatal condition for live trading, so the error carries context.
func LoadPrivateKey(b58 string) (solana.PrivateKey, error) {
	if b58 == "" {
		return nil, errors.New("signing key not set")
	}
	key, err := solana.PrivateKeyFromBase58(b58)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return key, nil
}
