// Package eth derives wallet identities from secp256k1 private keys and
// signs personal messages with the EIP-191 prefix scheme.
package eth

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/layer-3/voyager/core"
)

// Wallet is one immutable wallet identity. A session client holds exactly
// one for its lifetime.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// ParseKey builds a Wallet from a hex-encoded private key, with or without
// the 0x prefix.
func ParseKey(hexKey string) (*Wallet, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidKey, err)
	}
	return &Wallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// Generate creates a fresh random wallet identity.
func Generate() (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &Wallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// Address returns the checksummed wallet address.
func (w *Wallet) Address() string {
	return w.address.Hex()
}

// ShortAddress returns an abbreviated address for log output.
func (w *Wallet) ShortAddress() string {
	addr := w.address.Hex()
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// PrivateKeyHex returns the 0x-prefixed private key.
func (w *Wallet) PrivateKeyHex() string {
	return hexutil.Encode(crypto.FromECDSA(w.key))
}

// SignText signs a UTF-8 message under the personal-message scheme: the
// text is prefixed per EIP-191 before hashing, and the recovery id is
// shifted to the 27/28 convention. The result is 0x-prefixed hex.
func (w *Wallet) SignText(message string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), w.key)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}
