package core

import (
	"fmt"
	"strings"
)

// Challenge is the server-issued sign-in payload the wallet must sign to
// prove key ownership. It is consumed once and never persisted; a retried
// login always requests a fresh one.
type Challenge struct {
	Domain         string `json:"domain"`
	Address        string `json:"address"`
	Statement      string `json:"statement"`
	URI            string `json:"uri"`
	Version        string `json:"version"`
	ChainID        string `json:"chain_id"`
	Nonce          string `json:"nonce"`
	IssuedAt       string `json:"issued_at"`
	ExpirationTime string `json:"expiration_time,omitempty"`
}

// SignText renders the canonical sign-in message. The byte layout must not
// change: the server recovers the signer address from a signature over
// exactly this text.
func (c *Challenge) SignText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wants you to sign in with your Ethereum account:\n", c.Domain)
	fmt.Fprintf(&b, "%s\n\n", c.Address)
	fmt.Fprintf(&b, "%s\n\n", c.Statement)
	fmt.Fprintf(&b, "URI: %s\n", c.URI)
	fmt.Fprintf(&b, "Version: %s\n", c.Version)
	fmt.Fprintf(&b, "Chain ID: %s\n", c.ChainID)
	fmt.Fprintf(&b, "Nonce: %s\n", c.Nonce)
	fmt.Fprintf(&b, "Issued At: %s", c.IssuedAt)
	if c.ExpirationTime != "" {
		fmt.Fprintf(&b, "\nExpiration Time: %s", c.ExpirationTime)
	}
	return b.String()
}
