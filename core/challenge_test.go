package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChallenge() *Challenge {
	return &Challenge{
		Domain:    "voyager.preview.craft-world.gg",
		Address:   "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Statement: "Sign in to Craft World",
		URI:       "https://voyager.preview.craft-world.gg",
		Version:   "1",
		ChainID:   "2020",
		Nonce:     "abc123",
		IssuedAt:  "2025-01-01T00:00:00Z",
	}
}

func TestChallengeSignText(t *testing.T) {
	want := "voyager.preview.craft-world.gg wants you to sign in with your Ethereum account:\n" +
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266\n\n" +
		"Sign in to Craft World\n\n" +
		"URI: https://voyager.preview.craft-world.gg\n" +
		"Version: 1\n" +
		"Chain ID: 2020\n" +
		"Nonce: abc123\n" +
		"Issued At: 2025-01-01T00:00:00Z"

	require.Equal(t, want, testChallenge().SignText())
}

func TestChallengeSignTextDeterministic(t *testing.T) {
	a := testChallenge()
	b := testChallenge()
	require.Equal(t, a.SignText(), b.SignText())
}

func TestChallengeSignTextExpirationLine(t *testing.T) {
	c := testChallenge()
	c.ExpirationTime = "2025-01-02T00:00:00Z"

	text := c.SignText()
	assert.Contains(t, text, "\nExpiration Time: 2025-01-02T00:00:00Z")
	assert.NotContains(t, testChallenge().SignText(), "Expiration Time")
}
