package idtoken

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/voyager/core"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestUserID(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"user_id": "uid-12345"})

	uid, err := UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-12345", uid)
}

func TestUserIDMalformed(t *testing.T) {
	junkPayload := base64.RawURLEncoding.EncodeToString([]byte("not json"))

	cases := map[string]string{
		"empty":              "",
		"wrong segments":     "only-one-segment",
		"two segments":       "a.b",
		"invalid base64":     "a.!!!!.b",
		"non-json payload":   "a." + junkPayload + ".b",
		"missing user_id":    signedToken(t, jwt.MapClaims{"sub": "someone"}),
		"empty user_id":      signedToken(t, jwt.MapClaims{"user_id": ""}),
		"non-string user_id": signedToken(t, jwt.MapClaims{"user_id": 42}),
	}

	for name, token := range cases {
		uid, err := UserID(token)
		assert.ErrorIs(t, err, core.ErrUIDMissing, name)
		assert.Empty(t, uid, name)
	}
}
