// Package idtoken extracts the opaque user id from an identity-provider ID
// token. The token's signature is deliberately not verified: it is consumed
// only to recover the uid claim from its payload segment.
package idtoken

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/layer-3/voyager/core"
)

// UserID decodes the token's payload segment and returns its user_id claim.
// Malformed input (wrong segment count, bad base64, non-JSON payload) never
// panics; it yields core.ErrUIDMissing.
func UserID(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrUIDMissing, err)
	}
	uid, ok := claims["user_id"].(string)
	if !ok || uid == "" {
		return "", core.ErrUIDMissing
	}
	return uid, nil
}
