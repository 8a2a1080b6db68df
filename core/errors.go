package core

import "errors"

var (
	ErrInvalidKey           = errors.New("invalid private key")
	ErrChallengeMissing     = errors.New("authentication payload missing")
	ErrTokenMissing         = errors.New("custom token missing")
	ErrIdentityProvider     = errors.New("identity provider rejected token exchange")
	ErrIDTokenMissing       = errors.New("id token missing")
	ErrUIDMissing           = errors.New("unable to extract uid from id token")
	ErrSessionCookieMissing = errors.New("session cookie missing from response")
	ErrSessionInvalid       = errors.New("session is invalid")
	ErrSessionNotFound      = errors.New("no session record for address")
	ErrStoreOperationFailed = errors.New("store operation failed")
	ErrUIDRequired          = errors.New("session has no uid")
)
