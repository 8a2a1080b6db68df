package ports

import (
	"context"

	"github.com/layer-3/voyager/core"
)

// SessionStore persists one SessionRecord per wallet address. Records are
// read once at client construction and written once after a successful
// login; the serialized account flow guarantees no concurrent writers.
type SessionStore interface {
	// Load returns the record for an address, or core.ErrSessionNotFound.
	Load(ctx context.Context, address string) (*core.SessionRecord, error)

	// Save replaces the record for an address.
	Save(ctx context.Context, address string, record *core.SessionRecord) error
}
