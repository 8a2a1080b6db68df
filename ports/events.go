package ports

import "context"

// EventPublisher notifies external consumers about account lifecycle
// milestones. Publishing is best effort: failures are logged by callers and
// never abort the automation flow.
type EventPublisher interface {
	// PublishSessionEstablished reports a completed login for a wallet.
	PublishSessionEstablished(ctx context.Context, address, uid string) error

	// PublishWalletFarmed reports the outcome of one generated wallet in a
	// farm run.
	PublishWalletFarmed(ctx context.Context, runID, address string, ok bool) error
}
