// Package events publishes account lifecycle events over Watermill.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/layer-3/voyager/ports"
)

const (
	// SessionTopic carries completed-login events.
	SessionTopic = "voyager.session"

	// FarmTopic carries per-wallet farm outcomes.
	FarmTopic = "voyager.farm"
)

// SessionEstablishedEvent reports a completed login.
type SessionEstablishedEvent struct {
	Address string `json:"address"`
	UID     string `json:"uid"`
}

// WalletFarmedEvent reports the outcome of one generated wallet.
type WalletFarmedEvent struct {
	RunID   string `json:"run_id"`
	Address string `json:"address"`
	OK      bool   `json:"ok"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishSessionEstablished publishes a completed-login event.
func (p *WatermillPublisher) PublishSessionEstablished(_ context.Context, address, uid string) error {
	return p.publish(SessionTopic, SessionEstablishedEvent{Address: address, UID: uid})
}

// PublishWalletFarmed publishes a farm outcome event.
func (p *WatermillPublisher) PublishWalletFarmed(_ context.Context, runID, address string, ok bool) error {
	return p.publish(FarmTopic, WalletFarmedEvent{RunID: runID, Address: address, OK: ok})
}

func (p *WatermillPublisher) publish(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
