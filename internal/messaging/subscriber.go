package messaging

import (
	"context"

	"github.com/feral-file/vault-indexer/internal/domain"
)

// EventHandler is called for each VaultCreated event, in chain order
type EventHandler func(event *domain.VaultCreatedEvent) error

// Subscriber defines the interface for subscribing to VaultCreated events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeEvents delivers events from fromBlock onwards, backfilling history
	// before switching to live logs. It returns when ctx is done, the subscription
	// fails, or handler returns an error.
	SubscribeEvents(ctx context.Context, fromBlock uint64, handler EventHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}
