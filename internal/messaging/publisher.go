package messaging

import (
	"context"

	"github.com/feral-file/vault-indexer/internal/domain"
)

// Publisher defines the interface for announcing registered subscriptions on the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishSubscription announces a newly registered per-address pipeline subscription
	PublishSubscription(ctx context.Context, sub *domain.SubscriptionRegistered) error
	// Close closes the connection
	Close()
	// CloseChan returns a channel that is closed when the connection is closed
	CloseChan() <-chan struct{}
}
