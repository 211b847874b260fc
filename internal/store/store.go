package store

import (
	"context"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/store/schema"
)

// Store defines the interface for database operations.
// Get methods return (nil, nil) when the record does not exist.
// Save methods upsert by primary key.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetFactory retrieves a factory by its canonical address
	GetFactory(ctx context.Context, id string) (*schema.Factory, error)
	// SaveFactory upserts a factory
	SaveFactory(ctx context.Context, factory *schema.Factory) error

	// GetAsset retrieves an asset by its canonical address
	GetAsset(ctx context.Context, id string) (*schema.Asset, error)
	// SaveAsset upserts an asset
	SaveAsset(ctx context.Context, asset *schema.Asset) error

	// GetManager retrieves a manager by its canonical address
	GetManager(ctx context.Context, id string) (*schema.Manager, error)
	// SaveManager upserts a manager
	SaveManager(ctx context.Context, manager *schema.Manager) error

	// GetVault retrieves a vault by its canonical address
	GetVault(ctx context.Context, id string) (*schema.Vault, error)
	// SaveVault upserts a vault
	SaveVault(ctx context.Context, vault *schema.Vault) error
	// CountVaults returns the number of persisted vaults
	CountVaults(ctx context.Context) (int64, error)

	// CreateVaultSubscription inserts a subscription unless one exists for the same
	// (pipeline kind, address); it reports whether a row was inserted
	CreateVaultSubscription(ctx context.Context, sub *schema.VaultSubscription) (bool, error)
	// GetVaultSubscription retrieves the subscription of an address for a pipeline kind
	GetVaultSubscription(ctx context.Context, kind domain.PipelineKind, address string) (*schema.VaultSubscription, error)
	// ListVaultSubscriptions lists the subscriptions of a pipeline kind in insertion order
	ListVaultSubscriptions(ctx context.Context, kind domain.PipelineKind) ([]schema.VaultSubscription, error)

	// GetEventCursor retrieves the position of the last processed event for a chain
	GetEventCursor(ctx context.Context, chain domain.Chain) (*domain.EventPosition, error)
	// SetEventCursor stores the position of the last processed event for a chain
	SetEventCursor(ctx context.Context, chain domain.Chain, position domain.EventPosition) error

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
}

func eventCursorKey(chain domain.Chain) string {
	return "event_cursor:" + string(chain)
}
