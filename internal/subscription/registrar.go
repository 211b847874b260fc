package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/vault-indexer/internal/adapter"
	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/messaging"
	"github.com/feral-file/vault-indexer/internal/store"
	"github.com/feral-file/vault-indexer/internal/store/schema"
)

// Registrar maintains the append-only set of addresses routed to follow-on pipelines
//
//go:generate mockgen -source=registrar.go -destination=../mocks/registrar.go -package=mocks -mock_names=Registrar=MockRegistrar
type Registrar interface {
	// Register adds address to the pipeline of kind. Registering an address twice is not an error;
	// the returned bool reports whether a new subscription was created.
	Register(ctx context.Context, kind domain.PipelineKind, address string) (bool, error)
	// IsRegistered reports whether address is routed to the pipeline of kind
	IsRegistered(ctx context.Context, kind domain.PipelineKind, address string) (bool, error)
	// Addresses lists the addresses registered with the pipeline of kind in registration order
	Addresses(ctx context.Context, kind domain.PipelineKind) ([]string, error)
}

// Config holds the registrar configuration
type Config struct {
	Chain domain.Chain
	// Kinds are the configured pipeline kinds; empty means VaultInstance only
	Kinds []domain.PipelineKind
}

type registrar struct {
	chain     domain.Chain
	kinds     map[domain.PipelineKind]struct{}
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewRegistrar creates a store-backed registrar. New registrations are announced on
// publisher when it is not nil.
func NewRegistrar(cfg Config, st store.Store, publisher messaging.Publisher, clock adapter.Clock) Registrar {
	kinds := cfg.Kinds
	if len(kinds) == 0 {
		kinds = []domain.PipelineKind{domain.PipelineKindVaultInstance}
	}

	known := make(map[domain.PipelineKind]struct{}, len(kinds))
	for _, k := range kinds {
		known[k] = struct{}{}
	}

	return &registrar{
		chain:     cfg.Chain,
		kinds:     known,
		store:     st,
		publisher: publisher,
		clock:     clock,
	}
}

func (r *registrar) checkKind(kind domain.PipelineKind) error {
	if _, ok := r.kinds[kind]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPipelineKind, kind)
	}
	return nil
}

// Register adds address to the pipeline of kind
func (r *registrar) Register(ctx context.Context, kind domain.PipelineKind, address string) (bool, error) {
	if err := r.checkKind(kind); err != nil {
		return false, err
	}

	addr, err := domain.NormalizeAddress(address)
	if err != nil {
		return false, fmt.Errorf("failed to register subscription: %w", err)
	}

	now := r.clock.Now().UTC()
	created, err := r.store.CreateVaultSubscription(ctx, &schema.VaultSubscription{
		ID:           uuid.New(),
		PipelineKind: kind,
		Address:      addr,
		CreatedAt:    now,
	})
	if err != nil {
		return false, fmt.Errorf("failed to register subscription: %w", err)
	}

	if !created {
		logger.DebugCtx(ctx, "Subscription already registered",
			zap.String("kind", string(kind)),
			zap.String("address", addr))
		return false, nil
	}

	logger.InfoCtx(ctx, "Registered subscription",
		zap.String("kind", string(kind)),
		zap.String("address", addr))

	if r.publisher != nil {
		// announcement failures do not fail a committed registration
		err := r.publisher.PublishSubscription(ctx, &domain.SubscriptionRegistered{
			Chain:        r.chain,
			PipelineKind: kind,
			Address:      addr,
			RegisteredAt: now,
		})
		if err != nil {
			logger.ErrorCtx(ctx, err,
				zap.String("message", "Failed to announce subscription"),
				zap.String("kind", string(kind)),
				zap.String("address", addr))
		}
	}

	return true, nil
}

// IsRegistered reports whether address is routed to the pipeline of kind
func (r *registrar) IsRegistered(ctx context.Context, kind domain.PipelineKind, address string) (bool, error) {
	if err := r.checkKind(kind); err != nil {
		return false, err
	}

	addr, err := domain.NormalizeAddress(address)
	if err != nil {
		return false, err
	}

	sub, err := r.store.GetVaultSubscription(ctx, kind, addr)
	if err != nil {
		return false, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub != nil, nil
}

// Addresses lists the addresses registered with the pipeline of kind
func (r *registrar) Addresses(ctx context.Context, kind domain.PipelineKind) ([]string, error) {
	if err := r.checkKind(kind); err != nil {
		return nil, err
	}

	subs, err := r.store.ListVaultSubscriptions(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	addresses := make([]string, 0, len(subs))
	for _, s := range subs {
		addresses = append(addresses, s.Address)
	}
	return addresses, nil
}
