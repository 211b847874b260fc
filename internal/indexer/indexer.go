package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/materializer"
	"github.com/feral-file/vault-indexer/internal/messaging"
	"github.com/feral-file/vault-indexer/internal/store"
)

// Config holds the configuration for the indexer
type Config struct {
	ChainID domain.Chain
	// StartBlock is used when no cursor is stored; 0 starts at the latest block
	StartBlock uint64
}

// Indexer feeds VaultCreated events to the materialization engine in chain order
type Indexer interface {
	// Run processes events until ctx is done or an event fails
	Run(ctx context.Context) error
	// Close closes the indexer and cleans up resources
	Close()
}

type indexer struct {
	subscriber messaging.Subscriber
	engine     materializer.Engine
	store      store.Store
	config     Config
}

// NewIndexer creates a new indexer
func NewIndexer(
	sub messaging.Subscriber,
	eng materializer.Engine,
	st store.Store,
	cfg Config,
) Indexer {
	return &indexer{
		subscriber: sub,
		engine:     eng,
		store:      st,
		config:     cfg,
	}
}

// startBlock resolves the first block to read and the cursor to skip up to
func (i *indexer) startBlock(ctx context.Context) (uint64, *domain.EventPosition, error) {
	chain := zap.String("chain", string(i.config.ChainID))

	cursor, err := i.store.GetEventCursor(ctx, i.config.ChainID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get event cursor: %w", err)
	}

	if cursor != nil {
		// Re-read the cursor block; events at or before the cursor are skipped
		logger.InfoCtx(ctx, "Resuming from event cursor", chain, zap.String("cursor", cursor.String()))
		return cursor.BlockNumber, cursor, nil
	}

	if i.config.StartBlock > 0 {
		logger.InfoCtx(ctx, "Starting from configured block", chain, zap.Uint64("block", i.config.StartBlock))
		return i.config.StartBlock, nil, nil
	}

	latestBlock, err := i.subscriber.GetLatestBlock(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest block", chain, zap.Uint64("block", latestBlock))
	return latestBlock, nil, nil
}

// Run processes events until ctx is done or an event fails
func (i *indexer) Run(ctx context.Context) error {
	fromBlock, cursor, err := i.startBlock(ctx)
	if err != nil {
		return err
	}

	handler := func(event *domain.VaultCreatedEvent) error {
		position := event.Position()
		if cursor != nil && !position.After(*cursor) {
			logger.DebugCtx(ctx, "Skipping processed event", zap.String("position", position.String()))
			return nil
		}

		if err := i.engine.HandleVaultCreated(ctx, event); err != nil {
			return err
		}

		// The vault is committed; losing the cursor here would replay it as a duplicate
		if err := i.store.SetEventCursor(ctx, i.config.ChainID, position); err != nil {
			return fmt.Errorf("failed to save event cursor %s: %w", position, err)
		}
		cursor = &position

		return nil
	}

	errCh := make(chan error, 1)

	go func() {
		logger.InfoCtx(ctx, "Starting event subscription",
			zap.String("chain", string(i.config.ChainID)),
			zap.Uint64("from_block", fromBlock))
		errCh <- i.subscriber.SubscribeEvents(ctx, fromBlock, handler)
	}()

	// Wait for error or context cancellation
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the indexer and cleans up resources
func (i *indexer) Close() {
	i.subscriber.Close()
}
