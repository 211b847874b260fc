package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/messaging"
)

const (
	defaultBackfillBatchBlocks = uint64(50_000)
	defaultLiveLogBuffer       = 1024
)

// Config holds the configuration for the VaultCreated subscription
type Config struct {
	ChainID          domain.Chain // e.g., "eip155:1" for Ethereum mainnet
	FactoryAddresses []string     // factories whose VaultCreated logs are followed
	// BackfillBatchBlocks is the block span fetched, ordered and delivered per backfill round
	BackfillBatchBlocks uint64
	// LiveLogBuffer is the capacity of the channel receiving live logs
	LiveLogBuffer int
}

type ethSubscriber struct {
	client    EthereumClient
	chainID   domain.Chain
	factories []common.Address
	batch     uint64
	buffer    int
}

// NewSubscriber creates a new VaultCreated event subscriber
func NewSubscriber(cfg Config, ethereumClient EthereumClient) (messaging.Subscriber, error) {
	if len(cfg.FactoryAddresses) == 0 {
		return nil, errors.New("at least one factory address is required")
	}

	factories := make([]common.Address, 0, len(cfg.FactoryAddresses))
	for _, addr := range cfg.FactoryAddresses {
		if !domain.IsValidAddress(addr) {
			return nil, fmt.Errorf("invalid factory address: %q", addr)
		}
		factories = append(factories, common.HexToAddress(addr))
	}

	batch := cfg.BackfillBatchBlocks
	if batch == 0 {
		batch = defaultBackfillBatchBlocks
	}

	buffer := cfg.LiveLogBuffer
	if buffer <= 0 {
		buffer = defaultLiveLogBuffer
	}

	return &ethSubscriber{
		client:    ethereumClient,
		chainID:   cfg.ChainID,
		factories: factories,
		batch:     batch,
		buffer:    buffer,
	}, nil
}

func (s *ethSubscriber) query() ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: s.factories,
		Topics:    [][]common.Hash{{vaultCreatedEventSignature}},
	}
}

// SubscribeEvents delivers VaultCreated events from fromBlock onwards in (block, log index) order.
// The live subscription is opened first and the backfill bound is read from the node afterwards,
// so every log is in the backfill or the live stream. Live logs at or before the last backfilled
// position are dropped.
func (s *ethSubscriber) SubscribeEvents(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	logs := make(chan types.Log, s.buffer)
	liveQuery := s.query()
	sub, err := s.client.SubscribeFilterLogs(ctx, liveQuery, logs)
	if err != nil {
		return fmt.Errorf("%w: failed to subscribe to filter logs: %v", domain.ErrSubscriptionFailed, err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from ethereum events logs")
		sub.Unsubscribe()
	}()

	head, err := s.client.FetchLatestBlock(ctx)
	if err != nil {
		return err
	}

	var last *domain.EventPosition
	if fromBlock <= head {
		last, err = s.backfill(ctx, fromBlock, head, handler)
		if err != nil {
			return err
		}
	}

	logger.InfoCtx(ctx, "Switching to live VaultCreated logs",
		zap.Uint64("from_block", fromBlock),
		zap.Uint64("head", head))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
		case vLog := <-logs:
			if vLog.Removed {
				logger.WarnCtx(ctx, "Skipping removed log",
					zap.Uint64("block_number", vLog.BlockNumber),
					zap.String("tx_hash", vLog.TxHash.Hex()))
				continue
			}

			position := logPosition(vLog)
			if vLog.BlockNumber < fromBlock || (last != nil && !position.After(*last)) {
				continue
			}

			if err := s.deliver(ctx, vLog, handler); err != nil {
				return err
			}
			last = &position
		}
	}
}

// backfill delivers historical logs in [fromBlock, toBlock] and returns the last delivered position
func (s *ethSubscriber) backfill(ctx context.Context, fromBlock, toBlock uint64, handler messaging.EventHandler) (*domain.EventPosition, error) {
	var last *domain.EventPosition

	for start := fromBlock; start <= toBlock; start += s.batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+s.batch-1, toBlock)
		query := s.query()
		query.FromBlock = new(big.Int).SetUint64(start)
		query.ToBlock = new(big.Int).SetUint64(end)

		logs, err := s.client.FilterLogs(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to backfill blocks %d-%d: %w", start, end, err)
		}

		logs = slices.DeleteFunc(logs, func(l types.Log) bool { return l.Removed })
		slices.SortFunc(logs, compareLogs)

		if len(logs) > 0 {
			blocks := make([]uint64, 0, len(logs))
			for _, l := range logs {
				blocks = append(blocks, l.BlockNumber)
			}
			if err := s.client.PrefetchBlockTimestamps(ctx, blocks); err != nil {
				return nil, err
			}
		}

		for _, vLog := range logs {
			if err := s.deliver(ctx, vLog, handler); err != nil {
				return nil, err
			}
			position := logPosition(vLog)
			last = &position
		}

		logger.DebugCtx(ctx, "Backfilled VaultCreated logs",
			zap.Uint64("from_block", start),
			zap.Uint64("to_block", end),
			zap.Int("logs", len(logs)))

		if end == toBlock {
			break
		}
	}

	return last, nil
}

// deliver decodes a log and hands it to the handler; undecodable logs are skipped
func (s *ethSubscriber) deliver(ctx context.Context, vLog types.Log, handler messaging.EventHandler) error {
	event, err := s.client.ParseVaultCreatedLog(ctx, vLog)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEvent) {
			logger.ErrorCtx(ctx, err,
				zap.String("message", "Skipping undecodable log"),
				zap.Uint64("block_number", vLog.BlockNumber),
				zap.String("tx_hash", vLog.TxHash.Hex()))
			return nil
		}
		return fmt.Errorf("failed to parse log: %w", err)
	}

	if err := handler(event); err != nil {
		return fmt.Errorf("failed to handle event at %s: %w", event.Position(), err)
	}
	return nil
}

func logPosition(l types.Log) domain.EventPosition {
	return domain.EventPosition{BlockNumber: l.BlockNumber, LogIndex: uint64(l.Index)}
}

func compareLogs(a, b types.Log) int {
	if a.BlockNumber != b.BlockNumber {
		if a.BlockNumber < b.BlockNumber {
			return -1
		}
		return 1
	}
	switch {
	case a.Index < b.Index:
		return -1
	case a.Index > b.Index:
		return 1
	}
	return 0
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	return s.client.GetLatestBlock(ctx)
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}
