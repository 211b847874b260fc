package block

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/vault-indexer/internal/adapter"
	"github.com/feral-file/vault-indexer/internal/logger"
)

// DefaultMaxCachedTimestamps bounds the timestamp cache when Config leaves it unset
const DefaultMaxCachedTimestamps = 10_000

// headInfo represents the cached chain head
type headInfo struct {
	Number    uint64
	FetchedAt time.Time
}

// BlockProvider provides cached access to the chain head and to block timestamps.
// Head lookups are cached for a short TTL; timestamps of a given block never change
// and are cached until evicted by the size bound.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp of a block, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)

	// PrefetchTimestamps concurrently warms the cache for the given blocks
	PrefetchTimestamps(ctx context.Context, blockNumbers []uint64) error
}

// BlockFetcher fetches block information from the chain
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block number
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp of a block
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long to cache the head block number
	TTL time.Duration

	// StaleWindow is how long a cached head may be served when a fetch fails
	StaleWindow time.Duration

	// MaxCachedTimestamps bounds the timestamp cache; the lowest block numbers are evicted first
	MaxCachedTimestamps int

	// PrefetchWorkers is the size of the pool used by PrefetchTimestamps
	PrefetchWorkers int
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu         sync.RWMutex
	head       *headInfo
	timestamps map[uint64]time.Time
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	if config.MaxCachedTimestamps <= 0 {
		config.MaxCachedTimestamps = DefaultMaxCachedTimestamps
	}
	if config.PrefetchWorkers <= 0 {
		config.PrefetchWorkers = 1
	}
	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: make(map[uint64]time.Time),
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.FetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", zap.Uint64("block_number", cached.Number))
		return cached.Number, nil
	}

	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.FetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block number", zap.Uint64("block_number", cached.Number), zap.Error(err))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &headInfo{Number: blockNumber, FetchedAt: now}
	p.mu.Unlock()

	return blockNumber, nil
}

// GetBlockTimestamp returns the timestamp for a given block number, using cache if present
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	p.mu.RLock()
	ts, ok := p.timestamps[blockNumber]
	p.mu.RUnlock()
	if ok {
		return ts, nil
	}

	logger.DebugCtx(ctx, "Fetching block timestamp", zap.Uint64("block_number", blockNumber))
	ts, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d: %w", blockNumber, err)
	}

	p.store(blockNumber, ts)
	return ts, nil
}

// PrefetchTimestamps fetches the missing timestamps of blockNumbers on a worker pool
func (p *blockProvider) PrefetchTimestamps(ctx context.Context, blockNumbers []uint64) error {
	missing := p.missing(blockNumbers)
	if len(missing) == 0 {
		return nil
	}

	pool := pond.NewPool(p.config.PrefetchWorkers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, blockNumber := range missing {
		group.SubmitErr(func() error {
			_, err := p.GetBlockTimestamp(ctx, blockNumber)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to prefetch block timestamps: %w", err)
	}
	return nil
}

func (p *blockProvider) missing(blockNumbers []uint64) []uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seen := make(map[uint64]struct{}, len(blockNumbers))
	var missing []uint64
	for _, n := range blockNumbers {
		if _, ok := p.timestamps[n]; ok {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		missing = append(missing, n)
	}
	return missing
}

func (p *blockProvider) store(blockNumber uint64, ts time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.timestamps[blockNumber] = ts
	if len(p.timestamps) <= p.config.MaxCachedTimestamps {
		return
	}

	// Evict the oldest blocks down to the bound
	keys := make([]uint64, 0, len(p.timestamps))
	for k := range p.timestamps {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys[:len(keys)-p.config.MaxCachedTimestamps] {
		delete(p.timestamps, k)
	}
}
