package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/vault-indexer/internal/block"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBlockProviderMocks contains all the mocks needed for testing the block provider
type testBlockProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockFetcher
	clock    *mocks.MockClock
	provider block.BlockProvider
}

func setupTest(t *testing.T, cfg block.Config) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	return &testBlockProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		clock:    mockClock,
		provider: block.NewBlockProvider(mockFetcher, cfg, mockClock),
	}
}

func defaultConfig() block.Config {
	return block.Config{
		TTL:             10 * time.Second,
		StaleWindow:     2 * time.Minute,
		PrefetchWorkers: 4,
	}
}

func TestBlockProvider_GetLatestBlock_CachedWithinTTL(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(now),
		tm.clock.EXPECT().Now().Return(now.Add(5*time.Second)),
	)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil).Times(1)

	first, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	second, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), first)
	assert.Equal(t, uint64(1000), second)
}

func TestBlockProvider_GetLatestBlock_RefetchAfterTTL(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(now),
		tm.clock.EXPECT().Now().Return(now.Add(11*time.Second)),
	)
	gomock.InOrder(
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1001), nil),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	blockNum, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), blockNum)
}

func TestBlockProvider_GetLatestBlock_StaleFallback(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(now),
		tm.clock.EXPECT().Now().Return(now.Add(time.Minute)),
		tm.clock.EXPECT().Now().Return(now.Add(3*time.Minute)),
	)
	gomock.InOrder(
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc down")),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc down")),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	// within stale window
	blockNum, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)

	// beyond stale window
	_, err = tm.provider.GetLatestBlock(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid cache available")
}

func TestBlockProvider_GetLatestBlock_FetchErrorWithoutCache(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc down"))

	_, err := tm.provider.GetLatestBlock(ctx)
	assert.Error(t, err)
}

func TestBlockProvider_GetBlockTimestamp_Cached(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	ts := time.Unix(1700000000, 0).UTC()
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(42)).Return(ts, nil).Times(1)

	for range 3 {
		got, err := tm.provider.GetBlockTimestamp(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, ts, got)
	}
}

func TestBlockProvider_GetBlockTimestamp_Error(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(42)).Return(time.Time{}, errors.New("not found")).Times(2)

	_, err := tm.provider.GetBlockTimestamp(ctx, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block 42")

	// failures are not cached
	_, err = tm.provider.GetBlockTimestamp(ctx, 42)
	require.Error(t, err)
}

func TestBlockProvider_GetBlockTimestamp_EvictsOldest(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxCachedTimestamps = 2
	tm := setupTest(t, cfg)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1)).Return(time.Unix(1, 0), nil).Times(2)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(2)).Return(time.Unix(2, 0), nil).Times(1)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(3)).Return(time.Unix(3, 0), nil).Times(1)

	for _, n := range []uint64{1, 2, 3, 2, 3} {
		_, err := tm.provider.GetBlockTimestamp(ctx, n)
		require.NoError(t, err)
	}

	// block 1 was evicted
	_, err := tm.provider.GetBlockTimestamp(ctx, 1)
	require.NoError(t, err)
}

func TestBlockProvider_PrefetchTimestamps(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	for _, n := range []uint64{10, 11, 12} {
		tm.fetcher.EXPECT().FetchBlockTimestamp(gomock.Any(), n).Return(time.Unix(int64(n), 0), nil).Times(1)
	}

	// duplicates are fetched once
	err := tm.provider.PrefetchTimestamps(ctx, []uint64{10, 11, 11, 12, 10})
	require.NoError(t, err)

	for _, n := range []uint64{10, 11, 12} {
		ts, err := tm.provider.GetBlockTimestamp(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, int64(n), ts.Unix())
	}

	// fully cached batch makes no calls
	require.NoError(t, tm.provider.PrefetchTimestamps(ctx, []uint64{10, 12}))
}

func TestBlockProvider_PrefetchTimestamps_Error(t *testing.T) {
	tm := setupTest(t, defaultConfig())
	defer tm.ctrl.Finish()

	ctx := context.Background()
	tm.fetcher.EXPECT().FetchBlockTimestamp(gomock.Any(), uint64(10)).Return(time.Unix(10, 0), nil).AnyTimes()
	tm.fetcher.EXPECT().FetchBlockTimestamp(gomock.Any(), uint64(11)).Return(time.Time{}, errors.New("boom")).AnyTimes()

	err := tm.provider.PrefetchTimestamps(ctx, []uint64{10, 11})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prefetch block timestamps")
}
