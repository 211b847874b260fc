package ethereum

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/vault-indexer/internal/adapter"
	"github.com/feral-file/vault-indexer/internal/block"
	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/messaging"
	"github.com/feral-file/vault-indexer/internal/mocks"
)

type testSubscriberMocks struct {
	ctrl       *gomock.Controller
	client     *mocks.MockEthereumClient
	sub        *mocks.MockSubscription
	errCh      chan error
	subscriber messaging.Subscriber
}

func setupSubscriberTest(t *testing.T, batch uint64) *testSubscriberMocks {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthereumClient(ctrl)
	sub := mocks.NewMockSubscription(ctrl)
	errCh := make(chan error, 1)

	var subErr <-chan error = errCh
	sub.EXPECT().Err().Return(subErr).AnyTimes()

	subscriber, err := NewSubscriber(Config{
		ChainID:             domain.ChainEthereumMainnet,
		FactoryAddresses:    []string{testFactory.Hex()},
		BackfillBatchBlocks: batch,
	}, client)
	require.NoError(t, err)

	return &testSubscriberMocks{
		ctrl:       ctrl,
		client:     client,
		sub:        sub,
		errCh:      errCh,
		subscriber: subscriber,
	}
}

// expectLive makes SubscribeFilterLogs succeed and queues the given live logs
func (tm *testSubscriberMocks) expectLive(live ...types.Log) {
	tm.client.EXPECT().
		SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
			for _, l := range live {
				ch <- l
			}
			return tm.sub, nil
		})
	tm.sub.EXPECT().Unsubscribe().Times(1)
}

// expectParse decodes every log into an event carrying only its position
func (tm *testSubscriberMocks) expectParse() {
	tm.client.EXPECT().
		ParseVaultCreatedLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l types.Log) (*domain.VaultCreatedEvent, error) {
			return &domain.VaultCreatedEvent{BlockNumber: l.BlockNumber, LogIndex: uint64(l.Index)}, nil
		}).AnyTimes()
}

func vLogAt(blockNumber uint64, index uint) types.Log {
	return types.Log{BlockNumber: blockNumber, Index: index}
}

// collect returns a handler recording positions that cancels once want events arrived
func collect(cancel context.CancelFunc, want int, got *[]string) messaging.EventHandler {
	return func(e *domain.VaultCreatedEvent) error {
		*got = append(*got, e.Position().String())
		if len(*got) == want {
			cancel()
		}
		return nil
	}
}

func TestNewSubscriber_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthereumClient(ctrl)

	_, err := NewSubscriber(Config{ChainID: domain.ChainEthereumMainnet}, client)
	assert.Error(t, err)

	_, err = NewSubscriber(Config{
		ChainID:          domain.ChainEthereumMainnet,
		FactoryAddresses: []string{"not-an-address"},
	}, client)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid factory address")
}

func TestSubscribeEvents_BackfillThenLiveInOrder(t *testing.T) {
	tm := setupSubscriberTest(t, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	removedLive := vLogAt(210, 0)
	removedLive.Removed = true
	tm.expectLive(
		vLogAt(150, 1), // already backfilled
		vLogAt(90, 0),  // before fromBlock
		removedLive,
		vLogAt(210, 2),
	)

	removed := vLogAt(130, 0)
	removed.Removed = true

	tm.client.EXPECT().FetchLatestBlock(gomock.Any()).Return(uint64(200), nil)
	tm.client.EXPECT().FilterLogs(gomock.Any(), rangeMatcher{100, 200}).
		Return([]types.Log{vLogAt(150, 1), vLogAt(120, 0), removed, vLogAt(150, 0)}, nil)
	tm.client.EXPECT().PrefetchBlockTimestamps(gomock.Any(), []uint64{120, 150, 150}).Return(nil)
	tm.expectParse()

	var got []string
	err := tm.subscriber.SubscribeEvents(ctx, 100, collect(cancel, 4, &got))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"120:0", "150:0", "150:1", "210:2"}, got)
}

func TestSubscribeEvents_BackfillInBatches(t *testing.T) {
	tm := setupSubscriberTest(t, 10)
	tm.expectLive()
	tm.errCh <- errors.New("websocket closed")

	tm.client.EXPECT().FetchLatestBlock(gomock.Any()).Return(uint64(25), nil)
	gomock.InOrder(
		tm.client.EXPECT().FilterLogs(gomock.Any(), rangeMatcher{0, 9}).Return(nil, nil),
		tm.client.EXPECT().FilterLogs(gomock.Any(), rangeMatcher{10, 19}).Return(nil, nil),
		tm.client.EXPECT().FilterLogs(gomock.Any(), rangeMatcher{20, 25}).Return(nil, nil),
	)

	err := tm.subscriber.SubscribeEvents(context.Background(), 0, func(*domain.VaultCreatedEvent) error {
		t.Fatal("no events expected")
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrSubscriptionFailed)
	assert.Contains(t, err.Error(), "websocket closed")
}

func TestSubscribeEvents_FromBlockAfterHead(t *testing.T) {
	tm := setupSubscriberTest(t, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.expectLive(vLogAt(300, 0))
	tm.client.EXPECT().FetchLatestBlock(gomock.Any()).Return(uint64(200), nil)
	tm.expectParse()

	var got []string
	err := tm.subscriber.SubscribeEvents(ctx, 300, collect(cancel, 1, &got))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"300:0"}, got)
}

func TestSubscribeEvents_HeadAdvancesAfterCachedRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	ethClient := mocks.NewMockEthClient(ctrl)
	sub := mocks.NewMockSubscription(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var head atomic.Uint64
	head.Store(100)
	ethClient.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, number *big.Int) (*types.Header, error) {
			if number == nil {
				return &types.Header{Number: new(big.Int).SetUint64(head.Load())}, nil
			}
			return &types.Header{Number: number, Time: 1700000000}, nil
		}).AnyTimes()
	ethClient.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).Return(sub, nil)
	ethClient.EXPECT().FilterLogs(gomock.Any(), rangeMatcher{100, 101}).
		Return([]types.Log{buildVaultCreatedLog(t, 101, 0)}, nil)
	sub.EXPECT().Err().Return(make(<-chan error)).AnyTimes()
	sub.EXPECT().Unsubscribe().Times(1)

	blockProvider := block.NewBlockProvider(NewEthereumBlockFetcher(ethClient), block.Config{
		TTL:         12 * time.Second,
		StaleWindow: time.Minute,
	}, adapter.NewClock())
	client := NewClient(testClientConfig(), ethClient, blockProvider)
	subscriber, err := NewSubscriber(Config{
		ChainID:          domain.ChainEthereumMainnet,
		FactoryAddresses: []string{testFactory.Hex()},
	}, client)
	require.NoError(t, err)

	latest, err := subscriber.GetLatestBlock(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(100), latest)

	// block 101 is mined while the cached head still reads 100
	head.Store(101)

	var got []string
	err = subscriber.SubscribeEvents(ctx, 100, collect(cancel, 1, &got))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"101:0"}, got)
}

func TestSubscribeEvents_HeadFetchFailure(t *testing.T) {
	tm := setupSubscriberTest(t, 1000)
	tm.expectLive()
	tm.client.EXPECT().FetchLatestBlock(gomock.Any()).Return(uint64(0), errors.New("rpc down"))

	err := tm.subscriber.SubscribeEvents(context.Background(), 0, func(*domain.VaultCreatedEvent) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
}

func TestSubscribeEvents_SubscribeFailure(t *testing.T) {
	tm := setupSubscriberTest(t, 1000)

	tm.client.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("dial tcp: connection refused"))

	err := tm.subscriber.SubscribeEvents(context.Background(), 0, func(*domain.VaultCreatedEvent) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSubscriptionFailed)
}

func TestSubscribeEvents_HandlerErrorStops(t *testing.T) {
	tm := setupSubscriberTest(t, 1000)
	tm.expectLive()

	tm.client.EXPECT().FetchLatestBlock(gomock.Any()).Return(uint64(200), nil)
	tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
		Return([]types.Log{vLogAt(120, 0), vLogAt(121, 0)}, nil)
	tm.client.EXPECT().PrefetchBlockTimestamps(gomock.Any(), gomock.Any()).Return(nil)
	tm.expectParse()

	handlerErr := errors.New("store unavailable")
	calls := 0
	err := tm.subscriber.SubscribeEvents(context.Background(), 100, func(*domain.VaultCreatedEvent) error {
		calls++
		return handlerErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, handlerErr)
	assert.Contains(t, err.Error(), "failed to handle event at 120:0")
	assert.Equal(t, 1, calls)
}

func TestSubscribeEvents_ParseErrors(t *testing.T) {
	t.Run("invalid log is skipped", func(t *testing.T) {
		tm := setupSubscriberTest(t, 1000)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		tm.expectLive()

		tm.client.EXPECT().FetchLatestBlock(gomock.Any()).Return(uint64(200), nil)
		tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
			Return([]types.Log{vLogAt(120, 0), vLogAt(121, 0)}, nil)
		tm.client.EXPECT().PrefetchBlockTimestamps(gomock.Any(), gomock.Any()).Return(nil)
		gomock.InOrder(
			tm.client.EXPECT().ParseVaultCreatedLog(gomock.Any(), vLogAt(120, 0)).
				Return(nil, domain.ErrInvalidEvent),
			tm.client.EXPECT().ParseVaultCreatedLog(gomock.Any(), vLogAt(121, 0)).
				Return(&domain.VaultCreatedEvent{BlockNumber: 121}, nil),
		)

		var got []string
		err := tm.subscriber.SubscribeEvents(ctx, 100, collect(cancel, 1, &got))

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{"121:0"}, got)
	})

	t.Run("timestamp failure stops the stream", func(t *testing.T) {
		tm := setupSubscriberTest(t, 1000)
		tm.expectLive()

		tm.client.EXPECT().FetchLatestBlock(gomock.Any()).Return(uint64(200), nil)
		tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{vLogAt(120, 0)}, nil)
		tm.client.EXPECT().PrefetchBlockTimestamps(gomock.Any(), gomock.Any()).Return(nil)
		tm.client.EXPECT().ParseVaultCreatedLog(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("failed to get block timestamp: rpc down"))

		err := tm.subscriber.SubscribeEvents(context.Background(), 100, func(*domain.VaultCreatedEvent) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rpc down")
	})
}

func TestSubscriber_GetLatestBlockAndClose(t *testing.T) {
	tm := setupSubscriberTest(t, 1000)

	tm.client.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(42), nil)
	tm.client.EXPECT().Close().Times(1)

	latest, err := tm.subscriber.GetLatestBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), latest)

	tm.subscriber.Close()
}
