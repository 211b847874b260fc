package indexer_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/indexer"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/messaging"
	"github.com/feral-file/vault-indexer/internal/mocks"
	"github.com/feral-file/vault-indexer/internal/store"
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

// testIndexerMocks contains all the mocks needed for testing the indexer
type testIndexerMocks struct {
	ctrl       *gomock.Controller
	subscriber *mocks.MockSubscriber
	engine     *mocks.MockEngine
	store      store.Store
}

func setupTest(t *testing.T) *testIndexerMocks {
	ctrl := gomock.NewController(t)
	return &testIndexerMocks{
		ctrl:       ctrl,
		subscriber: mocks.NewMockSubscriber(ctrl),
		engine:     mocks.NewMockEngine(ctrl),
		store:      store.NewMemoryStore(),
	}
}

func (tm *testIndexerMocks) newIndexer(startBlock uint64) indexer.Indexer {
	return indexer.NewIndexer(tm.subscriber, tm.engine, tm.store, indexer.Config{
		ChainID:    domain.ChainEthereumMainnet,
		StartBlock: startBlock,
	})
}

func eventAt(blockNumber, logIndex uint64) *domain.VaultCreatedEvent {
	return &domain.VaultCreatedEvent{
		Chain:       domain.ChainEthereumMainnet,
		BlockNumber: blockNumber,
		LogIndex:    logIndex,
	}
}

var errStreamEnded = errors.New("stream ended")

// deliver makes SubscribeEvents feed events to the handler, then end with errStreamEnded
func (tm *testIndexerMocks) deliver(fromBlock uint64, events ...*domain.VaultCreatedEvent) {
	tm.subscriber.EXPECT().
		SubscribeEvents(gomock.Any(), fromBlock, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, handler messaging.EventHandler) error {
			for _, e := range events {
				if err := handler(e); err != nil {
					return err
				}
			}
			return errStreamEnded
		})
}

func (tm *testIndexerMocks) cursor(t *testing.T) *domain.EventPosition {
	cursor, err := tm.store.GetEventCursor(context.Background(), domain.ChainEthereumMainnet)
	require.NoError(t, err)
	return cursor
}

func TestIndexer_Run_StartsAtLatestBlock(t *testing.T) {
	tm := setupTest(t)

	first, second := eventAt(500, 0), eventAt(501, 2)
	tm.subscriber.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(500), nil)
	tm.deliver(500, first, second)
	gomock.InOrder(
		tm.engine.EXPECT().HandleVaultCreated(gomock.Any(), first).Return(nil),
		tm.engine.EXPECT().HandleVaultCreated(gomock.Any(), second).Return(nil),
	)

	err := tm.newIndexer(0).Run(context.Background())
	assert.ErrorIs(t, err, errStreamEnded)
	assert.Equal(t, &domain.EventPosition{BlockNumber: 501, LogIndex: 2}, tm.cursor(t))
}

func TestIndexer_Run_WithStartBlock(t *testing.T) {
	tm := setupTest(t)

	event := eventAt(1001, 0)
	tm.deliver(1000, event)
	tm.engine.EXPECT().HandleVaultCreated(gomock.Any(), event).Return(nil)

	err := tm.newIndexer(1000).Run(context.Background())
	assert.ErrorIs(t, err, errStreamEnded)
	assert.Equal(t, uint64(1001), tm.cursor(t).BlockNumber)
}

func TestIndexer_Run_ResumesFromCursor(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	require.NoError(t, tm.store.SetEventCursor(ctx, domain.ChainEthereumMainnet, domain.EventPosition{BlockNumber: 100, LogIndex: 3}))

	// the cursor wins over the configured start block
	tm.deliver(100, eventAt(100, 1), eventAt(100, 3), eventAt(100, 4), eventAt(101, 0))
	gomock.InOrder(
		tm.engine.EXPECT().HandleVaultCreated(gomock.Any(), eventAt(100, 4)).Return(nil),
		tm.engine.EXPECT().HandleVaultCreated(gomock.Any(), eventAt(101, 0)).Return(nil),
	)

	err := tm.newIndexer(50).Run(ctx)
	assert.ErrorIs(t, err, errStreamEnded)
	assert.Equal(t, &domain.EventPosition{BlockNumber: 101, LogIndex: 0}, tm.cursor(t))
}

func TestIndexer_Run_EngineErrorStops(t *testing.T) {
	tm := setupTest(t)

	engineErr := &domain.ContractReadError{Address: "0xabc", Method: "symbol", Err: errors.New("timeout")}
	tm.deliver(10, eventAt(10, 0), eventAt(11, 0), eventAt(12, 0))
	gomock.InOrder(
		tm.engine.EXPECT().HandleVaultCreated(gomock.Any(), eventAt(10, 0)).Return(nil),
		tm.engine.EXPECT().HandleVaultCreated(gomock.Any(), eventAt(11, 0)).Return(engineErr),
	)

	err := tm.newIndexer(10).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReadFailure)

	// the failed event is not marked processed
	assert.Equal(t, &domain.EventPosition{BlockNumber: 10, LogIndex: 0}, tm.cursor(t))
}

func TestIndexer_Run_CursorErrors(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEventCursor(gomock.Any(), domain.ChainEthereumMainnet).Return(nil, errors.New("db down"))

		idx := indexer.NewIndexer(mocks.NewMockSubscriber(ctrl), mocks.NewMockEngine(ctrl), st, indexer.Config{ChainID: domain.ChainEthereumMainnet})
		err := idx.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get event cursor")
	})

	t.Run("save", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := mocks.NewMockStore(ctrl)
		sub := mocks.NewMockSubscriber(ctrl)
		eng := mocks.NewMockEngine(ctrl)

		event := eventAt(10, 0)
		st.EXPECT().GetEventCursor(gomock.Any(), domain.ChainEthereumMainnet).Return(nil, nil)
		st.EXPECT().SetEventCursor(gomock.Any(), domain.ChainEthereumMainnet, event.Position()).Return(errors.New("db down"))
		eng.EXPECT().HandleVaultCreated(gomock.Any(), event).Return(nil)
		sub.EXPECT().SubscribeEvents(gomock.Any(), uint64(10), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uint64, handler messaging.EventHandler) error {
				return handler(event)
			})

		idx := indexer.NewIndexer(sub, eng, st, indexer.Config{ChainID: domain.ChainEthereumMainnet, StartBlock: 10})
		err := idx.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save event cursor 10:0")
	})
}

func TestIndexer_Run_LatestBlockError(t *testing.T) {
	tm := setupTest(t)
	tm.subscriber.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(0), errors.New("rpc down"))

	err := tm.newIndexer(0).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get latest block number")
}

func TestIndexer_Run_ContextCanceled(t *testing.T) {
	tm := setupTest(t)
	ctx, cancel := context.WithCancel(context.Background())

	tm.subscriber.EXPECT().
		SubscribeEvents(gomock.Any(), uint64(10), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ uint64, _ messaging.EventHandler) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		})

	err := tm.newIndexer(10).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndexer_Close(t *testing.T) {
	tm := setupTest(t)
	tm.subscriber.EXPECT().Close().Times(1)

	tm.newIndexer(0).Close()
}
