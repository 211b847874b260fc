package subscription_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/mocks"
	"github.com/feral-file/vault-indexer/internal/store"
	"github.com/feral-file/vault-indexer/internal/subscription"
)

const (
	vaultA = "0x00000000000000000000000000000000000000CC"
	vaultB = "0x00000000000000000000000000000000000000cd"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testRegistrarMocks struct {
	ctrl      *gomock.Controller
	store     store.Store
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	registrar subscription.Registrar
}

func setupTest(t *testing.T) *testRegistrarMocks {
	ctrl := gomock.NewController(t)
	st := store.NewMemoryStore()
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock.EXPECT().Now().DoAndReturn(func() time.Time {
		calls++
		return now.Add(time.Duration(calls) * time.Second)
	}).AnyTimes()

	return &testRegistrarMocks{
		ctrl:      ctrl,
		store:     st,
		publisher: publisher,
		clock:     clock,
		registrar: subscription.NewRegistrar(subscription.Config{Chain: domain.ChainEthereumMainnet}, st, publisher, clock),
	}
}

func TestRegister_AnnouncesNewSubscription(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	tm.publisher.EXPECT().
		PublishSubscription(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *domain.SubscriptionRegistered) error {
			assert.Equal(t, domain.ChainEthereumMainnet, sub.Chain)
			assert.Equal(t, domain.PipelineKindVaultInstance, sub.PipelineKind)
			assert.Equal(t, "0x00000000000000000000000000000000000000cc", sub.Address)
			assert.False(t, sub.RegisteredAt.IsZero())
			return nil
		}).Times(1)

	created, err := tm.registrar.Register(ctx, domain.PipelineKindVaultInstance, vaultA)
	require.NoError(t, err)
	assert.True(t, created)

	sub, err := tm.store.GetVaultSubscription(ctx, domain.PipelineKindVaultInstance, "0x00000000000000000000000000000000000000cc")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.NotEmpty(t, sub.ID.String())
}

func TestRegister_Idempotent(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	// re-registrations are not re-announced
	tm.publisher.EXPECT().PublishSubscription(ctx, gomock.Any()).Return(nil).Times(1)

	created, err := tm.registrar.Register(ctx, domain.PipelineKindVaultInstance, vaultA)
	require.NoError(t, err)
	assert.True(t, created)

	for _, addr := range []string{vaultA, "0x00000000000000000000000000000000000000cc"} {
		created, err = tm.registrar.Register(ctx, domain.PipelineKindVaultInstance, addr)
		require.NoError(t, err)
		assert.False(t, created)
	}

	addresses, err := tm.registrar.Addresses(ctx, domain.PipelineKindVaultInstance)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x00000000000000000000000000000000000000cc"}, addresses)
}

func TestRegister_UnknownKind(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	_, err := tm.registrar.Register(ctx, "VaultDeposit", vaultA)
	assert.ErrorIs(t, err, domain.ErrUnknownPipelineKind)

	_, err = tm.registrar.IsRegistered(ctx, "VaultDeposit", vaultA)
	assert.ErrorIs(t, err, domain.ErrUnknownPipelineKind)

	_, err = tm.registrar.Addresses(ctx, "VaultDeposit")
	assert.ErrorIs(t, err, domain.ErrUnknownPipelineKind)
}

func TestRegister_ConfiguredKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	reg := subscription.NewRegistrar(subscription.Config{
		Chain: domain.ChainEthereumMainnet,
		Kinds: []domain.PipelineKind{"VaultDeposit"},
	}, store.NewMemoryStore(), nil, clock)

	created, err := reg.Register(context.Background(), "VaultDeposit", vaultA)
	require.NoError(t, err)
	assert.True(t, created)

	_, err = reg.Register(context.Background(), domain.PipelineKindVaultInstance, vaultA)
	assert.ErrorIs(t, err, domain.ErrUnknownPipelineKind)
}

func TestRegister_InvalidAddress(t *testing.T) {
	tm := setupTest(t)

	_, err := tm.registrar.Register(context.Background(), domain.PipelineKindVaultInstance, "0xnothex")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnknownPipelineKind)
}

func TestRegister_PublishFailureKeepsRegistration(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	tm.publisher.EXPECT().PublishSubscription(ctx, gomock.Any()).Return(errors.New("nats: timeout"))

	created, err := tm.registrar.Register(ctx, domain.PipelineKindVaultInstance, vaultA)
	require.NoError(t, err)
	assert.True(t, created)

	registered, err := tm.registrar.IsRegistered(ctx, domain.PipelineKindVaultInstance, vaultA)
	require.NoError(t, err)
	assert.True(t, registered)
}

func TestRegister_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	st.EXPECT().CreateVaultSubscription(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

	reg := subscription.NewRegistrar(subscription.Config{Chain: domain.ChainEthereumMainnet}, st, nil, clock)
	_, err := reg.Register(context.Background(), domain.PipelineKindVaultInstance, vaultA)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register subscription")
}

func TestIsRegisteredAndAddresses(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	tm.publisher.EXPECT().PublishSubscription(ctx, gomock.Any()).Return(nil).Times(2)

	registered, err := tm.registrar.IsRegistered(ctx, domain.PipelineKindVaultInstance, vaultA)
	require.NoError(t, err)
	assert.False(t, registered)

	_, err = tm.registrar.Register(ctx, domain.PipelineKindVaultInstance, vaultB)
	require.NoError(t, err)
	_, err = tm.registrar.Register(ctx, domain.PipelineKindVaultInstance, vaultA)
	require.NoError(t, err)

	registered, err = tm.registrar.IsRegistered(ctx, domain.PipelineKindVaultInstance, vaultA)
	require.NoError(t, err)
	assert.True(t, registered)

	addresses, err := tm.registrar.Addresses(ctx, domain.PipelineKindVaultInstance)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0x00000000000000000000000000000000000000cd",
		"0x00000000000000000000000000000000000000cc",
	}, addresses)
}
