package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	RunStoreTests(t, func(*testing.T) Store { return NewMemoryStore() }, func(*testing.T) {})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	input := buildTestVault(t, testVaultID, "100")
	require.NoError(t, s.SaveVault(ctx, input))

	// mutating the saved value or a loaded value leaves the store untouched
	input.Name = "changed"
	input.Raw[0] = ' '
	loaded, err := s.GetVault(ctx, testVaultID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Yield Vault", loaded.Name)
	loaded.IsActive = false

	again, err := s.GetVault(ctx, testVaultID)
	require.NoError(t, err)
	assert.True(t, again.IsActive)
	assert.Equal(t, byte('{'), again.Raw[0])
}

func TestMemoryStore_Ping(t *testing.T) {
	assert.NoError(t, NewMemoryStore().Ping(context.Background()))
}
