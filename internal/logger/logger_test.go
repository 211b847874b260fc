package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitialize_WithoutSentry(t *testing.T) {
	require.NoError(t, Initialize(Config{Debug: true, Service: "vault-indexer"}))
	assert.NotNil(t, Default())
	assert.True(t, Default().Core().Enabled(zap.DebugLevel))

	require.NoError(t, Initialize(Config{Debug: false}))
	assert.False(t, Default().Core().Enabled(zap.DebugLevel))
	assert.True(t, Default().Core().Enabled(zap.InfoLevel))
}

func TestInitialize_InvalidSentryDSN(t *testing.T) {
	err := Initialize(Config{SentryDSN: "not a dsn"})
	assert.Error(t, err)
}

func TestHelpers_DoNotPanic(t *testing.T) {
	require.NoError(t, Initialize(Config{Debug: false}))
	ctx := context.Background()

	assert.NotPanics(t, func() {
		Info("info", zap.String("k", "v"))
		InfoCtx(ctx, "info ctx")
		Warn("warn")
		WarnCtx(ctx, "warn ctx")
		Debug("debug")
		DebugCtx(ctx, "debug ctx")
		Error(errors.New("boom"))
		Error(nil)
		ErrorCtx(ctx, errors.New("boom ctx"))
		ErrorCtx(ctx, nil)
		Flush(10 * time.Millisecond)
	})
}
