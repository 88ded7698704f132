package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_NopBeforeInitialize(t *testing.T) {
	log.Store(nil)
	assert.NotNil(t, Logger())
	assert.NotPanics(t, func() { Logger().Info("dropped") })
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { log.Store(nil) })

	assert.Error(t, Initialize("loud"))

	require.NoError(t, Initialize("warn"))
	assert.False(t, Logger().Core().Enabled(zap.InfoLevel))
	assert.True(t, Logger().Core().Enabled(zap.WarnLevel))
}

func TestSet(t *testing.T) {
	t.Cleanup(func() { log.Store(nil) })

	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))

	Logger().Info("challenge created", zap.String("mode", "word"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "word", logs.All()[0].ContextMap()["mode"])
}
