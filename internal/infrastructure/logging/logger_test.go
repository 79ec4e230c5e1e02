package logging_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

func TestLogger_FieldsReachZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.New(zap.New(core)).Named("taxonomy").With(logging.String("component", "grid"))

	logger.Warn("unknown commodity", logging.String("id", "unobtainium"), logging.Err(errors.New("boom")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "taxonomy", entry.LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "grid", fields["component"])
	assert.Equal(t, "unobtainium", fields["id"])
	assert.Equal(t, "boom", fields["error"])
}

func TestNewLogger_FallsBackOnBadLevel(t *testing.T) {
	logger, err := logging.NewLogger(logging.Config{Level: "loud", Format: "console", OutputPaths: []string{"stdout"}})

	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewNop(t *testing.T) {
	logger := logging.NewNop()

	logger.Info("ignored", logging.Int("n", 1))
	assert.NotNil(t, logger.With(logging.Bool("x", true)))
}
