package shared_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

func TestLifecycleStateMachine_RunAndComplete(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(3310, 1, 1, 0, 0, 0, 0, time.UTC))
	sm := shared.NewLifecycleStateMachine(clock)

	// Act
	require.NoError(t, sm.Start())
	clock.Advance(5 * time.Minute)
	require.NoError(t, sm.Complete())

	// Assert
	assert.Equal(t, shared.LifecycleStatusCompleted, sm.Status())
	assert.True(t, sm.IsFinished())
	assert.Equal(t, 5*time.Minute, sm.RuntimeDuration())
}

func TestLifecycleStateMachine_RestartAfterFailure(t *testing.T) {
	// Arrange
	sm := shared.NewLifecycleStateMachine(shared.NewMockClock(time.Time{}))
	require.NoError(t, sm.Start())
	require.NoError(t, sm.Fail(errors.New("fetch failed")))
	require.Error(t, sm.LastError())

	// Act
	err := sm.Start()

	// Assert
	require.NoError(t, err)
	assert.True(t, sm.IsRunning())
	assert.NoError(t, sm.LastError())
	assert.Nil(t, sm.StoppedAt())
	assert.Equal(t, 2, sm.Runs())
}

func TestLifecycleStateMachine_InvalidTransitions(t *testing.T) {
	// Arrange
	sm := shared.NewLifecycleStateMachine(nil)

	// Act & Assert
	assert.Error(t, sm.Stop(), "cannot stop a pending machine")
	require.NoError(t, sm.Start())
	assert.Error(t, sm.Start(), "cannot start twice")
	require.NoError(t, sm.Stop())
	assert.Error(t, sm.Complete(), "cannot complete a stopped machine")
	assert.Equal(t, shared.LifecycleStatusStopped, sm.Status())
}
