package live_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/application/live"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/test/helpers"
)

func newBackend() *helpers.MockBackend {
	backend := helpers.NewMockBackend()
	backend.AddProject(&project.Project{
		BuildID:     "b1",
		BuildName:   "Orbis Alpha",
		BuildType:   "orbis",
		MarketID:    42,
		Commodities: cargo.Map{"steel": 100},
	})
	return backend
}

type updates struct {
	mu   sync.Mutex
	list []live.Update
}

func (u *updates) add(up live.Update) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.list = append(u.list, up)
}

func (u *updates) snapshot() []live.Update {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]live.Update(nil), u.list...)
}

func TestPoller_StopsAfterIdleBudget(t *testing.T) {
	// Arrange
	backend := newBackend()
	clock := shared.NewMockClock(time.Date(3310, 1, 1, 0, 0, 0, 0, time.UTC))
	backend.OnGetProject = func(string) { clock.Advance(time.Minute) }
	got := &updates{}
	var stopReason atomic.Value

	poller := live.NewPoller(backend, "b1", live.PollerOptions{
		Interval:   time.Millisecond,
		IdleBudget: 3 * time.Minute,
		Clock:      clock,
		OnUpdate:   got.add,
		OnStop:     func(reason string, err error) { stopReason.Store(reason) },
	})

	// Act
	poller.Start(context.Background())
	poller.Wait()

	// Assert
	list := got.snapshot()
	require.Len(t, list, 4)
	assert.True(t, list[0].Changed)
	assert.False(t, list[1].Changed)
	assert.Equal(t, shared.LifecycleStatusCompleted, poller.Status())
	assert.Equal(t, live.StopReasonIdle, stopReason.Load())
}

func TestPoller_ChangeResetsIdleBudget(t *testing.T) {
	// Arrange
	backend := newBackend()
	clock := shared.NewMockClock(time.Date(3310, 1, 1, 0, 0, 0, 0, time.UTC))
	polls := 0
	backend.OnGetProject = func(string) {
		clock.Advance(time.Minute)
		polls++
		if polls == 2 {
			backend.SetNeed("b1", cargo.Map{"steel": 80})
		}
	}
	got := &updates{}
	poller := live.NewPoller(backend, "b1", live.PollerOptions{
		Interval:   time.Millisecond,
		IdleBudget: 2 * time.Minute,
		Clock:      clock,
		OnUpdate:   got.add,
	})

	// Act
	poller.Start(context.Background())
	poller.Wait()

	// Assert
	list := got.snapshot()
	require.Len(t, list, 4)
	assert.True(t, list[1].Changed)
	assert.Equal(t, 80, list[3].Project.Commodities["steel"])
}

func TestPoller_FetchErrorStopsLoop(t *testing.T) {
	// Arrange
	backend := newBackend()
	backend.ProjectErr = errors.New("backend down")
	var stopErr atomic.Value
	got := &updates{}
	poller := live.NewPoller(backend, "b1", live.PollerOptions{
		Interval: time.Millisecond,
		OnUpdate: got.add,
		OnStop:   func(reason string, err error) { stopErr.Store(err) },
	})

	// Act
	poller.Start(context.Background())
	poller.Wait()

	// Assert
	assert.Empty(t, got.snapshot())
	assert.Equal(t, shared.LifecycleStatusFailed, poller.Status())
	assert.EqualError(t, poller.LastError(), "backend down")
	assert.EqualError(t, stopErr.Load().(error), "backend down")
	assert.Equal(t, 1, backend.Calls("GetProject"))
}

func TestPoller_StopIsSynchronous(t *testing.T) {
	// Arrange
	backend := newBackend()
	var afterStop atomic.Bool
	var stopped atomic.Bool
	var onStopCalled atomic.Bool
	poller := live.NewPoller(backend, "b1", live.PollerOptions{
		Interval:   time.Millisecond,
		IdleBudget: time.Hour,
		OnUpdate: func(live.Update) {
			if stopped.Load() {
				afterStop.Store(true)
			}
		},
		OnStop: func(string, error) { onStopCalled.Store(true) },
	})
	poller.Start(context.Background())
	require.Eventually(t, func() bool { return backend.Calls("GetProject") >= 3 }, time.Second, time.Millisecond)

	// Act
	poller.Stop()
	stopped.Store(true)
	calls := backend.Calls("GetProject")
	time.Sleep(20 * time.Millisecond)

	// Assert
	assert.Equal(t, shared.LifecycleStatusStopped, poller.Status())
	assert.Equal(t, calls, backend.Calls("GetProject"))
	assert.False(t, afterStop.Load())
	assert.False(t, onStopCalled.Load())
}

func TestPoller_Restart(t *testing.T) {
	// Arrange
	backend := newBackend()
	backend.ProjectErr = errors.New("blip")
	poller := live.NewPoller(backend, "b1", live.PollerOptions{Interval: time.Millisecond, IdleBudget: time.Hour})
	poller.Start(context.Background())
	poller.Wait()
	require.Equal(t, shared.LifecycleStatusFailed, poller.Status())
	first := poller.SessionID()

	// Act
	backend.ProjectErr = nil
	poller.Start(context.Background())
	poller.Start(context.Background())

	// Assert
	assert.Equal(t, shared.LifecycleStatusRunning, poller.Status())
	assert.NotEqual(t, first, poller.SessionID())
	poller.Stop()
	poller.Stop()
	assert.Equal(t, shared.LifecycleStatusStopped, poller.Status())
}
