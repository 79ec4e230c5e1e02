package shared

import (
	"fmt"
	"time"
)

// LifecycleStatus represents the state of a restartable background task
type LifecycleStatus string

const (
	// LifecycleStatusPending indicates the task was created but never started
	LifecycleStatusPending LifecycleStatus = "PENDING"

	// LifecycleStatusRunning indicates the task is actively executing
	LifecycleStatusRunning LifecycleStatus = "RUNNING"

	// LifecycleStatusCompleted indicates the task ran out of work, e.g. an
	// idle budget elapsed
	LifecycleStatusCompleted LifecycleStatus = "COMPLETED"

	// LifecycleStatusFailed indicates the task stopped on an error
	LifecycleStatusFailed LifecycleStatus = "FAILED"

	// LifecycleStatusStopped indicates the task was stopped by its owner
	LifecycleStatusStopped LifecycleStatus = "STOPPED"
)

// LifecycleStateMachine tracks PENDING → RUNNING → COMPLETED/FAILED/STOPPED
// with timestamps from an injected clock. Any finished state may be started
// again. Not safe for concurrent use; owners hold their own lock.
type LifecycleStateMachine struct {
	status    LifecycleStatus
	createdAt time.Time
	updatedAt time.Time
	startedAt *time.Time
	stoppedAt *time.Time
	runs      int
	lastError error
	clock     Clock
}

// NewLifecycleStateMachine creates a new lifecycle state machine in PENDING state
func NewLifecycleStateMachine(clock Clock) *LifecycleStateMachine {
	if clock == nil {
		clock = NewRealClock()
	}

	now := clock.Now()
	return &LifecycleStateMachine{
		status:    LifecycleStatusPending,
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}
}

// Status returns the current lifecycle status
func (sm *LifecycleStateMachine) Status() LifecycleStatus {
	return sm.status
}

// CreatedAt returns when the machine was created
func (sm *LifecycleStateMachine) CreatedAt() time.Time {
	return sm.createdAt
}

// UpdatedAt returns the time of the last transition
func (sm *LifecycleStateMachine) UpdatedAt() time.Time {
	return sm.updatedAt
}

// StartedAt returns when the current or last run started (nil if never)
func (sm *LifecycleStateMachine) StartedAt() *time.Time {
	return sm.startedAt
}

// StoppedAt returns when the last run ended (nil while running)
func (sm *LifecycleStateMachine) StoppedAt() *time.Time {
	return sm.stoppedAt
}

// Runs counts how many times the task was started
func (sm *LifecycleStateMachine) Runs() int {
	return sm.runs
}

// LastError returns the error of the last failed run
func (sm *LifecycleStateMachine) LastError() error {
	return sm.lastError
}

// Start transitions to RUNNING from any state but RUNNING, clearing the
// previous run's error
func (sm *LifecycleStateMachine) Start() error {
	if sm.status == LifecycleStatusRunning {
		return fmt.Errorf("cannot start from %s state", sm.status)
	}

	now := sm.clock.Now()
	sm.status = LifecycleStatusRunning
	sm.startedAt = &now
	sm.stoppedAt = nil
	sm.lastError = nil
	sm.updatedAt = now
	sm.runs++
	return nil
}

// Complete transitions from RUNNING to COMPLETED
func (sm *LifecycleStateMachine) Complete() error {
	return sm.finish(LifecycleStatusCompleted, nil)
}

// Fail transitions from RUNNING to FAILED, recording err
func (sm *LifecycleStateMachine) Fail(err error) error {
	return sm.finish(LifecycleStatusFailed, err)
}

// Stop transitions from RUNNING to STOPPED
func (sm *LifecycleStateMachine) Stop() error {
	return sm.finish(LifecycleStatusStopped, nil)
}

func (sm *LifecycleStateMachine) finish(to LifecycleStatus, err error) error {
	if sm.status != LifecycleStatusRunning {
		return fmt.Errorf("cannot move to %s from %s state", to, sm.status)
	}

	now := sm.clock.Now()
	sm.status = to
	sm.lastError = err
	sm.stoppedAt = &now
	sm.updatedAt = now
	return nil
}

// IsRunning returns true if the task is currently executing
func (sm *LifecycleStateMachine) IsRunning() bool {
	return sm.status == LifecycleStatusRunning
}

// IsFinished returns true if the last run completed, failed, or was stopped
func (sm *LifecycleStateMachine) IsFinished() bool {
	return sm.status == LifecycleStatusCompleted ||
		sm.status == LifecycleStatusFailed ||
		sm.status == LifecycleStatusStopped
}

// RuntimeDuration is the length of the current or last run, 0 if never started
func (sm *LifecycleStateMachine) RuntimeDuration() time.Duration {
	if sm.startedAt == nil {
		return 0
	}

	endTime := sm.clock.Now()
	if sm.stoppedAt != nil {
		endTime = *sm.stoppedAt
	}

	return endTime.Sub(*sm.startedAt)
}
