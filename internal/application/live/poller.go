package live

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/colonial-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
	"github.com/andrescamacho/colonial-go/pkg/utils"
)

const (
	defaultInterval   = 30 * time.Second
	defaultIdleBudget = 10 * time.Minute
)

// Stop reasons passed to OnStop
const (
	StopReasonIdle  = "idle"
	StopReasonError = "error"
)

// Update is one poll result
type Update struct {
	SessionID string           `json:"sessionId"`
	Project   *project.Project `json:"project"`
	Changed   bool             `json:"changed"`
	At        time.Time        `json:"at"`
}

// PollerOptions configures a Poller
type PollerOptions struct {
	Interval   time.Duration
	IdleBudget time.Duration
	Clock      shared.Clock

	// OnUpdate receives every successful poll
	OnUpdate func(Update)

	// OnStop is told when the loop ends on its own (idle budget or error).
	// It is not called after Stop.
	OnStop func(reason string, err error)
}

// Poller refreshes one project on an interval. It keeps polling while the
// project keeps changing and stops once IdleBudget passes without a change.
// A fetch error stops the loop. Start may be called again after any stop.
//
// OnUpdate and OnStop run on the polling goroutine and must not call Stop.
type Poller struct {
	projects project.ProjectRepository
	buildID  string
	opts     PollerOptions
	clock    shared.Clock

	mu         sync.Mutex
	lifecycle  *shared.LifecycleStateMachine
	session    string
	cancel     context.CancelFunc
	done       chan struct{}
	lastChange time.Time
	last       []byte
}

// NewPoller creates a stopped poller for buildID
func NewPoller(projects project.ProjectRepository, buildID string, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.IdleBudget <= 0 {
		opts.IdleBudget = defaultIdleBudget
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	return &Poller{
		projects:  projects,
		buildID:   buildID,
		opts:      opts,
		clock:     opts.Clock,
		lifecycle: shared.NewLifecycleStateMachine(opts.Clock),
	}
}

// BuildID returns the polled project
func (p *Poller) BuildID() string {
	return p.buildID
}

// Status returns the lifecycle status of the current or last run
func (p *Poller) Status() shared.LifecycleStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lifecycle.Status()
}

// LastError returns the error that stopped the last run, if any
func (p *Poller) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lifecycle.LastError()
}

// SessionID identifies the current or last run
func (p *Poller) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Start begins polling immediately. Starting a running poller is a no-op.
// The loop inherits values, not cancellation, from ctx; use Stop to end it.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lifecycle.IsRunning() {
		return
	}
	_ = p.lifecycle.Start()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	p.done = make(chan struct{})
	p.session = utils.GenerateSessionID("poll", p.buildID)
	p.lastChange = p.clock.Now()
	p.last = nil

	logger := common.LoggerFromContext(ctx).With(
		logging.String("build_id", p.buildID),
		logging.String("session_id", p.session))
	metrics.RecordPollerStarted()
	logger.Debug("poller started", logging.Duration("interval", p.opts.Interval))

	go p.run(common.WithLogger(runCtx, logger), p.done)
}

// Stop cancels any in-flight fetch and waits for the loop to exit. No
// callback runs after Stop returns. Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the current run ends on its own or is stopped
func (p *Poller) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	logger := common.LoggerFromContext(ctx)

	for {
		fetched, err := p.projects.GetProject(ctx, p.buildID)
		if ctx.Err() != nil {
			p.finish(ctx, "", nil)
			return
		}
		if err != nil {
			metrics.RecordPollerTick(false, err)
			logger.Warn("poller stopped on fetch error", logging.Err(err))
			p.finish(ctx, StopReasonError, err)
			return
		}

		update, idle := p.observe(fetched)
		metrics.RecordPollerTick(update.Changed, nil)
		if p.opts.OnUpdate != nil {
			p.opts.OnUpdate(update)
		}
		if idle {
			logger.Debug("poller idle budget elapsed")
			p.finish(ctx, StopReasonIdle, nil)
			return
		}

		timer := time.NewTimer(p.opts.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.finish(ctx, "", nil)
			return
		case <-timer.C:
		}
	}
}

// observe records a fetched project and reports whether the idle budget is
// spent
func (p *Poller) observe(fetched *project.Project) (Update, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	fingerprint, err := json.Marshal(fetched)
	changed := err != nil || !bytes.Equal(fingerprint, p.last)
	if changed {
		p.last = fingerprint
		p.lastChange = now
	}
	update := Update{SessionID: p.session, Project: fetched, Changed: changed, At: now}
	return update, now.Sub(p.lastChange) >= p.opts.IdleBudget
}

// finish records the end of a run. An empty reason means Stop was called.
func (p *Poller) finish(ctx context.Context, reason string, err error) {
	p.mu.Lock()
	switch {
	case reason == StopReasonError:
		_ = p.lifecycle.Fail(err)
	case reason == StopReasonIdle:
		_ = p.lifecycle.Complete()
	default:
		_ = p.lifecycle.Stop()
	}
	p.cancel = nil
	p.mu.Unlock()

	if reason == "" {
		metrics.RecordPollerStopped("stopped")
		return
	}
	metrics.RecordPollerStopped(reason)
	if p.opts.OnStop != nil && !errors.Is(ctx.Err(), context.Canceled) {
		p.opts.OnStop(reason, err)
	}
}
