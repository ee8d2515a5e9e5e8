// Package scheduler wires the polling loop: a cron tick triggers one engine
// cycle, and overlapping ticks are dropped rather than queued.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const DefaultInterval = 15 * time.Minute

// Scheduler runs the engine on a fixed interval. A cycle that outlives the
// interval makes the next tick a no-op; ticks are never queued.
type Scheduler struct {
	engine   *Engine
	cron     *cron.Cron
	interval time.Duration
	logger   *zap.Logger

	running sync.Mutex
	state   atomic.Int32
}

func New(engine *Engine, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		engine:   engine,
		cron:     cron.New(),
		interval: interval,
		logger:   log,
	}
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Start registers the cron job and fires one cycle immediately, so the first
// results do not wait a full interval. It returns without blocking.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", spec))

	go s.runOnce(ctx)

	return nil
}

// Stop halts future ticks and waits for an in-flight cycle to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	// Taking the lock waits out any running cycle.
	s.running.Lock()
	s.state.Store(int32(StateStopped))
	s.running.Unlock()

	s.logger.Info("scheduler stopped")
}

// RunOnce executes a single cycle synchronously, for one-shot invocations.
func (s *Scheduler) RunOnce(ctx context.Context) (*Summary, error) {
	if !s.running.TryLock() {
		return nil, fmt.Errorf("a cycle is already running")
	}
	defer s.running.Unlock()

	s.state.Store(int32(StateRunning))
	defer s.state.Store(int32(StateIdle))

	return s.engine.RunCycle(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if s.State() == StateStopped || ctx.Err() != nil {
		return
	}

	if !s.running.TryLock() {
		s.logger.Debug("previous cycle still running, dropping tick")
		return
	}
	defer s.running.Unlock()

	s.state.Store(int32(StateRunning))
	defer s.state.Store(int32(StateIdle))

	if _, err := s.engine.RunCycle(ctx); err != nil {
		s.logger.Error("cycle aborted", zap.Error(err))
	}
}
