package subscription

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/mentorkit/pkg/logger"
	"github.com/dmitrymomot/mentorkit/pkg/statemachine"
)

// Poll intervals used by the countdown branches.
const (
	DefaultInterval = 24 * time.Hour
	HourlyInterval  = 10 * time.Minute
	MinuteInterval  = time.Minute
)

// Clock abstracts time so the scheduler can be driven by tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	Stop() bool
}

// SystemClock is the Clock backed by package time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

var (
	stateIdle  = statemachine.StringState("idle")
	stateArmed = statemachine.StringState("armed")

	eventStart      = statemachine.StringEvent("start")
	eventReschedule = statemachine.StringEvent("reschedule")
	eventStop       = statemachine.StringEvent("stop")
)

// Scheduler runs tick repeatedly at a configurable interval using a single timer.
// It moves between two states: idle (no timer) and armed (one live timer).
type Scheduler struct {
	clock  Clock
	tick   func()
	logger *slog.Logger
	sm     statemachine.StateMachine

	mu       sync.Mutex
	interval time.Duration
	timer    Timer
	gen      uint64 // bumped on every arm/disarm; stale fires compare against it
}

// NewScheduler creates an idle scheduler. Panics if tick is nil.
func NewScheduler(clock Clock, tick func(), log *slog.Logger) *Scheduler {
	if tick == nil {
		panic("subscription: scheduler tick is required")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Scheduler{
		clock:    clock,
		tick:     tick,
		logger:   log,
		interval: DefaultInterval,
	}
	s.sm = statemachine.MustNew(stateIdle,
		statemachine.WithTransition(stateIdle, stateArmed, eventStart,
			statemachine.WithAction(s.arm),
		),
		statemachine.WithTransition(stateArmed, stateArmed, eventReschedule,
			statemachine.WithGuard(s.intervalChanged),
			statemachine.WithAction(s.arm),
		),
		statemachine.WithTransition(stateArmed, stateIdle, eventStop,
			statemachine.WithAction(s.disarm),
		),
	)
	return s
}

// Start arms the timer with interval. It returns false if the scheduler is already armed.
func (s *Scheduler) Start(interval time.Duration) bool {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if err := s.sm.Fire(context.Background(), eventStart, interval); err != nil {
		return false
	}
	s.logger.Debug("polling started", logger.Interval(interval))
	return true
}

// SetInterval changes the polling interval. When armed, the pending timer is
// cancelled before a new one is armed; an unchanged interval is a no-op.
// When idle only the interval is recorded.
func (s *Scheduler) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}

	err := s.sm.Fire(context.Background(), eventReschedule, interval)
	switch {
	case err == nil:
		s.logger.Debug("polling interval changed", logger.Interval(interval))
	case statemachine.IsNoTransitionAvailableError(err):
		s.mu.Lock()
		s.interval = interval
		s.mu.Unlock()
	}
}

// Stop clears the live timer. Safe to call any number of times.
func (s *Scheduler) Stop() {
	if err := s.sm.Fire(context.Background(), eventStop, nil); err == nil {
		s.logger.Debug("polling stopped")
	}
}

// Active reports whether a timer is armed.
func (s *Scheduler) Active() bool {
	return s.sm.Is(stateArmed)
}

// Interval returns the current polling interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Scheduler) intervalChanged(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	d, ok := data.(time.Duration)
	return ok && d != s.Interval()
}

func (s *Scheduler) arm(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := data.(time.Duration); ok {
		s.interval = d
	}
	s.rearmLocked()
	return nil
}

func (s *Scheduler) disarm(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	return nil
}

// rearmLocked is the only place a timer is created. Must be called with s.mu held.
func (s *Scheduler) rearmLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.interval, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.rearmLocked()
	s.mu.Unlock()

	s.tick()
}
