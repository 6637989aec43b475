package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mentorkit/pkg/cache"
	"github.com/dmitrymomot/mentorkit/pkg/logger"
)

const defaultPageSize = 50

// Controller tracks the trial/subscription lifecycle of one session.
type Controller struct {
	id        uuid.UUID
	account   Account
	usage     UsageReader
	apps      AppLister
	portal    PortalCreator
	renewer   Renewer
	flow      Flow
	clock     Clock
	logger    *slog.Logger
	returnURL string
	pageSize  int
	scheduler *Scheduler

	// cycleMu keeps check cycles from overlapping.
	cycleMu sync.Mutex

	mu     sync.Mutex
	active bool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewController binds a controller to account.
// Panics if client or flow is nil; returns ErrInvalidAccount for incomplete accounts.
func NewController(account Account, client Client, flow Flow, opts ...Option) (*Controller, error) {
	if client == nil {
		panic("subscription: Client is required")
	}
	if flow == nil {
		panic("subscription: Flow is required")
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		id:       uuid.New(),
		account:  account,
		usage:    client,
		apps:     client,
		portal:   client,
		renewer:  client,
		flow:     flow,
		clock:    SystemClock{},
		logger:   slog.Default(),
		pageSize: defaultPageSize,
		active:   true,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(
		logger.Component("subscription"),
		logger.SessionID(c.id),
		logger.Tenant(account.TenantKey),
		logger.Username(account.Username),
	)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.scheduler = NewScheduler(c.clock, c.onTick, c.logger)

	return c, nil
}

// ID returns the session identifier used in logs.
func (c *Controller) ID() uuid.UUID { return c.id }

// Account returns the account the controller is bound to.
func (c *Controller) Account() Account { return c.account }

// Scheduler returns the polling handle.
func (c *Controller) Scheduler() TimerHandle { return c.scheduler }

// Active reports whether the controller has not been stopped.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Start runs the first check cycle. Polling begins only once a countdown is detected.
func (c *Controller) Start(ctx context.Context) error {
	if !c.Active() {
		return ErrControllerStopped
	}
	return c.Check(ctx)
}

// Stop tears the controller down: no flow callback fires afterwards, in-flight
// timer-driven fetches are cancelled and the polling timer is cleared.
// Safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	wasActive := c.active
	c.active = false
	c.mu.Unlock()

	c.cancel()
	c.scheduler.Stop()

	if wasActive {
		c.logger.Debug("subscription controller stopped")
	}
}

// Check runs one classification cycle and reports the result through one flow callback.
// Missing data (no active app) is not an error. Fetch errors are returned and no
// callback fires.
func (c *Controller) Check(ctx context.Context) error {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	if !c.Active() {
		return ErrControllerStopped
	}

	// status must never be served from a cached read
	ctx = cache.WithBypass(ctx)

	if c.account.IsOnFreeTrial() {
		usage, err := c.usage.GetFreeUsageCount(ctx, c.account.OrgID, c.account.Username)
		if err != nil {
			return fmt.Errorf("fetch free usage count: %w", err)
		}
		c.emit(func(f Flow) { f.OnFreeUsageCount(usage) })
		return nil
	}

	app, err := c.FindActiveApp(ctx)
	if err != nil {
		return fmt.Errorf("find active app: %w", err)
	}
	if app == nil {
		c.logger.DebugContext(ctx, "no active app, nothing to report")
		return nil
	}

	// stopped while the request was in flight
	if !c.Active() {
		return nil
	}

	result := Classify(app.Subscription, c.clock.Now())
	c.logger.DebugContext(ctx, "subscription classified",
		logger.Branch(result.Branch.String()),
		slog.String("remaining", result.Label),
	)

	switch {
	case result.Branch == BranchExpired:
		c.emit(func(f Flow) { f.OnTrialEnded(c.scheduler) })
	case result.Branch.Ongoing():
		c.startCountdown(result.Interval)
		c.emit(func(f Flow) { f.OnSubscriptionOngoing(result.Label) })
	}
	return nil
}

// startCountdown arms polling when the scheduler is idle and adjusts the
// interval otherwise. The host may have stopped polling through the handle
// passed to OnTrialEnded, so a countdown seen later re-arms it.
func (c *Controller) startCountdown(interval time.Duration) {
	if c.scheduler.Start(interval) {
		return
	}
	c.scheduler.SetInterval(interval)
}

func (c *Controller) onTick() {
	if err := c.Check(c.ctx); err != nil && c.Active() {
		c.logger.Warn("scheduled subscription check failed", logger.Error(err))
	}
}

// emit invokes fn unless the controller was stopped while a fetch was in flight.
func (c *Controller) emit(fn func(Flow)) bool {
	if !c.Active() {
		return false
	}
	fn(c.flow)
	return true
}
