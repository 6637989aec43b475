package subscription_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/mentorkit/pkg/subscription"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// fakeClock fires timers only when Advance moves time past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	d       time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: baseTime}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) subscription.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), d: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// Advance moves time forward and runs every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// Live returns the durations of timers that are neither stopped nor fired.
func (c *fakeClock) Live() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var live []time.Duration
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t.d)
		}
	}
	return live
}

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetFreeUsageCount(ctx context.Context, org, userID string) (*subscription.UsageCount, error) {
	args := m.Called(ctx, org, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.UsageCount), args.Error(1)
}

func (m *mockClient) GetUserApps(ctx context.Context, page, pageSize int) (*subscription.Page[subscription.App], error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Page[subscription.App]), args.Error(1)
}

func (m *mockClient) CreateBillingPortalSession(ctx context.Context, org, userID, returnURL string) (*subscription.PortalSession, error) {
	args := m.Called(ctx, org, userID, returnURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.PortalSession), args.Error(1)
}

func (m *mockClient) RenewSubscription(ctx context.Context, org, userID, subscriptionID, returnURL string) (*subscription.RenewalResponse, error) {
	args := m.Called(ctx, org, userID, subscriptionID, returnURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.RenewalResponse), args.Error(1)
}

type mockPortal struct {
	mock.Mock
}

func (m *mockPortal) CreateBillingPortalSession(ctx context.Context, org, userID, returnURL string) (*subscription.PortalSession, error) {
	args := m.Called(ctx, org, userID, returnURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.PortalSession), args.Error(1)
}

type flowCall struct {
	Method string
	Args   []any
}

// recordingFlow records every callback in order.
type recordingFlow struct {
	mu    sync.Mutex
	calls []flowCall
}

func (f *recordingFlow) record(method string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, flowCall{Method: method, Args: args})
}

func (f *recordingFlow) Calls() []flowCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]flowCall(nil), f.calls...)
}

func (f *recordingFlow) Count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *recordingFlow) Last() flowCall {
	calls := f.Calls()
	if len(calls) == 0 {
		return flowCall{}
	}
	return calls[len(calls)-1]
}

func (f *recordingFlow) OnFreeUsageCount(usage *subscription.UsageCount) {
	f.record("OnFreeUsageCount", usage)
}

func (f *recordingFlow) OnTrialEnded(handle subscription.TimerHandle) {
	f.record("OnTrialEnded", handle)
}

func (f *recordingFlow) OnSubscriptionOngoing(remaining string) {
	f.record("OnSubscriptionOngoing", remaining)
}

func (f *recordingFlow) OnRedirectToURL(url, toast string) {
	f.record("OnRedirectToURL", url, toast)
}

func (f *recordingFlow) OnSuccessfullySubscribed(message string) {
	f.record("OnSuccessfullySubscribed", message)
}

func (f *recordingFlow) OnShowPricingPage() {
	f.record("OnShowPricingPage")
}

func (f *recordingFlow) OnBeforeSubscribeTrigger() {
	f.record("OnBeforeSubscribeTrigger")
}

func (f *recordingFlow) OnSubscribeFailed(err error) {
	f.record("OnSubscribeFailed", err)
}

// subscriberAccount is not eligible for the free trial (two tenants).
func subscriberAccount() subscription.Account {
	return subscription.Account{
		Platform:      "MentorAI",
		TenantKey:     "acme",
		Username:      "alice",
		OrgID:         "org_42",
		Tenants:       []string{"main", "acme"},
		MainTenantKey: "main",
	}
}

func freeTrialAccount() subscription.Account {
	return subscription.Account{
		Platform:      "MentorAI",
		TenantKey:     "main",
		Username:      "bob",
		OrgID:         "org_1",
		Tenants:       []string{"main"},
		MainTenantKey: "main",
	}
}

func appsPage(apps ...subscription.App) *subscription.Page[subscription.App] {
	return &subscription.Page[subscription.App]{Count: len(apps), Results: apps}
}

func mentorApp(status subscription.Status, trialEnd time.Time) subscription.App {
	return subscription.App{
		ID:          "app_1",
		Name:        "mentorai pro",
		PlatformKey: "acme",
		Subscription: &subscription.AppSubscription{
			ID:       "sub_1",
			Status:   status,
			TrialEnd: trialEnd,
		},
	}
}

func ptr[T any](v T) *T { return &v }
