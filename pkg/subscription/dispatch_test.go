package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentorkit/pkg/subscription"
)

const returnURL = "https://app.example.com/billing"

func subscribeFixture(t *testing.T, opts ...subscription.Option) *controllerFixture {
	t.Helper()
	f := newControllerFixture(t, subscriberAccount(), opts...)
	app := mentorApp(subscription.StatusActive, baseTime.Add(-time.Hour))
	f.client.On("GetUserApps", bypassed(), 1, 50).Return(appsPage(app), nil)
	return f
}

func TestSubscribe_Success(t *testing.T) {
	t.Parallel()

	f := subscribeFixture(t)
	f.client.On("RenewSubscription", bypassed(), "org_42", "alice", "sub_1", returnURL).
		Return(&subscription.RenewalResponse{Success: ptr(true), Message: "Welcome back"}, nil)

	require.NoError(t, f.ctrl.Subscribe(context.Background()))

	assert.Equal(t, []flowCall{
		{Method: "OnBeforeSubscribeTrigger"},
		{Method: "OnSuccessfullySubscribed", Args: []any{"Welcome back"}},
	}, f.flow.Calls())
	f.client.AssertNotCalled(t, "CreateBillingPortalSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscribe_Redirect(t *testing.T) {
	t.Parallel()

	f := subscribeFixture(t)
	f.client.On("RenewSubscription", mock.Anything, "org_42", "alice", "sub_1", returnURL).
		Return(&subscription.RenewalResponse{RedirectURL: "https://checkout.example.com/s/1"}, nil)

	require.NoError(t, f.ctrl.Subscribe(context.Background()))
	assert.Equal(t, flowCall{
		Method: "OnRedirectToURL",
		Args:   []any{"https://checkout.example.com/s/1", subscription.RedirectMessage},
	}, f.flow.Last())
}

func TestSubscribe_FallsBackToPortal(t *testing.T) {
	t.Parallel()

	f := subscribeFixture(t)
	f.client.On("RenewSubscription", mock.Anything, "org_42", "alice", "sub_1", returnURL).
		Return(&subscription.RenewalResponse{Success: ptr(false)}, nil)
	f.client.On("CreateBillingPortalSession", bypassed(), "org_42", "alice", returnURL).
		Return(&subscription.PortalSession{URL: "https://portal.example.com/p/1"}, nil)

	require.NoError(t, f.ctrl.Subscribe(context.Background()))
	assert.Equal(t, flowCall{
		Method: "OnRedirectToURL",
		Args:   []any{"https://portal.example.com/p/1", subscription.RedirectMessage},
	}, f.flow.Last())
}

func TestSubscribe_PortalWithoutURL(t *testing.T) {
	t.Parallel()

	f := subscribeFixture(t)
	f.client.On("RenewSubscription", mock.Anything, "org_42", "alice", "sub_1", returnURL).Return(nil, nil)
	f.client.On("CreateBillingPortalSession", mock.Anything, "org_42", "alice", returnURL).
		Return(&subscription.PortalSession{}, nil)

	err := f.ctrl.Subscribe(context.Background())
	require.ErrorIs(t, err, subscription.ErrNoPortalURL)

	assert.Zero(t, f.flow.Count("OnRedirectToURL"))
	last := f.flow.Last()
	assert.Equal(t, "OnSubscribeFailed", last.Method)
	assert.ErrorIs(t, last.Args[0].(error), subscription.ErrNoPortalURL)
}

func TestSubscribe_PortalError(t *testing.T) {
	t.Parallel()

	f := subscribeFixture(t)
	boom := errors.New("portal down")
	f.client.On("RenewSubscription", mock.Anything, "org_42", "alice", "sub_1", returnURL).Return(nil, nil)
	f.client.On("CreateBillingPortalSession", mock.Anything, "org_42", "alice", returnURL).Return(nil, boom)

	err := f.ctrl.Subscribe(context.Background())
	require.ErrorIs(t, err, subscription.ErrPortalSessionFailed)
	require.ErrorIs(t, err, boom)
}

func TestSubscribe_RenewalError(t *testing.T) {
	t.Parallel()

	f := subscribeFixture(t)
	boom := errors.New("402 payment required")
	f.client.On("RenewSubscription", mock.Anything, "org_42", "alice", "sub_1", returnURL).Return(nil, boom)

	err := f.ctrl.Subscribe(context.Background())
	require.ErrorIs(t, err, subscription.ErrRenewalFailed)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"OnBeforeSubscribeTrigger", "OnSubscribeFailed"}, methods(f.flow.Calls()))
}

func TestSubscribe_NoActiveApp(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t, subscriberAccount())
	f.client.On("GetUserApps", mock.Anything, 1, 50).Return(appsPage(), nil)

	require.ErrorIs(t, f.ctrl.Subscribe(context.Background()), subscription.ErrActiveAppNotFound)
	f.client.AssertNotCalled(t, "RenewSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscribe_AppWithoutSubscription(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t, subscriberAccount())
	app := subscription.App{ID: "app_9", Name: "MentorAI", PlatformKey: "acme"}
	f.client.On("GetUserApps", mock.Anything, 1, 50).Return(appsPage(app), nil)

	require.ErrorIs(t, f.ctrl.Subscribe(context.Background()), subscription.ErrNoSubscription)
}

func TestSubscribe_AfterStop(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t, subscriberAccount())
	f.ctrl.Stop()

	require.ErrorIs(t, f.ctrl.Subscribe(context.Background()), subscription.ErrControllerStopped)
	assert.Empty(t, f.flow.Calls())
}

func TestSubscribe_DedicatedPortal(t *testing.T) {
	t.Parallel()

	portal := &mockPortal{}
	f := subscribeFixture(t, subscription.WithPortalCreator(portal))
	f.client.On("RenewSubscription", mock.Anything, "org_42", "alice", "sub_1", returnURL).Return(nil, nil)
	portal.On("CreateBillingPortalSession", mock.Anything, "org_42", "alice", returnURL).
		Return(&subscription.PortalSession{URL: "https://customer-portal.paddle.com/cpl_1"}, nil)

	require.NoError(t, f.ctrl.Subscribe(context.Background()))
	assert.Equal(t, "https://customer-portal.paddle.com/cpl_1", f.flow.Last().Args[0])
	portal.AssertExpectations(t)
	f.client.AssertNotCalled(t, "CreateBillingPortalSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTriggerCallback(t *testing.T) {
	t.Parallel()

	t.Run("pricing modal", func(t *testing.T) {
		f := newControllerFixture(t, subscriberAccount())
		f.ctrl.TriggerCallback(context.Background(), subscription.TriggerPricingModal)()
		assert.Equal(t, []string{"OnShowPricingPage"}, methods(f.flow.Calls()))
	})

	t.Run("subscribe user", func(t *testing.T) {
		f := subscribeFixture(t)
		f.client.On("RenewSubscription", mock.Anything, "org_42", "alice", "sub_1", returnURL).
			Return(&subscription.RenewalResponse{Success: ptr(true), Message: "ok"}, nil)

		f.ctrl.TriggerCallback(context.Background(), subscription.TriggerSubscribeUser)()
		assert.Equal(t, []string{"OnBeforeSubscribeTrigger", "OnSuccessfullySubscribed"}, methods(f.flow.Calls()))
	})

	t.Run("unknown trigger does nothing", func(t *testing.T) {
		f := newControllerFixture(t, subscriberAccount())
		for _, trigger := range []string{"", "TRIGGER_NOPE", "trigger_pricing_modal"} {
			cb := f.ctrl.TriggerCallback(context.Background(), trigger)
			require.NotNil(t, cb)
			cb()
		}
		assert.Empty(t, f.flow.Calls())
		f.client.AssertNotCalled(t, "GetUserApps", mock.Anything, mock.Anything, mock.Anything)
	})
}

func methods(calls []flowCall) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Method)
	}
	return out
}
