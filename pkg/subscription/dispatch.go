package subscription

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/mentorkit/pkg/cache"
	"github.com/dmitrymomot/mentorkit/pkg/logger"
)

// Trigger names sent by banner buttons.
const (
	TriggerPricingModal  = "TRIGGER_PRICING_MODAL"
	TriggerSubscribeUser = "TRIGGER_SUBSCRIBE_USER"
)

// RedirectMessage is the toast shown when the user is sent to the billing provider.
const RedirectMessage = "You are being redirected to the billing page."

// TriggerCallback returns the callback for a banner trigger.
// Unknown triggers get a callback that does nothing.
func (c *Controller) TriggerCallback(ctx context.Context, trigger string) func() {
	switch trigger {
	case TriggerPricingModal:
		return c.ShowPricing
	case TriggerSubscribeUser:
		return func() {
			// failures are already reported through OnSubscribeFailed
			_ = c.Subscribe(ctx)
		}
	default:
		return func() {}
	}
}

// ShowPricing asks the host to open the pricing page.
func (c *Controller) ShowPricing() {
	c.emit(func(f Flow) { f.OnShowPricingPage() })
}

// Subscribe renews the active app's subscription and routes the user according
// to the renewal outcome. Any failure is reported through OnSubscribeFailed and returned.
func (c *Controller) Subscribe(ctx context.Context) error {
	if !c.Active() {
		return ErrControllerStopped
	}
	c.emit(func(f Flow) { f.OnBeforeSubscribeTrigger() })

	if err := c.subscribe(ctx); err != nil {
		c.logger.ErrorContext(ctx, "subscribe failed",
			logger.Trigger(TriggerSubscribeUser),
			logger.Error(err),
		)
		c.emit(func(f Flow) { f.OnSubscribeFailed(err) })
		return err
	}
	return nil
}

func (c *Controller) subscribe(ctx context.Context) error {
	ctx = cache.WithBypass(ctx)

	app, err := c.FindActiveApp(ctx)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrActiveAppNotFound
	}
	if app.Subscription == nil || app.Subscription.ID == "" {
		return ErrNoSubscription
	}

	resp, err := c.renewer.RenewSubscription(ctx, c.account.OrgID, c.account.Username, app.Subscription.ID, c.returnURL)
	if err != nil {
		return errors.Join(ErrRenewalFailed, err)
	}

	outcome := ParseRenewal(resp)
	c.logger.InfoContext(ctx, "subscription renewal processed", logger.Outcome(outcome.Kind.String()))

	switch outcome.Kind {
	case OutcomeSuccess:
		c.emit(func(f Flow) { f.OnSuccessfullySubscribed(outcome.Message) })
		return nil
	case OutcomeRedirect:
		c.emit(func(f Flow) { f.OnRedirectToURL(outcome.URL, RedirectMessage) })
		return nil
	}

	session, err := c.portal.CreateBillingPortalSession(ctx, c.account.OrgID, c.account.Username, c.returnURL)
	if err != nil {
		return errors.Join(ErrPortalSessionFailed, err)
	}
	if session == nil || session.URL == "" {
		return ErrNoPortalURL
	}
	c.emit(func(f Flow) { f.OnRedirectToURL(session.URL, RedirectMessage) })
	return nil
}

// FindActiveApp returns the first app on page one whose name contains the
// platform name (case-insensitively) and whose platform key is the current
// tenant. It returns nil without error when no app matches.
func (c *Controller) FindActiveApp(ctx context.Context) (*App, error) {
	page, err := c.apps.GetUserApps(ctx, 1, c.pageSize)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	fold := cases.Fold()
	platform := fold.String(c.account.Platform)
	for i := range page.Results {
		app := &page.Results[i]
		if app.PlatformKey != c.account.TenantKey {
			continue
		}
		if strings.Contains(fold.String(app.Name), platform) {
			return app, nil
		}
	}
	return nil, nil
}
