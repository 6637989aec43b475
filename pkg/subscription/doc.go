// Package subscription drives the trial and subscription banners of a mentorkit
// front-end.
//
// A Controller is created once per authenticated session and bound to one
// Account (platform, tenant, user). Each check cycle fetches fresh data from the
// platform API, classifies it and reports the result through exactly one Flow
// callback. The controller never renders anything itself.
//
// # Lifecycle branches
//
// Users on the main tenant who are not admins and belong to a single tenant are
// on the free trial; their cycle reports the remaining free usage allowance.
// Everyone else is classified from the subscription of their active app:
//
//   - no status, paused, canceled or past trial end: expired (OnTrialEnded)
//   - at least one day left: reported in days, polled daily
//   - more than one hour left: reported in hours, polled every 10 minutes
//   - otherwise: reported in minutes, polled every minute
//
// # Polling
//
// The Scheduler owns at most one live timer. It is armed the first time a
// countdown is detected and every interval change cancels the pending timer
// before arming a new one. Stop on the controller is idempotent and clears it.
//
// # Actions
//
// TriggerCallback maps the UI trigger names TRIGGER_PRICING_MODAL and
// TRIGGER_SUBSCRIBE_USER to callbacks; any other name yields a no-op.
// Subscribing renews the active app's subscription and, depending on the
// RenewalOutcome, reports success, redirects to the provider or opens a billing
// portal session.
//
//	ctrl, err := subscription.NewController(account, apiClient, flow,
//		subscription.WithReturnURL("https://mentor.example.com/billing/done"),
//		subscription.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	defer ctrl.Stop()
//
//	if err := ctrl.Start(ctx); err != nil {
//		log.Warn("initial subscription check failed", logger.Error(err))
//	}
//	onClick := ctrl.TriggerCallback(ctx, subscription.TriggerSubscribeUser)
package subscription
