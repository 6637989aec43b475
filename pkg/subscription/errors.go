package subscription

import "errors"

var (
	ErrInvalidAccount    = errors.New("invalid subscription account")
	ErrControllerStopped = errors.New("subscription controller is stopped")

	ErrActiveAppNotFound   = errors.New("active app not found")
	ErrNoSubscription      = errors.New("active app has no subscription")
	ErrRenewalFailed       = errors.New("subscription renewal failed")
	ErrPortalSessionFailed = errors.New("billing portal session failed")
	ErrNoPortalURL         = errors.New("no portal URL returned from provider")

	// Provider-specific errors
	ErrMissingAPIKey              = errors.New("billing provider API key is required")
	ErrInvalidProviderEnvironment = errors.New("invalid billing provider environment")
	ErrMissingCustomerID          = errors.New("provider customer ID not available")
)
