package subscription

import "time"

// Flow receives every user-visible effect of the controller.
// Embed BaseFlow to get no-op defaults for the optional methods.
type Flow interface {
	OnFreeUsageCount(usage *UsageCount)
	// OnTrialEnded receives the polling handle so the host can stop polling.
	OnTrialEnded(handle TimerHandle)
	OnSubscriptionOngoing(remaining string)
	OnRedirectToURL(url, toast string)
	OnSuccessfullySubscribed(message string)

	// Optional.
	OnShowPricingPage()
	OnBeforeSubscribeTrigger()
	OnSubscribeFailed(err error)
}

// BaseFlow implements the optional Flow methods as no-ops.
type BaseFlow struct{}

func (BaseFlow) OnShowPricingPage()        {}
func (BaseFlow) OnBeforeSubscribeTrigger() {}
func (BaseFlow) OnSubscribeFailed(error)   {}

// TimerHandle controls the polling timer of a controller.
type TimerHandle interface {
	Stop()
	Active() bool
	Interval() time.Duration
}
