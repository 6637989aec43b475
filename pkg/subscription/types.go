package subscription

import "time"

// Status is the state of an app subscription as reported by the platform.
// The zero value means the app has no subscription status.
type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusCanceled Status = "canceled"
)

// AppSubscription is the subscription record attached to an app.
type AppSubscription struct {
	ID       string // used for renewal
	Status   Status
	TrialEnd time.Time
}

// App is a purchased or trialed application instance of a user on a tenant.
type App struct {
	ID           string
	Name         string
	PlatformKey  string // tenant the app belongs to
	Subscription *AppSubscription
}

// UsageCount is the remaining free usage allowance of a user on a tenant.
type UsageCount struct {
	Org      string
	Username string
	Count    int
	Limit    int
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Count    int
	Next     string
	Previous string
	Results  []T
}

// RenewalResponse is the raw renewal result. Fields are optional; use ParseRenewal.
type RenewalResponse struct {
	Success     *bool
	RedirectURL string
	Message     string
}

// PortalSession is a hosted billing portal session.
type PortalSession struct {
	URL string
}
