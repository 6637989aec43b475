package subscription

import "context"

// UsageReader fetches the free usage allowance of a user.
type UsageReader interface {
	GetFreeUsageCount(ctx context.Context, org, userID string) (*UsageCount, error)
}

// AppLister lists the apps of the current user.
type AppLister interface {
	GetUserApps(ctx context.Context, page, pageSize int) (*Page[App], error)
}

// PortalCreator opens a billing portal session for a user.
type PortalCreator interface {
	CreateBillingPortalSession(ctx context.Context, org, userID, returnURL string) (*PortalSession, error)
}

// Renewer renews an app subscription.
type Renewer interface {
	RenewSubscription(ctx context.Context, org, userID, subscriptionID, returnURL string) (*RenewalResponse, error)
}

// Client is the set of remote operations the Controller depends on.
// pkg/platform provides the HTTP implementation.
type Client interface {
	UsageReader
	AppLister
	PortalCreator
	Renewer
}
