// Package platform is the HTTP client for the platform REST API.
//
// Client implements subscription.Client: it reads the free usage allowance and
// the user's apps, renews subscriptions and opens billing portal sessions.
// Reads can be cached in any cache.Store; renewals and portal sessions
// invalidate cached apps and usage. A context marked with cache.WithBypass
// always hits the API, and the fresh response still refreshes the cache.
//
// Authentication uses a static bearer token injected by golang.org/x/oauth2.
//
// Example:
//
//	var cfg platform.Config
//	config.MustLoad(&cfg)
//
//	client, err := platform.New(cfg,
//		platform.WithCache(cache.NewLRU(256)),
//		platform.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	apps, err := client.GetUserApps(ctx, 1, 50)
package platform
