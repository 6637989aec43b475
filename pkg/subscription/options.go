package subscription

import "log/slog"

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the system clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger used by the controller and its scheduler.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithReturnURL sets the URL the billing provider sends the user back to.
func WithReturnURL(url string) Option {
	return func(c *Controller) {
		c.returnURL = url
	}
}

// WithPortalCreator routes billing portal sessions to a dedicated provider
// (for example PaddlePortal) instead of the platform client.
func WithPortalCreator(p PortalCreator) Option {
	return func(c *Controller) {
		if p != nil {
			c.portal = p
		}
	}
}

// WithPageSize sets the page size of the active app lookup. Default is 50.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}
