package subscription

import (
	"context"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle billing portal.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY,required"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// CustomerResolver maps an organization and user to a Paddle customer id (ctm_xxx).
type CustomerResolver func(ctx context.Context, org, userID string) (string, error)

// PaddlePortal opens Paddle customer portal sessions. It implements PortalCreator.
type PaddlePortal struct {
	client   *paddle.SDK
	customer CustomerResolver
}

// PaddleOption configures a PaddlePortal.
type PaddleOption func(*PaddlePortal)

// WithCustomerResolver sets how Paddle customer ids are looked up.
// By default the organization id is used as the customer id.
func WithCustomerResolver(fn CustomerResolver) PaddleOption {
	return func(p *PaddlePortal) {
		if fn != nil {
			p.customer = fn
		}
	}
}

// NewPaddlePortal creates a Paddle client for the configured environment.
func NewPaddlePortal(cfg PaddleConfig, opts ...PaddleOption) (*PaddlePortal, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var (
		client *paddle.SDK
		err    error
	)
	switch strings.ToLower(cfg.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.APIKey)
	case "production", "":
		client, err = paddle.New(cfg.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProviderEnvironment, cfg.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	p := &PaddlePortal{
		client: client,
		customer: func(_ context.Context, org, _ string) (string, error) {
			return org, nil
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CreateBillingPortalSession returns the overview URL of a new Paddle portal session.
// Paddle portal sessions have no return URL; the argument is accepted to satisfy PortalCreator.
func (p *PaddlePortal) CreateBillingPortalSession(ctx context.Context, org, userID, _ string) (*PortalSession, error) {
	customerID, err := p.customer(ctx, org, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve paddle customer: %w", err)
	}
	if customerID == "" {
		return nil, ErrMissingCustomerID
	}

	session, err := p.client.CustomerPortalSessionsClient.CreateCustomerPortalSession(ctx, &paddle.CreateCustomerPortalSessionRequest{
		CustomerID: customerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle customer portal session: %w", err)
	}

	if session.URLs.General.Overview == "" {
		return nil, ErrNoPortalURL
	}
	return &PortalSession{URL: session.URLs.General.Overview}, nil
}
