package subscription_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentorkit/pkg/subscription"
)

func TestNewPaddlePortal(t *testing.T) {
	t.Parallel()

	t.Run("missing api key", func(t *testing.T) {
		_, err := subscription.NewPaddlePortal(subscription.PaddleConfig{Environment: "sandbox"})
		require.ErrorIs(t, err, subscription.ErrMissingAPIKey)
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := subscription.NewPaddlePortal(subscription.PaddleConfig{APIKey: "pdl_test", Environment: "staging"})
		require.ErrorIs(t, err, subscription.ErrInvalidProviderEnvironment)
	})

	for _, env := range []string{"sandbox", "Production", ""} {
		t.Run("environment "+env, func(t *testing.T) {
			p, err := subscription.NewPaddlePortal(subscription.PaddleConfig{APIKey: "pdl_test", Environment: env})
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestPaddlePortal_CustomerResolution(t *testing.T) {
	t.Parallel()

	t.Run("empty customer id", func(t *testing.T) {
		p, err := subscription.NewPaddlePortal(
			subscription.PaddleConfig{APIKey: "pdl_test", Environment: "sandbox"},
			subscription.WithCustomerResolver(func(context.Context, string, string) (string, error) {
				return "", nil
			}),
		)
		require.NoError(t, err)

		_, err = p.CreateBillingPortalSession(context.Background(), "org_42", "alice", "")
		require.ErrorIs(t, err, subscription.ErrMissingCustomerID)
	})

	t.Run("resolver error", func(t *testing.T) {
		boom := errors.New("customer lookup failed")
		p, err := subscription.NewPaddlePortal(
			subscription.PaddleConfig{APIKey: "pdl_test", Environment: "sandbox"},
			subscription.WithCustomerResolver(func(context.Context, string, string) (string, error) {
				return "", boom
			}),
		)
		require.NoError(t, err)

		_, err = p.CreateBillingPortalSession(context.Background(), "org_42", "alice", "")
		require.ErrorIs(t, err, boom)
	})
}
