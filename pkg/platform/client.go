package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/mentorkit/pkg/cache"
	"github.com/dmitrymomot/mentorkit/pkg/logger"
	"github.com/dmitrymomot/mentorkit/pkg/subscription"
)

const (
	maxErrorBody = 64 * 1024
	userAgent    = "mentorkit-platform/1.0"

	usagePrefix = "usage:"
	appsPrefix  = "apps:"
)

// Client talks to the platform REST API. It implements subscription.Client.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	cache    cache.Store
	cacheTTL time.Duration
	logger   *slog.Logger
}

var _ subscription.Client = (*Client)(nil)

// New creates a platform API client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:  base,
		http:     &http.Client{Timeout: timeout},
		cacheTTL: cfg.CacheTTL,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Token != "" {
		transport := c.http.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		authed := *c.http
		authed.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}),
			Base:   transport,
		}
		c.http = &authed
	}
	c.logger = c.logger.With(logger.Component("platform"))

	return c, nil
}

// GetFreeUsageCount returns the remaining free usage allowance of a user.
func (c *Client) GetFreeUsageCount(ctx context.Context, org, userID string) (*subscription.UsageCount, error) {
	path := fmt.Sprintf("/api/billing/free-usage-count/orgs/%s/users/%s/", url.PathEscape(org), url.PathEscape(userID))

	var resp usageCountResponse
	if err := c.cachedGet(ctx, usagePrefix+org+":"+userID, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// GetUserApps returns one page of the current user's apps.
func (c *Client) GetUserApps(ctx context.Context, page, pageSize int) (*subscription.Page[subscription.App], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	key := fmt.Sprintf("%s%d:%d", appsPrefix, page, pageSize)

	var resp appsPageResponse
	if err := c.cachedGet(ctx, key, "/api/apps/", query, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// CreateBillingPortalSession opens a hosted billing portal session.
func (c *Client) CreateBillingPortalSession(ctx context.Context, org, userID, returnURL string) (*subscription.PortalSession, error) {
	path := fmt.Sprintf("/api/billing/customer-portal/orgs/%s/users/%s/", url.PathEscape(org), url.PathEscape(userID))

	var resp portalSessionResponse
	if _, err := c.do(ctx, http.MethodPost, path, nil, portalSessionRequest{ReturnURL: returnURL}, &resp); err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return &subscription.PortalSession{URL: resp.URL}, nil
}

// RenewSubscription renews the subscription of an app.
func (c *Client) RenewSubscription(ctx context.Context, org, userID, subscriptionID, returnURL string) (*subscription.RenewalResponse, error) {
	path := fmt.Sprintf("/api/billing/subscriptions/orgs/%s/users/%s/renew/", url.PathEscape(org), url.PathEscape(userID))
	body := renewRequest{SubscriptionID: subscriptionID, ReturnURL: returnURL}

	var resp renewResponse
	if _, err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return resp.toDomain(), nil
}

// cachedGet serves GET requests from the cache unless ctx bypasses it.
// Fresh responses are always written back.
func (c *Client) cachedGet(ctx context.Context, key, path string, query url.Values, out any) error {
	if c.cache != nil && !cache.Bypassed(ctx) {
		data, ok, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), logger.Error(err))
		case ok:
			if err := json.Unmarshal(data, out); err == nil {
				return nil
			}
			c.logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
		}
	}

	raw, err := c.do(ctx, http.MethodGet, path, query, nil, out)
	if err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
			c.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), logger.Error(err))
		}
	}
	return nil
}

// invalidate drops cached reads after a billing mutation.
func (c *Client) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	for _, prefix := range []string{appsPrefix, usagePrefix} {
		if err := c.cache.DeletePrefix(ctx, prefix); err != nil {
			c.logger.WarnContext(ctx, "cache invalidation failed", slog.String("prefix", prefix), logger.Error(err))
		}
	}
}

// do sends one request and decodes a 2xx JSON body into out. It returns the raw body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) ([]byte, error) {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "platform API call",
		slog.String("method", method),
		slog.String("path", path),
		logger.StatusCode(resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.ReplaceAll(string(raw), "\n", " ")
		if len(msg) > 200 {
			msg = msg[:200] + "..."
		}
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: msg}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, errors.Join(ErrDecodeResponse, err)
		}
	}
	return raw, nil
}
