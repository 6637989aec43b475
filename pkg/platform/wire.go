package platform

import (
	"time"

	"github.com/dmitrymomot/mentorkit/pkg/subscription"
)

type usageCountResponse struct {
	Org      string `json:"org"`
	Username string `json:"username"`
	Count    int    `json:"count"`
	Limit    int    `json:"limit"`
}

func (r usageCountResponse) toDomain() *subscription.UsageCount {
	return &subscription.UsageCount{
		Org:      r.Org,
		Username: r.Username,
		Count:    r.Count,
		Limit:    r.Limit,
	}
}

type appSubscriptionResponse struct {
	ID       string     `json:"id"`
	Status   string     `json:"status"`
	TrialEnd *time.Time `json:"trial_end"`
}

type appResponse struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	PlatformKey  string                   `json:"platform_key"`
	Subscription *appSubscriptionResponse `json:"subscription"`
}

func (r appResponse) toDomain() subscription.App {
	app := subscription.App{
		ID:          r.ID,
		Name:        r.Name,
		PlatformKey: r.PlatformKey,
	}
	if r.Subscription != nil {
		sub := &subscription.AppSubscription{
			ID:     r.Subscription.ID,
			Status: subscription.Status(r.Subscription.Status),
		}
		if r.Subscription.TrialEnd != nil {
			sub.TrialEnd = *r.Subscription.TrialEnd
		}
		app.Subscription = sub
	}
	return app
}

type appsPageResponse struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []appResponse `json:"results"`
}

func (r appsPageResponse) toDomain() *subscription.Page[subscription.App] {
	page := &subscription.Page[subscription.App]{
		Count:   r.Count,
		Results: make([]subscription.App, 0, len(r.Results)),
	}
	if r.Next != nil {
		page.Next = *r.Next
	}
	if r.Previous != nil {
		page.Previous = *r.Previous
	}
	for _, app := range r.Results {
		page.Results = append(page.Results, app.toDomain())
	}
	return page
}

type portalSessionRequest struct {
	ReturnURL string `json:"return_url"`
}

type portalSessionResponse struct {
	URL string `json:"url"`
}

type renewRequest struct {
	SubscriptionID string `json:"subscription_id"`
	ReturnURL      string `json:"return_url"`
}

type renewResponse struct {
	Success     *bool  `json:"success"`
	RedirectURL string `json:"redirect_url"`
	Message     string `json:"message"`
}

func (r renewResponse) toDomain() *subscription.RenewalResponse {
	return &subscription.RenewalResponse{
		Success:     r.Success,
		RedirectURL: r.RedirectURL,
		Message:     r.Message,
	}
}
