package banner

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mentorkit/pkg/subscription"
)

// Kind is what the banner currently shows.
type Kind string

const (
	KindNone        Kind = "none"
	KindFreeUsage   Kind = "free-usage"
	KindOngoing     Kind = "ongoing"
	KindTrialEnded  Kind = "trial-ended"
	KindRedirect    Kind = "redirect"
	KindSubscribed  Kind = "subscribed"
	KindPricing     Kind = "pricing"
	KindSubscribing Kind = "subscribing"
	KindFailed      Kind = "failed"
)

// State is a snapshot of the banner. ID changes on every update.
type State struct {
	ID        uuid.UUID                `json:"id"`
	Kind      Kind                     `json:"kind"`
	Label     string                   `json:"label,omitempty"`
	URL       string                   `json:"url,omitempty"`
	Message   string                   `json:"message,omitempty"`
	Usage     *subscription.UsageCount `json:"usage,omitempty"`
	Error     string                   `json:"error,omitempty"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Recorder is a subscription.Flow that stores the latest banner state.
type Recorder struct {
	mu     sync.RWMutex
	state  State
	now    func() time.Time
	notify func(State)

	stopOnTrialEnd bool
}

var _ subscription.Flow = (*Recorder)(nil)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithNotify registers fn to receive every new state.
// fn is called synchronously from the controller's callback.
func WithNotify(fn func(State)) RecorderOption {
	return func(r *Recorder) {
		r.notify = fn
	}
}

// WithNow sets the time source for UpdatedAt.
func WithNow(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithStopOnTrialEnd stops polling as soon as the trial is reported as ended.
func WithStopOnTrialEnd() RecorderOption {
	return func(r *Recorder) {
		r.stopOnTrialEnd = true
	}
}

// NewRecorder creates a Recorder in the KindNone state.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.state = State{ID: uuid.New(), Kind: KindNone, UpdatedAt: r.now()}
	return r
}

// State returns the latest banner state.
func (r *Recorder) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Recorder) OnFreeUsageCount(usage *subscription.UsageCount) {
	r.set(State{Kind: KindFreeUsage, Usage: usage})
}

func (r *Recorder) OnTrialEnded(handle subscription.TimerHandle) {
	if r.stopOnTrialEnd && handle != nil {
		handle.Stop()
	}
	r.set(State{Kind: KindTrialEnded})
}

func (r *Recorder) OnSubscriptionOngoing(remaining string) {
	r.set(State{Kind: KindOngoing, Label: remaining})
}

func (r *Recorder) OnRedirectToURL(url, toast string) {
	r.set(State{Kind: KindRedirect, URL: url, Message: toast})
}

func (r *Recorder) OnSuccessfullySubscribed(message string) {
	r.set(State{Kind: KindSubscribed, Message: message})
}

func (r *Recorder) OnShowPricingPage() {
	r.set(State{Kind: KindPricing})
}

func (r *Recorder) OnBeforeSubscribeTrigger() {
	r.set(State{Kind: KindSubscribing})
}

func (r *Recorder) OnSubscribeFailed(err error) {
	s := State{Kind: KindFailed}
	if err != nil {
		s.Error = err.Error()
	}
	r.set(s)
}

func (r *Recorder) set(s State) {
	s.ID = uuid.New()
	s.UpdatedAt = r.now()

	r.mu.Lock()
	r.state = s
	notify := r.notify
	r.mu.Unlock()

	if notify != nil {
		notify(s)
	}
}
