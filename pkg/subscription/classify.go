package subscription

import (
	"time"

	"github.com/dmitrymomot/mentorkit/pkg/timeleft"
)

const (
	secondsPerDay  = 86400
	secondsPerHour = 3600
)

// Branch is the lifecycle branch selected by a check cycle.
type Branch int

const (
	BranchNone Branch = iota
	BranchFreeTrial
	BranchOngoingLong   // at least a day left, counted in days
	BranchOngoingMedium // more than an hour left, counted in hours
	BranchOngoingShort  // an hour or less left, counted in minutes
	BranchExpired
)

func (b Branch) String() string {
	switch b {
	case BranchFreeTrial:
		return "free-trial"
	case BranchOngoingLong:
		return "ongoing-long"
	case BranchOngoingMedium:
		return "ongoing-medium"
	case BranchOngoingShort:
		return "ongoing-short"
	case BranchExpired:
		return "expired"
	default:
		return "none"
	}
}

// Lifecycle returns the user-facing lifecycle name of the branch.
func (b Branch) Lifecycle() string {
	switch b {
	case BranchFreeTrial:
		return "on-free-trial"
	case BranchOngoingLong:
		return "subscription-active"
	case BranchOngoingMedium:
		return "trial-ending"
	case BranchOngoingShort:
		return "subscription-expiring"
	case BranchExpired:
		return "trial-ended"
	default:
		return ""
	}
}

// Ongoing reports whether the branch is one of the countdown branches.
func (b Branch) Ongoing() bool {
	return b == BranchOngoingLong || b == BranchOngoingMedium || b == BranchOngoingShort
}

// Classification is the result of classifying a subscription at an instant.
type Classification struct {
	Branch    Branch
	Remaining time.Duration // whole seconds until trial end; zero when expired
	Label     string        // e.g. "3 days", "5 hours", "60 minutes"
	Interval  time.Duration // poll interval demanded by the branch; zero when expired
}

// IsOnFreeTrial is true only when the user is on the main tenant, is not an
// admin and belongs to exactly one tenant.
func IsOnFreeTrial(currentTenant, mainTenant string, isAdmin bool, tenantCount int) bool {
	return currentTenant == mainTenant && !isAdmin && tenantCount == 1
}

// Classify selects the lifecycle branch of sub at now.
func Classify(sub *AppSubscription, now time.Time) Classification {
	if sub == nil || sub.Status == "" || sub.Status == StatusPaused || sub.Status == StatusCanceled {
		return Classification{Branch: BranchExpired}
	}
	if now.After(sub.TrialEnd) {
		return Classification{Branch: BranchExpired}
	}

	seconds := timeleft.Seconds(timeleft.Remaining(now, sub.TrialEnd))
	if seconds <= 0 {
		return Classification{Branch: BranchExpired}
	}
	remaining := time.Duration(seconds) * time.Second

	switch {
	case seconds >= secondsPerDay:
		return Classification{
			Branch:    BranchOngoingLong,
			Remaining: remaining,
			Label:     timeleft.Format(remaining, timeleft.Day),
			Interval:  DefaultInterval,
		}
	case seconds > secondsPerHour:
		return Classification{
			Branch:    BranchOngoingMedium,
			Remaining: remaining,
			Label:     timeleft.Format(remaining, timeleft.Hour),
			Interval:  HourlyInterval,
		}
	default:
		return Classification{
			Branch:    BranchOngoingShort,
			Remaining: remaining,
			Label:     timeleft.Format(remaining, timeleft.Minute),
			Interval:  MinuteInterval,
		}
	}
}
