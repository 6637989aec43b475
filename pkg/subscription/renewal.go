package subscription

// OutcomeKind tells the dispatcher what to do after a renewal call.
type OutcomeKind int

const (
	// OutcomeNeedsPortal means the renewal neither succeeded nor redirected;
	// the user has to go through the billing portal.
	OutcomeNeedsPortal OutcomeKind = iota
	OutcomeSuccess
	OutcomeRedirect
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRedirect:
		return "redirect"
	default:
		return "needs-portal"
	}
}

// RenewalOutcome is the parsed result of a renewal call.
type RenewalOutcome struct {
	Kind    OutcomeKind
	Message string // set for OutcomeSuccess
	URL     string // set for OutcomeRedirect
}

// ParseRenewal turns a raw renewal response into an outcome.
// A successful renewal that still carries a redirect URL is a redirect.
func ParseRenewal(resp *RenewalResponse) RenewalOutcome {
	if resp == nil {
		return RenewalOutcome{Kind: OutcomeNeedsPortal}
	}
	success := resp.Success != nil && *resp.Success

	switch {
	case success && resp.RedirectURL == "":
		return RenewalOutcome{Kind: OutcomeSuccess, Message: resp.Message}
	case resp.RedirectURL != "":
		return RenewalOutcome{Kind: OutcomeRedirect, URL: resp.RedirectURL}
	default:
		return RenewalOutcome{Kind: OutcomeNeedsPortal}
	}
}
