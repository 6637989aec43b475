package subscription

import (
	"errors"
	"fmt"
)

// Account is the session context a Controller is bound to.
// It is fixed for the lifetime of the controller.
type Account struct {
	Platform      string   // platform name matched against app names
	TenantKey     string   // current tenant
	Username      string   // current user, also the user id for billing calls
	OrgID         string   // organization id of the current tenant
	Tenants       []string // every tenant the user belongs to
	IsAdmin       bool
	MainTenantKey string // the deployment's primary tenant
}

// Validate reports every missing required field.
func (a Account) Validate() error {
	var errs []error
	required := []struct {
		name  string
		value string
	}{
		{"platform", a.Platform},
		{"tenant key", a.TenantKey},
		{"username", a.Username},
		{"org id", a.OrgID},
		{"main tenant key", a.MainTenantKey},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}
	if len(a.Tenants) == 0 {
		errs = append(errs, errors.New("at least one tenant is required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidAccount}, errs...)...)
	}
	return nil
}

// IsOnFreeTrial reports whether the account qualifies for the free trial.
func (a Account) IsOnFreeTrial() bool {
	return IsOnFreeTrial(a.TenantKey, a.MainTenantKey, a.IsAdmin, len(a.Tenants))
}
