// Package banner adapts a subscription.Controller to a host UI.
//
// Recorder implements subscription.Flow and keeps the latest banner State,
// so a web front end can poll it. Router exposes that state and the banner
// trigger buttons over HTTP:
//
//	GET  /banner               latest State as JSON
//	POST /triggers/{trigger}   starts the trigger callback, responds 202
//
// Example:
//
//	rec := banner.NewRecorder(banner.WithStopOnTrialEnd())
//	ctrl, err := subscription.NewController(account, client, rec)
//	if err != nil {
//		return err
//	}
//	r := chi.NewRouter()
//	r.Mount("/subscription", banner.Router(rec, ctrl.TriggerCallback))
package banner
