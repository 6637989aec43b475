package banner

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// TriggerFunc resolves a trigger name to its callback.
// subscription.Controller.TriggerCallback satisfies it.
type TriggerFunc func(ctx context.Context, trigger string) func()

// Router exposes the banner state and trigger surface.
// Trigger callbacks run in the background; progress is reported through the
// Recorder and visible on GET /banner.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/subscription", banner.Router(rec, ctrl.TriggerCallback))
func Router(rec *Recorder, triggers TriggerFunc) chi.Router {
	if rec == nil {
		panic("banner: Recorder is required")
	}

	r := chi.NewRouter()

	r.Get("/banner", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(rec.State())
	})

	if triggers != nil {
		r.Post("/triggers/{trigger}", func(w http.ResponseWriter, req *http.Request) {
			// the callback outlives the request; unknown triggers resolve to a no-op
			cb := triggers(context.WithoutCancel(req.Context()), chi.URLParam(req, "trigger"))
			go cb()
			w.WriteHeader(http.StatusAccepted)
		})
	}

	return r
}
