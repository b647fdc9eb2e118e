package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// LivenessHandler returns an HTTP handler for liveness probes.
// This is a simple check that the service is running.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReadinessHandler returns an HTTP handler for readiness probes.
// This runs a full aggregation and answers with the overall verdict.
func ReadinessHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status, err := agg.Check(ctx).Wait(ctx)

		w.Header().Set("Content-Type", "text/plain")

		if err == nil && status.Healthy {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("UNHEALTHY"))
	}
}

// StatusResponse is the JSON response for the detailed health endpoint.
type StatusResponse struct {
	Status     string           `json:"status"`
	Timestamp  string           `json:"timestamp"`
	Results    []ResultResponse `json:"results,omitempty"`
	Suppressed []ResultResponse `json:"suppressed,omitempty"`
}

// ResultResponse is the JSON form of a single indicator result.
type ResultResponse struct {
	Name    string         `json:"name"`
	Status  string         `json:"status"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// DetailedHandler returns an HTTP handler that provides detailed health
// information, including suppressed results. Concurrent requests are
// coalesced into a single aggregation run.
func DetailedHandler(agg *Aggregator) http.HandlerFunc {
	var group singleflight.Group

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		v, err, _ := group.Do("check", func() (any, error) {
			// Detach from the first caller's context so a cancelled
			// request does not abort the run for the others sharing it.
			runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			return agg.Check(runCtx).Wait(runCtx)
		})
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		status := v.(AggregateStatus)

		response := StatusResponse{
			Status:     statusText(status.Healthy),
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Results:    resultResponses(status.Results),
			Suppressed: resultResponses(status.Suppressed),
		}

		w.Header().Set("Content-Type", "application/json")
		if status.Healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(response)
	}
}

func statusText(healthy bool) string {
	if healthy {
		return "healthy"
	}
	return "unhealthy"
}

func resultResponses(results []Result) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, res := range results {
		details := make(map[string]any, len(res.Details))
		for k, v := range res.Details {
			if k == NameKey {
				continue
			}
			details[k] = v
		}
		out = append(out, ResultResponse{
			Name:    res.Name(),
			Status:  statusText(res.Healthy),
			Error:   res.Error,
			Details: details,
		})
	}
	return out
}

// RegisterHandlers registers all health check handlers on the given mux.
func RegisterHandlers(mux *http.ServeMux, agg *Aggregator) {
	mux.HandleFunc("/healthz", LivenessHandler())
	mux.HandleFunc("/readyz", ReadinessHandler(agg))
	mux.HandleFunc("/health", DetailedHandler(agg))
}
