// Package buildings exposes stored analysis results over HTTP.
package buildings

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kilianp07/co2path/infra/store"
)

// Register mounts the handlers on mux:
//
//	GET /api/buildings/{id}/scenarios  scenarios of one building
//	GET /api/scenarios                 scenarios of every building
//
// Both return the latest run unless run_id is given. start and end
// (RFC 3339) restrict the time range. Requests must include an
// Authorization header with "Bearer <token>" when token is non-empty.
func Register(mux *http.ServeMux, st store.ResultStore, token string) {
	mux.Handle("GET /api/buildings/{id}/scenarios", NewScenarioHandler(st, token))
	mux.Handle("GET /api/scenarios", NewScenarioHandler(st, token))
}

// NewScenarioHandler returns the handler behind both routes. The building
// filter is taken from the {id} path value when present.
func NewScenarioHandler(st store.ResultStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" && !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q := store.Query{BuildingID: r.PathValue("id")}
		if q.RunID = r.URL.Query().Get("run_id"); q.RunID == "" {
			q.Latest = true
		}
		var err error
		if q.Start, err = parseTime(r.URL.Query().Get("start")); err != nil {
			http.Error(w, "invalid start: "+err.Error(), http.StatusBadRequest)
			return
		}
		if q.End, err = parseTime(r.URL.Query().Get("end")); err != nil {
			http.Error(w, "invalid end: "+err.Error(), http.StatusBadRequest)
			return
		}
		records, err := st.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if q.BuildingID != "" && len(records) == 0 {
			http.Error(w, "no scenarios for building "+q.BuildingID, http.StatusNotFound)
			return
		}
		if records == nil {
			records = []store.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func authorized(r *http.Request, token string) bool {
	got := []byte(r.Header.Get("Authorization"))
	return subtle.ConstantTimeCompare(got, []byte("Bearer "+token)) == 1
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
