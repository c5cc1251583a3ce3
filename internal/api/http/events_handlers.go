package http

import (
	"net/http"
	"strconv"

	syncx "github.com/lumenlms/lumen/internal/sync"
)

// ListEventsHandler pages through the append-only event log for external
// sync/analytics consumers. GET /events?since=0&limit=100.
func ListEventsHandler(events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		since, _ := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		list, err := events.Since(r.Context(), since, limit)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
