// Package http holds the REST handlers. Handlers only — routes live in
// cmd/gateway.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lumenlms/lumen/internal/fault"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the shared error taxonomy onto status codes.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fault.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, fault.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, fault.ErrPersistence):
		http.Error(w, "storage unavailable", http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
