package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON body with the given status
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Empty writes an empty JSON object. Clients of the mutation endpoints
// expect a body even when there is nothing to report.
func Empty(w http.ResponseWriter, status int) {
	JSON(w, status, struct{}{})
}
