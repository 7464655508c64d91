package web

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorBody struct {
	Error struct {
		Message   string `json:"message"`
		Code      string `json:"code"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// writeError sends a structured JSON error response and logs it with the
// request ID so client reports can be matched to server logs.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	reqID := requestIDFrom(r.Context())
	log.Printf("[%s] http error status=%d code=%s: %s", reqID, status, code, message)

	var body errorBody
	body.Error.Message = message
	body.Error.Code = code
	body.Error.RequestID = reqID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSON sends a 200 JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
