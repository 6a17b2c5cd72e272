package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"workflowpro-backend/errs"
	"workflowpro-backend/log"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Logger.Debug("response encoding failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errs.Status(err), map[string]string{"error": err.Error()})
}

// writeProviderError renders third-party failures with whatever detail the
// provider supplied, per the OAuth error contract.
func writeProviderError(w http.ResponseWriter, status int, message string, details interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"error":   message,
		"details": details,
	})
}

// decodeJSON decodes a request body, rejecting unknown fields at the
// boundary so malformed partial updates never reach the store.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return errs.ErrUnknownField
		}

		return errs.ErrMalformedJSON
	}

	return nil
}
