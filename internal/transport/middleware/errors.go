package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/quietpage/quietpage/internal/transport/wire"
)

func writeError(w http.ResponseWriter, status int, message, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(wire.Error{Error: message, Reason: reason}) //nolint:errcheck
}
