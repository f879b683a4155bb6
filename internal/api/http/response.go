package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkropachev/sign-station/internal/apperrors"
	"github.com/mkropachev/sign-station/internal/logger"
)

// messageResponse is the JSON envelope of every non-payload response.
type messageResponse struct {
	Message string `json:"message"`
}

// signResponse is the success body of the /sign endpoint.
type signResponse struct {
	Message    string `json:"message"`
	IPAURL     string `json:"ipa_url"`
	OTAURL     string `json:"ota_url"`
	InstallURL string `json:"install_url"`
}

// writeJSON writes an object with the given status code.
func writeJSON(w http.ResponseWriter, status int, obj any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(obj); err != nil {
		logger.Logger().Errorf("Failed to encode response: %v", err)
	}
}

// writeErrorMessage writes a message envelope with an explicit status.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &messageResponse{Message: message})
}

// writeError maps a classified pipeline error to its status code and
// client-facing message. Unclassified errors become opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	writeErrorMessage(w, apperrors.HTTPStatus(err), apperrors.Message(err))
}
