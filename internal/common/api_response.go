package common

import (
	"encoding/json"
	"net/http"

	"agora/backend/internal/constants"
	"agora/backend/internal/logging"
	"agora/backend/internal/models/dtos"
)

// RespondJSON writes body as JSON with the given status
func RespondJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}

// RespondMessage writes the {"message": ...} shape used for errors
func RespondMessage(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, dtos.MessageResponse{Message: message})
}

func RespondServerError(w http.ResponseWriter) {
	RespondMessage(w, http.StatusInternalServerError, constants.MsgServerError)
}
