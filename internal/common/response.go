package common

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the uniform response body: success responses carry data and a
// human-readable message with an empty error; failures carry the error text.
type Envelope struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
}

func Respond(w http.ResponseWriter, code int, data interface{}, message string) {
	writeJSON(w, code, Envelope{Data: data, Message: message})
}

// RespondError translates a service error through the status mapper. Anything
// that is not a recognized business error is logged and reported as a generic
// server error.
func RespondError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Msg("unexpected error")
		message = "Server Error"
	}
	writeJSON(w, code, Envelope{Message: message, Error: message})
}

// RespondNotFound reports an absent resource with a resource-specific message.
func RespondNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Envelope{Message: message, Error: message})
}

func writeJSON(w http.ResponseWriter, code int, payload Envelope) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"data":null,"message":"Server Error","error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
