package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// successEnvelope is the uniform wrapper around every successful payload.
type successEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// errorEnvelope matches the backend error contract: message is a string or a
// list of validation messages, error is a short label.
type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	ErrorLabel string `json:"error"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, successEnvelope{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message any, label string) {
	writeJSON(w, status, errorEnvelope{StatusCode: status, Message: message, ErrorLabel: label})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("devserver: encoding response", slog.Any("err", err))
	}
}
