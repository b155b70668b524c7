package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/djougoo/propass-central/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.SuccessResponse{Success: true, Data: client}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes the generic failure envelope {"error": msg} with the
// given status code. Every non-2xx response of the API goes through this
// helper so the error shape stays uniform.
func WriteError(w http.ResponseWriter, msg string, statusCode int) (int, error) {
	return WriteJSON(w, models.ErrorResponse{Error: msg}, statusCode)
}
