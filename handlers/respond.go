package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Chandanpatidar24/Project-Management/logging"
	"github.com/Chandanpatidar24/Project-Management/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// respondError maps workflow errors onto the HTTP status taxonomy:
// validation and conflict 400, authorization 401, not found 404, anything
// else 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
