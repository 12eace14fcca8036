package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/material-portal/internal/usecase"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		writeJSON(w, domainStatus(de), apiResponse{Success: false, Message: de.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Message: err.Error()})
}

func domainStatus(err *usecase.DomainError) int {
	switch err.Code {
	case "LEAD_NOT_FOUND", "UNKNOWN_USER":
		return http.StatusNotFound
	case "EMAIL_TAKEN", "LEAD_CLOSED":
		return http.StatusConflict
	case "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
