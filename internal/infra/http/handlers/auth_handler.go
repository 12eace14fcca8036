package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/material-portal/internal/usecase"
)

type AuthHandler struct {
	RegisterUC *usecase.RegisterUserUseCase
	AuthUC     *usecase.AuthenticateUserUseCase
}

func NewAuthHandler(registerUC *usecase.RegisterUserUseCase, authUC *usecase.AuthenticateUserUseCase) *AuthHandler {
	return &AuthHandler{RegisterUC: registerUC, AuthUC: authUC}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	user, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Registration successful! Please login.",
		Data:    user.Sanitized(),
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	user, err := h.AuthUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, user.Sanitized())
}
