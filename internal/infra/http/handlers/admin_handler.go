package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/material-portal/internal/usecase"
)

type AdminHandler struct {
	ListUC  *usecase.ListLeadsUseCase
	ReplyUC *usecase.AdminReplyUseCase
	ResetUC *usecase.ResetDataUseCase
}

func NewAdminHandler(listUC *usecase.ListLeadsUseCase, replyUC *usecase.AdminReplyUseCase, resetUC *usecase.ResetDataUseCase) *AdminHandler {
	return &AdminHandler{ListUC: listUC, ReplyUC: replyUC, ResetUC: resetUC}
}

func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.All(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, leads)
}

func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ListUC.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, stats)
}

func (h *AdminHandler) HandleReply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.AdminReplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	lead, err := h.ReplyUC.Execute(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, lead)
}

func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.ResetUC.Execute(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "All data wiped."})
}
