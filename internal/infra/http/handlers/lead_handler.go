package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/material-portal/internal/usecase"
)

type LeadHandler struct {
	CreateUC  *usecase.CreateLeadUseCase
	ListUC    *usecase.ListLeadsUseCase
	DecideUC  *usecase.DecideLeadUseCase
	MessageUC *usecase.AppendMessageUseCase

	rateLimiter *RateLimiter
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	listUC *usecase.ListLeadsUseCase,
	decideUC *usecase.DecideLeadUseCase,
	messageUC *usecase.AppendMessageUseCase,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:    createUC,
		ListUC:      listUC,
		DecideUC:    decideUC,
		MessageUC:   messageUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP on intake
	}
}

// HandleCreate is the public intake route: it triggers the classifier call
// and is the only rate-limited endpoint.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, apiResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Inquiry sent! Check 'My Quotes'.",
		Data:    lead,
	})
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "email query parameter is required"})
		return
	}

	leads, err := h.ListUC.ByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, leads)
}

func (h *LeadHandler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.DecisionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	lead, err := h.DecideUC.Execute(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.AppendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	lead, err := h.MessageUC.Execute(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, lead)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
