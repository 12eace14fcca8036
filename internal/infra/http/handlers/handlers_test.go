package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/material-portal/internal/entity"
	"github.com/xavierca1/material-portal/internal/infra/http/middleware"
	"github.com/xavierca1/material-portal/internal/infra/integration/groq"
	"github.com/xavierca1/material-portal/internal/infra/storage"
	"github.com/xavierca1/material-portal/internal/usecase"
)

const testAdminPassword = "admin123"

// newTestRouter wires the full API against a temp data dir. The classifier
// has no credential, so every assessment is the canned fallback — exactly
// the unreachable-model scenario.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := storage.NewStore(t.TempDir())
	assert.NoError(t, err)

	log := zerolog.Nop()
	userRepo := storage.NewUserRepository(store)
	leadRepo := storage.NewLeadRepository(store)
	classifier := groq.NewClassifier(groq.NewClient("", ""), log)

	registerUC := usecase.NewRegisterUserUseCase(userRepo)
	authUC := usecase.NewAuthenticateUserUseCase(userRepo)
	createUC := usecase.NewCreateLeadUseCase(userRepo, leadRepo, classifier, nil, nil, log)
	listUC := usecase.NewListLeadsUseCase(leadRepo)
	decideUC := usecase.NewDecideLeadUseCase(leadRepo, nil, log)
	replyUC := usecase.NewAdminReplyUseCase(leadRepo, nil, log)
	messageUC := usecase.NewAppendMessageUseCase(leadRepo)
	resetUC := usecase.NewResetDataUseCase(store, log)

	authHandler := NewAuthHandler(registerUC, authUC)
	leadHandler := NewLeadHandler(createUC, listUC, decideUC, messageUC)
	adminHandler := NewAdminHandler(listUC, replyUC, resetUC)

	r := chi.NewRouter()
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)
	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/leads", leadHandler.HandleList)
	r.Post("/leads/{id}/decision", leadHandler.HandleDecision)
	r.Post("/leads/{id}/messages", leadHandler.HandleMessage)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(testAdminPassword))
		r.Get("/leads", adminHandler.HandleList)
		r.Post("/leads/{id}/reply", adminHandler.HandleReply)
		r.Get("/stats", adminHandler.HandleStats)
		r.Post("/reset", adminHandler.HandleReset)
	})

	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(middleware.AdminHeader, testAdminPassword)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeLead(t *testing.T, rec *httptest.ResponseRecorder) entity.Lead {
	t.Helper()
	var envelope struct {
		Success bool        `json:"success"`
		Data    entity.Lead `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	return envelope.Data
}

func TestEndToEndIntakeWithClassifierDown(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "pw1",
	}, false)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "asha@x.com", "password": "pw1",
	}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pw1")

	rec = doJSON(t, router, http.MethodPost, "/leads", map[string]string{
		"email": "asha@x.com", "phone": "9990001111", "message": "Need 500 sqft laminate flooring",
	}, false)
	assert.Equal(t, http.StatusCreated, rec.Code)

	lead := decodeLead(t, rec)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Equal(t, "Contact us", lead.EstimatedQuote)
	assert.Len(t, lead.ChatHistory, 1)
	assert.Equal(t, entity.RoleAssistant, lead.ChatHistory[0].Role)
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]string{"name": "Asha", "email": "asha@x.com", "password": "pw1"}
	rec := doJSON(t, router, http.MethodPost, "/register", payload, false)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/register", payload, false)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBadCredentialsIsUnauthorized(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "nobody@x.com", "password": "pw1",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNegotiationFlow(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "pw1",
	}, false)
	rec := doJSON(t, router, http.MethodPost, "/leads", map[string]string{
		"email": "asha@x.com", "phone": "9990001111", "message": "hardwood for bedroom",
	}, false)
	lead := decodeLead(t, rec)

	// Admin replies with a revised quote.
	rec = doJSON(t, router, http.MethodPost, "/admin/leads/"+lead.ID+"/reply", map[string]string{
		"estimated_quote": "₹1.2 Lakhs", "message": "Final offer including installation.",
	}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	contacted := decodeLead(t, rec)
	assert.Equal(t, entity.StatusContacted, contacted.Status)
	assert.Equal(t, "₹1.2 Lakhs", contacted.EstimatedQuote)
	assert.Len(t, contacted.ChatHistory, 2)

	// Customer asks a question.
	rec = doJSON(t, router, http.MethodPost, "/leads/"+lead.ID+"/messages", map[string]string{
		"role": "user", "content": "Is the price negotiable?",
	}, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Customer accepts.
	rec = doJSON(t, router, http.MethodPost, "/leads/"+lead.ID+"/decision", map[string]string{
		"decision": "accept",
	}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	won := decodeLead(t, rec)
	assert.Equal(t, entity.StatusWon, won.Status)

	// Declining afterwards conflicts.
	rec = doJSON(t, router, http.MethodPost, "/leads/"+lead.ID+"/decision", map[string]string{
		"decision": "decline",
	}, false)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminRoutesRequirePassword(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/admin/stats", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/admin/stats", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminStatsAndFilter(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "pw1",
	}, false)
	rec := doJSON(t, router, http.MethodPost, "/leads", map[string]string{
		"email": "asha@x.com", "phone": "9990001111", "message": "tiles",
	}, false)
	lead := decodeLead(t, rec)
	doJSON(t, router, http.MethodPost, "/leads/"+lead.ID+"/decision", map[string]string{"decision": "accept"}, false)

	rec = doJSON(t, router, http.MethodGet, "/admin/stats", nil, true)
	var stats struct {
		Data usecase.StatsOutput `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, usecase.StatsOutput{Total: 1, Pending: 0, Won: 1}, stats.Data)

	rec = doJSON(t, router, http.MethodGet, "/admin/leads?status=WON", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Data []entity.Lead `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Len(t, listing.Data, 1)
}

func TestResetWipesEverything(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "pw1",
	}, false)
	doJSON(t, router, http.MethodPost, "/leads", map[string]string{
		"email": "asha@x.com", "phone": "9990001111", "message": "tiles",
	}, false)

	rec := doJSON(t, router, http.MethodPost, "/admin/reset", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/leads?email=asha@x.com", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Data []entity.Lead `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Empty(t, listing.Data)

	// The account is gone too; a fresh registration with the same email works.
	rec = doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "pw1",
	}, false)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "limits are per IP")
}
