package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/material-portal/internal/entity"
	"github.com/xavierca1/material-portal/internal/infra/queue"
)

// stubClassifier answers every classification with a fixed assessment,
// which is exactly what the real classifier does when the model is down.
type stubClassifier struct {
	assessment entity.Assessment
}

func (s *stubClassifier) Classify(ctx context.Context, name, message string) entity.Assessment {
	return s.assessment
}

func fallbackAssessment() entity.Assessment {
	return entity.Assessment{
		Intent:         entity.IntentWarm,
		Category:       "GENERAL",
		Score:          50,
		Reasoning:      "AI Unavailable",
		EstimatedQuote: "Contact us",
		EmailSubject:   "Inquiry Received",
		EmailBody:      "We will contact you shortly.",
	}
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendQuote(to, name, subject, body string) error {
	args := m.Called(to, name, subject, body)
	return args.Error(0)
}
