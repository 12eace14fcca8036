package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xavierca1/material-portal/internal/entity"
	"github.com/xavierca1/material-portal/internal/infra/http/middleware"
	"github.com/xavierca1/material-portal/internal/infra/queue"
	"github.com/xavierca1/material-portal/internal/infra/storage"
)

// DecideLeadUseCase applies the customer's accept/decline decision.
// WON and LOST are terminal: repeating the same decision is a no-op,
// reversing it is rejected.
type DecideLeadUseCase struct {
	Leads  LeadRepositoryInterface
	Events EventPublisherInterface
	Log    zerolog.Logger
}

func NewDecideLeadUseCase(leads LeadRepositoryInterface, events EventPublisherInterface, log zerolog.Logger) *DecideLeadUseCase {
	return &DecideLeadUseCase{Leads: leads, Events: events, Log: log}
}

func (uc *DecideLeadUseCase) Execute(ctx context.Context, id string, input DecisionInput) (*entity.Lead, error) {
	var target string
	switch strings.ToLower(input.Decision) {
	case "accept":
		target = entity.StatusWon
	case "decline":
		target = entity.StatusLost
	default:
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "decision must be accept or decline"}
	}

	var from string
	lead, err := uc.Leads.Update(ctx, id, func(l *entity.Lead) error {
		from = l.Status
		if l.Status == target {
			return nil // idempotent re-apply
		}
		if l.IsTerminal() {
			return ErrLeadClosed
		}
		l.Status = target
		return nil
	})
	if err != nil {
		return nil, mapUpdateError(err)
	}

	if from != lead.Status {
		middleware.RecordStatusTransition(from, lead.Status)
		uc.publishDecision(ctx, lead)
	}

	return lead, nil
}

func (uc *DecideLeadUseCase) publishDecision(ctx context.Context, lead *entity.Lead) {
	if uc.Events == nil {
		return
	}
	event := queue.EventLeadWon
	if lead.Status == entity.StatusLost {
		event = queue.EventLeadLost
	}
	err := uc.Events.PublishLeadEvent(ctx, queue.LeadEventPayload{
		Event:          event,
		LeadID:         lead.ID,
		Name:           lead.Name,
		Email:          lead.Email,
		Status:         lead.Status,
		EstimatedQuote: lead.EstimatedQuote,
	})
	if err != nil {
		uc.Log.Error().Err(err).Str("lead_id", lead.ID).Msg("failed to publish decision event")
	}
}

// AdminReplyUseCase overwrites the quote with the admin's free-text value
// and moves the lead to CONTACTED regardless of its prior status — an
// admin reply deliberately reopens a decided lead. A chat message is
// appended only when one was supplied.
type AdminReplyUseCase struct {
	Leads  LeadRepositoryInterface
	Events EventPublisherInterface
	Log    zerolog.Logger
}

func NewAdminReplyUseCase(leads LeadRepositoryInterface, events EventPublisherInterface, log zerolog.Logger) *AdminReplyUseCase {
	return &AdminReplyUseCase{Leads: leads, Events: events, Log: log}
}

func (uc *AdminReplyUseCase) Execute(ctx context.Context, id string, input AdminReplyInput) (*entity.Lead, error) {
	if strings.TrimSpace(input.EstimatedQuote) == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "estimated_quote is required"}
	}

	var from string
	lead, err := uc.Leads.Update(ctx, id, func(l *entity.Lead) error {
		from = l.Status
		l.EstimatedQuote = input.EstimatedQuote
		l.Status = entity.StatusContacted
		if input.Message != "" {
			l.AppendMessage(entity.RoleAssistant, input.Message)
		}
		return nil
	})
	if err != nil {
		return nil, mapUpdateError(err)
	}

	if from != lead.Status {
		middleware.RecordStatusTransition(from, lead.Status)
	}

	if uc.Events != nil && input.Message != "" {
		err := uc.Events.PublishLeadEvent(ctx, queue.LeadEventPayload{
			Event:          queue.EventLeadContacted,
			LeadID:         lead.ID,
			Name:           lead.Name,
			Email:          lead.Email,
			Status:         lead.Status,
			EstimatedQuote: lead.EstimatedQuote,
			EmailSubject:   "Update on your quotation",
			EmailBody:      input.Message,
		})
		if err != nil {
			uc.Log.Error().Err(err).Str("lead_id", lead.ID).Msg("failed to publish lead.contacted")
		}
	}

	return lead, nil
}

// AppendMessageUseCase adds a chat entry without touching the status.
// Allowed in every state: a decided lead keeps its thread open.
type AppendMessageUseCase struct {
	Leads LeadRepositoryInterface
}

func NewAppendMessageUseCase(leads LeadRepositoryInterface) *AppendMessageUseCase {
	return &AppendMessageUseCase{Leads: leads}
}

func (uc *AppendMessageUseCase) Execute(ctx context.Context, id string, input AppendMessageInput) (*entity.Lead, error) {
	if input.Role != entity.RoleUser && input.Role != entity.RoleAssistant {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "role must be user or assistant"}
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "content is required"}
	}

	lead, err := uc.Leads.Update(ctx, id, func(l *entity.Lead) error {
		l.AppendMessage(input.Role, input.Content)
		return nil
	})
	if err != nil {
		return nil, mapUpdateError(err)
	}

	return lead, nil
}

func mapUpdateError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrLeadNotFound
	}
	if IsDomainError(err) {
		return err
	}
	return &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to update lead: " + err.Error()}
}
