package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xavierca1/material-portal/internal/entity"
	"github.com/xavierca1/material-portal/internal/infra/http/middleware"
	"github.com/xavierca1/material-portal/internal/infra/queue"
)

// CreateLeadUseCase runs the intake flow: verify the owner account,
// classify the requirement, persist the new lead and hand the drafted quote
// email off for delivery. Classification cannot fail — the classifier
// degrades to its canned fallback — so intake never bounces on the AI step.
type CreateLeadUseCase struct {
	Users      UserRepositoryInterface
	Leads      LeadRepositoryInterface
	Classifier QuoteClassifier
	Events     EventPublisherInterface
	Mail       EmailService
	Log        zerolog.Logger
}

func NewCreateLeadUseCase(
	users UserRepositoryInterface,
	leads LeadRepositoryInterface,
	classifier QuoteClassifier,
	events EventPublisherInterface,
	mail EmailService,
	log zerolog.Logger,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Users:      users,
		Leads:      leads,
		Classifier: classifier,
		Events:     events,
		Mail:       mail,
		Log:        log,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to load users: " + err.Error()}
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	assessment := uc.Classifier.Classify(ctx, user.Name, input.Message)

	lead, err := entity.NewLead(user.Name, user.Email, input.Phone, input.Message, assessment)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to persist lead: " + err.Error()}
	}

	middleware.RecordLeadCreated(lead.Intent)
	uc.dispatchQuote(ctx, lead)

	return lead, nil
}

// dispatchQuote hands the drafted email off: through the broker when one is
// wired, otherwise best-effort in the background. Delivery problems never
// fail the intake.
func (uc *CreateLeadUseCase) dispatchQuote(ctx context.Context, lead *entity.Lead) {
	if uc.Events != nil {
		err := uc.Events.PublishLeadEvent(ctx, queue.LeadEventPayload{
			Event:          queue.EventLeadCreated,
			LeadID:         lead.ID,
			Name:           lead.Name,
			Email:          lead.Email,
			Phone:          lead.Phone,
			Status:         lead.Status,
			EstimatedQuote: lead.EstimatedQuote,
			EmailSubject:   lead.EmailSubject,
			EmailBody:      lead.EmailBody,
		})
		if err != nil {
			uc.Log.Error().Err(err).Str("lead_id", lead.ID).Msg("failed to publish lead.created")
		}
		return
	}

	if uc.Mail != nil {
		go func(l entity.Lead) {
			if err := uc.Mail.SendQuote(l.Email, l.Name, l.EmailSubject, l.EmailBody); err != nil {
				middleware.RecordQuoteEmail("failed")
				uc.Log.Error().Err(err).Str("lead_id", l.ID).Msg("failed to send quote email")
				return
			}
			middleware.RecordQuoteEmail("sent")
		}(*lead)
	}
}
