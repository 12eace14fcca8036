package usecase

import (
	"context"

	"github.com/xavierca1/material-portal/internal/entity"
	"github.com/xavierca1/material-portal/internal/infra/queue"
)

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUnlessExists(ctx context.Context, user *entity.User) (bool, error)
}

type LeadRepositoryInterface interface {
	All(ctx context.Context) ([]entity.Lead, error)
	FindByEmail(ctx context.Context, email string) ([]entity.Lead, error)
	Create(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, id string, mutate func(*entity.Lead) error) (*entity.Lead, error)
}

// QuoteClassifier produces an assessment for a lead. Implementations must
// not fail: whatever goes wrong, they answer with a usable assessment.
type QuoteClassifier interface {
	Classify(ctx context.Context, name, message string) entity.Assessment
}

type EventPublisherInterface interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

type EmailService interface {
	SendQuote(to, name, subject, body string) error
}

type Resetter interface {
	Reset() error
}
