package usecase

import (
	"context"

	"github.com/xavierca1/material-portal/internal/entity"
)

// ListLeadsUseCase serves both portals: a customer sees their own leads,
// the admin console sees everything with an optional status filter.
// Results come back newest first.
type ListLeadsUseCase struct {
	Leads LeadRepositoryInterface
}

func NewListLeadsUseCase(leads LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Leads: leads}
}

func (uc *ListLeadsUseCase) ByEmail(ctx context.Context, email string) ([]entity.Lead, error) {
	leads, err := uc.Leads.FindByEmail(ctx, email)
	if err != nil {
		return nil, &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to load leads: " + err.Error()}
	}
	reverse(leads)
	return leads, nil
}

// All lists every lead, optionally narrowed to one status. An empty filter
// or "ALL" means no filtering; an unknown status is a validation error.
func (uc *ListLeadsUseCase) All(ctx context.Context, statusFilter string) ([]entity.Lead, error) {
	if statusFilter != "" && statusFilter != "ALL" && !entity.ValidStatus(statusFilter) {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "status must be ALL, NEW, CONTACTED, WON or LOST"}
	}

	leads, err := uc.Leads.All(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to load leads: " + err.Error()}
	}

	if statusFilter != "" && statusFilter != "ALL" {
		filtered := leads[:0]
		for _, l := range leads {
			if l.Status == statusFilter {
				filtered = append(filtered, l)
			}
		}
		leads = filtered
	}

	reverse(leads)
	return leads, nil
}

// Stats feeds the admin console's headline numbers.
func (uc *ListLeadsUseCase) Stats(ctx context.Context) (StatsOutput, error) {
	leads, err := uc.Leads.All(ctx)
	if err != nil {
		return StatsOutput{}, &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to load leads: " + err.Error()}
	}

	stats := StatsOutput{Total: len(leads)}
	for _, l := range leads {
		switch l.Status {
		case entity.StatusNew:
			stats.Pending++
		case entity.StatusWon:
			stats.Won++
		}
	}
	return stats, nil
}

func reverse(leads []entity.Lead) {
	for i, j := 0, len(leads)-1; i < j; i, j = i+1, j-1 {
		leads[i], leads[j] = leads[j], leads[i]
	}
}
