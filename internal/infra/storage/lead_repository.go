package storage

import (
	"context"
	"errors"

	"github.com/xavierca1/material-portal/internal/entity"
)

// ErrNotFound is returned by Update when no lead carries the given id.
var ErrNotFound = errors.New("lead not found")

type LeadRepository struct {
	store *Store
}

func NewLeadRepository(store *Store) *LeadRepository {
	return &LeadRepository{store: store}
}

func (r *LeadRepository) All(ctx context.Context) ([]entity.Lead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.loadLocked(), nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, l := range r.loadLocked() {
		if l.ID == id {
			lead := l
			return &lead, nil
		}
	}
	return nil, nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) ([]entity.Lead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matches []entity.Lead
	for _, l := range r.loadLocked() {
		if l.Email == email {
			matches = append(matches, l)
		}
	}
	return matches, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	leads := r.loadLocked()
	leads = append(leads, *lead)
	return r.store.write(LeadsFile, leads)
}

// Update runs the whole load-mutate-save cycle under the store lock: loads
// every lead, applies mutate to the first one matching id, and rewrites the
// file. Returns ErrNotFound when the id matches nothing; any error from
// mutate aborts without saving.
func (r *LeadRepository) Update(ctx context.Context, id string, mutate func(*entity.Lead) error) (*entity.Lead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	leads := r.loadLocked()
	for i := range leads {
		if leads[i].ID != id {
			continue
		}
		if err := mutate(&leads[i]); err != nil {
			return nil, err
		}
		if err := r.store.write(LeadsFile, leads); err != nil {
			return nil, err
		}
		updated := leads[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *LeadRepository) loadLocked() []entity.Lead {
	var leads []entity.Lead
	r.store.read(LeadsFile, &leads)
	return leads
}
