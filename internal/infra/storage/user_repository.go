package storage

import (
	"context"

	"github.com/xavierca1/material-portal/internal/entity"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) All(ctx context.Context) ([]entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.loadLocked(), nil
}

// FindByEmail matches on the exact stored string, case-sensitive.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.loadLocked() {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// Create appends the user and rewrites the whole collection. The caller is
// expected to have checked for duplicates; the check and the append happen
// under the same lock when both go through this repository.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := r.loadLocked()
	users = append(users, *user)
	return r.store.write(UsersFile, users)
}

// CreateUnlessExists closes the register read-then-write race by doing the
// duplicate check and the append atomically. Returns false when the email
// is already taken.
func (r *UserRepository) CreateUnlessExists(ctx context.Context, user *entity.User) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := r.loadLocked()
	for _, u := range users {
		if u.Email == user.Email {
			return false, nil
		}
	}

	users = append(users, *user)
	if err := r.store.write(UsersFile, users); err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) loadLocked() []entity.User {
	var users []entity.User
	r.store.read(UsersFile, &users)
	return users
}
