package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/material-portal/internal/entity"
)

// RegisterUserUseCase creates a portal account. Emails are unique with
// exact string matching; the check and the insert run atomically inside the
// repository so two concurrent registrations cannot both win.
type RegisterUserUseCase struct {
	Users UserRepositoryInterface
}

func NewRegisterUserUseCase(users UserRepositoryInterface) *RegisterUserUseCase {
	return &RegisterUserUseCase{Users: users}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if errs := ValidateRegisterInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_ERROR", Message: "failed to hash password: " + err.Error()}
	}

	user, err := entity.NewUser(input.Name, input.Email, string(hash))
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	created, err := uc.Users.CreateUnlessExists(ctx, user)
	if err != nil {
		return nil, &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to persist user: " + err.Error()}
	}
	if !created {
		return nil, ErrAlreadyRegistered
	}

	return user, nil
}

// AuthenticateUserUseCase re-derives identity from the stored record on
// every call. There are no sessions or tokens.
type AuthenticateUserUseCase struct {
	Users UserRepositoryInterface
}

func NewAuthenticateUserUseCase(users UserRepositoryInterface) *AuthenticateUserUseCase {
	return &AuthenticateUserUseCase{Users: users}
}

func (uc *AuthenticateUserUseCase) Execute(ctx context.Context, input LoginInput) (*entity.User, error) {
	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to load users: " + err.Error()}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
