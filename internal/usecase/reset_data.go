package usecase

import (
	"context"

	"github.com/rs/zerolog"
)

// ResetDataUseCase wipes both record files. There is no undo and no
// confirmation beyond the admin guard on the route.
type ResetDataUseCase struct {
	Store Resetter
	Log   zerolog.Logger
}

func NewResetDataUseCase(store Resetter, log zerolog.Logger) *ResetDataUseCase {
	return &ResetDataUseCase{Store: store, Log: log}
}

func (uc *ResetDataUseCase) Execute(ctx context.Context) error {
	if err := uc.Store.Reset(); err != nil {
		return &TechnicalError{Code: "STORAGE_ERROR", Message: "failed to reset data: " + err.Error()}
	}
	uc.Log.Warn().Msg("all user and lead data wiped")
	return nil
}
