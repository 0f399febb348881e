package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
)

// PreferencesUsecase reads and patches the per-user settings surface.
type PreferencesUsecase struct {
	prefsRepo port.PreferencesRepository
	logger    *slog.Logger
}

func NewPreferencesUsecase(prefsRepo port.PreferencesRepository, logger *slog.Logger) *PreferencesUsecase {
	return &PreferencesUsecase{
		prefsRepo: prefsRepo,
		logger:    logger.With("component", "preferences_usecase"),
	}
}

// Get returns the caller's preferences, defaults included for users who
// never saved any.
func (uc *PreferencesUsecase) Get(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	return uc.prefsRepo.Get(ctx, userID)
}

// Update applies a partial settings patch. The whole patch is rejected
// when any key is unknown or any value is out of range, so a failed
// request never half-applies.
func (uc *PreferencesUsecase) Update(ctx context.Context, userID uuid.UUID, patch map[string]interface{}) (*domain.Preferences, error) {
	prefs, err := uc.prefsRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for key, value := range patch {
		if err := prefs.Apply(key, value); err != nil {
			return nil, apperrors.NewValidationContextError(
				err.Error(),
				"usecase", "preferences_usecase", "update", map[string]interface{}{
					"key": key,
				})
		}
	}

	if err := uc.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}

	return prefs, nil
}
