package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"lector/config"
	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
)

// TagUsecase manages the caller's tag vocabulary. Article-tag links are
// handled by ArticleUsecase.SyncTags.
type TagUsecase struct {
	tagRepo port.TagRepository
	cfg     config.TagConfig
	logger  *slog.Logger
}

func NewTagUsecase(tagRepo port.TagRepository, cfg config.TagConfig, logger *slog.Logger) *TagUsecase {
	return &TagUsecase{
		tagRepo: tagRepo,
		cfg:     cfg,
		logger:  logger.With("component", "tag_usecase"),
	}
}

func (uc *TagUsecase) sanitize(name string) (string, error) {
	sanitized, err := domain.SanitizeTagName(name, uc.cfg.MaxNameLength)
	if err != nil {
		return "", apperrors.NewValidationContextError(
			err.Error(),
			"usecase", "tag_usecase", "sanitize", map[string]interface{}{
				"max_length": uc.cfg.MaxNameLength,
			})
	}
	return sanitized, nil
}

// Create adds a tag. An explicit create of an existing name conflicts,
// unlike the get-or-create path ingestion uses.
func (uc *TagUsecase) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.UserTag, error) {
	sanitized, err := uc.sanitize(name)
	if err != nil {
		return nil, err
	}

	tag, result, err := uc.tagRepo.GetOrCreate(ctx, userID, sanitized)
	if err != nil {
		return nil, err
	}
	if result == domain.AlreadyExists {
		return nil, domain.ErrTagNameConflict
	}

	return tag, nil
}

// Get returns one tag owned by the caller.
func (uc *TagUsecase) Get(ctx context.Context, userID, tagID uuid.UUID) (*domain.UserTag, error) {
	return uc.tagRepo.GetByID(ctx, userID, tagID)
}

// List pages the caller's tags with article counts.
func (uc *TagUsecase) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.UserTag, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.tagRepo.ListByUser(ctx, userID, limit, offset)
}

// Rename changes a tag's name after sanitization.
func (uc *TagUsecase) Rename(ctx context.Context, userID, tagID uuid.UUID, name string) (*domain.UserTag, error) {
	sanitized, err := uc.sanitize(name)
	if err != nil {
		return nil, err
	}
	return uc.tagRepo.Rename(ctx, userID, tagID, sanitized)
}

// Delete removes a tag and all its article links.
func (uc *TagUsecase) Delete(ctx context.Context, userID, tagID uuid.UUID) error {
	return uc.tagRepo.Delete(ctx, userID, tagID)
}
