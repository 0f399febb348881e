package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/config"
	"lector/domain"
	"lector/mocks"
)

func newTagUsecaseForTest(t *testing.T) (*TagUsecase, *mocks.MockTagRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTagRepository(ctrl)
	return NewTagUsecase(repo, config.TagConfig{MaxNameLength: 64}, testLogger()), repo
}

func TestTagUsecase_CreateSanitizesName(t *testing.T) {
	uc, repo := newTagUsecaseForTest(t)
	userID := uuid.New()

	repo.EXPECT().GetOrCreate(gomock.Any(), userID, "linux kernel").
		Return(&domain.UserTag{ID: uuid.New(), Name: "linux kernel"}, domain.Created, nil)

	tag, err := uc.Create(context.Background(), userID, "  linux \t kernel ")
	require.NoError(t, err)
	assert.Equal(t, "linux kernel", tag.Name)
}

func TestTagUsecase_CreateConflictsOnExistingName(t *testing.T) {
	uc, repo := newTagUsecaseForTest(t)
	userID := uuid.New()

	repo.EXPECT().GetOrCreate(gomock.Any(), userID, "news").
		Return(&domain.UserTag{ID: uuid.New(), Name: "news"}, domain.AlreadyExists, nil)

	_, err := uc.Create(context.Background(), userID, "news")
	assert.ErrorIs(t, err, domain.ErrTagNameConflict)
}

func TestTagUsecase_CreateRejectsBadNames(t *testing.T) {
	uc, _ := newTagUsecaseForTest(t)

	_, err := uc.Create(context.Background(), uuid.New(), "\x00\x01")
	assert.Error(t, err)

	_, err = uc.Create(context.Background(), uuid.New(), strings.Repeat("a", 65))
	assert.Error(t, err)
}

func TestTagUsecase_Rename(t *testing.T) {
	uc, repo := newTagUsecaseForTest(t)
	userID := uuid.New()
	tagID := uuid.New()

	repo.EXPECT().Rename(gomock.Any(), userID, tagID, "dev").
		Return(&domain.UserTag{ID: tagID, Name: "dev"}, nil)

	tag, err := uc.Rename(context.Background(), userID, tagID, " dev ")
	require.NoError(t, err)
	assert.Equal(t, "dev", tag.Name)
}
