package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/domain"
	"lector/mocks"
)

func newSearchUsecaseForTest(t *testing.T) (*SearchUsecase, *mocks.MockSearchRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSearchRepository(ctrl)
	return NewSearchUsecase(repo, testLogger()), repo
}

func hit(searchType domain.SearchType, title string, score float64) domain.SearchHit {
	return domain.SearchHit{Type: searchType, ID: uuid.New(), Title: title, Score: score}
}

func page(hits ...domain.SearchHit) *domain.SearchPage {
	return &domain.SearchPage{Hits: hits, Total: len(hits)}
}

func TestSearchUsecase_UniversalWeightsAcrossTypes(t *testing.T) {
	uc, repo := newSearchUsecaseForTest(t)
	userID := uuid.New()

	// One hit per type normalizes each score to 1, so ordering follows
	// the type weights alone: feed > article > folder > tag.
	repo.EXPECT().SearchFeeds(gomock.Any(), userID, "go", 10, 0).
		Return(page(hit(domain.SearchTypeFeed, "Go Blog", 0.2)), nil)
	repo.EXPECT().SearchArticles(gomock.Any(), userID, "go", 10, 0).
		Return(page(hit(domain.SearchTypeArticle, "Go 1.26 released", 0.9)), nil)
	repo.EXPECT().SearchFolders(gomock.Any(), userID, "go", 10, 0).
		Return(page(hit(domain.SearchTypeFolder, "Go stuff", 0.5)), nil)
	repo.EXPECT().SearchTags(gomock.Any(), userID, "go", 10, 0).
		Return(page(hit(domain.SearchTypeTag, "golang", 0.99)), nil)

	results, err := uc.Universal(context.Background(), userID, "go")
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, domain.SearchTypeFeed, results[0].Type)
	assert.Equal(t, domain.SearchTypeArticle, results[1].Type)
	assert.Equal(t, domain.SearchTypeFolder, results[2].Type)
	assert.Equal(t, domain.SearchTypeTag, results[3].Type)
}

func TestSearchUsecase_UniversalFailingTypeIsDropped(t *testing.T) {
	uc, repo := newSearchUsecaseForTest(t)
	userID := uuid.New()

	repo.EXPECT().SearchFeeds(gomock.Any(), userID, "go", 10, 0).
		Return(nil, errors.New("index unavailable"))
	repo.EXPECT().SearchArticles(gomock.Any(), userID, "go", 10, 0).
		Return(page(hit(domain.SearchTypeArticle, "Go article", 0.5)), nil)
	repo.EXPECT().SearchFolders(gomock.Any(), userID, "go", 10, 0).Return(page(), nil)
	repo.EXPECT().SearchTags(gomock.Any(), userID, "go", 10, 0).Return(page(), nil)

	results, err := uc.Universal(context.Background(), userID, "go")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.SearchTypeArticle, results[0].Type)
}

func TestSearchUsecase_UniversalCapsResults(t *testing.T) {
	uc, repo := newSearchUsecaseForTest(t)
	userID := uuid.New()

	many := make([]domain.SearchHit, 10)
	for i := range many {
		many[i] = hit(domain.SearchTypeArticle, "a", float64(i))
	}
	feeds := make([]domain.SearchHit, 10)
	for i := range feeds {
		feeds[i] = hit(domain.SearchTypeFeed, "f", float64(i))
	}
	folders := make([]domain.SearchHit, 5)
	for i := range folders {
		folders[i] = hit(domain.SearchTypeFolder, "d", float64(i))
	}

	repo.EXPECT().SearchArticles(gomock.Any(), userID, "x", 10, 0).Return(&domain.SearchPage{Hits: many}, nil)
	repo.EXPECT().SearchFeeds(gomock.Any(), userID, "x", 10, 0).Return(&domain.SearchPage{Hits: feeds}, nil)
	repo.EXPECT().SearchFolders(gomock.Any(), userID, "x", 10, 0).Return(&domain.SearchPage{Hits: folders}, nil)
	repo.EXPECT().SearchTags(gomock.Any(), userID, "x", 10, 0).Return(page(), nil)

	results, err := uc.Universal(context.Background(), userID, "x")
	require.NoError(t, err)
	assert.Len(t, results, 20)
}

func TestSearchUsecase_SearchTypeDispatch(t *testing.T) {
	uc, repo := newSearchUsecaseForTest(t)
	userID := uuid.New()

	repo.EXPECT().SearchTags(gomock.Any(), userID, "news", 20, 0).Return(page(), nil)

	_, err := uc.SearchType(context.Background(), userID, domain.SearchTypeTag, "news", 0, 0)
	require.NoError(t, err)

	_, err = uc.SearchType(context.Background(), userID, "bogus", "news", 0, 0)
	assert.Error(t, err)
}

func TestSearchUsecase_QueryValidation(t *testing.T) {
	uc, _ := newSearchUsecaseForTest(t)

	_, err := uc.Universal(context.Background(), uuid.New(), "   ")
	assert.Error(t, err)

	_, err = uc.Universal(context.Background(), uuid.New(), strings.Repeat("q", 201))
	assert.Error(t, err)
}

func TestNormalizeScores(t *testing.T) {
	hits := []domain.SearchHit{
		{Score: 2}, {Score: 4}, {Score: 6},
	}
	normalized := normalizeScores(hits)
	assert.Equal(t, 0.0, normalized[0].Score)
	assert.Equal(t, 0.5, normalized[1].Score)
	assert.Equal(t, 1.0, normalized[2].Score)

	flat := normalizeScores([]domain.SearchHit{{Score: 3}, {Score: 3}})
	assert.Equal(t, 1.0, flat[0].Score)
	assert.Equal(t, 1.0, flat[1].Score)
}
