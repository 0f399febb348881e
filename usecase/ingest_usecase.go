package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lector/domain"
	"lector/driver/postgres"
	"lector/port"
	"lector/utils/urlutil"
)

const maxSummaryChars = 2000

// IngestUsecase turns parsed entries into global articles, article-feed
// links, and per-subscriber projection rows. All of it runs inside the
// caller's transaction.
type IngestUsecase struct {
	articleRepo     port.ArticleRepository
	userArticleRepo port.UserArticleRepository
	subRepo         port.SubscriptionRepository
	tagRepo         port.TagRepository
	maxTagLength    int
	logger          *slog.Logger
}

func NewIngestUsecase(
	articleRepo port.ArticleRepository,
	userArticleRepo port.UserArticleRepository,
	subRepo port.SubscriptionRepository,
	tagRepo port.TagRepository,
	maxTagLength int,
	logger *slog.Logger,
) *IngestUsecase {
	return &IngestUsecase{
		articleRepo:     articleRepo,
		userArticleRepo: userArticleRepo,
		subRepo:         subRepo,
		tagRepo:         tagRepo,
		maxTagLength:    maxTagLength,
		logger:          logger.With("component", "ingest_usecase"),
	}
}

// IngestResult reports what one batch produced. AllArticleIDs preserves
// the feed's own entry order for Feed.latest_articles.
type IngestResult struct {
	AllArticleIDs  []uuid.UUID
	NewArticleIDs  []uuid.UUID
	NewlyLinkedIDs []uuid.UUID
	DroppedFuture  int
}

type taggedArticle struct {
	articleID uuid.UUID
	tagNames  []string
}

// ProcessEntries runs the ingestion algorithm for one feed's parsed
// entries: partition pre-create, ordered upsert under row locks, source
// linking, subscriber fan-out, and source-tag propagation.
func (uc *IngestUsecase) ProcessEntries(ctx context.Context, feedID uuid.UUID, entries []domain.EntryRecord) (*IngestResult, error) {
	now := time.Now()

	if err := uc.ensurePartitions(ctx, entries, now); err != nil {
		return nil, err
	}

	result := &IngestResult{}
	var toTag []taggedArticle

	for _, entry := range entries {
		canonical := urlutil.NormalizeURL(entry.URL)
		if canonical == "" {
			continue
		}

		article, err := uc.articleRepo.GetByCanonicalURLForUpdate(ctx, canonical)
		switch {
		case err == nil:
			result.AllArticleIDs = append(result.AllArticleIDs, article.ID)

			linked, err := uc.articleRepo.LinkSource(ctx, article.ID, feedID)
			if err != nil {
				return nil, err
			}
			if linked == domain.Created {
				result.NewlyLinkedIDs = append(result.NewlyLinkedIDs, article.ID)
			}

		case errors.Is(err, domain.ErrArticleNotFound):
			if entry.PublishedAt != nil && entry.PublishedAt.After(now) {
				result.DroppedFuture++
				continue
			}

			article, created, err := uc.insertArticle(ctx, canonical, entry, now)
			if err != nil {
				return nil, err
			}

			result.AllArticleIDs = append(result.AllArticleIDs, article.ID)

			linked, err := uc.articleRepo.LinkSource(ctx, article.ID, feedID)
			if err != nil {
				return nil, err
			}

			if created {
				result.NewArticleIDs = append(result.NewArticleIDs, article.ID)
				if names := domain.SplitCategoryTags(entry.Categories); len(names) > 0 {
					toTag = append(toTag, taggedArticle{articleID: article.ID, tagNames: names})
				}
			} else if linked == domain.Created {
				result.NewlyLinkedIDs = append(result.NewlyLinkedIDs, article.ID)
			}

		default:
			return nil, err
		}
	}

	if len(result.NewArticleIDs) > 0 {
		if _, err := uc.userArticleRepo.FanOutToSubscribers(ctx, feedID, result.NewArticleIDs); err != nil {
			return nil, err
		}
	}
	if len(result.NewlyLinkedIDs) > 0 {
		if _, err := uc.userArticleRepo.FanOutToSubscribers(ctx, feedID, result.NewlyLinkedIDs); err != nil {
			return nil, err
		}
	}

	if len(toTag) > 0 {
		if err := uc.propagateSourceTags(ctx, feedID, toTag); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ensurePartitions pre-creates every monthly partition the batch could
// touch, plus the current and next month.
func (uc *IngestUsecase) ensurePartitions(ctx context.Context, entries []domain.EntryRecord, now time.Time) error {
	partitioned, err := uc.articleRepo.IsPartitioned(ctx)
	if err != nil {
		return err
	}
	if !partitioned {
		return nil
	}

	months := map[time.Time]struct{}{
		monthOf(now):                {},
		monthOf(now.AddDate(0, 1, 0)): {},
	}
	for _, entry := range entries {
		if entry.PublishedAt != nil {
			months[monthOf(*entry.PublishedAt)] = struct{}{}
		}
	}

	list := make([]time.Time, 0, len(months))
	for month := range months {
		list = append(list, month)
	}

	return uc.articleRepo.EnsureMonthlyPartitions(ctx, list)
}

// insertArticle creates the article row, absorbing the two expected
// races: a concurrent creator (unique violation, resolved by re-read)
// and a missing monthly partition (created, then one retry).
func (uc *IngestUsecase) insertArticle(ctx context.Context, canonical string, entry domain.EntryRecord, now time.Time) (*domain.Article, bool, error) {
	publishedAt := now
	if entry.PublishedAt != nil {
		publishedAt = *entry.PublishedAt
	}

	article := &domain.Article{
		ID:               uuid.New(),
		CanonicalURL:     canonical,
		Title:            entry.Title,
		Author:           entry.Author,
		Summary:          truncateSummary(entry.Summary),
		Content:          entry.Content,
		SourceTags:       domain.SplitCategoryTags(entry.Categories),
		MediaURL:         entry.MediaURL,
		PlatformMetadata: entry.PlatformMetadata,
		PublishedAt:      publishedAt,
		CreatedAt:        now,
	}

	err := uc.articleRepo.Insert(ctx, article)
	if err == nil {
		return article, true, nil
	}

	if postgres.IsUniqueViolation(err) {
		existing, readErr := uc.articleRepo.GetByCanonicalURL(ctx, canonical)
		if readErr != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	if postgres.IsMissingPartition(err) {
		if perr := uc.articleRepo.EnsureMonthlyPartitions(ctx, []time.Time{monthOf(publishedAt)}); perr != nil {
			return nil, false, perr
		}
		if err := uc.articleRepo.Insert(ctx, article); err != nil {
			return nil, false, err
		}
		return article, true, nil
	}

	return nil, false, err
}

// propagateSourceTags get-or-creates each source tag per active
// subscriber and links it to their projection row.
func (uc *IngestUsecase) propagateSourceTags(ctx context.Context, feedID uuid.UUID, toTag []taggedArticle) error {
	subscriberIDs, err := uc.subRepo.ActiveSubscriberIDs(ctx, feedID)
	if err != nil {
		return err
	}
	if len(subscriberIDs) == 0 {
		return nil
	}

	for _, tagged := range toTag {
		for _, userID := range subscriberIDs {
			userArticle, err := uc.userArticleRepo.Get(ctx, userID, tagged.articleID)
			if err != nil {
				uc.logger.Warn("projection row missing during tag propagation",
					"user_id", userID, "article_id", tagged.articleID, "error", err)
				continue
			}

			for _, name := range tagged.tagNames {
				sanitized, err := domain.SanitizeTagName(name, uc.maxTagLength)
				if err != nil {
					continue
				}

				tag, _, err := uc.tagRepo.GetOrCreate(ctx, userID, sanitized)
				if err != nil {
					return err
				}
				if _, err := uc.tagRepo.LinkArticle(ctx, userArticle.ID, tag.ID); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSummaryChars {
		return s
	}
	return string(runes[:maxSummaryChars])
}
