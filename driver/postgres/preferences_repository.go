package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"lector/domain"

	"github.com/google/uuid"
)

// PreferencesRepository implements port.PreferencesRepository. A user
// without a row reads back the documented defaults.
type PreferencesRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPreferencesRepository(db DBTX, logger *slog.Logger) *PreferencesRepository {
	return &PreferencesRepository{
		db:     db,
		logger: logger.With("component", "preferences_repository"),
	}
}

func (r *PreferencesRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	query := `
		SELECT user_id, theme, show_article_thumbnails, app_layout, article_layout,
		       font_spacing, font_size, feed_sort_order, show_feed_favicons,
		       date_format, time_format, language, auto_mark_as_read,
		       estimated_reading_time, show_summaries
		FROM personalization.user_preferences
		WHERE user_id = $1`

	var p domain.Preferences
	err := querier(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Theme, &p.ShowArticleThumbnails, &p.AppLayout, &p.ArticleLayout,
		&p.FontSpacing, &p.FontSize, &p.FeedSortOrder, &p.ShowFeedFavicons,
		&p.DateFormat, &p.TimeFormat, &p.Language, &p.AutoMarkAsRead,
		&p.EstimatedReadingTime, &p.ShowSummaries)
	if err != nil {
		if IsNoRows(err) {
			return domain.DefaultPreferences(userID), nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return &p, nil
}

func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *domain.Preferences) error {
	query := `
		INSERT INTO personalization.user_preferences
			(user_id, theme, show_article_thumbnails, app_layout, article_layout,
			 font_spacing, font_size, feed_sort_order, show_feed_favicons,
			 date_format, time_format, language, auto_mark_as_read,
			 estimated_reading_time, show_summaries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = EXCLUDED.theme,
			show_article_thumbnails = EXCLUDED.show_article_thumbnails,
			app_layout = EXCLUDED.app_layout,
			article_layout = EXCLUDED.article_layout,
			font_spacing = EXCLUDED.font_spacing,
			font_size = EXCLUDED.font_size,
			feed_sort_order = EXCLUDED.feed_sort_order,
			show_feed_favicons = EXCLUDED.show_feed_favicons,
			date_format = EXCLUDED.date_format,
			time_format = EXCLUDED.time_format,
			language = EXCLUDED.language,
			auto_mark_as_read = EXCLUDED.auto_mark_as_read,
			estimated_reading_time = EXCLUDED.estimated_reading_time,
			show_summaries = EXCLUDED.show_summaries`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		prefs.UserID, prefs.Theme, prefs.ShowArticleThumbnails, prefs.AppLayout,
		prefs.ArticleLayout, prefs.FontSpacing, prefs.FontSize, prefs.FeedSortOrder,
		prefs.ShowFeedFavicons, prefs.DateFormat, prefs.TimeFormat, prefs.Language,
		prefs.AutoMarkAsRead, prefs.EstimatedReadingTime, prefs.ShowSummaries)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}
