package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"lector/domain"

	"github.com/google/uuid"
)

// OpmlRepository implements port.OpmlRepository. The per-feed failure log
// is stored as JSONB.
type OpmlRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewOpmlRepository(db DBTX, logger *slog.Logger) *OpmlRepository {
	return &OpmlRepository{
		db:     db,
		logger: logger.With("component", "opml_repository"),
	}
}

const opmlColumns = `id, user_id, filename, storage_key, status, total,
	imported, failed, duplicate, failed_feeds_log, created_at, completed_at`

func (r *OpmlRepository) Create(ctx context.Context, imp *domain.OpmlImport) error {
	failedLog, err := json.Marshal(imp.FailedFeedsLog)
	if err != nil {
		return fmt.Errorf("failed to encode failure log: %w", err)
	}

	query := `
		INSERT INTO personalization.opml_imports
			(id, user_id, filename, storage_key, status, total, imported,
			 failed, duplicate, failed_feeds_log, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = querier(ctx, r.db).Exec(ctx, query,
		imp.ID, imp.UserID, imp.Filename, imp.StorageKey, imp.Status,
		imp.Total, imp.Imported, imp.Failed, imp.Duplicate, failedLog,
		imp.CreatedAt, imp.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create opml import: %w", err)
	}

	return nil
}

func (r *OpmlRepository) GetByID(ctx context.Context, userID, importID uuid.UUID) (*domain.OpmlImport, error) {
	query := `
		SELECT ` + opmlColumns + `
		FROM personalization.opml_imports
		WHERE id = $1 AND user_id = $2`

	var imp domain.OpmlImport
	var failedLog []byte
	err := querier(ctx, r.db).QueryRow(ctx, query, importID, userID).Scan(
		&imp.ID, &imp.UserID, &imp.Filename, &imp.StorageKey, &imp.Status,
		&imp.Total, &imp.Imported, &imp.Failed, &imp.Duplicate, &failedLog,
		&imp.CreatedAt, &imp.CompletedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrImportNotFound
		}
		return nil, fmt.Errorf("failed to get opml import: %w", err)
	}

	if len(failedLog) > 0 {
		if err := json.Unmarshal(failedLog, &imp.FailedFeedsLog); err != nil {
			return nil, fmt.Errorf("failed to decode failure log: %w", err)
		}
	}

	return &imp, nil
}

func (r *OpmlRepository) Update(ctx context.Context, imp *domain.OpmlImport) error {
	failedLog, err := json.Marshal(imp.FailedFeedsLog)
	if err != nil {
		return fmt.Errorf("failed to encode failure log: %w", err)
	}

	query := `
		UPDATE personalization.opml_imports
		SET status = $3, total = $4, imported = $5, failed = $6,
		    duplicate = $7, failed_feeds_log = $8, completed_at = $9
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query,
		imp.ID, imp.UserID, imp.Status, imp.Total, imp.Imported,
		imp.Failed, imp.Duplicate, failedLog, imp.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update opml import: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrImportNotFound
	}

	return nil
}

func (r *OpmlRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.OpmlImport, error) {
	query := `
		SELECT ` + opmlColumns + `
		FROM personalization.opml_imports
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list opml imports: %w", err)
	}
	defer rows.Close()

	var imports []*domain.OpmlImport
	for rows.Next() {
		var imp domain.OpmlImport
		var failedLog []byte
		if err := rows.Scan(
			&imp.ID, &imp.UserID, &imp.Filename, &imp.StorageKey, &imp.Status,
			&imp.Total, &imp.Imported, &imp.Failed, &imp.Duplicate, &failedLog,
			&imp.CreatedAt, &imp.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan opml import: %w", err)
		}
		if len(failedLog) > 0 {
			if err := json.Unmarshal(failedLog, &imp.FailedFeedsLog); err != nil {
				return nil, fmt.Errorf("failed to decode failure log: %w", err)
			}
		}
		imports = append(imports, &imp)
	}

	return imports, rows.Err()
}
