package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"lector/domain"

	"github.com/google/uuid"
)

// FolderRepository implements port.FolderRepository. The tree query is one
// recursive CTE that also rolls up unread counts.
type FolderRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewFolderRepository(db DBTX, logger *slog.Logger) *FolderRepository {
	return &FolderRepository{
		db:     db,
		logger: logger.With("component", "folder_repository"),
	}
}

const folderColumns = `id, user_id, name, parent_id, depth, is_pinned, created_at, updated_at`

func (r *FolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	query := `
		INSERT INTO personalization.folders
			(id, user_id, name, parent_id, depth, is_pinned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		folder.ID, folder.UserID, folder.Name, folder.ParentID, folder.Depth,
		folder.IsPinned, folder.CreatedAt, folder.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrFolderNameConflict
		}
		return fmt.Errorf("failed to create folder: %w", err)
	}

	return nil
}

func (r *FolderRepository) GetByID(ctx context.Context, userID, folderID uuid.UUID) (*domain.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM personalization.folders
		WHERE id = $1 AND user_id = $2`

	var f domain.Folder
	err := querier(ctx, r.db).QueryRow(ctx, query, folderID, userID).Scan(
		&f.ID, &f.UserID, &f.Name, &f.ParentID, &f.Depth, &f.IsPinned, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	return &f, nil
}

func (r *FolderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM personalization.folders
		WHERE user_id = $1
		ORDER BY depth ASC, lower(name) ASC`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []*domain.Folder
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.ParentID, &f.Depth,
			&f.IsPinned, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, &f)
	}

	return folders, rows.Err()
}

func (r *FolderRepository) CountChildren(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) (int, error) {
	var count int
	var err error

	if parentID == nil {
		query := `
			SELECT COUNT(*) FROM personalization.folders
			WHERE user_id = $1 AND parent_id IS NULL`
		err = querier(ctx, r.db).QueryRow(ctx, query, userID).Scan(&count)
	} else {
		query := `
			SELECT COUNT(*) FROM personalization.folders
			WHERE user_id = $1 AND parent_id = $2`
		err = querier(ctx, r.db).QueryRow(ctx, query, userID, *parentID).Scan(&count)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}

	return count, nil
}

// IsDescendant walks down from ancestor and reports whether candidate
// appears in the subtree. Folder moves use it to reject cycles.
func (r *FolderRepository) IsDescendant(ctx context.Context, userID, ancestorID, candidateID uuid.UUID) (bool, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM personalization.folders
			WHERE parent_id = $2 AND user_id = $1
			UNION ALL
			SELECT f.id FROM personalization.folders f
			JOIN subtree st ON f.parent_id = st.id
		)
		SELECT EXISTS (SELECT 1 FROM subtree WHERE id = $3)`

	var descendant bool
	if err := querier(ctx, r.db).QueryRow(ctx, query, userID, ancestorID, candidateID).Scan(&descendant); err != nil {
		return false, fmt.Errorf("failed to check descendancy: %w", err)
	}

	return descendant, nil
}

// MaxSubtreeDepth reports the deepest depth in the folder's subtree,
// counting the folder itself. Moves use it to keep relocated subtrees
// inside the depth limit.
func (r *FolderRepository) MaxSubtreeDepth(ctx context.Context, userID, folderID uuid.UUID) (int, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id, depth FROM personalization.folders
			WHERE id = $2 AND user_id = $1
			UNION ALL
			SELECT f.id, f.depth FROM personalization.folders f
			JOIN subtree st ON f.parent_id = st.id
		)
		SELECT COALESCE(MAX(depth), 0) FROM subtree`

	var deepest int
	if err := querier(ctx, r.db).QueryRow(ctx, query, userID, folderID).Scan(&deepest); err != nil {
		return 0, fmt.Errorf("failed to measure subtree depth: %w", err)
	}

	return deepest, nil
}

// ShiftSubtreeDepth rewrites the stored depth of every descendant after a
// move. The moved folder's own row is updated separately.
func (r *FolderRepository) ShiftSubtreeDepth(ctx context.Context, userID, folderID uuid.UUID, delta int) error {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM personalization.folders
			WHERE parent_id = $2 AND user_id = $1
			UNION ALL
			SELECT f.id FROM personalization.folders f
			JOIN subtree st ON f.parent_id = st.id
		)
		UPDATE personalization.folders
		SET depth = depth + $3, updated_at = now()
		WHERE id IN (SELECT id FROM subtree)`

	if _, err := querier(ctx, r.db).Exec(ctx, query, userID, folderID, delta); err != nil {
		return fmt.Errorf("failed to shift subtree depth: %w", err)
	}

	return nil
}

func (r *FolderRepository) Update(ctx context.Context, folder *domain.Folder) error {
	query := `
		UPDATE personalization.folders
		SET name = $3, parent_id = $4, depth = $5, is_pinned = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query,
		folder.ID, folder.UserID, folder.Name, folder.ParentID, folder.Depth, folder.IsPinned)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrFolderNameConflict
		}
		return fmt.Errorf("failed to update folder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFolderNotFound
	}

	return nil
}

func (r *FolderRepository) Delete(ctx context.Context, userID, folderID uuid.UUID) error {
	query := `
		DELETE FROM personalization.folders
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, folderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFolderNotFound
	}

	return nil
}

// Tree returns the folder hierarchy with per-subtree unread rollups in one
// recursive CTE, assembled in memory into nested nodes.
func (r *FolderRepository) Tree(ctx context.Context, userID uuid.UUID) ([]*domain.FolderNode, error) {
	query := `
		WITH RECURSIVE tree AS (
			SELECT ` + folderColumns + `
			FROM personalization.folders
			WHERE user_id = $1 AND parent_id IS NULL
			UNION ALL
			SELECT f.id, f.user_id, f.name, f.parent_id, f.depth, f.is_pinned, f.created_at, f.updated_at
			FROM personalization.folders f
			JOIN tree t ON f.parent_id = t.id
		)
		SELECT t.id, t.user_id, t.name, t.parent_id, t.depth, t.is_pinned, t.created_at, t.updated_at,
		       COALESCE((
			SELECT SUM(s.unread_count)
			FROM personalization.subscriptions s
			WHERE s.folder_id = t.id AND s.user_id = t.user_id
		       ), 0) AS unread_count
		FROM tree t
		ORDER BY t.depth ASC, lower(t.name) ASC`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load folder tree: %w", err)
	}
	defer rows.Close()

	nodes := make(map[uuid.UUID]*domain.FolderNode)
	var ordered []*domain.FolderNode
	for rows.Next() {
		var node domain.FolderNode
		if err := rows.Scan(&node.ID, &node.UserID, &node.Name, &node.ParentID,
			&node.Depth, &node.IsPinned, &node.CreatedAt, &node.UpdatedAt,
			&node.UnreadCount); err != nil {
			return nil, fmt.Errorf("failed to scan folder node: %w", err)
		}
		nodes[node.ID] = &node
		ordered = append(ordered, &node)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Depth-ordered scan guarantees parents are seen before children.
	var roots []*domain.FolderNode
	for _, node := range ordered {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	// Roll unread counts up bottom-first so grandchildren reach the root.
	for i := len(ordered) - 1; i >= 0; i-- {
		node := ordered[i]
		if node.ParentID == nil {
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.UnreadCount += node.UnreadCount
		}
	}

	return roots, nil
}
