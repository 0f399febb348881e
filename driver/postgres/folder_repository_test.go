package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lector/domain"
)

func TestFolderRepository_CreateMapsNameConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFolderRepository(mock, testLogger())

	folder := &domain.Folder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      "Tech",
		Depth:     1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO personalization\.folders`).
		WithArgs(folder.ID, folder.UserID, folder.Name, folder.ParentID, folder.Depth,
			folder.IsPinned, folder.CreatedAt, folder.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.Create(context.Background(), folder)
	assert.ErrorIs(t, err, domain.ErrFolderNameConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderRepository_DeleteMissingFolder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFolderRepository(mock, testLogger())

	userID := uuid.New()
	folderID := uuid.New()

	mock.ExpectExec(`DELETE FROM personalization\.folders`).
		WithArgs(folderID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), userID, folderID)
	assert.ErrorIs(t, err, domain.ErrFolderNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderRepository_MaxSubtreeDepth(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFolderRepository(mock, testLogger())

	userID := uuid.New()
	folderID := uuid.New()

	mock.ExpectQuery(`WITH RECURSIVE subtree AS`).
		WithArgs(userID, folderID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(4))

	deepest, err := repo.MaxSubtreeDepth(context.Background(), userID, folderID)
	require.NoError(t, err)
	assert.Equal(t, 4, deepest)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderRepository_ShiftSubtreeDepth(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFolderRepository(mock, testLogger())

	userID := uuid.New()
	folderID := uuid.New()

	mock.ExpectExec(`UPDATE personalization\.folders`).
		WithArgs(userID, folderID, -2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	err = repo.ShiftSubtreeDepth(context.Background(), userID, folderID, -2)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderRepository_TreeNestsAndRollsUpUnread(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFolderRepository(mock, testLogger())

	userID := uuid.New()
	rootID := uuid.New()
	childID := uuid.New()
	grandchildID := uuid.New()
	now := time.Now()

	columns := []string{"id", "user_id", "name", "parent_id", "depth",
		"is_pinned", "created_at", "updated_at", "unread_count"}

	var noParent *uuid.UUID
	mock.ExpectQuery(`WITH RECURSIVE tree AS`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(rootID, userID, "News", noParent, 1, false, now, now, 2).
			AddRow(childID, userID, "Tech", &rootID, 2, false, now, now, 3).
			AddRow(grandchildID, userID, "Go", &childID, 3, false, now, now, 5))

	roots, err := repo.Tree(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, "News", root.Name)
	require.Len(t, root.Children, 1)
	require.Len(t, root.Children[0].Children, 1)

	// Grandchild unread reaches the root through the child.
	assert.Equal(t, 10, root.UnreadCount)
	assert.Equal(t, 8, root.Children[0].UnreadCount)
	assert.Equal(t, 5, root.Children[0].Children[0].UnreadCount)

	require.NoError(t, mock.ExpectationsWereMet())
}
