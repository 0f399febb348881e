package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lector/config"
	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
)

// FolderUsecase manages the per-user folder tree under the depth, fan-out
// and naming limits.
type FolderUsecase struct {
	folderRepo port.FolderRepository
	txManager  port.TxManager
	cfg        config.FolderConfig
	logger     *slog.Logger
}

func NewFolderUsecase(folderRepo port.FolderRepository, txManager port.TxManager, cfg config.FolderConfig, logger *slog.Logger) *FolderUsecase {
	return &FolderUsecase{
		folderRepo: folderRepo,
		txManager:  txManager,
		cfg:        cfg,
		logger:     logger.With("component", "folder_usecase"),
	}
}

func (uc *FolderUsecase) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > uc.cfg.MaxNameLength {
		return "", apperrors.NewValidationContextError(
			"folder name must be 1..max characters",
			"usecase", "folder_usecase", "validate_name", map[string]interface{}{
				"max": uc.cfg.MaxNameLength,
			})
	}
	return name, nil
}

// resolveDepth computes the depth a folder would have under parentID and
// enforces the depth and per-parent limits.
func (uc *FolderUsecase) resolveDepth(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) (int, error) {
	depth := 1
	if parentID != nil {
		parent, err := uc.folderRepo.GetByID(ctx, userID, *parentID)
		if err != nil {
			return 0, err
		}
		depth = parent.Depth + 1
	}

	if depth > uc.cfg.MaxDepth {
		return 0, domain.ErrFolderDepthLimit
	}

	children, err := uc.folderRepo.CountChildren(ctx, userID, parentID)
	if err != nil {
		return 0, err
	}
	if children >= uc.cfg.MaxPerParent {
		return 0, domain.ErrFolderChildLimit
	}

	return depth, nil
}

// Create adds a folder under parentID (root when nil).
func (uc *FolderUsecase) Create(ctx context.Context, userID uuid.UUID, name string, parentID *uuid.UUID) (*domain.Folder, error) {
	name, err := uc.validateName(name)
	if err != nil {
		return nil, err
	}

	depth, err := uc.resolveDepth(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &domain.Folder{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		ParentID:  parentID,
		Depth:     depth,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Get returns one folder owned by the caller.
func (uc *FolderUsecase) Get(ctx context.Context, userID, folderID uuid.UUID) (*domain.Folder, error) {
	return uc.folderRepo.GetByID(ctx, userID, folderID)
}

// List returns the caller's folders as a flat list.
func (uc *FolderUsecase) List(ctx context.Context, userID uuid.UUID) ([]*domain.Folder, error) {
	return uc.folderRepo.ListByUser(ctx, userID)
}

// Tree returns the folder hierarchy with unread rollups.
func (uc *FolderUsecase) Tree(ctx context.Context, userID uuid.UUID) ([]*domain.FolderNode, error) {
	return uc.folderRepo.Tree(ctx, userID)
}

// FolderUpdate carries the mutable folder attributes; nil fields stay
// untouched. MoveToRoot relocates the folder to the top level.
type FolderUpdate struct {
	Name       *string
	ParentID   *uuid.UUID
	MoveToRoot bool
	IsPinned   *bool
}

// Update renames, moves or pins a folder. Moves reject cycles, re-check
// the depth and fan-out limits at the destination for the whole subtree,
// and rewrite descendant depths in the same transaction.
func (uc *FolderUsecase) Update(ctx context.Context, userID, folderID uuid.UUID, update FolderUpdate) (*domain.Folder, error) {
	folder, err := uc.folderRepo.GetByID(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name, err := uc.validateName(*update.Name)
		if err != nil {
			return nil, err
		}
		folder.Name = name
	}

	depthDelta := 0
	moving := update.MoveToRoot || update.ParentID != nil
	if moving {
		var newParent *uuid.UUID
		if !update.MoveToRoot {
			newParent = update.ParentID

			if *newParent == folderID {
				return nil, domain.ErrFolderCycle
			}
			descendant, err := uc.folderRepo.IsDescendant(ctx, userID, folderID, *newParent)
			if err != nil {
				return nil, err
			}
			if descendant {
				return nil, domain.ErrFolderCycle
			}
		}

		depth, err := uc.resolveDepth(ctx, userID, newParent)
		if err != nil {
			return nil, err
		}

		// The deepest descendant must also land within the limit.
		deepest, err := uc.folderRepo.MaxSubtreeDepth(ctx, userID, folderID)
		if err != nil {
			return nil, err
		}
		if depth+(deepest-folder.Depth) > uc.cfg.MaxDepth {
			return nil, domain.ErrFolderDepthLimit
		}

		depthDelta = depth - folder.Depth
		folder.ParentID = newParent
		folder.Depth = depth
	}

	if update.IsPinned != nil {
		folder.IsPinned = *update.IsPinned
	}

	folder.UpdatedAt = time.Now()

	if !moving || depthDelta == 0 {
		if err := uc.folderRepo.Update(ctx, folder); err != nil {
			return nil, err
		}
		return folder, nil
	}

	// The folder row and its descendants' depth columns change together.
	err = uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := uc.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		return uc.folderRepo.ShiftSubtreeDepth(txCtx, userID, folderID, depthDelta)
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// Delete removes a folder and, by cascade, its subtree. Member
// subscriptions fall back to the root.
func (uc *FolderUsecase) Delete(ctx context.Context, userID, folderID uuid.UUID) error {
	if _, err := uc.folderRepo.GetByID(ctx, userID, folderID); err != nil {
		return err
	}
	return uc.folderRepo.Delete(ctx, userID, folderID)
}
