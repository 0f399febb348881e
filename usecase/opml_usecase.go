package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"lector/config"
	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
	"lector/utils/opml"
)

// OpmlUsecase handles OPML subscription-list import and export: upload
// validation, the background import walk, batch rollback, and export
// rendering with expiring downloads.
type OpmlUsecase struct {
	opmlRepo      port.OpmlRepository
	folderRepo    port.FolderRepository
	subRepo       port.SubscriptionRepository
	feeds         *FeedUsecase
	subscriptions *SubscriptionUsecase
	folders       *FolderUsecase
	jobs          *JobUsecase
	blobs         port.BlobStore
	cfg           config.StorageConfig
	logger        *slog.Logger
}

func NewOpmlUsecase(
	opmlRepo port.OpmlRepository,
	folderRepo port.FolderRepository,
	subRepo port.SubscriptionRepository,
	feeds *FeedUsecase,
	subscriptions *SubscriptionUsecase,
	folders *FolderUsecase,
	jobs *JobUsecase,
	blobs port.BlobStore,
	cfg config.StorageConfig,
	logger *slog.Logger,
) *OpmlUsecase {
	return &OpmlUsecase{
		opmlRepo:      opmlRepo,
		folderRepo:    folderRepo,
		subRepo:       subRepo,
		feeds:         feeds,
		subscriptions: subscriptions,
		folders:       folders,
		jobs:          jobs,
		blobs:         blobs,
		cfg:           cfg,
		logger:        logger.With("component", "opml_usecase"),
	}
}

// sanitizeFilename keeps only the base name and rejects anything that
// could escape the per-user blob prefix.
func sanitizeFilename(filename string) (string, error) {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "" || base == "." || base == ".." || strings.Contains(base, "..") {
		return "", apperrors.NewValidationContextError(
			"invalid filename",
			"usecase", "opml_usecase", "sanitize_filename", nil)
	}
	return base, nil
}

// Upload validates an OPML file, stores it, records a pending import and
// queues the background walk.
func (uc *OpmlUsecase) Upload(ctx context.Context, userID uuid.UUID, filename string, content []byte) (*domain.OpmlImport, error) {
	base, err := sanitizeFilename(filename)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(base)
	if !strings.HasSuffix(lower, ".opml") && !strings.HasSuffix(lower, ".xml") {
		return nil, apperrors.NewValidationContextError(
			"file must have an .opml or .xml extension",
			"usecase", "opml_usecase", "upload", map[string]interface{}{
				"filename": base,
			})
	}

	if int64(len(content)) > uc.cfg.OPMLMaxFileSize {
		return nil, apperrors.NewValidationContextError(
			"file exceeds the size limit",
			"usecase", "opml_usecase", "upload", map[string]interface{}{
				"max_bytes": uc.cfg.OPMLMaxFileSize,
			})
	}

	// Full parse up front so broken files fail the upload, not the job.
	if _, err := opml.Parse(content); err != nil {
		return nil, apperrors.NewValidationContextError(
			err.Error(),
			"usecase", "opml_usecase", "upload", nil)
	}

	importID := uuid.New()
	storageKey := fmt.Sprintf("users/%s/imports/%s-%s.opml",
		userID, strings.TrimSuffix(lower, path.Ext(lower)), importID)

	if err := uc.blobs.Save(ctx, storageKey, strings.NewReader(string(content))); err != nil {
		return nil, err
	}

	record := &domain.OpmlImport{
		ID:         importID,
		UserID:     userID,
		Filename:   base,
		StorageKey: storageKey,
		Status:     domain.ImportPending,
		CreatedAt:  time.Now(),
	}
	if err := uc.opmlRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if _, err := uc.jobs.Publish(ctx, domain.JobOpmlImport, map[string]string{
		"user_id":   userID.String(),
		"import_id": importID.String(),
	}); err != nil {
		return nil, err
	}

	return record, nil
}

// RunImport executes the queued import: walk the stored document,
// creating folders along the outline structure and subscribing to every
// feed outline. Per-feed failures are logged in the batch record and
// never abort the walk.
func (uc *OpmlUsecase) RunImport(ctx context.Context, userID, importID uuid.UUID) error {
	record, err := uc.opmlRepo.GetByID(ctx, userID, importID)
	if err != nil {
		return err
	}

	record.Status = domain.ImportProcessing
	if err := uc.opmlRepo.Update(ctx, record); err != nil {
		return err
	}

	doc, err := uc.loadDocument(ctx, record.StorageKey)
	if err != nil {
		return uc.failImport(ctx, record, err)
	}

	folderCache, err := uc.loadFolderCache(ctx, userID)
	if err != nil {
		return uc.failImport(ctx, record, err)
	}

	walker := &importWalker{uc: uc, userID: userID, importID: importID, record: record, folders: folderCache}
	walker.walk(ctx, doc.Outlines, nil)

	now := time.Now()
	record.Status = domain.ImportCompleted
	record.CompletedAt = &now
	if err := uc.opmlRepo.Update(ctx, record); err != nil {
		return err
	}

	uc.logger.Info("opml import finished",
		"import_id", importID,
		"total", record.Total,
		"imported", record.Imported,
		"duplicate", record.Duplicate,
		"failed", record.Failed)
	return nil
}

func (uc *OpmlUsecase) loadDocument(ctx context.Context, storageKey string) (*opml.Document, error) {
	reader, _, err := uc.blobs.Open(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, uc.cfg.OPMLMaxFileSize+1))
	if err != nil {
		return nil, err
	}
	return opml.Parse(raw)
}

func (uc *OpmlUsecase) failImport(ctx context.Context, record *domain.OpmlImport, cause error) error {
	now := time.Now()
	record.Status = domain.ImportFailed
	record.CompletedAt = &now
	if err := uc.opmlRepo.Update(ctx, record); err != nil {
		uc.logger.Error("failed to mark import failed", "import_id", record.ID, "error", err)
	}
	return cause
}

// folderKey identifies a folder by parent and case-folded name, matching
// the sibling uniqueness constraint.
func folderKey(parentID *uuid.UUID, name string) string {
	parent := ""
	if parentID != nil {
		parent = parentID.String()
	}
	return parent + "/" + strings.ToLower(name)
}

func (uc *OpmlUsecase) loadFolderCache(ctx context.Context, userID uuid.UUID) (map[string]uuid.UUID, error) {
	existing, err := uc.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cache := make(map[string]uuid.UUID, len(existing))
	for _, folder := range existing {
		cache[folderKey(folder.ParentID, folder.Name)] = folder.ID
	}
	return cache, nil
}

// importWalker carries the per-import state through the outline recursion.
type importWalker struct {
	uc       *OpmlUsecase
	userID   uuid.UUID
	importID uuid.UUID
	record   *domain.OpmlImport
	folders  map[string]uuid.UUID
}

func (w *importWalker) walk(ctx context.Context, outlines []opml.Outline, parentID *uuid.UUID) {
	for i := range outlines {
		outline := &outlines[i]

		if outline.IsFeed() {
			w.importFeed(ctx, outline, parentID)
			continue
		}

		folderID := w.ensureFolder(ctx, outline.Name(), parentID)
		// Folder creation failures flatten the subtree into the parent.
		w.walk(ctx, outline.Children, folderID)
	}
}

func (w *importWalker) ensureFolder(ctx context.Context, name string, parentID *uuid.UUID) *uuid.UUID {
	if name == "" {
		return parentID
	}

	key := folderKey(parentID, name)
	if id, ok := w.folders[key]; ok {
		return &id
	}

	folder, err := w.uc.folders.Create(ctx, w.userID, name, parentID)
	if err != nil {
		w.uc.logger.Warn("could not create folder from outline, using parent",
			"import_id", w.importID, "folder", name, "error", err)
		return parentID
	}

	w.folders[folderKey(parentID, folder.Name)] = folder.ID
	return &folder.ID
}

func (w *importWalker) importFeed(ctx context.Context, outline *opml.Outline, folderID *uuid.UUID) {
	w.record.Total++

	feed, err := w.uc.feeds.CreateFeed(ctx, outline.XMLURL)
	if err != nil {
		w.fail(outline.XMLURL, err)
		return
	}

	sub, err := w.uc.subscriptions.Subscribe(ctx, w.userID, feed.ID, folderID, &w.importID)
	if err != nil {
		w.fail(outline.XMLURL, err)
		return
	}

	// A subscription from before this batch carries no import id.
	if sub.ImportID == nil || *sub.ImportID != w.importID {
		w.record.Duplicate++
		return
	}

	w.record.Imported++
	if title := outline.Name(); title != "" && title != feed.Title {
		override := title
		sub.Title = &override
		if err := w.uc.subRepo.Update(ctx, sub); err != nil {
			w.uc.logger.Warn("could not apply outline title override",
				"import_id", w.importID, "url", outline.XMLURL, "error", err)
		}
	}
}

func (w *importWalker) fail(url string, err error) {
	w.record.Failed++
	w.record.FailedFeedsLog = append(w.record.FailedFeedsLog, domain.FailedFeed{
		URL:    url,
		Reason: err.Error(),
	})
}

// Status returns one import batch record.
func (uc *OpmlUsecase) Status(ctx context.Context, userID, importID uuid.UUID) (*domain.OpmlImport, error) {
	return uc.opmlRepo.GetByID(ctx, userID, importID)
}

// ListImports returns the caller's recent import batches.
func (uc *OpmlUsecase) ListImports(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.OpmlImport, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.opmlRepo.ListByUser(ctx, userID, limit)
}

// Rollback removes every subscription the batch created, with full
// projection cleanup.
func (uc *OpmlUsecase) Rollback(ctx context.Context, userID, importID uuid.UUID) (int64, error) {
	if _, err := uc.opmlRepo.GetByID(ctx, userID, importID); err != nil {
		return 0, err
	}
	return uc.subscriptions.RollbackImport(ctx, userID, importID)
}

// RequestExport queues an export job for the caller.
func (uc *OpmlUsecase) RequestExport(ctx context.Context, userID uuid.UUID) (*domain.JobRecord, error) {
	return uc.jobs.Publish(ctx, domain.JobOpmlExport, map[string]string{
		"user_id": userID.String(),
	})
}

func exportKey(userID uuid.UUID) string {
	return fmt.Sprintf("users/%s/exports/subscriptions.opml", userID)
}

// RunExport renders the caller's subscription tree as OPML 2.0 and
// stores it at a stable per-user key for later download.
func (uc *OpmlUsecase) RunExport(ctx context.Context, userID uuid.UUID) error {
	tree, err := uc.folderRepo.Tree(ctx, userID)
	if err != nil {
		return err
	}

	all, _, err := uc.subRepo.ListByUser(ctx, userID, nil, "alphabetical", opml.MaxOutlines, 0)
	if err != nil {
		return err
	}

	// Foldered subscriptions render inside their folder outline.
	var loose []*domain.SubscriptionView
	for _, sub := range all {
		if sub.FolderID == nil {
			loose = append(loose, sub)
		}
	}

	looseFeeds := exportFeeds(loose)
	folders := make([]opml.ExportFolder, 0, len(tree))
	for _, node := range tree {
		folders = append(folders, exportFolder(node))
	}

	raw, err := opml.Render("lector subscriptions", looseFeeds, folders, time.Now())
	if err != nil {
		return err
	}

	if err := uc.blobs.Save(ctx, exportKey(userID), strings.NewReader(string(raw))); err != nil {
		return err
	}

	uc.logger.Info("opml export written", "user_id", userID, "bytes", len(raw))
	return nil
}

func exportFeeds(subs []*domain.SubscriptionView) []opml.ExportFeed {
	feeds := make([]opml.ExportFeed, 0, len(subs))
	for _, sub := range subs {
		feed := opml.ExportFeed{
			Title:   sub.DisplayTitle(),
			FeedURL: sub.FeedURL,
		}
		if sub.SiteURL != nil {
			feed.SiteURL = *sub.SiteURL
		}
		feeds = append(feeds, feed)
	}
	return feeds
}

func exportFolder(node *domain.FolderNode) opml.ExportFolder {
	folder := opml.ExportFolder{
		Name:  node.Name,
		Feeds: exportFeeds(node.Subscriptions),
	}
	for _, child := range node.Children {
		folder.Children = append(folder.Children, exportFolder(child))
	}
	return folder
}

// Download streams the stored export. Exports older than the expiry
// window are gone; callers surface that as 410.
func (uc *OpmlUsecase) Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	reader, modTime, err := uc.blobs.Open(ctx, exportKey(userID))
	if err != nil {
		return nil, domain.ErrExportExpired
	}

	expiry := time.Duration(uc.cfg.OPMLExpiryHours) * time.Hour
	if time.Since(modTime) > expiry {
		reader.Close()
		if err := uc.blobs.Delete(ctx, exportKey(userID)); err != nil && !errors.Is(err, context.Canceled) {
			uc.logger.Warn("could not delete expired export", "user_id", userID, "error", err)
		}
		return nil, domain.ErrExportExpired
	}

	return reader, nil
}
