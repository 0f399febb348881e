package usecase

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/config"
	"lector/domain"
	"lector/mocks"
)

const opmlFixture = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Subscriptions</title></head>
  <body>
    <outline text="Tech">
      <outline text="Example" type="rss" xmlUrl="https://example.com/feed.xml"/>
    </outline>
    <outline text="Loose" type="rss" xmlUrl="https://loose.example.com/rss"/>
  </body>
</opml>`

type opmlMocksBundle struct {
	opml    *mocks.MockOpmlRepository
	folders *mocks.MockFolderRepository
	subs    *mocks.MockSubscriptionRepository
	blobs   *mocks.MockBlobStore
	queue   *mocks.MockJobQueue
	status  *mocks.MockJobStatusStore
}

func newOpmlUsecaseForTest(t *testing.T) (*OpmlUsecase, *opmlMocksBundle) {
	ctrl := gomock.NewController(t)
	b := &opmlMocksBundle{
		opml:    mocks.NewMockOpmlRepository(ctrl),
		folders: mocks.NewMockFolderRepository(ctrl),
		subs:    mocks.NewMockSubscriptionRepository(ctrl),
		blobs:   mocks.NewMockBlobStore(ctrl),
		queue:   mocks.NewMockJobQueue(ctrl),
		status:  mocks.NewMockJobStatusStore(ctrl),
	}

	tx := mocks.NewMockTxManager(ctrl)
	tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()

	folderUC := NewFolderUsecase(b.folders, tx, config.FolderConfig{MaxDepth: 9, MaxPerParent: 50, MaxNameLength: 16}, testLogger())
	jobUC := NewJobUsecase(b.queue, b.status, config.JobConfig{}, testLogger())
	subUC := NewSubscriptionUsecase(b.subs, mocks.NewMockFeedRepository(ctrl),
		mocks.NewMockArticleRepository(ctrl), mocks.NewMockUserArticleRepository(ctrl),
		mocks.NewMockTagRepository(ctrl), b.folders, tx, 64, testLogger())

	storage := config.StorageConfig{
		OPMLMaxFileSize: 16 << 20,
		OPMLExpiryHours: 24,
	}

	uc := NewOpmlUsecase(b.opml, b.folders, b.subs, nil, subUC, folderUC, jobUC, b.blobs, storage, testLogger())
	return uc, b
}

func TestOpmlUsecase_UploadValidatesAndQueues(t *testing.T) {
	uc, b := newOpmlUsecaseForTest(t)
	userID := uuid.New()

	b.blobs.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	b.opml.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	b.status.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	b.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any(), domain.JobOpmlImport, gomock.Any(), 0).Return(nil)

	record, err := uc.Upload(context.Background(), userID, "subscriptions.opml", []byte(opmlFixture))
	require.NoError(t, err)
	assert.Equal(t, domain.ImportPending, record.Status)
	assert.Contains(t, record.StorageKey, "users/"+userID.String()+"/imports/")
}

func TestOpmlUsecase_UploadRejections(t *testing.T) {
	uc, _ := newOpmlUsecaseForTest(t)
	userID := uuid.New()

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{name: "wrong extension", filename: "feeds.txt", content: []byte(opmlFixture)},
		{name: "path traversal in filename", filename: "../../etc/passwd.opml", content: []byte(opmlFixture)},
		{name: "not opml", filename: "feeds.opml", content: []byte("<html></html>")},
		{name: "script payload", filename: "feeds.opml", content: []byte(`<opml><head></head><body><outline text="x"/><script>alert(1)</script></body></opml>`)},
		{name: "oversize", filename: "feeds.opml", content: bytes.Repeat([]byte("a"), (16<<20)+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Upload(context.Background(), userID, tt.filename, tt.content)
			assert.Error(t, err)
		})
	}
}

func TestOpmlUsecase_DownloadExpiry(t *testing.T) {
	uc, b := newOpmlUsecaseForTest(t)
	userID := uuid.New()

	t.Run("missing export", func(t *testing.T) {
		b.blobs.EXPECT().Open(gomock.Any(), gomock.Any()).
			Return(nil, time.Time{}, io.ErrUnexpectedEOF)

		_, err := uc.Download(context.Background(), userID)
		assert.ErrorIs(t, err, domain.ErrExportExpired)
	})

	t.Run("stale export is deleted", func(t *testing.T) {
		stale := io.NopCloser(bytes.NewReader([]byte("old")))
		b.blobs.EXPECT().Open(gomock.Any(), gomock.Any()).
			Return(stale, time.Now().Add(-48*time.Hour), nil)
		b.blobs.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		_, err := uc.Download(context.Background(), userID)
		assert.ErrorIs(t, err, domain.ErrExportExpired)
	})

	t.Run("fresh export streams", func(t *testing.T) {
		fresh := io.NopCloser(bytes.NewReader([]byte("<opml/>")))
		b.blobs.EXPECT().Open(gomock.Any(), gomock.Any()).
			Return(fresh, time.Now().Add(-time.Hour), nil)

		reader, err := uc.Download(context.Background(), userID)
		require.NoError(t, err)
		defer reader.Close()

		raw, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "<opml/>", string(raw))
	})
}

func TestOpmlUsecase_RollbackRequiresKnownImport(t *testing.T) {
	uc, b := newOpmlUsecaseForTest(t)
	userID := uuid.New()
	importID := uuid.New()

	b.opml.EXPECT().GetByID(gomock.Any(), userID, importID).Return(nil, domain.ErrImportNotFound)

	_, err := uc.Rollback(context.Background(), userID, importID)
	assert.ErrorIs(t, err, domain.ErrImportNotFound)
}

func TestOpmlUsecase_RunExportWritesBlob(t *testing.T) {
	uc, b := newOpmlUsecaseForTest(t)
	userID := uuid.New()

	folderID := uuid.New()
	tree := []*domain.FolderNode{{
		Folder: domain.Folder{ID: folderID, Name: "Tech", Depth: 1},
		Subscriptions: []*domain.SubscriptionView{{
			Subscription: domain.Subscription{ID: uuid.New(), FolderID: &folderID},
			FeedURL:      "https://example.com/feed.xml",
			FeedTitle:    "Example",
		}},
	}}
	all := []*domain.SubscriptionView{
		{
			Subscription: domain.Subscription{ID: uuid.New()},
			FeedURL:      "https://loose.example.com/rss",
			FeedTitle:    "Loose",
		},
		{
			Subscription: domain.Subscription{ID: uuid.New(), FolderID: &folderID},
			FeedURL:      "https://example.com/feed.xml",
			FeedTitle:    "Example",
		},
	}

	b.folders.EXPECT().Tree(gomock.Any(), userID).Return(tree, nil)
	b.subs.EXPECT().ListByUser(gomock.Any(), userID, gomock.Nil(), "alphabetical", gomock.Any(), 0).
		Return(all, len(all), nil)

	var written []byte
	b.blobs.EXPECT().Save(gomock.Any(), "users/"+userID.String()+"/exports/subscriptions.opml", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, r io.Reader) error {
			var err error
			written, err = io.ReadAll(r)
			return err
		})

	require.NoError(t, uc.RunExport(context.Background(), userID))

	doc := string(written)
	assert.Contains(t, doc, `xmlUrl="https://loose.example.com/rss"`)
	assert.Contains(t, doc, `text="Tech"`)
	// The foldered feed must appear inside the folder outline only once.
	assert.Equal(t, 1, bytes.Count(written, []byte("https://example.com/feed.xml")))
}
