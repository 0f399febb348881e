// Package di assembles the application graph: drivers, gateways,
// usecases and the shared collectors, in dependency order.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"lector/config"
	"lector/driver/blobstore"
	"lector/driver/postgres"
	redisdrv "lector/driver/redis"
	"lector/gateway/feedfetch"
	"lector/metrics"
	"lector/usecase"
	"lector/utils/feedparse"
	"lector/utils/htmlsanitize"
	"lector/utils/security"
)

// ApplicationComponents is the wired application. Both binaries build
// one; the server registers routes over it, the worker builds its
// handler registry from it.
type ApplicationComponents struct {
	Pool    *pgxpool.Pool
	Redis   *goredis.Client
	Metrics *metrics.Metrics

	Queue       *redisdrv.Queue
	StatusStore *redisdrv.JobStatusStore
	Notifier    *redisdrv.Notifier
	BlobStore   *blobstore.LocalStore
	IPResolver  *security.IPResolver

	AuthUsecase         *usecase.AuthUsecase
	FeedUsecase         *usecase.FeedUsecase
	SubscriptionUsecase *usecase.SubscriptionUsecase
	DiscoverUsecase     *usecase.DiscoverUsecase
	ArticleUsecase      *usecase.ArticleUsecase
	FolderUsecase       *usecase.FolderUsecase
	TagUsecase          *usecase.TagUsecase
	PreferencesUsecase  *usecase.PreferencesUsecase
	SearchUsecase       *usecase.SearchUsecase
	OpmlUsecase         *usecase.OpmlUsecase
	JobUsecase          *usecase.JobUsecase
}

func NewApplicationComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ApplicationComponents, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	redisClient, err := redisdrv.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	blobs, err := blobstore.NewLocalStore(cfg.Storage.Path, logger)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("blob store: %w", err)
	}

	m := metrics.New()

	feedRepo := postgres.NewFeedRepository(pool, logger)
	articleRepo := postgres.NewArticleRepository(pool, logger)
	userArticleRepo := postgres.NewUserArticleRepository(pool, logger)
	subRepo := postgres.NewSubscriptionRepository(pool, logger)
	folderRepo := postgres.NewFolderRepository(pool, logger)
	tagRepo := postgres.NewTagRepository(pool, logger)
	userRepo := postgres.NewUserRepository(pool, logger)
	sessionRepo := postgres.NewSessionRepository(pool, logger)
	prefsRepo := postgres.NewPreferencesRepository(pool, logger)
	opmlRepo := postgres.NewOpmlRepository(pool, logger)
	searchRepo := postgres.NewSearchRepository(pool, logger)
	txManager := postgres.NewTxManager(pool, logger)

	queue := redisdrv.NewQueue(redisClient, cfg.Job.Stream, cfg.Job.ConsumerGroup, logger)
	statusStore := redisdrv.NewJobStatusStore(redisClient, cfg.Job.TTL, logger)
	notifier := redisdrv.NewNotifier(redisClient, logger)

	fetchOpts := feedfetch.Options{
		UserAgent:       cfg.Feed.UserAgent,
		RequestTimeout:  cfg.Server.RequestTimeout,
		MaxFeedSizeMB:   cfg.Feed.MaxFeedSizeMB,
		PerHostInterval: cfg.Feed.PerHostInterval,
	}
	refreshGateway := feedfetch.New(fetchOpts, logger)

	discoverOpts := fetchOpts
	discoverOpts.CheckRobots = true
	discoverGateway := feedfetch.New(discoverOpts, logger)

	parser := feedparse.New(htmlsanitize.New(), logger)

	ingestUC := usecase.NewIngestUsecase(articleRepo, userArticleRepo, subRepo, tagRepo,
		cfg.Tag.MaxNameLength, logger)
	feedUC := usecase.NewFeedUsecase(feedRepo, userArticleRepo, refreshGateway,
		discoverGateway, parser, ingestUC, txManager, m, cfg.Feed, logger)
	subscriptionUC := usecase.NewSubscriptionUsecase(subRepo, feedRepo, articleRepo,
		userArticleRepo, tagRepo, folderRepo, txManager, cfg.Tag.MaxNameLength, logger)
	jobUC := usecase.NewJobUsecase(queue, statusStore, cfg.Job, logger)
	discoverUC := usecase.NewDiscoverUsecase(feedRepo, subRepo, folderRepo,
		subscriptionUC, jobUC, queue, cfg.Server.DevMode, logger)
	articleUC := usecase.NewArticleUsecase(userArticleRepo, tagRepo, subRepo, logger)
	folderUC := usecase.NewFolderUsecase(folderRepo, txManager, cfg.Folder, logger)
	tagUC := usecase.NewTagUsecase(tagRepo, cfg.Tag, logger)
	prefsUC := usecase.NewPreferencesUsecase(prefsRepo, logger)
	searchUC := usecase.NewSearchUsecase(searchRepo, logger)
	authUC := usecase.NewAuthUsecase(userRepo, sessionRepo, cfg.Auth, logger)
	opmlUC := usecase.NewOpmlUsecase(opmlRepo, folderRepo, subRepo, feedUC,
		subscriptionUC, folderUC, jobUC, blobs, cfg.Storage, logger)

	return &ApplicationComponents{
		Pool:    pool,
		Redis:   redisClient,
		Metrics: m,

		Queue:       queue,
		StatusStore: statusStore,
		Notifier:    notifier,
		BlobStore:   blobs,
		IPResolver:  security.NewIPResolver(cfg.Auth.TrustedProxies),

		AuthUsecase:         authUC,
		FeedUsecase:         feedUC,
		SubscriptionUsecase: subscriptionUC,
		DiscoverUsecase:     discoverUC,
		ArticleUsecase:      articleUC,
		FolderUsecase:       folderUC,
		TagUsecase:          tagUC,
		PreferencesUsecase:  prefsUC,
		SearchUsecase:       searchUC,
		OpmlUsecase:         opmlUC,
		JobUsecase:          jobUC,
	}, nil
}

// Close releases the shared connections.
func (c *ApplicationComponents) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
