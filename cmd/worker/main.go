package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lector/config"
	"lector/di"
	"lector/job"
	"lector/utils/logger"
)

func main() {
	if err := run(); err != nil {
		logger.Logger.Error("worker exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logger.Init()
		return fmt.Errorf("load config: %w", err)
	}

	logger.InitWithOTel(cfg.Logging.OTelEnabled)
	log := logger.Logger
	log.Info("starting worker",
		"stream", cfg.Job.Stream, "group", cfg.Job.ConsumerGroup, "max_jobs", cfg.Job.MaxJobs)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.NewApplicationComponents(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("wire components: %w", err)
	}
	defer container.Close()

	registry := job.NewRegistry(
		container.FeedUsecase,
		container.SubscriptionUsecase,
		container.OpmlUsecase,
		container.Queue,
		log,
	)

	scheduler := job.NewScheduler(container.JobUsecase, log)
	for _, schedule := range job.DefaultSchedules(cfg.Feed.RefreshInterval) {
		scheduler.Add(schedule)
	}
	scheduler.Start(ctx)

	worker := job.NewWorker(
		container.Queue,
		container.StatusStore,
		container.Notifier,
		container.Metrics,
		registry,
		cfg.Job,
		log,
	)

	if err := worker.Run(ctx); err != nil {
		return fmt.Errorf("worker: %w", err)
	}

	scheduler.Shutdown()
	log.Info("worker stopped")
	return nil
}
