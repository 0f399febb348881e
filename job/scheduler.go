// Package job runs the background side of the system: the periodic
// scheduler that publishes recurring jobs, and the stream worker that
// executes them.
package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lector/domain"
	"lector/usecase"
)

// Schedule describes one recurring job. Exactly one of Every or At is
// set: Every republishes on a fixed interval, At fires once a day at the
// given wall-clock time.
type Schedule struct {
	Name  string
	Type  domain.JobType
	Every time.Duration
	At    *ClockTime
}

// ClockTime is a local wall-clock instant for daily schedules.
type ClockTime struct {
	Hour   int
	Minute int
}

// Scheduler publishes recurring jobs to the queue on their schedule. It
// never runs work itself; the worker picks the jobs up like any other.
// Nothing fires at startup, so restarts cannot stampede the queue.
type Scheduler struct {
	jobs      *usecase.JobUsecase
	schedules []Schedule
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func NewScheduler(jobs *usecase.JobUsecase, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		jobs:   jobs,
		logger: logger.With("component", "scheduler"),
	}
}

// Add registers a schedule to run once Start is called.
func (s *Scheduler) Add(schedule Schedule) {
	s.schedules = append(s.schedules, schedule)
}

// DefaultSchedules is the standing production schedule: refresh every
// interval, cleanup at 02:00, auto-mark-read at 03:00.
func DefaultSchedules(refreshInterval time.Duration) []Schedule {
	return []Schedule{
		{Name: "feed_refresh", Type: domain.JobFeedRefreshCycle, Every: refreshInterval},
		{Name: "feed_cleanup", Type: domain.JobFeedCleanup, At: &ClockTime{Hour: 2}},
		{Name: "auto_mark_read", Type: domain.JobAutoMarkRead, At: &ClockTime{Hour: 3}},
	}
}

// Start launches every registered schedule. All of them stop when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, schedule := range s.schedules {
		s.wg.Add(1)
		go s.run(ctx, schedule)
	}
}

func (s *Scheduler) run(ctx context.Context, schedule Schedule) {
	defer s.wg.Done()

	for {
		wait := s.nextWait(schedule, time.Now())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("schedule stopping", "schedule", schedule.Name)
			return
		case <-timer.C:
		}

		s.publish(ctx, schedule)
	}
}

func (s *Scheduler) nextWait(schedule Schedule, now time.Time) time.Duration {
	if schedule.Every > 0 {
		return schedule.Every
	}

	next := time.Date(now.Year(), now.Month(), now.Day(),
		schedule.At.Hour, schedule.At.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *Scheduler) publish(ctx context.Context, schedule Schedule) {
	if ctx.Err() != nil {
		return
	}

	record, err := s.jobs.Publish(ctx, schedule.Type, nil)
	if err != nil {
		s.logger.Error("failed to publish scheduled job",
			"schedule", schedule.Name, "error", err)
		return
	}

	s.logger.Info("scheduled job published",
		"schedule", schedule.Name, "job_id", record.ID)
}

// Shutdown blocks until every schedule loop has exited.
func (s *Scheduler) Shutdown() {
	s.wg.Wait()
}
