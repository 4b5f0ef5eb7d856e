package ingest

import (
	"context"
	"time"

	"nbrates/internal/adapters"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// feedCronSchedule fires an ingestion cycle every 15 minutes, UTC.
const feedCronSchedule = "*/15 * * * *"

type Scheduler struct {
	source    adapters.RateSource
	resolver  *Resolver
	snapshots adapters.SnapshotRepository
	window    time.Duration
	// -----
	sched gocron.Scheduler
}

func NewScheduler(source adapters.RateSource, resolver *Resolver, snapshots adapters.SnapshotRepository, window time.Duration) *Scheduler {
	return &Scheduler{source: source, resolver: resolver, snapshots: snapshots, window: window}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if runErr := RunIngestion(jobCtx, execID, s.source, s.resolver, s.snapshots, s.window); runErr != nil {
			// This tick is lost, the next one retries from scratch.
			logrus.Errorf("Ingestion cycle %s failed: %v", execID, runErr)
		}
	}

	// Singleton mode keeps a slow cycle from overlapping the next tick.
	_, err = scheduler.NewJob(
		gocron.CronJob(feedCronSchedule, false),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
