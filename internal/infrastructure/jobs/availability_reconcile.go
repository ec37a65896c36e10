package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domainRepos "appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/logger"
	"appointme.backend/pkg/metrics"
)

type availabilityReconciler interface {
	EnsureAll(ctx context.Context) (int64, error)
	ClearIdleProviders(ctx context.Context) (int64, error)
}

// AvailabilityReconcileJob repairs the is_booked projection on a cron schedule:
// it materializes missing rows and clears the flag for providers without bookings.
type AvailabilityReconcileJob struct {
	repo     availabilityReconciler
	uow      domainRepos.UnitOfWork
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	stop     chan struct{}
	stopOnce sync.Once
}

func NewAvailabilityReconcileJob(repo availabilityReconciler, uow domainRepos.UnitOfWork, m *metrics.Metrics, schedule string) *AvailabilityReconcileJob {
	return &AvailabilityReconcileJob{
		repo:     repo,
		uow:      uow,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(),
		stop:     make(chan struct{}),
	}
}

// Start registers the schedule and blocks until ctx is cancelled or Stop is called.
func (j *AvailabilityReconcileJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _ = j.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", j.schedule, err)
	}

	logger.Info(ctx, "Starting availability reconcile job", zap.String("schedule", j.schedule))
	j.cron.Start()

	select {
	case <-ctx.Done():
	case <-j.stop:
	}

	<-j.cron.Stop().Done()
	logger.Info(ctx, "Availability reconcile job stopped")
	return nil
}

func (j *AvailabilityReconcileJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// RunOnce performs one reconciliation pass in a single transaction.
func (j *AvailabilityReconcileJob) RunOnce(ctx context.Context) error {
	var created, cleared int64
	err := j.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		if created, err = j.repo.EnsureAll(txCtx); err != nil {
			return fmt.Errorf("materialize availability: %w", err)
		}
		if cleared, err = j.repo.ClearIdleProviders(txCtx); err != nil {
			return fmt.Errorf("clear idle providers: %w", err)
		}
		return nil
	})
	j.metrics.ObserveReconcile(err)

	if err != nil {
		logger.Error(ctx, "Availability reconcile failed", zap.Error(err))
		return err
	}
	if created > 0 || cleared > 0 {
		logger.Info(ctx, "Availability reconciled",
			zap.Int64("rows_created", created),
			zap.Int64("rows_cleared", cleared),
		)
	}
	return nil
}
