package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// TokenCleaner deletes auth tokens that can no longer authenticate.
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	s   gocron.Scheduler
	log *zap.Logger
}

const cleanupTimeout = 30 * time.Second

// NewScheduler registers the token cleanup job on cronExpr (five field crontab).
// The scheduler does not run until Start.
func NewScheduler(cleaner TokenCleaner, cronExpr string, log *zap.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	log = log.With(zap.String("component", "jobs"))

	_, err = s.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() { cleanupTokens(cleaner, log) }),
		gocron.WithName("token-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("register token cleanup %q: %w", cronExpr, err)
	}

	return &Scheduler{s: s, log: log}, nil
}

func (sc *Scheduler) Start() {
	sc.s.Start()
	sc.log.Info("Scheduler started", zap.Int("jobs", len(sc.s.Jobs())))
}

// Stop waits for running jobs to finish.
func (sc *Scheduler) Stop() error {
	return sc.s.Shutdown()
}

func cleanupTokens(cleaner TokenCleaner, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	n, err := cleaner.CleanupExpiredTokens(ctx)
	if err != nil {
		log.Error("Token cleanup failed", zap.Error(err))
		return
	}
	log.Debug("Token cleanup done", zap.Int64("deleted", n))
}
