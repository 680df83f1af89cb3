package sheets

import (
	"context"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/usecase"
)

const syncLockKey = "sheets:sync:lock"

// Scheduler periodically imports the spreadsheet. A Redis SETNX lock keeps
// the import single-flight when several replicas run the loop.
type Scheduler struct {
	syncer   *Syncer
	locker   usecase.MetricsCache
	interval time.Duration
	log      *zap.Logger
}

func NewScheduler(syncer *Syncer, locker usecase.MetricsCache, interval time.Duration, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{syncer: syncer, locker: locker, interval: interval, log: log}
}

// Run blocks until ctx is cancelled. A zero interval disables the loop.
func (s *Scheduler) Run(ctx context.Context) {
	if s == nil || s.syncer == nil || s.interval <= 0 {
		return
	}

	s.log.Info("sheets sync scheduler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sheets sync scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.locker != nil {
		ok, err := s.locker.SetIfNotExists(ctx, syncLockKey, "1", s.interval)
		if err == nil && !ok {
			s.log.Debug("sheets sync skipped, another instance holds the lock")
			return
		}
	}

	if _, err := s.syncer.Import(ctx); err != nil {
		s.log.Warn("scheduled sheets import failed", zap.Error(err))
	}
}
