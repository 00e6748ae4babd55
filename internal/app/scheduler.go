package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DraftSweeper удаляет брошенные диалоги и черновики alerts
type DraftSweeper interface {
	SweepExpired(ttl time.Duration) []int64
}

// StaleSessions удаляет давно не использованные сессии
type StaleSessions interface {
	DeleteStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// SchedulerConfig интервалы фоновых задач
type SchedulerConfig struct {
	DraftTTL      time.Duration
	SweepInterval time.Duration

	SessionMaxAge   time.Duration
	SessionInterval time.Duration
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	drafts   DraftSweeper
	sessions StaleSessions
	cfg      SchedulerConfig
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(drafts DraftSweeper, sessions StaleSessions, cfg SchedulerConfig, logger *zap.Logger) *Scheduler {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.SessionInterval <= 0 {
		cfg.SessionInterval = 24 * time.Hour
	}
	return &Scheduler{
		drafts:   drafts,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("draft_ttl", s.cfg.DraftTTL),
		zap.Duration("session_max_age", s.cfg.SessionMaxAge))

	if s.cfg.DraftTTL > 0 {
		s.run(ctx, "draft sweep", s.cfg.SweepInterval, func(context.Context) { s.sweepDrafts() })
	}
	if s.cfg.SessionMaxAge > 0 && s.sessions != nil {
		s.run(ctx, "session cleanup", s.cfg.SessionInterval, s.cleanupSessions)
	}
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// run выполняет task сразу и затем каждые interval
func (s *Scheduler) run(ctx context.Context, name string, interval time.Duration, task func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		task(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				task(ctx)
			case <-s.stopChan:
				s.logger.Info("Task stopped", zap.String("task", name))
				return
			case <-ctx.Done():
				s.logger.Info("Task cancelled", zap.String("task", name))
				return
			}
		}
	}()
}

// sweepDrafts отменяет черновики, которые не трогали дольше DraftTTL
func (s *Scheduler) sweepDrafts() {
	expired := s.drafts.SweepExpired(s.cfg.DraftTTL)
	if len(expired) == 0 {
		return
	}
	s.logger.Info("Expired dialogs discarded",
		zap.Int("count", len(expired)),
		zap.Int64s("telegram_ids", expired))
}

func (s *Scheduler) cleanupSessions(ctx context.Context) {
	deleted, err := s.sessions.DeleteStale(ctx, s.cfg.SessionMaxAge)
	if err != nil {
		s.logger.Error("Failed to delete stale sessions", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("Stale sessions deleted", zap.Int64("count", deleted))
	}
}
