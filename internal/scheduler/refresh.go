// Package scheduler wires up the cron job that periodically refreshes the
// cached reference code lists.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talentgigs/internal/config"
	"talentgigs/internal/usajobs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type RefreshScheduler struct {
	cron      *cron.Cron
	codeLists *usajobs.CodeListService
	logger    *zap.Logger
	spec      string

	mutex    sync.Mutex
	isActive bool
}

func NewRefreshScheduler(codeLists *usajobs.CodeListService, logger *zap.Logger, cfg *config.Config) *RefreshScheduler {
	return &RefreshScheduler{
		cron:      cron.New(),
		codeLists: codeLists,
		logger:    logger,
		spec:      cfg.RefreshSchedule,
	}
}

// Start registers the refresh job and runs one refresh immediately so hot
// lists are warm without waiting for the first tick.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mutex.Lock()
	if s.isActive {
		s.mutex.Unlock()
		return nil
	}
	s.isActive = true
	s.mutex.Unlock()

	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("code list refresh scheduler started", zap.String("spec", s.spec))

	go s.runRefresh(ctx)

	return nil
}

func (s *RefreshScheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isActive {
		return
	}
	s.isActive = false
	s.cron.Stop()
	s.logger.Info("code list refresh scheduler stopped")
}

func (s *RefreshScheduler) runRefresh(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	start := time.Now()
	s.logger.Info("starting code list refresh")

	if !s.codeLists.IsAvailable(ctx) {
		s.logger.Warn("code list endpoint unavailable, skipping refresh")
		return
	}

	s.codeLists.RefreshAll(ctx)

	s.logger.Info("code list refresh complete",
		zap.Duration("duration", time.Since(start)))
}
