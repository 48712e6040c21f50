package services

import (
	"context"
	"time"

	"gaze-go/internal/repository"

	"go.uber.org/zap"
)

// Sweeper periodically drops sessions that have been idle longer than ttl.
type Sweeper struct {
	log      *zap.Logger
	store    repository.SessionStore
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewSweeper(log *zap.Logger, store repository.SessionStore, ttl, interval time.Duration) *Sweeper {
	return &Sweeper{
		log:      log,
		store:    store,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the sweeper in a goroutine until ctx is cancelled.
// A zero ttl or interval disables eviction.
func (s *Sweeper) Start(ctx context.Context) {
	if s.ttl <= 0 || s.interval <= 0 {
		s.log.Info("Session eviction disabled")
		return
	}

	s.log.Info("Starting session sweeper...", zap.Duration("ttl", s.ttl), zap.Duration("interval", s.interval))
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("Session sweeper stopped")
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Sweep removes idle sessions once and returns how many were dropped.
func (s *Sweeper) Sweep(ctx context.Context) int {
	cutoff := s.now().Add(-s.ttl)
	removed, err := s.store.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		s.log.Error("Failed to evict idle sessions", zap.Error(err))
		return 0
	}
	if removed > 0 {
		s.log.Info("Evicted idle sessions", zap.Int("count", removed), zap.Time("cutoff", cutoff))
	} else {
		s.log.Debug("No idle sessions to evict", zap.Time("cutoff", cutoff))
	}
	return removed
}
