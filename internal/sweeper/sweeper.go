// Package sweeper runs the scheduled cleanup of expired sessions. Revoked
// sessions are kept until their natural expiry so replayed tokens can still
// be recognized; only rows past expires_at are removed.
package sweeper

import (
	"context"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/logging"
	"github.com/robfig/cron/v3"
)

type Sweeper struct {
	sessions domain.SessionRepository
	log      logging.Logger
	cron     *cron.Cron
}

func New(sessions domain.SessionRepository, log logging.Logger) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		log:      log,
		cron:     cron.New(),
	}
}

// Start registers the sweep on the given cron schedule and starts the
// scheduler.
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep deletes sessions past their expiry.
func (s *Sweeper) Sweep(ctx context.Context) {
	deleted, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error(ctx, "session sweep failed", "err", err)
		return
	}
	if deleted > 0 {
		s.log.Info(ctx, "swept expired sessions", "deleted", deleted)
	}
}
