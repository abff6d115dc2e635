// Package scheduler wires up the cron job that periodically triggers a
// refresh cycle, so nearby postings can raise alerts even while no
// frontend action arrives. The coordinator still treats these triggers
// like any external one: a tick which lands while a cycle is in flight
// is dropped, never queued.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/job-alerts/pkg/core/log"
	"github.com/momeni/job-alerts/pkg/core/usecase/alertuc"
	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron and manages the periodic refresh loop.
type Scheduler struct {
	cron   *cron.Cron
	alerts *alertuc.UseCase
	token  string
	spec   string
}

// New creates a Scheduler triggering a refresh every interval, using
// the token bearer credential for the identity resolution.
func New(
	alerts *alertuc.UseCase, token string, interval time.Duration,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval (%s) is not positive", interval)
	}
	return &Scheduler{
		cron:   cron.New(),
		alerts: alerts,
		token:  token,
		spec:   fmt.Sprintf("@every %s", interval),
	}, nil
}

// Start registers the refresh job and starts the scheduler. One
// refresh also runs immediately, so alerts are not postponed until the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	log.Info(ctx, "refresh scheduler started", slog.String("spec", s.spec))
	go s.runRefresh(ctx)
	return nil
}

// Stop shuts the scheduler down; an in-flight refresh keeps running
// until its own timeout.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cron.Stop()
	log.Info(ctx, "refresh scheduler stopped")
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	_, err := s.alerts.TriggerRefresh(ctx, s.token)
	switch {
	case errors.Is(err, alertuc.ErrBusy):
		log.Debug(ctx, "skipping scheduled refresh; cycle in flight")
	case err != nil:
		log.Warn(ctx, "scheduled refresh failed", log.Err("error", err))
	}
}
