package scheduler

import (
	"context"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// tickTimeout bounds one reconciliation pass. A tick that exceeds it aborts
// without writing state and the next scheduled tick retries.
const tickTimeout = 2 * time.Minute

// TickRunner is the reconciliation entrypoint driven by the cron engine.
type TickRunner interface {
	RunTick(ctx context.Context) (service.TickOutcome, error)
}

// Scheduler fires the reconciler at the three fixed daily times. Tick bodies
// complete in seconds and ticks are hours apart, so runs never overlap.
type Scheduler struct {
	cronEngine *cron.Cron
	reconciler TickRunner
	cronSpecs  []string
	log        *logrus.Entry
}

func New(reconciler TickRunner, loc *time.Location, log *logrus.Logger, cronSpecs ...string) *Scheduler {
	return &Scheduler{
		cronEngine: cron.New(cron.WithLocation(loc)),
		reconciler: reconciler,
		cronSpecs:  cronSpecs,
		log:        log.WithField("component", "scheduler"),
	}
}

func (s *Scheduler) Start() error {
	for _, spec := range s.cronSpecs {
		spec := spec
		if _, err := s.cronEngine.AddFunc(spec, func() { s.runTick(spec) }); err != nil {
			return err
		}
	}

	s.cronEngine.Start()
	s.log.WithField("ticks", len(s.cronSpecs)).Info("Scheduler started")
	return nil
}

func (s *Scheduler) runTick(spec string) {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	log := s.log.WithField("cron", spec)
	log.Info("Tick triggered")

	outcome, err := s.reconciler.RunTick(ctx)
	if err != nil {
		// A failed tick changes nothing; the next one retries from scratch.
		log.WithError(err).Error("Tick failed")
		return
	}
	log.WithField("outcome", outcome).Info("Tick completed")
}

func (s *Scheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}
