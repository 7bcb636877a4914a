package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 2 * time.Minute

// FloodCloser marks floods whose end date has passed as over.
type FloodCloser interface {
	CloseExpired(ctx context.Context, day time.Time) (int64, error)
}

// SessionPurger removes refresh sessions that can no longer be used.
type SessionPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Schedules struct {
	FloodHousekeeping string
	SessionPurge      string
}

type Runner struct {
	floods   FloodCloser
	sessions SessionPurger
	loc      *time.Location
	now      func() time.Time
	cron     *cron.Cron
}

func NewRunner(floods FloodCloser, sessions SessionPurger, loc *time.Location) *Runner {
	if loc == nil {
		loc = time.UTC
	}
	return &Runner{
		floods:   floods,
		sessions: sessions,
		loc:      loc,
		now:      time.Now,
		cron:     cron.New(cron.WithLocation(loc)),
	}
}

// Start registers the jobs and starts the scheduler in the background.
func (r *Runner) Start(schedules Schedules) error {
	if _, err := r.cron.AddFunc(schedules.FloodHousekeeping, func() { r.run("flood housekeeping", r.CloseExpiredFloods) }); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc(schedules.SessionPurge, func() { r.run("session purge", r.PurgeSessions) }); err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("Scheduled jobs started (floods %q, sessions %q)", schedules.FloodHousekeeping, schedules.SessionPurge)
	return nil
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Runner) run(name string, job func(ctx context.Context) (int64, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	n, err := job(ctx)
	if err != nil {
		log.Printf("CronJob %s failed: %v", name, err)
		return
	}
	if n > 0 {
		log.Printf("CronJob %s: %d rows updated", name, n)
	}
}

func (r *Runner) CloseExpiredFloods(ctx context.Context) (int64, error) {
	now := r.now().In(r.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return r.floods.CloseExpired(ctx, today)
}

func (r *Runner) PurgeSessions(ctx context.Context) (int64, error) {
	return r.sessions.DeleteExpired(ctx, r.now())
}
