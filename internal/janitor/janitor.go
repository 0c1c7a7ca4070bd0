// Package janitor runs periodic maintenance on a cron schedule.
package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adhocore/gronx"
	"github.com/jonboulle/clockwork"
)

// JobPurgeTokens is the job name reported to metrics.
const JobPurgeTokens = "purge_tokens"

const retryDelay = 30 * time.Second

type tokenPurger interface {
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

type runRecorder interface {
	JanitorRun(job string, err error, purged int64)
}

// Janitor deletes expired and revoked refresh tokens whenever the cron
// expression fires.
type Janitor struct {
	cron   string
	tokens tokenPurger
	rec    runRecorder
	clock  clockwork.Clock
	log    *slog.Logger
}

// New validates cronExpr and returns a Janitor. rec may be nil.
func New(logger *slog.Logger, cronExpr string, tokens tokenPurger, rec runRecorder, clock clockwork.Clock) (*Janitor, error) {
	if !gronx.IsValid(cronExpr) {
		return nil, fmt.Errorf("janitor.New: invalid cron expression %q", cronExpr)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Janitor{
		cron:   cronExpr,
		tokens: tokens,
		rec:    rec,
		clock:  clock,
		log:    logger.With("component", "janitor"),
	}, nil
}

// Run blocks until ctx is cancelled, running every job at each tick.
func (j *Janitor) Run(ctx context.Context) error {
	j.log.InfoContext(ctx, "janitor started", slog.String("cron", j.cron))
	for {
		now := j.clock.Now().UTC()
		next, err := gronx.NextTickAfter(j.cron, now, false)
		wait := next.Sub(now)
		if err != nil {
			j.log.ErrorContext(ctx, "next tick", slog.String("error", err.Error()))
			wait = retryDelay
		}

		timer := j.clock.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			j.log.InfoContext(ctx, "janitor stopped")
			return nil
		case <-timer.Chan():
		}

		if err == nil {
			j.RunOnce(ctx)
		}
	}
}

// RunOnce executes every job immediately. Failures are logged and recorded,
// never returned, so a bad run does not stop the schedule.
func (j *Janitor) RunOnce(ctx context.Context) {
	start := j.clock.Now()
	n, err := j.tokens.CleanupExpiredTokens(ctx)
	if j.rec != nil {
		j.rec.JanitorRun(JobPurgeTokens, err, int64(n))
	}
	if err != nil {
		j.log.ErrorContext(ctx, "purge tokens failed", slog.String("error", err.Error()))
		return
	}
	j.log.InfoContext(ctx, "purged tokens",
		slog.Int("count", n),
		slog.Duration("took", j.clock.Since(start)),
	)
}
