package river

import (
	"context"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"github.com/naandi/platform/internal/app"
)

// SweepArgs is the periodic job reaping abandoned vendor registrations.
// The job carries no data; the cutoff is derived from the configured
// TTL at execution time.
type SweepArgs struct{}

// Kind returns the unique job type identifier used by River's job routing.
func (SweepArgs) Kind() string { return "registration.sweep" }

// SweepWorker deletes staged registrations older than the TTL so
// abandoned signups do not accumulate.
type SweepWorker struct {
	river.WorkerDefaults[SweepArgs]

	regs   *app.RegistrationService
	maxAge time.Duration
}

// Work performs a single sweep.
func (w *SweepWorker) Work(ctx context.Context, job *river.Job[SweepArgs]) error {
	n, err := w.regs.SweepExpired(ctx, w.maxAge)
	if err != nil {
		return err
	}

	if n > 0 {
		slog.InfoContext(ctx, "swept expired registrations",
			"count", n,
			"max_age", w.maxAge.String(),
			"job_id", job.ID,
		)
	}
	return nil
}
