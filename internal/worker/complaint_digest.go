package worker

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"genz-ignite/internal/metrics"
)

type PendingCounter interface {
	PendingCount(ctx context.Context) (int64, error)
}

// ComplaintDigest periodically reports how many complaints still wait for
// the back office.
type ComplaintDigest struct {
	Complaints PendingCounter
	Schedule   string
	Logger     *slog.Logger

	last int64
}

func (d *ComplaintDigest) Run(ctx context.Context) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := cron.New()
	if _, err := c.AddFunc(d.Schedule, func() { d.tick(ctx, logger) }); err != nil {
		return err
	}
	c.Start()
	logger.Info("complaint digest scheduled", "schedule", d.Schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (d *ComplaintDigest) tick(ctx context.Context, logger *slog.Logger) {
	n, err := d.Complaints.PendingCount(ctx)
	if err != nil {
		logger.Error("complaint digest failed", "err", err)
		return
	}
	metrics.SetPendingComplaints(n)
	if n > d.last {
		logger.Info("new complaints waiting", "pending", n, "new", n-d.last)
	}
	d.last = n
}
