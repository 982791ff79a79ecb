package app

import (
	"context"
	"strconv"
	"time"

	"github.com/lernhub/checkout-recon/internal/config"
)

type PendingPollHandler interface {
	Execute(ctx context.Context) error
}

// PendingPollProcess schedules the pending-status poller: one Execute per
// tick, each tick bounded by its own timeout. The process stops as soon
// as its context is cancelled; a tick in flight sees the same
// cancellation through its derived context.
type PendingPollProcess struct {
	handler PendingPollHandler
	config  config.Poller
}

func NewPendingPollProcess(h PendingPollHandler, cfg config.Poller) *PendingPollProcess {
	return &PendingPollProcess{handler: h, config: cfg}
}

// Run runs the pending poll process until ctx is cancelled.
func (p *PendingPollProcess) Run(ctx context.Context) error {
	interval, err := strconv.Atoi(p.config.IntervalSeconds)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, time.Duration(interval)*time.Second)
			p.handler.Execute(tickCtx)
			cancel()
		}
	}
}
