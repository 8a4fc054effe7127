package credits

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/logger"
)

// warnThreshold is the budget fraction at which the watchdog starts
// warning.
const warnThreshold = 0.8

// Watchdog periodically checks monthly credit usage against the budget
// so the team hears about an approaching limit before lookups start
// getting rationed.
type Watchdog struct {
	meter *Meter
	cron  *cron.Cron
	log   *logger.Logger
}

// NewWatchdog builds a watchdog over the given meter.
func NewWatchdog(meter *Meter, log *logger.Logger) *Watchdog {
	return &Watchdog{
		meter: meter,
		cron:  cron.New(),
		log:   log,
	}
}

// Start schedules the hourly budget check and runs one immediately.
func (w *Watchdog) Start() error {
	if _, err := w.cron.AddFunc("@hourly", w.check); err != nil {
		return err
	}
	w.cron.Start()
	go w.check()
	return nil
}

// Stop halts the schedule, waiting for a running check to finish.
func (w *Watchdog) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *Watchdog) check() {
	budget := w.meter.Budget()
	if budget <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	used, err := w.meter.UsedThisMonth(ctx)
	if err != nil {
		w.log.Error("Credit budget check failed", err, nil)
		return
	}

	fields := map[string]interface{}{
		"used":   used,
		"budget": budget,
	}
	switch {
	case used >= int64(budget):
		w.log.Error("Monthly credit budget exhausted", nil, fields)
	case float64(used) >= float64(budget)*warnThreshold:
		w.log.Warn("Monthly credit budget nearly exhausted", fields)
	}
}
