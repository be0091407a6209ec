// file: internals/features/school/attendances/scheduler/absence_sweep.go
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"

	"swimclub_backend/internals/features/school/attendances/service"
)

type Sweeper interface {
	SweepAbsences(ctx context.Context, day datatypes.Date) (service.SweepResult, error)
	Today() datatypes.Date
}

type SweepConfig struct {
	CronSchedule string
	Location     *time.Location
	Timeout      time.Duration
}

// StartAbsenceSweep schedules the nightly absence sweep in the club
// timezone. The returned cron must be stopped on shutdown.
func StartAbsenceSweep(sw Sweeper, cfg SweepConfig) (*cron.Cron, error) {
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "30 22 * * *"
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	c := cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() { runSweep(sw, cfg.Timeout) }); err != nil {
		return nil, fmt.Errorf("absence sweep schedule %q: %w", cfg.CronSchedule, err)
	}
	log.Printf("[SWEEP] started schedule=%q tz=%s", cfg.CronSchedule, cfg.Location)
	c.Start()
	return c, nil
}

func runSweep(sw Sweeper, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if _, err := sw.SweepAbsences(ctx, sw.Today()); err != nil {
		log.Printf("[SWEEP] error: %v", err)
	}
}
