// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartMaintenanceScheduler wires the calendar-boundary jobs: nightly streak
// decay plus countdown decrement, and the first-of-month aggregate rollover
// with the statement archive. Jobs run in the canonical timezone so the
// boundaries line up with what the Clock considers "today".
func StartMaintenanceScheduler(rollover *RolloverService, clock *Clock) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(clock.Location()))
	if err != nil {
		return nil, err
	}
	sched.Start()

	// Shortly after midnight: decay streaks, tick countdowns
	_, err = sched.NewJob(
		gocron.CronJob("5 0 * * *", false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if _, err := rollover.DecayStreaks(ctx); err != nil {
				log.Printf("[Scheduler] streak decay failed: %v", err)
			}
			if _, err := rollover.DecrementCountdowns(ctx); err != nil {
				log.Printf("[Scheduler] countdown decrement failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	// First of the month: shift aggregates, then archive the closed month
	_, err = sched.NewJob(
		gocron.CronJob("30 0 1 * *", false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			if _, err := rollover.MonthlyRollover(ctx); err != nil {
				log.Printf("[Scheduler] monthly rollover failed: %v", err)
			}
			rollover.ArchiveClosedMonth(ctx)
		}),
	)
	if err != nil {
		return nil, err
	}

	return sched, nil
}
