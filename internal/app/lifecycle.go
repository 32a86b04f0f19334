package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sadopc/daybook/internal/reminders"
	"github.com/sadopc/daybook/internal/schedule"
	"github.com/sadopc/daybook/internal/store"
)

// TickInterval is the timer resolution.
const TickInterval = time.Second

// Start begins the reminder sweep, which runs once now and then every
// minute. dispatch must run jobs on the goroutine that calls the other
// controller methods.
func (c *Controller) Start(ctx context.Context, dispatch Dispatch) {
	c.ctx = ctx
	c.dispatch = dispatch
	c.sweepTask = schedule.Every(ctx, c.log, "reminder-sweep", reminders.SweepInterval, true, func(now time.Time) {
		dispatch(func() []Notice { return c.sweep() })
	})
}

// sweep fires due reminders and persists their notified flag.
func (c *Controller) sweep() []Notice {
	fired := c.state.Reminders.Sweep(c.now())
	if len(fired) == 0 {
		return nil
	}
	c.save(store.KeyReminders)
	notices := make([]Notice, 0, len(fired))
	for _, r := range fired {
		notices = append(notices, Notice{Text: fmt.Sprintf("Reminder: %s", r.Title), Level: LevelAlarm})
	}
	return notices
}

// startTicking launches a tick task tagged with a fresh generation. Jobs
// from an older generation are ignored, so a cancelled task that already
// queued a tick cannot advance the timer.
func (c *Controller) startTicking() {
	if c.dispatch == nil {
		return
	}
	c.tickTask.Cancel()
	c.tickGen++
	gen := c.tickGen
	dispatch := c.dispatch
	c.tickTask = schedule.Every(c.ctx, c.log, "timer-tick", TickInterval, false, func(time.Time) {
		dispatch(func() []Notice {
			if gen == c.tickGen {
				c.timer.Tick()
			}
			return nil
		})
	})
}

func (c *Controller) stopTicking() {
	c.tickTask.Cancel()
	c.tickTask = nil
	c.tickGen++
}

// Stop ends both scheduled tasks and silences the alarm. Call it once the
// dispatch target no longer processes jobs.
func (c *Controller) Stop() {
	c.sweepTask.Stop()
	c.tickTask.Stop()
	c.sweepTask, c.tickTask = nil, nil
	c.alarm.Stop()
	c.log.Info("controller stopped")
}
