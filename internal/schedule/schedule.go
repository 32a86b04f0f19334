// Package schedule runs cancellable periodic tasks.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one periodic job. The zero value is not usable; use Every.
type Task struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every calls fn every interval until ctx is cancelled or Stop is called.
// With immediate set, fn also runs once right away.
func Every(ctx context.Context, log *slog.Logger, name string, interval time.Duration, immediate bool, fn func(time.Time)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Debug("task started", "task", name, "interval", interval)
		if immediate {
			fn(time.Now())
		}
		for {
			select {
			case <-ctx.Done():
				log.Debug("task stopped", "task", name)
				return
			case now := <-ticker.C:
				fn(now)
			}
		}
	}()
	return t
}

// Cancel asks the task to stop without waiting. Use it from the goroutine fn
// hands work to, which the task may be blocked on.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
}

// Stop cancels the task and waits for its goroutine to exit. It is safe to
// call more than once and on a nil task.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.Cancel()
	<-t.done
}

// Done is closed once the task goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
