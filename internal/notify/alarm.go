// Package notify drives the reminder alarm and desktop notifications.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
)

// Alarm is a single shared audio cue. Starting an alarm that is already
// playing does nothing.
type Alarm interface {
	Start()
	Stop()
	Playing() bool
}

const defaultBeepInterval = 2 * time.Second

// Beeper loops the system beep until stopped.
type Beeper struct {
	log      *slog.Logger
	interval time.Duration
	beep     func() error

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBeeper(log *slog.Logger) *Beeper {
	return &Beeper{
		log:      log,
		interval: defaultBeepInterval,
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

func (b *Beeper) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.cancel = cancel
	b.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			if err := b.beep(); err != nil {
				b.log.Warn("alarm beep failed", "error", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	b.log.Info("alarm started")
}

// Stop halts the loop and waits for it to exit.
func (b *Beeper) Stop() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	b.log.Info("alarm stopped")
}

func (b *Beeper) Playing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancel != nil
}
