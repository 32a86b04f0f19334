package schedule

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func TestEveryImmediate(t *testing.T) {
	var n atomic.Int32
	task := Every(context.Background(), discard, "sweep", time.Hour, true, func(time.Time) { n.Add(1) })
	require.Eventually(t, func() bool { return n.Load() == 1 }, time.Second, time.Millisecond)
	task.Stop()
	assert.Equal(t, int32(1), n.Load())
}

func TestEveryTicks(t *testing.T) {
	var n atomic.Int32
	task := Every(context.Background(), discard, "tick", 5*time.Millisecond, false, func(time.Time) { n.Add(1) })
	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	task.Stop()

	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, n.Load(), "no calls after Stop")
}

func TestEveryNotImmediate(t *testing.T) {
	var n atomic.Int32
	task := Every(context.Background(), discard, "tick", time.Hour, false, func(time.Time) { n.Add(1) })
	task.Stop()
	assert.Zero(t, n.Load())
}

func TestStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := Every(ctx, discard, "tick", time.Hour, false, func(time.Time) {})
	cancel()
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not exit after context cancel")
	}
	task.Stop()
}

func TestStopTwiceAndNil(t *testing.T) {
	task := Every(context.Background(), discard, "tick", time.Hour, false, func(time.Time) {})
	task.Stop()
	task.Stop()

	var nilTask *Task
	nilTask.Stop()
}

func TestCancelDoesNotWait(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	task := Every(context.Background(), discard, "tick", time.Hour, true, func(time.Time) {
		close(started)
		<-block
	})
	<-started

	task.Cancel() // must return while fn is still blocked
	select {
	case <-task.Done():
		t.Fatal("task exited while fn was blocked")
	default:
	}

	close(block)
	task.Stop()
	var nilTask *Task
	nilTask.Cancel()
}
