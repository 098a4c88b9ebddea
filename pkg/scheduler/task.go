package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// IntervalFunc returns the delay before the next tick. It is called once per tick,
// so randomized intervals are re-drawn every step.
type IntervalFunc func() time.Duration

// Every returns a fixed interval.
func Every(d time.Duration) IntervalFunc {
	return func() time.Duration { return d }
}

// TickFunc is one step of a periodic task. Returning false stops the task.
// Implementations should check ctx.Err() after acquiring any lock they share
// with Stop callers, and skip the step when the task was stopped meanwhile.
type TickFunc func(ctx context.Context) bool

// Task runs a TickFunc periodically on its own goroutine until stopped.
type Task struct {
	name     string
	interval IntervalFunc
	tick     TickFunc

	mu  sync.Mutex
	cur *run
	wg  sync.WaitGroup
}

type run struct {
	cancel context.CancelFunc
}

// NewTask creates a stopped task.
func NewTask(name string, interval IntervalFunc, tick TickFunc) *Task {
	return &Task{
		name:     name,
		interval: interval,
		tick:     tick,
	}
}

// Name returns the task name used in logs.
func (t *Task) Name() string {
	return t.name
}

// Start launches the task. It returns false when the task is already running.
func (t *Task) Start(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur != nil {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel}
	t.cur = r

	t.wg.Add(1)
	go t.loop(ctx, r)
	logrus.Debugf("task %s started", t.name)
	return true
}

// Stop cancels the task without waiting for its goroutine to exit,
// so it is safe to call while holding a lock the tick function also takes.
// Use Wait to block until the goroutine is gone.
func (t *Task) Stop() {
	t.mu.Lock()
	r := t.cur
	t.cur = nil
	t.mu.Unlock()

	if r != nil {
		r.cancel()
		logrus.Debugf("task %s stopped", t.name)
	}
}

// Running reports whether the task is scheduled.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur != nil
}

// Wait stops the task and blocks until every goroutine it started has exited.
// It must not be called while holding a lock the tick function takes.
func (t *Task) Wait() {
	t.Stop()
	t.wg.Wait()
}

func (t *Task) loop(ctx context.Context, r *run) {
	defer t.wg.Done()

	for {
		timer := time.NewTimer(t.interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			t.finish(r)
			return
		case <-timer.C:
		}

		if !t.tick(ctx) {
			t.finish(r)
			return
		}
	}
}

// finish clears r if it is still the current run, which happens when the
// tick function ended the task or the parent context was cancelled.
func (t *Task) finish(r *run) {
	t.mu.Lock()
	if t.cur == r {
		t.cur = nil
		logrus.Debugf("task %s finished", t.name)
	}
	t.mu.Unlock()
	r.cancel()
}
