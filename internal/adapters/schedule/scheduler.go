// Package schedule provides the real-time implementation of the
// scheduler port on top of time.Ticker and time.AfterFunc.
package schedule

import (
	"sync"
	"time"

	"github.com/dvidx/focusdial/internal/ports"
)

// Scheduler implements ports.Scheduler using the wall clock.
type Scheduler struct{}

// New creates a new wall-clock scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Ensure Scheduler implements ports.Scheduler.
var _ ports.Scheduler = (*Scheduler)(nil)

// Every invokes fn at the given interval until canceled.
func (s *Scheduler) Every(interval time.Duration, fn func()) ports.Task {
	t := &repeatingTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()
	return t
}

// After invokes fn once after the delay unless canceled first.
func (s *Scheduler) After(delay time.Duration, fn func()) ports.Task {
	return &oneShotTask{timer: time.AfterFunc(delay, fn)}
}

type repeatingTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *repeatingTask) Cancel() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

type oneShotTask struct {
	timer *time.Timer
}

func (t *oneShotTask) Cancel() {
	t.timer.Stop()
}
