// Package ports defines the interfaces (driven and driving ports)
// between the timer core and its infrastructure, following hexagonal
// architecture principles.
package ports

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel stops the task. Canceling an already-fired or
	// already-canceled task is a no-op.
	Cancel()
}

// Scheduler delivers time-driven callbacks. The timer core never reads
// a wall clock; ticks and deferred starts arrive through this port so
// tests can drive them directly.
// This is a driven port (implemented by adapters).
type Scheduler interface {
	// Every invokes fn repeatedly at the given interval until the
	// returned task is canceled.
	Every(interval time.Duration, fn func()) Task

	// After invokes fn once after the given delay unless the returned
	// task is canceled first.
	After(delay time.Duration, fn func()) Task
}
