package ports

import (
	"context"

	"github.com/dvidx/focusdial/internal/domain"
)

// SnapshotObserver receives a state snapshot after every change.
type SnapshotObserver func(domain.Snapshot)

// TimerController is the inbound surface the presentation layer drives.
// Every operation is total: invalid inputs and wrong-state calls are
// deliberate no-ops, never errors.
// This is a driving port (implemented by the service layer).
type TimerController interface {
	// Toggle starts or pauses the countdown.
	Toggle()

	// Restart resets the cycle to an idle Focus session.
	Restart()

	// SetDurationFromAngle selects a duration from a dial position in
	// degrees. Ignored while running.
	SetDurationFromAngle(degrees float64)

	// AdjustMinutes nudges the idle selection by whole minutes.
	AdjustMinutes(delta int)

	// ApplySettings replaces the timer configuration. Ignored while
	// running.
	ApplySettings(settings domain.Settings)

	// Snapshot returns the current state for rendering.
	Snapshot() domain.Snapshot

	// Subscribe registers an observer for state changes.
	Subscribe(o SnapshotObserver)

	// AnnotateLastFocus attaches a note to the most recently completed
	// focus session.
	AnnotateLastFocus(ctx context.Context, note string) error

	// TodayStats returns aggregated statistics for today.
	TodayStats(ctx context.Context) (*domain.DailyStats, error)
}
