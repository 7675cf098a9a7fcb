// Package services contains the use-case layer that wires the timer
// kernel to its schedulers, storage and notification adapters.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dvidx/focusdial/internal/domain"
	"github.com/dvidx/focusdial/internal/ports"
)

const (
	// tickInterval is the cadence of countdown updates.
	tickInterval = time.Second

	// autoStartDelay is the settle time between a completed interval and
	// an automatic start of the next one.
	autoStartDelay = time.Second
)

// TimerService drives a SessionTimer: it owns the repeating tick while
// the countdown runs, the cancelable deferred auto-start, the completion
// notification, and the history records for finished intervals. All
// mutations are serialized through an internal mutex; the kernel itself
// stays single-threaded.
type TimerService struct {
	mu        sync.Mutex
	timer     *domain.SessionTimer
	scheduler ports.Scheduler
	notifier  ports.Notifier
	storage   ports.Storage
	git       ports.GitDetector

	workingDir string

	ticker       ports.Task
	pendingStart ports.Task

	startedAt   time.Time
	gitInfo     *ports.GitInfo
	lastFocusID string

	observers []ports.SnapshotObserver
}

// Ensure TimerService implements the driving port.
var _ ports.TimerController = (*TimerService)(nil)

// NewTimerService creates a service around an idle Focus timer loaded
// from the given settings. Notifier, storage and git detector may be nil.
func NewTimerService(settings domain.Settings, scheduler ports.Scheduler, notifier ports.Notifier, storage ports.Storage, git ports.GitDetector, workingDir string) *TimerService {
	return &TimerService{
		timer:      domain.NewSessionTimer(settings),
		scheduler:  scheduler,
		notifier:   notifier,
		storage:    storage,
		git:        git,
		workingDir: workingDir,
	}
}

// Subscribe registers an observer for state changes. Observers are
// invoked outside the service lock and must not assume ordering across
// concurrent mutations.
func (s *TimerService) Subscribe(o ports.SnapshotObserver) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Snapshot returns the current state for rendering.
func (s *TimerService) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Toggle starts or pauses the countdown. Toggling a zero-length
// selection is a no-op. Manual intervention cancels a pending
// auto-start.
func (s *TimerService) Toggle() {
	s.mu.Lock()
	s.cancelPendingLocked()

	wasRunning := s.timer.Running()
	s.timer.Toggle()

	switch {
	case s.timer.Running() && !wasRunning:
		s.beginIntervalLocked()
	case wasRunning && !s.timer.Running():
		s.stopTickingLocked()
	}
	s.publishLocked()
}

// Tick advances the countdown by one second. The scheduler calls this
// once per second while running; tests call it directly.
func (s *TimerService) Tick() {
	s.mu.Lock()

	planned := time.Duration(s.timer.TotalSeconds()) * time.Second
	ev, completed := s.timer.Tick()
	if completed {
		s.stopTickingLocked()
		s.recordCompletionLocked(ev, planned)
		if s.notifier != nil {
			s.notifier.SessionComplete(ev.From, ev.To)
		}
		if ev.AutoStart {
			s.pendingStart = s.scheduler.After(autoStartDelay, s.autoStart)
		}
	}
	s.publishLocked()
}

// autoStart fires the deferred start scheduled after a completion.
func (s *TimerService) autoStart() {
	s.mu.Lock()
	s.pendingStart = nil
	if !s.timer.Running() {
		s.timer.Toggle()
		if s.timer.Running() {
			s.beginIntervalLocked()
		}
	}
	s.publishLocked()
}

// Restart resets the cycle to an idle Focus session and a zero focus
// count.
func (s *TimerService) Restart() {
	s.mu.Lock()
	s.cancelPendingLocked()
	s.stopTickingLocked()
	s.timer.Restart()
	s.startedAt = time.Time{}
	s.gitInfo = nil
	s.publishLocked()
}

// SetDurationFromAngle selects a duration from a dial position. Ignored
// while running.
func (s *TimerService) SetDurationFromAngle(degrees float64) {
	s.mu.Lock()
	if !s.timer.Running() {
		s.cancelPendingLocked()
		s.timer.SetDurationFromAngle(degrees)
		s.startedAt = time.Time{}
	}
	s.publishLocked()
}

// AdjustMinutes nudges the idle selection by whole minutes, expressed as
// a dial rotation. Ignored while running.
func (s *TimerService) AdjustMinutes(delta int) {
	s.mu.Lock()
	if !s.timer.Running() {
		s.cancelPendingLocked()
		angle := s.timer.AngleDegrees() + float64(delta)*domain.DegreesPerMinute
		if angle < 0 {
			angle = 0
		}
		if angle > 359 {
			angle = 359
		}
		s.timer.SetDurationFromAngle(angle)
		s.startedAt = time.Time{}
	}
	s.publishLocked()
}

// ApplySettings replaces the timer configuration. Ignored while running.
func (s *TimerService) ApplySettings(settings domain.Settings) {
	s.mu.Lock()
	if !s.timer.Running() {
		s.cancelPendingLocked()
		s.timer.ApplySettings(settings.Normalized())
	}
	s.publishLocked()
}

// AnnotateLastFocus attaches a note to the most recently completed focus
// session.
func (s *TimerService) AnnotateLastFocus(ctx context.Context, note string) error {
	s.mu.Lock()
	id := s.lastFocusID
	s.mu.Unlock()

	if id == "" {
		return fmt.Errorf("no completed focus session to annotate")
	}
	if s.storage == nil {
		return fmt.Errorf("history storage is not configured")
	}
	return s.storage.Sessions().SetNote(ctx, id, note)
}

// History returns records completed within the last days days.
func (s *TimerService) History(ctx context.Context, days int) ([]*domain.SessionRecord, error) {
	if s.storage == nil {
		return nil, nil
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.storage.Sessions().FindRecent(ctx, since)
}

// SearchHistory returns records whose note fuzzily matches the query.
func (s *TimerService) SearchHistory(ctx context.Context, query string) ([]*domain.SessionRecord, error) {
	if s.storage == nil {
		return nil, nil
	}
	return s.storage.Sessions().SearchNotes(ctx, query)
}

// TodayStats returns aggregated statistics for today.
func (s *TimerService) TodayStats(ctx context.Context) (*domain.DailyStats, error) {
	if s.storage == nil {
		return &domain.DailyStats{Date: time.Now()}, nil
	}
	return s.storage.Sessions().GetDailyStats(ctx, time.Now())
}

// Close stops tick delivery and cancels any deferred start.
func (s *TimerService) Close() {
	s.mu.Lock()
	s.cancelPendingLocked()
	s.stopTickingLocked()
	s.mu.Unlock()
}

// beginIntervalLocked starts tick delivery and captures the start
// context for the history record, unless the interval is resuming from
// a pause.
func (s *TimerService) beginIntervalLocked() {
	s.ticker = s.scheduler.Every(tickInterval, s.Tick)
	if !s.startedAt.IsZero() {
		return
	}
	s.startedAt = time.Now()
	s.gitInfo = nil
	if s.git != nil && s.git.IsAvailable() {
		if info, err := s.git.Detect(context.Background(), s.workingDir); err == nil {
			s.gitInfo = info
		}
	}
}

// recordCompletionLocked persists the finished interval.
func (s *TimerService) recordCompletionLocked(ev domain.Completion, planned time.Duration) {
	if s.storage == nil {
		s.startedAt = time.Time{}
		s.gitInfo = nil
		return
	}

	startedAt := s.startedAt
	if startedAt.IsZero() {
		startedAt = time.Now().Add(-planned)
	}
	record := domain.NewSessionRecord(ev.From, planned, startedAt)
	record.CompletedAt = time.Now()
	if s.gitInfo != nil {
		record.SetGitContext(s.gitInfo.Branch, s.gitInfo.Commit, s.gitInfo.Repository)
	}

	if err := s.storage.Sessions().Save(context.Background(), record); err == nil && ev.From == domain.SessionTypeFocus {
		s.lastFocusID = record.ID
	}

	s.startedAt = time.Time{}
	s.gitInfo = nil
}

func (s *TimerService) stopTickingLocked() {
	if s.ticker != nil {
		s.ticker.Cancel()
		s.ticker = nil
	}
}

func (s *TimerService) cancelPendingLocked() {
	if s.pendingStart != nil {
		s.pendingStart.Cancel()
		s.pendingStart = nil
	}
}

func (s *TimerService) snapshotLocked() domain.Snapshot {
	snap := s.timer.Snapshot()
	snap.AutoStartPending = s.pendingStart != nil
	return snap
}

// publishLocked releases the lock and notifies observers with the
// current snapshot. Callers must hold the lock and must not touch state
// afterwards.
func (s *TimerService) publishLocked() {
	snap := s.snapshotLocked()
	observers := make([]ports.SnapshotObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}
