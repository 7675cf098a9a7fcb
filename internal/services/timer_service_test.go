package services

import (
	"context"
	"testing"
	"time"

	"github.com/dvidx/focusdial/internal/adapters/storage"
	"github.com/dvidx/focusdial/internal/domain"
	"github.com/dvidx/focusdial/internal/ports"
)

type fakeTask struct {
	canceled bool
}

func (t *fakeTask) Cancel() { t.canceled = true }

// fakeScheduler hands tick and deferred-start callbacks back to the
// test, which fires them by hand.
type fakeScheduler struct {
	tickFn   func()
	tickTask *fakeTask

	deferredFn    func()
	deferredTask  *fakeTask
	deferredDelay time.Duration
}

func (f *fakeScheduler) Every(interval time.Duration, fn func()) ports.Task {
	f.tickFn = fn
	f.tickTask = &fakeTask{}
	return f.tickTask
}

func (f *fakeScheduler) After(delay time.Duration, fn func()) ports.Task {
	f.deferredFn = fn
	f.deferredTask = &fakeTask{}
	f.deferredDelay = delay
	return f.deferredTask
}

// fireDeferred delivers the pending deferred start, unless it was
// canceled first.
func (f *fakeScheduler) fireDeferred(t *testing.T) {
	t.Helper()
	if f.deferredFn == nil {
		t.Fatal("no deferred start scheduled")
	}
	fn := f.deferredFn
	task := f.deferredTask
	f.deferredFn = nil
	if !task.canceled {
		fn()
	}
}

type fakeNotifier struct {
	calls []domain.SessionType
}

func (n *fakeNotifier) SessionComplete(finished, next domain.SessionType) {
	n.calls = append(n.calls, finished)
}

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { store.Close() }
}

// drainFocus runs the current interval to completion via the scheduler's
// tick callback.
func drainFocus(t *testing.T, service *TimerService, sched *fakeScheduler) {
	t.Helper()
	if !service.Snapshot().Running {
		service.Toggle()
	}
	remaining := service.Snapshot().RemainingSeconds
	for i := 0; i < remaining; i++ {
		sched.tickFn()
	}
	if service.Snapshot().Running {
		t.Fatal("interval did not complete")
	}
}

func TestTimerService_ToggleStartsTicking(t *testing.T) {
	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, nil, nil, "")

	service.Toggle()

	if sched.tickFn == nil {
		t.Fatal("Toggle() did not schedule ticks")
	}
	if !service.Snapshot().Running {
		t.Error("Snapshot().Running = false, want true")
	}

	service.Toggle()
	if !sched.tickTask.canceled {
		t.Error("pausing did not cancel the tick schedule")
	}
}

func TestTimerService_TickCountsDown(t *testing.T) {
	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, nil, nil, "")

	service.Toggle()
	sched.tickFn()

	snap := service.Snapshot()
	if snap.RemainingSeconds != 25*60-1 {
		t.Errorf("RemainingSeconds = %d, want %d", snap.RemainingSeconds, 25*60-1)
	}
}

func TestTimerService_CompletionStopsAndNotifies(t *testing.T) {
	sched := &fakeScheduler{}
	notifier := &fakeNotifier{}
	service := NewTimerService(domain.DefaultSettings(), sched, notifier, nil, nil, "")

	service.SetDurationFromAngle(3) // one minute
	drainFocus(t, service, sched)

	if !sched.tickTask.canceled {
		t.Error("completion did not cancel the tick schedule")
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.calls))
	}
	if notifier.calls[0] != domain.SessionTypeFocus {
		t.Errorf("notified type = %v, want focus", notifier.calls[0])
	}

	snap := service.Snapshot()
	if snap.SessionType != domain.SessionTypeShortBreak {
		t.Errorf("SessionType = %v, want short_break", snap.SessionType)
	}
	if snap.AutoStartPending {
		t.Error("AutoStartPending = true with auto-start disabled")
	}
}

func TestTimerService_AutoStartAfterDelay(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AutoStartBreaks = true
	sched := &fakeScheduler{}
	service := NewTimerService(settings, sched, nil, nil, nil, "")

	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)

	if sched.deferredFn == nil {
		t.Fatal("no deferred start scheduled after completion")
	}
	if sched.deferredDelay != time.Second {
		t.Errorf("deferred delay = %v, want 1s", sched.deferredDelay)
	}
	if !service.Snapshot().AutoStartPending {
		t.Error("AutoStartPending = false while deferred start is scheduled")
	}

	sched.fireDeferred(t)

	snap := service.Snapshot()
	if !snap.Running {
		t.Error("deferred start did not start the break")
	}
	if snap.SessionType != domain.SessionTypeShortBreak {
		t.Errorf("SessionType = %v, want short_break", snap.SessionType)
	}
	if snap.AutoStartPending {
		t.Error("AutoStartPending = true after the start fired")
	}
}

func TestTimerService_ManualToggleCancelsAutoStart(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AutoStartBreaks = true
	sched := &fakeScheduler{}
	service := NewTimerService(settings, sched, nil, nil, nil, "")

	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)

	// The user starts the break by hand before the deferred start fires
	service.Toggle()

	if !sched.deferredTask.canceled {
		t.Error("manual toggle did not cancel the deferred start")
	}

	// A late delivery must not double-start
	sched.fireDeferred(t)
	snap := service.Snapshot()
	if !snap.Running {
		t.Error("break should still be running")
	}
	if snap.RemainingSeconds != 5*60 {
		t.Errorf("RemainingSeconds = %d, want %d", snap.RemainingSeconds, 5*60)
	}
}

func TestTimerService_DialAdjustCancelsAutoStart(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AutoStartBreaks = true
	sched := &fakeScheduler{}
	service := NewTimerService(settings, sched, nil, nil, nil, "")

	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)

	service.AdjustMinutes(1)

	if !sched.deferredTask.canceled {
		t.Error("dial adjustment did not cancel the deferred start")
	}
	if service.Snapshot().AutoStartPending {
		t.Error("AutoStartPending = true after manual intervention")
	}
}

func TestTimerService_AdjustMinutes(t *testing.T) {
	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, nil, nil, "")

	service.AdjustMinutes(5)
	if got := service.Snapshot().RemainingSeconds; got != 30*60 {
		t.Errorf("RemainingSeconds = %d, want %d", got, 30*60)
	}

	service.AdjustMinutes(-40)
	if got := service.Snapshot().RemainingSeconds; got != 0 {
		t.Errorf("RemainingSeconds = %d, want 0 (clamped at empty)", got)
	}

	// Clamped at the top of the dial rather than wrapping past zero
	service.SetDurationFromAngle(357)
	service.AdjustMinutes(5)
	if got := service.Snapshot().RemainingSeconds; got <= 357/3*60 {
		t.Errorf("RemainingSeconds = %d, want a value near the dial maximum", got)
	}

	// Ignored while running
	service.SetDurationFromAngle(75)
	service.Toggle()
	service.AdjustMinutes(1)
	if got := service.Snapshot().RemainingSeconds; got != 25*60 {
		t.Errorf("RemainingSeconds = %d, want %d", got, 25*60)
	}
}

func TestTimerService_Restart(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AutoStartBreaks = true
	sched := &fakeScheduler{}
	service := NewTimerService(settings, sched, nil, nil, nil, "")

	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)

	service.Restart()

	if !sched.deferredTask.canceled {
		t.Error("restart did not cancel the deferred start")
	}
	snap := service.Snapshot()
	if snap.Running {
		t.Error("Running = true after restart")
	}
	if snap.SessionType != domain.SessionTypeFocus {
		t.Errorf("SessionType = %v, want focus", snap.SessionType)
	}
	if snap.CompletedFocusCount != 0 {
		t.Errorf("CompletedFocusCount = %d, want 0", snap.CompletedFocusCount)
	}
}

func TestTimerService_RecordsCompletedSessions(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, store, nil, "")
	ctx := context.Background()

	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)

	records, err := store.Sessions().FindRecent(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("FindRecent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Type != domain.SessionTypeFocus {
		t.Errorf("Type = %v, want focus", records[0].Type)
	}
	if records[0].Duration != time.Minute {
		t.Errorf("Duration = %v, want 1m", records[0].Duration)
	}
	if records[0].CompletedAt.IsZero() {
		t.Error("CompletedAt is zero")
	}
}

func TestTimerService_AnnotateLastFocus(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, store, nil, "")
	ctx := context.Background()

	if err := service.AnnotateLastFocus(ctx, "too early"); err == nil {
		t.Error("AnnotateLastFocus() with no history should fail")
	}

	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)

	if err := service.AnnotateLastFocus(ctx, "wrote the parser"); err != nil {
		t.Fatalf("AnnotateLastFocus() error = %v", err)
	}

	records, err := store.Sessions().FindRecent(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("FindRecent() error = %v", err)
	}
	if len(records) != 1 || records[0].Note != "wrote the parser" {
		t.Errorf("Note = %q, want %q", records[0].Note, "wrote the parser")
	}
}

func TestTimerService_TodayStats(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, store, nil, "")
	ctx := context.Background()

	// Two focus sessions and the break between them
	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)
	drainFocus(t, service, sched) // short break
	service.SetDurationFromAngle(3)
	drainFocus(t, service, sched)

	stats, err := service.TodayStats(ctx)
	if err != nil {
		t.Fatalf("TodayStats() error = %v", err)
	}
	if stats.FocusSessions != 2 {
		t.Errorf("FocusSessions = %d, want 2", stats.FocusSessions)
	}
	if stats.BreaksTaken != 1 {
		t.Errorf("BreaksTaken = %d, want 1", stats.BreaksTaken)
	}
	if stats.TotalFocusTime != 2*time.Minute {
		t.Errorf("TotalFocusTime = %v, want 2m", stats.TotalFocusTime)
	}
}

func TestTimerService_ObserversSeeEveryChange(t *testing.T) {
	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, nil, nil, "")

	var snaps []domain.Snapshot
	service.Subscribe(func(snap domain.Snapshot) {
		snaps = append(snaps, snap)
	})

	service.Toggle()
	sched.tickFn()
	service.Toggle()

	if len(snaps) != 3 {
		t.Fatalf("observer calls = %d, want 3", len(snaps))
	}
	if !snaps[0].Running {
		t.Error("first snapshot should be running")
	}
	if snaps[1].RemainingSeconds != 25*60-1 {
		t.Errorf("second snapshot RemainingSeconds = %d, want %d", snaps[1].RemainingSeconds, 25*60-1)
	}
	if snaps[2].Running {
		t.Error("third snapshot should be paused")
	}
}

func TestTimerService_PauseKeepsStartContext(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	sched := &fakeScheduler{}
	service := NewTimerService(domain.DefaultSettings(), sched, nil, store, nil, "")

	service.SetDurationFromAngle(3)
	service.Toggle()
	for i := 0; i < 30; i++ {
		sched.tickFn()
	}
	service.Toggle() // pause
	service.Toggle() // resume
	for i := 0; i < 30; i++ {
		sched.tickFn()
	}

	records, err := store.Sessions().FindRecent(context.Background(), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("FindRecent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].StartedAt.After(records[0].CompletedAt) {
		t.Error("StartedAt after CompletedAt")
	}
}
