package domain

import "fmt"

// Completion describes a finished interval and the transition that
// follows it. AutoStart reports whether the configured auto-start policy
// wants the next interval started after a short settle delay; the caller
// owns scheduling and may cancel it on manual intervention.
type Completion struct {
	From      SessionType
	To        SessionType
	AutoStart bool
}

// SessionTimer is the countdown kernel. It owns the remaining time, the
// running flag, the active session type, the completed-focus count and
// the configured durations. It is deterministic: ticks and deferred
// starts are delivered by the caller, never by a wall clock.
//
// SessionTimer is not safe for concurrent use; callers serialize access.
type SessionTimer struct {
	remaining      int
	total          int
	running        bool
	sessionType    SessionType
	completedFocus int
	settings       Settings
}

// NewSessionTimer creates an idle Focus timer loaded with the configured
// focus duration.
func NewSessionTimer(settings Settings) *SessionTimer {
	t := &SessionTimer{
		sessionType: SessionTypeFocus,
		settings:    settings,
	}
	t.loadDuration()
	return t
}

// SetDurationFromAngle selects a new duration from a dial position.
// Ignored while the countdown is running; the dial is a selection
// control, not a seek control. A zero angle selects a zero-length
// session, which is allowed but cannot be started.
func (t *SessionTimer) SetDurationFromAngle(degrees float64) {
	if t.running {
		return
	}
	minutes := MinutesForAngle(NormalizeAngle(degrees))
	t.remaining = minutes * 60
	t.total = t.remaining
}

// Toggle flips between running and paused. Starting a zero-length
// countdown is a no-op. On start the total is re-captured from the
// remaining time, so progress is measured from the moment of starting.
func (t *SessionTimer) Toggle() {
	if !t.running && t.remaining == 0 {
		return
	}
	t.running = !t.running
	if t.running {
		t.total = t.remaining
	}
}

// Tick advances the countdown by one second. It has no effect unless the
// timer is running. When the countdown reaches zero the timer stops,
// rotates to the next session type and reports the completion; ok is
// true exactly once per completed interval.
func (t *SessionTimer) Tick() (ev Completion, ok bool) {
	if !t.running {
		return Completion{}, false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return Completion{}, false
	}
	t.running = false
	return t.complete(), true
}

// complete rotates to the next session type and loads its duration.
func (t *SessionTimer) complete() Completion {
	ev := Completion{From: t.sessionType}

	if t.sessionType == SessionTypeFocus {
		t.completedFocus++
		if t.completedFocus%t.settings.LongBreakInterval == 0 {
			t.sessionType = SessionTypeLongBreak
		} else {
			t.sessionType = SessionTypeShortBreak
		}
		ev.AutoStart = t.settings.AutoStartBreaks
	} else {
		t.sessionType = SessionTypeFocus
		ev.AutoStart = t.settings.AutoStartFocus
	}

	t.loadDuration()
	ev.To = t.sessionType
	ev.AutoStart = ev.AutoStart && t.remaining > 0
	return ev
}

// Restart stops any running countdown and resets the cycle to an idle
// Focus session with the configured duration and a zero focus count.
func (t *SessionTimer) Restart() {
	t.running = false
	t.sessionType = SessionTypeFocus
	t.completedFocus = 0
	t.loadDuration()
}

// ApplySettings replaces the configuration. Silently ignored while the
// countdown is running. If the current session type's configured
// duration changed, the countdown is reloaded to match.
func (t *SessionTimer) ApplySettings(settings Settings) {
	if t.running {
		return
	}
	before := t.settings.MinutesFor(t.sessionType)
	t.settings = settings
	if settings.MinutesFor(t.sessionType) != before {
		t.loadDuration()
	}
}

// loadDuration loads the configured duration for the current session
// type and moves the dial indicator to match.
func (t *SessionTimer) loadDuration() {
	t.remaining = t.settings.MinutesFor(t.sessionType) * 60
	t.total = t.remaining
}

// Running reports whether the countdown is active.
func (t *SessionTimer) Running() bool { return t.running }

// SessionType returns the active session type.
func (t *SessionTimer) SessionType() SessionType { return t.sessionType }

// RemainingSeconds returns the current countdown value.
func (t *SessionTimer) RemainingSeconds() int { return t.remaining }

// TotalSeconds returns the duration the progress ring is measured against.
func (t *SessionTimer) TotalSeconds() int { return t.total }

// CompletedFocusCount returns the number of focus sessions completed
// since the last restart.
func (t *SessionTimer) CompletedFocusCount() int { return t.completedFocus }

// Settings returns the active configuration.
func (t *SessionTimer) Settings() Settings { return t.settings }

// Progress returns the remaining fraction of the interval (1 at full,
// 0 when done or when no duration is selected).
func (t *SessionTimer) Progress() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.remaining) / float64(t.total)
}

// AngleDegrees returns the dial position: in lockstep with the
// remaining time while idle, the countdown progress mapped onto the
// dial while running.
func (t *SessionTimer) AngleDegrees() float64 {
	if t.running {
		return t.Progress() * 360
	}
	return AngleForSeconds(t.remaining)
}

// MinutesLabel returns the remaining whole minutes, zero-padded.
func (t *SessionTimer) MinutesLabel() string {
	return fmt.Sprintf("%02d", t.remaining/60)
}

// SecondsLabel returns the remaining seconds within the minute, zero-padded.
func (t *SessionTimer) SecondsLabel() string {
	return fmt.Sprintf("%02d", t.remaining%60)
}

// TimeLabel returns the remaining time as "MM:SS".
func (t *SessionTimer) TimeLabel() string {
	return t.MinutesLabel() + ":" + t.SecondsLabel()
}

// Snapshot is an immutable view of the timer state for rendering.
type Snapshot struct {
	SessionType         SessionType
	Running             bool
	RemainingSeconds    int
	TotalSeconds        int
	CompletedFocusCount int
	Progress            float64
	AngleDegrees        float64
	MinutesLabel        string
	SecondsLabel        string
	TimeLabel           string
	Settings            Settings

	// AutoStartPending is set by the orchestration layer while a
	// deferred auto-start is scheduled but has not fired.
	AutoStartPending bool
}

// Snapshot captures the current state for the presentation layer.
func (t *SessionTimer) Snapshot() Snapshot {
	return Snapshot{
		SessionType:         t.sessionType,
		Running:             t.running,
		RemainingSeconds:    t.remaining,
		TotalSeconds:        t.total,
		CompletedFocusCount: t.completedFocus,
		Progress:            t.Progress(),
		AngleDegrees:        t.AngleDegrees(),
		MinutesLabel:        t.MinutesLabel(),
		SecondsLabel:        t.SecondsLabel(),
		TimeLabel:           t.TimeLabel(),
		Settings:            t.settings,
	}
}
