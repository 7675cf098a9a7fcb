package domain

import (
	"time"
)

// SessionType represents the kind of interval the timer is counting down.
type SessionType string

const (
	SessionTypeFocus      SessionType = "focus"
	SessionTypeShortBreak SessionType = "short_break"
	SessionTypeLongBreak  SessionType = "long_break"
)

// IsBreak returns true for either break type.
func (t SessionType) IsBreak() bool {
	return t == SessionTypeShortBreak || t == SessionTypeLongBreak
}

// Label returns a human-readable label for the session type.
func (t SessionType) Label() string {
	switch t {
	case SessionTypeFocus:
		return "Focus"
	case SessionTypeShortBreak:
		return "Short Break"
	case SessionTypeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// SessionRecord is the persisted trace of a completed interval. The live
// countdown itself is never persisted; records exist only for history and
// daily statistics.
type SessionRecord struct {
	ID            string
	Type          SessionType
	Duration      time.Duration
	StartedAt     time.Time
	CompletedAt   time.Time
	GitBranch     string
	GitCommit     string
	GitRepository string
	Note          string
}

// NewSessionRecord creates a record for an interval that began at startedAt.
func NewSessionRecord(sessionType SessionType, duration time.Duration, startedAt time.Time) *SessionRecord {
	return &SessionRecord{
		ID:        generateID(),
		Type:      sessionType,
		Duration:  duration,
		StartedAt: startedAt,
	}
}

// SetGitContext stores git information captured when the interval started.
func (r *SessionRecord) SetGitContext(branch, commit, repository string) {
	r.GitBranch = branch
	r.GitCommit = commit
	r.GitRepository = repository
}

// DailyStats aggregates completed intervals for a single day.
type DailyStats struct {
	Date           time.Time
	FocusSessions  int
	BreaksTaken    int
	TotalFocusTime time.Duration
}
