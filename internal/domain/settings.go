package domain

// Settings holds the configured interval durations and auto-start policy.
// Values are normalized at the configuration boundary; the timer assumes
// every duration field is positive and the interval is at least 2.
type Settings struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	AutoStartBreaks   bool
	AutoStartFocus    bool
}

// DefaultSettings returns the standard pomodoro-style configuration.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
	}
}

// Normalized clamps all fields into their valid ranges: minute fields to
// [1, DialMinutes] and the long-break interval to >= 2.
func (s Settings) Normalized() Settings {
	s.FocusMinutes = clampMinutes(s.FocusMinutes)
	s.ShortBreakMinutes = clampMinutes(s.ShortBreakMinutes)
	s.LongBreakMinutes = clampMinutes(s.LongBreakMinutes)
	if s.LongBreakInterval < 2 {
		s.LongBreakInterval = 2
	}
	return s
}

// MinutesFor returns the configured duration for the given session type.
func (s Settings) MinutesFor(sessionType SessionType) int {
	switch sessionType {
	case SessionTypeShortBreak:
		return s.ShortBreakMinutes
	case SessionTypeLongBreak:
		return s.LongBreakMinutes
	default:
		return s.FocusMinutes
	}
}

func clampMinutes(m int) int {
	if m < 1 {
		return 1
	}
	if m > DialMinutes {
		return DialMinutes
	}
	return m
}
