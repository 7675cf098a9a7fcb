package ports

import "github.com/dvidx/focusdial/internal/domain"

// Notifier is the completion side channel: fired once per finished
// interval, fire-and-forget. This is a driven port.
type Notifier interface {
	// SessionComplete signals that an interval of the given type
	// finished and the next one is loaded.
	SessionComplete(finished, next domain.SessionType)
}
