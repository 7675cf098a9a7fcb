// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/dvidx/focusdial/internal/config"
	"github.com/dvidx/focusdial/internal/domain"
	"github.com/dvidx/focusdial/internal/ports"
)

// Notifier handles desktop notifications for completed intervals.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// SessionComplete displays a notification for a finished interval.
func (n *Notifier) SessionComplete(finished, next domain.SessionType) {
	if n.cfg == nil || !n.cfg.Enabled {
		return
	}

	var title, message string
	if finished == domain.SessionTypeFocus {
		title = "🍅 Focus Complete!"
		message = fmt.Sprintf("Great work. Up next: %s.", next.Label())
	} else {
		title = "☕ Break Over!"
		message = fmt.Sprintf("Your %s is done. Ready to focus?", finished.Label())
	}

	// Fire-and-forget side channel; a failed notification never
	// surfaces to the timer.
	_ = beeep.Notify(title, message, "")
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

// SetEnabled toggles notifications at runtime.
func (n *Notifier) SetEnabled(enabled bool) {
	if n.cfg != nil {
		n.cfg.Enabled = enabled
	}
}
