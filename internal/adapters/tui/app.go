package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dvidx/focusdial/internal/config"
	"github.com/dvidx/focusdial/internal/domain"
	"github.com/dvidx/focusdial/internal/ports"
)

// App runs the dial interface on top of a timer controller.
type App struct {
	program *tea.Program
	mu      sync.RWMutex
}

// Options configures the dial interface.
type Options struct {
	Theme config.ThemeConfig

	// NotificationsEnabled seeds the tab-key switch; Toggle receives
	// the new value when the user flips it.
	NotificationsEnabled bool
	NotificationToggle   func(bool)
}

// NewApp creates a new dial interface runner.
func NewApp() *App {
	return &App{}
}

// Run starts the interface and blocks until the user quits. State
// snapshots published by the controller are forwarded to the running
// program as messages.
func (a *App) Run(ctx context.Context, ctrl ports.TimerController, opts Options) error {
	model := NewModel(ctrl, opts.Theme)
	model.SetNotificationToggle(opts.NotificationsEnabled, opts.NotificationToggle)

	a.mu.Lock()
	a.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	a.mu.Unlock()

	ctrl.Subscribe(func(snap domain.Snapshot) {
		a.mu.RLock()
		program := a.program
		a.mu.RUnlock()
		if program != nil {
			program.Send(snapshotMsg{snap: snap})
		}
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		a.mu.RLock()
		program := a.program
		a.mu.RUnlock()
		if program != nil {
			program.Quit()
		}
	}()

	if _, err := a.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop quits the running interface.
func (a *App) Stop() {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.program != nil {
		a.program.Quit()
	}
}
