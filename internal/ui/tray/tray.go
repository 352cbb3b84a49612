package tray

import (
	"fmt"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnSelectPhase func(model.Phase)
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	phaseItems map[model.Phase]*fyne.MenuItem
	items      []*fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		phaseItems: make(map[model.Phase]*fyne.MenuItem, 3),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.items = []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.toggleItem,
		fyne.NewMenuItemSeparator(),
	}

	for _, phase := range model.Phases() {
		item := fyne.NewMenuItem(phase.Label(), func() {
			if manager.callbacks.OnSelectPhase != nil {
				manager.callbacks.OnSelectPhase(phase)
			}
		})
		manager.phaseItems[phase] = item
		manager.items = append(manager.items, item)
	}

	manager.items = append(manager.items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)

	manager.refreshMenu()
	return manager
}

// Update mirrors the timer state in the menu.
func (manager *Manager) Update(snapshot phasetimer.Snapshot) {
	manager.statusItem.Label = StatusLine(snapshot)
	if snapshot.Running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
	for phase, item := range manager.phaseItems {
		item.Checked = phase == snapshot.Phase
	}
	manager.refreshMenu()
}

// StatusLine renders the disabled status entry, e.g. "Pomodoro 24:59".
func StatusLine(snapshot phasetimer.Snapshot) string {
	status := fmt.Sprintf("%s %s", snapshot.Phase.Label(), format.Clock(snapshot.Remaining))
	if !snapshot.Running {
		status += " (paused)"
	}
	return status
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomodoro", manager.items...))
	}
}
