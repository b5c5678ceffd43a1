// Package tray provides a macOS system tray interface for the CPR coaching system.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the macOS system tray application.
type Tray struct {
	onToggle        func(enabled bool)
	onSwitchMode    func()
	onResetCounters func()
	onRecalibrate   func()
	onEmergency     func()
	onDashboard     func()
	onQuit          func()
	enabled         bool
	mu              sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem
	menuMode   *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when coaching is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSwitchMode sets the callback for the camera mode switch menu item.
func (t *Tray) OnSwitchMode(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSwitchMode = fn
}

// OnResetCounters sets the callback for the reset counters menu item.
func (t *Tray) OnResetCounters(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResetCounters = fn
}

// OnRecalibrate sets the callback for the recalibrate baseline menu item.
func (t *Tray) OnRecalibrate(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRecalibrate = fn
}

// OnEmergency sets the callback for the emergency call menu item.
func (t *Tray) OnEmergency(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEmergency = fn
}

// OnDashboard sets the callback for the dashboard menu item.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("CPR Coach")
	systray.SetTooltip("CPR Coaching Assistant")

	t.menuToggle = systray.AddMenuItem("● Coaching On", "Toggle coaching")
	systray.AddSeparator()

	t.menuStatus = systray.AddMenuItem("Compressions: 0", "Session status")
	t.menuStatus.Disable()
	t.menuMode = systray.AddMenuItem("Mode: OVERHEAD", "Current camera mode")
	t.menuMode.Disable()
	systray.AddSeparator()

	menuSwitchMode := systray.AddMenuItem("Switch Camera Mode", "Toggle between overhead and side view")
	menuRecalibrate := systray.AddMenuItem("Recalibrate Baseline", "Clear the chest baseline")
	menuReset := systray.AddMenuItem("Reset Counters", "Clear compression counters")
	systray.AddSeparator()

	menuEmergency := systray.AddMenuItem("Emergency Call", "Simulate calling emergency services")
	systray.AddSeparator()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open dashboard in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit CPR Coach")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSwitchMode.ClickedCh:
				t.handleSwitchMode()
			case <-menuRecalibrate.ClickedCh:
				t.handleRecalibrate()
			case <-menuReset.ClickedCh:
				t.handleResetCounters()
			case <-menuEmergency.ClickedCh:
				t.handleEmergency()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleSwitchMode handles the camera mode switch menu item click.
func (t *Tray) handleSwitchMode() {
	t.mu.RLock()
	callback := t.onSwitchMode
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleRecalibrate handles the recalibrate baseline menu item click.
func (t *Tray) handleRecalibrate() {
	t.mu.RLock()
	callback := t.onRecalibrate
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleResetCounters handles the reset counters menu item click.
func (t *Tray) handleResetCounters() {
	t.mu.RLock()
	callback := t.onResetCounters
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleEmergency handles the emergency call menu item click.
func (t *Tray) handleEmergency() {
	t.mu.RLock()
	callback := t.onEmergency
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleDashboard handles the dashboard menu item click.
func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	// Update menu item text based on new state
	if enabled {
		t.menuToggle.SetTitle("● Coaching On")
	} else {
		t.menuToggle.SetTitle("○ Coaching Off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetStatus updates the session status line in the menu.
func (t *Tray) SetStatus(status string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		t.menuStatus.SetTitle(status)
	}
}

// SetMode updates the camera mode line in the menu.
func (t *Tray) SetMode(mode string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuMode != nil {
		t.menuMode.SetTitle("Mode: " + mode)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
