package tray

import "testing"

func TestNew(t *testing.T) {
	tr := New()
	if tr == nil {
		t.Fatal("New returned nil")
	}
	if !tr.IsEnabled() {
		t.Error("tray should start enabled")
	}
}

func TestTray_Callbacks(t *testing.T) {
	tr := New()

	var switched, recalibrated, reset, emergency, dashboard bool
	tr.OnSwitchMode(func() { switched = true })
	tr.OnRecalibrate(func() { recalibrated = true })
	tr.OnResetCounters(func() { reset = true })
	tr.OnEmergency(func() { emergency = true })
	tr.OnDashboard(func() { dashboard = true })

	tr.handleSwitchMode()
	tr.handleRecalibrate()
	tr.handleResetCounters()
	tr.handleEmergency()
	tr.handleDashboard()

	if !switched || !recalibrated || !reset || !emergency || !dashboard {
		t.Errorf("callbacks not invoked: switch=%v recalibrate=%v reset=%v emergency=%v dashboard=%v",
			switched, recalibrated, reset, emergency, dashboard)
	}
}

func TestTray_CallbacksUnset(t *testing.T) {
	tr := New()

	// Unset callbacks must not panic
	tr.handleSwitchMode()
	tr.handleRecalibrate()
	tr.handleResetCounters()
	tr.handleEmergency()
	tr.handleDashboard()
}

func TestTray_StatusUpdatesBeforeReady(t *testing.T) {
	tr := New()

	// Menu items don't exist until systray is ready; updates are dropped
	tr.SetStatus("Compressions: 5")
	tr.SetMode("SIDE_VIEW")
}
