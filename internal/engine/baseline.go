package engine

// BaselineTracker holds the vertical rest position of the compressing hand.
// The first position observed after entering side-view mode becomes the
// baseline; later calibration calls are no-ops until the tracker is cleared.
//
// The calibrated flag is explicit so that a baseline of exactly 0 (hand at
// the top edge of the frame) is still a valid baseline.
type BaselineTracker struct {
	referenceY float64
	calibrated bool
}

// Calibrate sets the reference position if none is set. It returns true if
// this call established the baseline, false if one was already set.
func (b *BaselineTracker) Calibrate(y float64) bool {
	if b.calibrated {
		return false
	}
	b.referenceY = y
	b.calibrated = true
	return true
}

// Clear unsets the baseline so the next sample recalibrates.
func (b *BaselineTracker) Clear() {
	b.referenceY = 0
	b.calibrated = false
}

// IsCalibrated reports whether a baseline has been established.
func (b *BaselineTracker) IsCalibrated() bool {
	return b.calibrated
}

// Reference returns the baseline position and whether one is set.
func (b *BaselineTracker) Reference() (float64, bool) {
	return b.referenceY, b.calibrated
}
