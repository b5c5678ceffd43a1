package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Activity monitoring constants
const (
	// activityBlurSize is the kernel size for Gaussian blur (21x21)
	activityBlurSize = 21
	// activityDiffThreshold is the binary threshold for difference detection
	activityDiffThreshold = 25
	// DefaultActivityThreshold is the percentage of changed pixels that
	// counts as activity in the frame.
	DefaultActivityThreshold = 1.0
	// DefaultActivityHold keeps the monitor reporting active for this long
	// after the last detected movement. Compressions pause briefly at the
	// top and bottom of each cycle and the frame rate should not drop there.
	DefaultActivityHold = 2 * time.Second
)

// ActivityMonitor decides whether someone is actively practicing in front
// of the camera, using frame differencing with Gaussian blur for noise
// reduction. The pipeline drops to a low frame rate while the scene is
// still and raises it when practice resumes.
type ActivityMonitor struct {
	threshold   float64
	hold        time.Duration
	prevGray    gocv.Mat
	initialized bool
	lastActive  time.Time
	mu          sync.Mutex
}

// NewActivityMonitor creates an ActivityMonitor with the given change
// threshold. The threshold is the percentage of pixels that must change
// between consecutive frames, for example 1.0 means 1% of pixels.
func NewActivityMonitor(threshold float64) *ActivityMonitor {
	if threshold <= 0 {
		threshold = DefaultActivityThreshold
	}
	return &ActivityMonitor{
		threshold: threshold,
		hold:      DefaultActivityHold,
		prevGray:  gocv.NewMat(),
	}
}

// Observe analyzes a frame against the previous one and reports whether
// the scene counts as active at the given time, along with the percentage
// of pixels that changed.
//
// Movement in the frame marks the scene active. A still frame keeps the
// scene active until the hold window since the last movement expires.
func (m *ActivityMonitor) Observe(frame *gocv.Mat, now time.Time) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return m.activeLocked(now), 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	// Blur before differencing to suppress sensor noise
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: activityBlurSize, Y: activityBlurSize}, 0, 0, gocv.BorderDefault)

	// First frame becomes the comparison baseline
	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return m.activeLocked(now), 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, activityDiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&m.prevGray)

	if changePercent > m.threshold {
		m.lastActive = now
	}

	return m.activeLocked(now), changePercent
}

func (m *ActivityMonitor) activeLocked(now time.Time) bool {
	if m.lastActive.IsZero() {
		return false
	}
	return now.Sub(m.lastActive) <= m.hold
}

// Reset clears the monitor state so the next frame becomes a fresh baseline.
func (m *ActivityMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
	m.lastActive = time.Time{}
}

// Close releases resources used by the monitor.
func (m *ActivityMonitor) Close() {
	m.Reset()
}

// SetThreshold sets the change percentage that counts as activity.
// Values less than or equal to 0 are ignored.
func (m *ActivityMonitor) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.threshold = threshold
}

// SetHold sets how long the monitor stays active after the last movement.
// Values less than or equal to 0 are ignored.
func (m *ActivityMonitor) SetHold(hold time.Duration) {
	if hold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.hold = hold
}
