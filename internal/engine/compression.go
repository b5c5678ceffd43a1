package engine

import (
	"math"
	"time"
)

// Compression detection tuning. The rise and fall thresholds are
// deliberately asymmetric: a new cycle must be cleared decisively while
// release only needs a smaller drop to arm the next detection, so a single
// noisy frame cannot toggle the state twice.
const (
	// RiseThreshold is the depth increase over the previous sample, in
	// pixels, that marks the start of a compression.
	RiseThreshold = 10.0
	// FallThreshold is the depth decrease over the previous sample, in
	// pixels, that marks the release.
	FallThreshold = 5.0

	// DepthHistorySize bounds the per-frame depth sample window.
	DepthHistorySize = 30
	// CycleWindowSize bounds the per-cycle timestamp and depth windows.
	CycleWindowSize = 20

	// Target compression rate band, cycles per minute.
	minRate = 100.0
	maxRate = 120.0
	// Target depth band, pixels from baseline.
	minDepth = 30.0
	maxDepth = 60.0
)

// CompressionState is the phase of the current compression cycle.
type CompressionState int

const (
	// Resting means the hand is at or returning toward the baseline.
	Resting CompressionState = iota
	// Compressing means a downstroke is in progress.
	Compressing
)

// Sample is one processed side-view frame: when it was seen, the hand's
// vertical position and its absolute distance from the baseline. Samples
// are immutable once recorded and age out of the history window FIFO.
type Sample struct {
	Time  time.Time
	Depth float64
	HandY float64
}

// RateTier classifies the current compression rate.
type RateTier int

const (
	RateNotStarted RateTier = iota
	RateTooSlow
	RateGood
	RateTooFast
)

// String returns a short identifier for the tier.
func (t RateTier) String() string {
	switch t {
	case RateNotStarted:
		return "not_started"
	case RateTooSlow:
		return "too_slow"
	case RateGood:
		return "good"
	case RateTooFast:
		return "too_fast"
	}
	return "unknown"
}

// DepthTier classifies the average compression depth.
type DepthTier int

const (
	DepthUnknown DepthTier = iota
	DepthTooShallow
	DepthGood
	DepthTooDeep
)

// String returns a short identifier for the tier.
func (t DepthTier) String() string {
	switch t {
	case DepthUnknown:
		return "unknown"
	case DepthTooShallow:
		return "too_shallow"
	case DepthGood:
		return "good"
	case DepthTooDeep:
		return "too_deep"
	}
	return "unknown"
}

// SideViewPhase says what the detector could do with the current frame.
type SideViewPhase int

const (
	// SideNoPerson means no chest reference was available.
	SideNoPerson SideViewPhase = iota
	// SideNoHands means no hand was visible.
	SideNoHands
	// SideBaselineSet means this frame established the baseline; no cycle
	// logic ran.
	SideBaselineSet
	// SideTracking means the frame was processed normally.
	SideTracking
)

// String returns a short identifier for the phase.
func (p SideViewPhase) String() string {
	switch p {
	case SideNoPerson:
		return "no_person"
	case SideNoHands:
		return "no_hands"
	case SideBaselineSet:
		return "baseline_set"
	case SideTracking:
		return "tracking"
	}
	return "unknown"
}

// SideViewResult is the outcome of one side-view evaluation: the current
// metrics plus the rate and depth feedback tiers derived from them.
type SideViewResult struct {
	Phase        SideViewPhase `json:"phase"`
	Rate         RateTier      `json:"rate_tier"`
	Depth        DepthTier     `json:"depth_tier"`
	Count        int           `json:"count"`
	RatePerMin   float64       `json:"rate_per_min"`
	AverageDepth float64       `json:"average_depth"`
}

// CompressionDetector counts compression cycles from the vertical movement
// of the compressing hand in a side-view camera. It owns the baseline
// tracker and three bounded windows: recent depth samples, recent cycle
// timestamps and recent cycle depths.
type CompressionDetector struct {
	baseline    BaselineTracker
	history     *window[Sample]
	cycleTimes  *window[time.Time]
	cycleDepths *window[float64]

	state    CompressionState
	count    int
	rate     float64
	avgDepth float64
}

// NewCompressionDetector creates a detector in the Resting state with no
// baseline.
func NewCompressionDetector() *CompressionDetector {
	return &CompressionDetector{
		history:     newWindow[Sample](DepthHistorySize),
		cycleTimes:  newWindow[time.Time](CycleWindowSize),
		cycleDepths: newWindow[float64](CycleWindowSize),
	}
}

// Process consumes one reference hand position. The first sample after the
// baseline is cleared calibrates it and skips cycle detection for that
// frame. Every later sample computes a depth relative to the baseline, runs
// the hysteresis transition rule against the previous history sample, and
// is appended to the depth history.
func (d *CompressionDetector) Process(handY float64, now time.Time) SideViewResult {
	if d.baseline.Calibrate(handY) {
		return d.result(SideBaselineSet)
	}

	reference, _ := d.baseline.Reference()
	depth := math.Abs(handY - reference)

	// Transition logic needs a previous sample to compare against; the
	// first sample after calibration only seeds the history.
	if prev, ok := d.history.Last(); ok {
		switch d.state {
		case Resting:
			if depth > prev.Depth+RiseThreshold {
				d.state = Compressing
				d.count++
				d.cycleTimes.Append(now)
				d.cycleDepths.Append(depth)
				d.recomputeMetrics()
			}
		case Compressing:
			if depth < prev.Depth-FallThreshold {
				d.state = Resting
			}
		}
	}

	d.history.Append(Sample{Time: now, Depth: depth, HandY: handY})
	return d.result(SideTracking)
}

// recomputeMetrics updates rate and average depth from the cycle windows.
// Called on each Resting to Compressing transition.
func (d *CompressionDetector) recomputeMetrics() {
	if d.cycleTimes.Len() >= 2 {
		first, _ := d.cycleTimes.First()
		last, _ := d.cycleTimes.Last()
		span := last.Sub(first).Seconds()
		if span > 0 {
			d.rate = float64(d.cycleTimes.Len()-1) / span * 60
		}
	}

	if n := d.cycleDepths.Len(); n > 0 {
		var sum float64
		for i := 0; i < n; i++ {
			sum += d.cycleDepths.At(i)
		}
		d.avgDepth = sum / float64(n)
	}
}

// result derives the feedback tiers from the current metrics. Tier
// derivation is independent of the state machine: it reads only the
// recomputed rate and average depth.
func (d *CompressionDetector) result(phase SideViewPhase) SideViewResult {
	r := SideViewResult{
		Phase:        phase,
		Count:        d.count,
		RatePerMin:   d.rate,
		AverageDepth: d.avgDepth,
	}

	switch {
	case d.rate <= 0:
		r.Rate = RateNotStarted
	case d.rate < minRate:
		r.Rate = RateTooSlow
	case d.rate > maxRate:
		r.Rate = RateTooFast
	default:
		r.Rate = RateGood
	}

	switch {
	case d.avgDepth <= 0:
		r.Depth = DepthUnknown
	case d.avgDepth < minDepth:
		r.Depth = DepthTooShallow
	case d.avgDepth > maxDepth:
		r.Depth = DepthTooDeep
	default:
		r.Depth = DepthGood
	}

	return r
}

// ResetCounters zeroes the cycle count, clears all three windows and resets
// the derived metrics. The baseline is left in place.
func (d *CompressionDetector) ResetCounters() {
	d.count = 0
	d.history.Clear()
	d.cycleTimes.Clear()
	d.cycleDepths.Clear()
	d.rate = 0
	d.avgDepth = 0
	d.state = Resting
}

// ResetBaseline clears the baseline and the depth history so the next
// sample recalibrates. Cumulative counters survive, supporting
// recalibration without losing the count.
func (d *CompressionDetector) ResetBaseline() {
	d.baseline.Clear()
	d.history.Clear()
	d.state = Resting
}

// IsCalibrated reports whether the baseline is set.
func (d *CompressionDetector) IsCalibrated() bool {
	return d.baseline.IsCalibrated()
}

// Baseline returns the baseline position and whether one is set.
func (d *CompressionDetector) Baseline() (float64, bool) {
	return d.baseline.Reference()
}

// State returns the current cycle phase.
func (d *CompressionDetector) State() CompressionState {
	return d.state
}

// Count returns the total number of detected compressions.
func (d *CompressionDetector) Count() int {
	return d.count
}

// Metrics returns the current rate and average depth.
func (d *CompressionDetector) Metrics() (ratePerMin, averageDepth float64) {
	return d.rate, d.avgDepth
}
