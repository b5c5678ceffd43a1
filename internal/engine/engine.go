package engine

import (
	"sync"
	"time"
)

// Mode selects which evaluator receives the current frame's geometry.
type Mode int

const (
	// ModeOverhead is the hand-positioning camera angle.
	ModeOverhead Mode = iota
	// ModeSideView is the compression-monitoring camera angle.
	ModeSideView
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	if m == ModeSideView {
		return "side_view"
	}
	return "overhead"
}

// ParseMode converts a wire name back into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "overhead":
		return ModeOverhead, true
	case "side_view":
		return ModeSideView, true
	}
	return ModeOverhead, false
}

// Snapshot is a consistent view of engine state for read-only consumers
// (renderer, HTTP handlers, websocket feed).
type Snapshot struct {
	Mode             string  `json:"mode"`
	Calibrated       bool    `json:"calibrated"`
	CompressionCount int     `json:"compression_count"`
	RatePerMin       float64 `json:"rate_per_min"`
	AverageDepth     float64 `json:"average_depth"`
	Accuracy         float64 `json:"accuracy"`
	Feedback         string  `json:"feedback"`
}

// Engine is the mode coordinator: it owns both evaluators, routes resets,
// and serves consistent snapshots. Exactly one writer (the per-frame
// evaluate call) mutates state; any number of readers may take snapshots
// between frames.
type Engine struct {
	mu          sync.RWMutex
	mode        Mode
	placement   *PlacementEvaluator
	compression *CompressionDetector

	lastPlacement PlacementResult
	lastSide      SideViewResult
}

// New creates an engine in overhead mode.
func New() *Engine {
	return &Engine{
		placement:   NewPlacementEvaluator(),
		compression: NewCompressionDetector(),
	}
}

// Mode returns the current camera mode.
func (e *Engine) Mode() Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// SetMode switches the active evaluator. Entering side view always clears
// the baseline and depth history so a stale rest position from a previous
// bout cannot leak into the new one.
func (e *Engine) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m == ModeSideView && e.mode != ModeSideView {
		e.compression.ResetBaseline()
	}
	e.mode = m
}

// EvaluateOverhead scores hand placement for one overhead frame.
func (e *Engine) EvaluateOverhead(chest *ChestReference, hands []Point2D) PlacementResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := e.placement.Evaluate(chest, hands)
	e.lastPlacement = result
	return result
}

// EvaluateSideView processes one side-view frame. chestRefY is the vertical
// chest reference from the pose detector, nil when no person is visible.
// When two hands are visible the one vertically closest to the chest
// reference drives detection; that selects the compressing hand over the
// supporting one.
func (e *Engine) EvaluateSideView(chestRefY *float64, hands []Point2D, now time.Time) SideViewResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result SideViewResult
	hands = validPoints(hands)

	switch {
	case chestRefY == nil:
		result = e.compression.result(SideNoPerson)
	case len(hands) == 0:
		result = e.compression.result(SideNoHands)
	default:
		reference := selectCompressingHand(hands, *chestRefY)
		result = e.compression.Process(reference.Y, now)
	}

	e.lastSide = result
	return result
}

// selectCompressingHand returns the hand with minimal absolute vertical
// distance to the chest reference. Ties keep the earlier hand in input
// order; callers depend on this selection policy.
func selectCompressingHand(hands []Point2D, chestRefY float64) Point2D {
	closest := hands[0]
	best := vertDistance(closest.Y, chestRefY)
	for _, h := range hands[1:] {
		if d := vertDistance(h.Y, chestRefY); d < best {
			closest = h
			best = d
		}
	}
	return closest
}

func vertDistance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// ResetCounters zeroes the compression count, cycle windows, derived
// metrics and positioning accuracy. The reset is shared across both
// evaluators.
func (e *Engine) ResetCounters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compression.ResetCounters()
	e.placement.Reset()
	e.lastPlacement = PlacementResult{}
	e.lastSide = SideViewResult{}
}

// ResetBaseline clears the compression baseline without touching counters.
func (e *Engine) ResetBaseline() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compression.ResetBaseline()
}

// IsCalibrated reports whether the side-view baseline is set.
func (e *Engine) IsCalibrated() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.compression.IsCalibrated()
}

// Baseline returns the side-view baseline position and whether one is set.
func (e *Engine) Baseline() (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.compression.Baseline()
}

// Snapshot returns a consistent copy of the current metrics and the
// feedback message for the active mode.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rate, avgDepth := e.compression.Metrics()
	snap := Snapshot{
		Mode:             e.mode.String(),
		Calibrated:       e.compression.IsCalibrated(),
		CompressionCount: e.compression.Count(),
		RatePerMin:       rate,
		AverageDepth:     avgDepth,
		Accuracy:         e.placement.Accuracy(),
	}

	if e.mode == ModeOverhead {
		snap.Feedback = e.lastPlacement.Message()
	} else {
		snap.Feedback = e.lastSide.Message()
	}

	return snap
}
