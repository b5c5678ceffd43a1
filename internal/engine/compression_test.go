package engine

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// feed runs a sequence of hand positions through the detector at a fixed
// frame interval, starting with a calibration frame at the baseline.
func feed(d *CompressionDetector, baselineY float64, depths []float64, interval time.Duration) SideViewResult {
	now := t0
	result := d.Process(baselineY, now) // calibration frame
	for _, depth := range depths {
		now = now.Add(interval)
		result = d.Process(baselineY+depth, now)
	}
	return result
}

func TestCompressionDetector_BaselineGate(t *testing.T) {
	d := NewCompressionDetector()

	result := d.Process(200, t0)

	if result.Phase != SideBaselineSet {
		t.Errorf("phase = %s, want %s", result.Phase, SideBaselineSet)
	}
	if !d.IsCalibrated() {
		t.Error("expected detector to be calibrated after first sample")
	}
	baseline, _ := d.Baseline()
	if baseline != 200 {
		t.Errorf("baseline = %f, want 200", baseline)
	}
	if result.Count != 0 {
		t.Errorf("count = %d, want 0 (no cycle logic on calibration frame)", result.Count)
	}
}

func TestCompressionDetector_CountsCycles(t *testing.T) {
	// The canonical hysteresis sequence: two decisive downstrokes with a
	// release in between, plus plateau frames that must not retrigger.
	d := NewCompressionDetector()

	result := feed(d, 200, []float64{0, 0, 20, 20, 5, 5, 25, 25}, 100*time.Millisecond)

	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	if d.State() != Compressing {
		t.Errorf("state = %v, want Compressing after final downstroke", d.State())
	}
}

func TestCompressionDetector_HysteresisRejectsJitter(t *testing.T) {
	// Depth wobble below the rise threshold never starts a cycle.
	d := NewCompressionDetector()

	result := feed(d, 100, []float64{0, 4, 8, 3, 9, 2, 7}, 100*time.Millisecond)

	if result.Count != 0 {
		t.Errorf("count = %d, want 0 for sub-threshold jitter", result.Count)
	}
	if d.State() != Resting {
		t.Errorf("state = %v, want Resting", d.State())
	}
}

func TestCompressionDetector_ReleaseNeedsSmallerDrop(t *testing.T) {
	// After a compression, a drop of more than 5px rearms detection even
	// though the rise needed more than 10px.
	d := NewCompressionDetector()

	feed(d, 100, []float64{0, 20}, 100*time.Millisecond)
	if d.State() != Compressing {
		t.Fatalf("setup: state = %v, want Compressing", d.State())
	}

	// Drop by 6px: enough to release.
	d.Process(100+14, t0.Add(time.Second))
	if d.State() != Resting {
		t.Errorf("state = %v, want Resting after 6px drop", d.State())
	}
}

func TestCompressionDetector_RateFromTwoCycles(t *testing.T) {
	// Two cycles 0.5s apart is 120 compressions per minute.
	d := NewCompressionDetector()

	d.Process(100, t0)                                  // calibrate
	d.Process(100, t0.Add(100*time.Millisecond))        // seed history, depth 0
	first := d.Process(120, t0.Add(200*time.Millisecond)) // cycle 1
	if first.Count != 1 {
		t.Fatalf("setup: count = %d, want 1", first.Count)
	}
	d.Process(102, t0.Add(400*time.Millisecond)) // release
	second := d.Process(125, t0.Add(700*time.Millisecond)) // cycle 2, 0.5s after cycle 1

	if second.Count != 2 {
		t.Fatalf("count = %d, want 2", second.Count)
	}
	if math.Abs(second.RatePerMin-120) > 1e-6 {
		t.Errorf("rate = %f, want 120", second.RatePerMin)
	}
	if second.Rate != RateGood {
		t.Errorf("rate tier = %s, want %s", second.Rate, RateGood)
	}
}

func TestCompressionDetector_AverageDepth(t *testing.T) {
	// Recorded cycle depths 20, 40, 60 average to 40.
	d := NewCompressionDetector()

	result := feed(d, 100, []float64{0, 20, 5, 40, 3, 60}, 100*time.Millisecond)

	if result.Count != 3 {
		t.Fatalf("count = %d, want 3", result.Count)
	}
	if math.Abs(result.AverageDepth-40) > 1e-9 {
		t.Errorf("average depth = %f, want 40", result.AverageDepth)
	}
	if result.Depth != DepthGood {
		t.Errorf("depth tier = %s, want %s", result.Depth, DepthGood)
	}
}

func TestCompressionDetector_DepthBelowBaseline(t *testing.T) {
	// Depth is the absolute distance from baseline, so movement above the
	// reference counts the same as movement below it.
	d := NewCompressionDetector()

	result := feed(d, 300, []float64{0, -20}, 100*time.Millisecond)

	if result.Count != 1 {
		t.Errorf("count = %d, want 1 for an upward 20px excursion", result.Count)
	}
}

func TestCompressionDetector_RateTiers(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration // between the two cycles
		want     RateTier
	}{
		{"too slow", 800 * time.Millisecond, RateTooSlow},  // 75/min
		{"good", 550 * time.Millisecond, RateGood},         // ~109/min
		{"too fast", 400 * time.Millisecond, RateTooFast},  // 150/min
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewCompressionDetector()
			d.Process(100, t0)
			d.Process(100, t0.Add(50*time.Millisecond))
			d.Process(120, t0.Add(100*time.Millisecond))
			d.Process(102, t0.Add(150*time.Millisecond))
			result := d.Process(125, t0.Add(100*time.Millisecond).Add(tt.interval))

			if result.Rate != tt.want {
				t.Errorf("rate tier = %s (%.0f/min), want %s", result.Rate, result.RatePerMin, tt.want)
			}
		})
	}
}

func TestCompressionDetector_DepthTiers(t *testing.T) {
	tests := []struct {
		name  string
		depth float64
		want  DepthTier
	}{
		{"too shallow", 15, DepthTooShallow},
		{"good", 45, DepthGood},
		{"too deep", 70, DepthTooDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewCompressionDetector()
			result := feed(d, 100, []float64{0, tt.depth}, 100*time.Millisecond)
			if result.Depth != tt.want {
				t.Errorf("depth tier = %s (avg %.0f), want %s", result.Depth, result.AverageDepth, tt.want)
			}
		})
	}
}

func TestCompressionDetector_NotStartedBeforeFirstRate(t *testing.T) {
	d := NewCompressionDetector()

	// A single cycle yields no rate yet.
	result := feed(d, 100, []float64{0, 20}, 100*time.Millisecond)

	if result.Rate != RateNotStarted {
		t.Errorf("rate tier = %s, want %s before two cycles", result.Rate, RateNotStarted)
	}
	if result.RatePerMin != 0 {
		t.Errorf("rate = %f, want 0", result.RatePerMin)
	}
}

func TestCompressionDetector_ZeroTimeWindowGuard(t *testing.T) {
	// Two cycles with identical timestamps must not divide by zero; the
	// prior rate value is kept.
	d := NewCompressionDetector()

	d.Process(100, t0)
	d.Process(100, t0)
	d.Process(120, t0)
	d.Process(102, t0)
	result := d.Process(125, t0)

	if result.Count != 2 {
		t.Fatalf("count = %d, want 2", result.Count)
	}
	if result.RatePerMin != 0 {
		t.Errorf("rate = %f, want 0 when window spans zero time", result.RatePerMin)
	}
}

func TestCompressionDetector_ResetCounters(t *testing.T) {
	d := NewCompressionDetector()
	feed(d, 100, []float64{0, 20, 5, 40}, 100*time.Millisecond)

	d.ResetCounters()

	if d.Count() != 0 {
		t.Errorf("count = %d, want 0 after reset", d.Count())
	}
	rate, avg := d.Metrics()
	if rate != 0 || avg != 0 {
		t.Errorf("metrics = %f, %f, want 0, 0 after reset", rate, avg)
	}
	if !d.IsCalibrated() {
		t.Error("counter reset must not clear the baseline")
	}
}

func TestCompressionDetector_ResetBaselineKeepsCount(t *testing.T) {
	d := NewCompressionDetector()
	feed(d, 100, []float64{0, 20, 5, 40}, 100*time.Millisecond)
	if d.Count() != 2 {
		t.Fatalf("setup: count = %d, want 2", d.Count())
	}

	d.ResetBaseline()

	if d.IsCalibrated() {
		t.Error("expected baseline cleared")
	}
	if d.Count() != 2 {
		t.Errorf("count = %d, want 2 preserved across baseline reset", d.Count())
	}

	// Next sample recalibrates at the new rest position.
	result := d.Process(250, t0.Add(time.Minute))
	if result.Phase != SideBaselineSet {
		t.Errorf("phase = %s, want %s", result.Phase, SideBaselineSet)
	}
	baseline, _ := d.Baseline()
	if baseline != 250 {
		t.Errorf("baseline = %f, want 250", baseline)
	}
}

func TestCompressionDetector_CycleWindowBounded(t *testing.T) {
	// More cycles than the window capacity: rate is computed over the
	// retained 20 timestamps only.
	d := NewCompressionDetector()

	now := t0
	d.Process(100, now)
	d.Process(100, now.Add(50*time.Millisecond))
	for i := 0; i < 25; i++ {
		now = now.Add(300 * time.Millisecond)
		d.Process(120, now) // compress
		now = now.Add(300 * time.Millisecond)
		d.Process(102, now) // release
	}

	if d.Count() != 25 {
		t.Fatalf("count = %d, want 25", d.Count())
	}

	// 20 retained timestamps spanning 19 * 0.6s: 100 cycles/min.
	rate, _ := d.Metrics()
	want := 19.0 / (19.0 * 0.6) * 60
	if math.Abs(rate-want) > 1e-6 {
		t.Errorf("rate = %f, want %f over the bounded window", rate, want)
	}
}
