package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	obs *Observation
	err error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{obs: &Observation{}}
}

// SetObservation sets the observation that will be returned by Detect.
func (m *MockDetector) SetObservation(obs *Observation) {
	m.obs = obs
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured observation or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.obs, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// SupinePose returns a preset Pose for a person lying across the frame,
// shoulders at normalized (0.4, 0.3) and (0.6, 0.3) with a slight tilt so
// chest geometry has a nonzero vertical drop.
func SupinePose() *Pose {
	pose := &Pose{Score: 0.95}

	// Only the shoulder landmarks matter for chest geometry; give the
	// rest plausible torso-area positions so drawing code has something
	// to render.
	for i := range pose.Points {
		pose.Points[i] = Point{X: 0.5, Y: 0.5}
	}
	pose.Points[LeftShoulder] = Point{X: 0.4, Y: 0.3}
	pose.Points[RightShoulder] = Point{X: 0.6, Y: 0.32}

	return pose
}

// HandAt returns a preset Hand whose 21 landmarks all sit at the given
// normalized position, so its computed center is exactly that position.
func HandAt(x, y float64) Hand {
	hand := Hand{
		Handedness: "Right",
		Score:      0.95,
	}
	for i := range hand.Points {
		hand.Points[i] = Point{X: x, Y: y}
	}
	return hand
}

// SpreadHandAt returns a preset Hand centered on the given normalized
// position with landmarks fanned out around it, closer to what MediaPipe
// actually produces than a point cluster.
func SpreadHandAt(x, y float64) Hand {
	hand := Hand{
		Handedness: "Left",
		Score:      0.9,
	}

	// Symmetric offsets cancel in the mean, keeping the center at (x, y).
	offsets := []Point{
		{X: -0.02, Y: -0.03}, {X: 0.02, Y: 0.03},
		{X: -0.015, Y: 0.02}, {X: 0.015, Y: -0.02},
		{X: -0.01, Y: -0.01}, {X: 0.01, Y: 0.01},
	}
	for i := range hand.Points {
		off := offsets[i%len(offsets)]
		if (i/len(offsets))%2 == 1 {
			off = Point{X: -off.X, Y: -off.Y}
		}
		hand.Points[i] = Point{X: x + off.X, Y: y + off.Y}
	}

	// Force the exact center by zeroing the residual of the uneven tail.
	center := hand.centerNormalized()
	for i := range hand.Points {
		hand.Points[i].X += x - center.X
		hand.Points[i].Y += y - center.Y
	}

	return hand
}

func (h *Hand) centerNormalized() Point {
	var sumX, sumY float64
	for _, p := range h.Points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(NumHandLandmarks)
	return Point{X: sumX / n, Y: sumY / n}
}
