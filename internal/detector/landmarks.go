// Package detector provides pose and hand landmark detection for the CPR
// coach, plus the geometry that turns normalized landmarks into the
// pixel-space reference points the engine consumes.
package detector

// Pose landmark indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	LeftShoulder     = 11
	RightShoulder    = 12
	NumPoseLandmarks = 33
)

// NumHandLandmarks is the number of landmarks per detected hand.
const NumHandLandmarks = 21

// Chest geometry factors. The chest center sits below the shoulder
// midpoint by a fraction of the vertical shoulder separation; the
// side-view reference point sits lower still, near the sternum.
const (
	chestDropFactor    = 0.3
	sideViewDropFactor = 0.4
)

// Point is a landmark position in normalized [0,1] image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PixelPoint is a position converted to frame-pixel coordinates.
type PixelPoint struct {
	X float64
	Y float64
}

// Pose holds the 33 body landmarks of one detected person.
type Pose struct {
	Points [NumPoseLandmarks]Point `json:"points"`
	Score  float64                 `json:"score"`
}

// Hand holds the 21 landmarks of one detected hand.
type Hand struct {
	Points     [NumHandLandmarks]Point `json:"points"`
	Handedness string                  `json:"handedness"` // "Left" or "Right"
	Score      float64                 `json:"score"`
}

// Observation is the result of running detection on one frame. Pose is nil
// when no person is visible; Hands holds zero to MaxHands entries.
type Observation struct {
	Pose  *Pose  `json:"pose,omitempty"`
	Hands []Hand `json:"hands"`
}

// Center returns the mean of the hand's landmarks in pixel coordinates.
func (h *Hand) Center(width, height int) PixelPoint {
	var sumX, sumY float64
	for _, p := range h.Points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(NumHandLandmarks)
	return PixelPoint{
		X: sumX / n * float64(width),
		Y: sumY / n * float64(height),
	}
}

// ChestCenter returns the chest center in pixel coordinates and the chest
// width used as a scale reference: the midpoint between the shoulders,
// pushed down by 30% of their vertical separation, and the horizontal
// shoulder distance.
func (p *Pose) ChestCenter(width, height int) (PixelPoint, float64) {
	left := p.Points[LeftShoulder]
	right := p.Points[RightShoulder]

	cx := (left.X + right.X) / 2 * float64(width)
	cy := (left.Y+right.Y)/2*float64(height) + abs(left.Y-right.Y)*float64(height)*chestDropFactor
	chestWidth := abs(left.X-right.X) * float64(width)

	return PixelPoint{X: cx, Y: cy}, chestWidth
}

// ChestReferenceY returns the vertical sternum reference for side-view
// compression tracking: the shoulder midpoint pushed down by 40% of the
// vertical shoulder separation.
func (p *Pose) ChestReferenceY(height int) float64 {
	left := p.Points[LeftShoulder]
	right := p.Points[RightShoulder]
	return (left.Y+right.Y)/2*float64(height) + abs(left.Y-right.Y)*float64(height)*sideViewDropFactor
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
