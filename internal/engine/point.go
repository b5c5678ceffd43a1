// Package engine implements the signal-to-feedback core of the CPR coach:
// hand-placement scoring from an overhead camera and compression cycle
// detection from a side-view camera. The package is dependency-free and
// synchronous; callers feed it one geometric sample per video frame and
// read back metrics and feedback tiers. Time is always injected, never
// read from the system clock.
package engine

import "math"

// Point2D is a position in frame-pixel coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point2D) DistanceTo(q Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Valid reports whether both coordinates are finite.
func (p Point2D) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// ChestReference is the detected chest of the CPR recipient: a center point
// and the shoulder-to-shoulder width used as a scale reference. It is
// supplied per frame by the pose detector and never owned by the engine.
type ChestReference struct {
	Center Point2D `json:"center"`
	Width  float64 `json:"width"`
}

// Valid reports whether the reference is usable. A non-finite coordinate or
// a non-positive width comes from a bad detection and is treated the same
// as no detection at all.
func (c ChestReference) Valid() bool {
	return c.Center.Valid() && !math.IsNaN(c.Width) && !math.IsInf(c.Width, 0) && c.Width > 0
}
