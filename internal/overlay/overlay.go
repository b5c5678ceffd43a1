// Package overlay renders coaching graphics onto camera frames: the chest
// target zone and hand markers for the overhead view, the baseline and
// compression metrics for the side view, and the feedback banner.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/cprcoach/internal/detector"
	"github.com/ayusman/cprcoach/internal/engine"
)

// Drawing colors (RGBA).
var (
	colorGreen  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorRed    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorBlue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	colorYellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colorOrange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colorWhite  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBlack  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Depth coloring bounds for the side-view hand marker, in pixels from the
// baseline. Same band the engine scores against.
const (
	shallowDepthPx = 30
	deepDepthPx    = 60
)

// targetZoneFactor scales the chest width into the target zone radius.
const targetZoneFactor = 0.3

// Renderer draws coaching overlays onto frames in place.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// DrawOverhead renders the overhead placement overlay: pose landmarks, the
// chest target zone, and a marker per hand colored by placement accuracy.
func (r *Renderer) DrawOverhead(frame *gocv.Mat, obs *detector.Observation, accuracy float64) {
	if frame == nil || frame.Empty() || obs == nil {
		return
	}

	w := frame.Cols()
	h := frame.Rows()

	var chestCenter image.Point
	haveChest := false

	if obs.Pose != nil {
		r.drawPose(frame, obs.Pose, w, h)

		center, width := obs.Pose.ChestCenter(w, h)
		chestCenter = image.Point{X: int(center.X), Y: int(center.Y)}
		haveChest = true
		r.drawChestTargetZone(frame, chestCenter, width)
	}

	handColor := colorRed
	if accuracy > 70 {
		handColor = colorGreen
	}

	for i := range obs.Hands {
		hand := &obs.Hands[i]
		r.drawHand(frame, hand, w, h)

		center := hand.Center(w, h)
		pt := image.Point{X: int(center.X), Y: int(center.Y)}
		gocv.Circle(frame, pt, 8, handColor, -1)
		gocv.Circle(frame, pt, 15, handColor, 2)

		if haveChest {
			gocv.Line(frame, pt, chestCenter, handColor, 2)
		}
	}
}

// DrawSideView renders the compression overlay: pose landmarks, the
// baseline reference line, a depth-colored marker per hand, and the
// rate/count/depth metrics block.
func (r *Renderer) DrawSideView(frame *gocv.Mat, obs *detector.Observation, baselineY *float64, rate float64, count int, avgDepth float64) {
	if frame == nil || frame.Empty() {
		return
	}

	w := frame.Cols()
	h := frame.Rows()

	if obs != nil {
		if obs.Pose != nil {
			r.drawPose(frame, obs.Pose, w, h)
		}

		for i := range obs.Hands {
			hand := &obs.Hands[i]
			r.drawHand(frame, hand, w, h)

			if baselineY == nil {
				continue
			}

			center := hand.Center(w, h)
			pt := image.Point{X: int(center.X), Y: int(center.Y)}

			depth := center.Y - *baselineY
			if depth < 0 {
				depth = -depth
			}

			depthColor := colorGreen
			switch {
			case depth < shallowDepthPx:
				depthColor = colorRed
			case depth > deepDepthPx:
				depthColor = colorOrange
			}

			gocv.Circle(frame, pt, 12, depthColor, -1)
			gocv.Circle(frame, pt, 20, depthColor, 3)
		}
	}

	if baselineY != nil {
		y := int(*baselineY)
		gocv.Line(frame, image.Point{X: 0, Y: y}, image.Point{X: w, Y: y}, colorBlue, 2)
		gocv.PutText(frame, "BASELINE", image.Point{X: 10, Y: y - 10},
			gocv.FontHersheySimplex, 0.5, colorBlue, 1)
	}

	r.drawCompressionMetrics(frame, rate, count, avgDepth)
}

// DrawFeedback renders the feedback banner along the bottom edge, one line
// per feedback segment.
func (r *Renderer) DrawFeedback(frame *gocv.Mat, feedback string) {
	if frame == nil || frame.Empty() || feedback == "" {
		return
	}

	w := frame.Cols()
	h := frame.Rows()

	lines := strings.Split(feedback, " | ")

	bannerHeight := len(lines)*30 + 20
	gocv.Rectangle(frame, image.Rect(0, h-bannerHeight-10, w, h), colorBlack, -1)

	for i, line := range lines {
		y := h - bannerHeight + i*30 + 25
		gocv.PutText(frame, line, image.Point{X: 10, Y: y},
			gocv.FontHersheySimplex, 0.6, colorWhite, 2)
	}
}

// DrawModeIndicator renders the current mode and session status in the
// top-right corner.
func (r *Renderer) DrawModeIndicator(frame *gocv.Mat, mode engine.Mode, active bool) {
	if frame == nil || frame.Empty() {
		return
	}

	w := frame.Cols()

	modeText := fmt.Sprintf("Mode: %s", strings.ToUpper(mode.String()))
	gocv.PutText(frame, modeText, image.Point{X: w - 250, Y: 30},
		gocv.FontHersheySimplex, 0.7, colorYellow, 2)

	status := "IDLE"
	statusColor := colorYellow
	if active {
		status = "ACTIVE"
		statusColor = colorGreen
	}
	gocv.PutText(frame, fmt.Sprintf("Status: %s", status), image.Point{X: w - 200, Y: 70},
		gocv.FontHersheySimplex, 0.6, statusColor, 2)
}

func (r *Renderer) drawChestTargetZone(frame *gocv.Mat, center image.Point, chestWidth float64) {
	radius := int(chestWidth * targetZoneFactor)
	if radius < 1 {
		radius = 1
	}

	gocv.Circle(frame, center, radius, colorYellow, 3)
	gocv.Circle(frame, center, radius/2, colorGreen, 2)
	gocv.Circle(frame, center, 8, colorRed, -1)

	gocv.PutText(frame, "CHEST CENTER", image.Point{X: center.X - 60, Y: center.Y - radius - 20},
		gocv.FontHersheySimplex, 0.6, colorWhite, 2)
	gocv.PutText(frame, "TARGET ZONE", image.Point{X: center.X - 50, Y: center.Y + radius + 30},
		gocv.FontHersheySimplex, 0.5, colorYellow, 2)
}

func (r *Renderer) drawPose(frame *gocv.Mat, pose *detector.Pose, w, h int) {
	for _, p := range pose.Points {
		pt := image.Point{X: int(p.X * float64(w)), Y: int(p.Y * float64(h))}
		gocv.Circle(frame, pt, 2, colorGreen, -1)
	}

	// Shoulder line anchors the torso visually
	left := pose.Points[detector.LeftShoulder]
	right := pose.Points[detector.RightShoulder]
	gocv.Line(frame,
		image.Point{X: int(left.X * float64(w)), Y: int(left.Y * float64(h))},
		image.Point{X: int(right.X * float64(w)), Y: int(right.Y * float64(h))},
		colorYellow, 1)
}

func (r *Renderer) drawHand(frame *gocv.Mat, hand *detector.Hand, w, h int) {
	for _, p := range hand.Points {
		pt := image.Point{X: int(p.X * float64(w)), Y: int(p.Y * float64(h))}
		gocv.Circle(frame, pt, 2, colorWhite, -1)
	}
}

func (r *Renderer) drawCompressionMetrics(frame *gocv.Mat, rate float64, count int, avgDepth float64) {
	gocv.PutText(frame, fmt.Sprintf("Rate: %.0f/min", rate), image.Point{X: 10, Y: 40},
		gocv.FontHersheySimplex, 0.8, colorWhite, 2)
	gocv.PutText(frame, fmt.Sprintf("Compressions: %d", count), image.Point{X: 10, Y: 80},
		gocv.FontHersheySimplex, 0.8, colorWhite, 2)
	gocv.PutText(frame, fmt.Sprintf("Avg Depth: %.0fpx", avgDepth), image.Point{X: 10, Y: 120},
		gocv.FontHersheySimplex, 0.8, colorWhite, 2)
}
