package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/cprcoach/internal/detector"
	"github.com/ayusman/cprcoach/internal/engine"
)

// runPipeline is the main coaching loop that processes frames from the camera.
// It manages the state transitions between idle and active frame rates based
// on scene activity.
//
// Pipeline logic:
// 1. Start at the idle frame rate (5 fps)
// 2. On scene activity, switch to the active frame rate (15 fps)
// 3. Run pose and hand detection on every processed frame
// 4. Route landmark geometry to the evaluator for the current mode
// 5. After 2s without activity, switch back to the idle frame rate
//
// Detection runs even while idle. Side-view calibration happens on the first
// frame with a visible person and hand, which is typically a still scene.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastActivityTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if coaching is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			now := time.Now()

			// Step 1: activity gating drives the frame rate
			active, _ := a.activity.Observe(frame, now)

			if active {
				lastActivityTime = now

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastActivityTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Step 2: landmark detection and evaluation
			a.processFrame(frame, now)
			frame.Close()
		}
	}
}

// processFrame runs detection on one frame and feeds the landmark geometry
// to the evaluator for the current mode.
func (a *App) processFrame(frame *gocv.Mat, now time.Time) {
	d := a.Detector()
	if d == nil {
		return
	}

	if a.config.MirrorFrames {
		gocv.Flip(*frame, frame, 1)
	}

	obs, err := d.Detect(frame)
	if err != nil {
		log.Printf("Error detecting landmarks: %v", err)
		return
	}

	w := frame.Cols()
	h := frame.Rows()

	var msg string
	switch a.engine.Mode() {
	case engine.ModeOverhead:
		result := a.engine.EvaluateOverhead(chestReference(obs, w, h), handCenters(obs, w, h))
		msg = result.Message()
	case engine.ModeSideView:
		result := a.engine.EvaluateSideView(chestReferenceY(obs, h), handCenters(obs, w, h), now)
		msg = result.Message()
	}

	// Only the pipeline goroutine touches lastFeedback
	if msg != "" && msg != a.lastFeedback {
		log.Printf("Feedback: %s", msg)
		a.lastFeedback = msg
	}
}

// chestReference converts a detected pose into the overhead chest target,
// nil when no person is visible.
func chestReference(obs *detector.Observation, w, h int) *engine.ChestReference {
	if obs == nil || obs.Pose == nil {
		return nil
	}

	center, width := obs.Pose.ChestCenter(w, h)
	return &engine.ChestReference{
		Center: engine.Point2D{X: center.X, Y: center.Y},
		Width:  width,
	}
}

// chestReferenceY converts a detected pose into the side-view vertical
// chest reference, nil when no person is visible.
func chestReferenceY(obs *detector.Observation, h int) *float64 {
	if obs == nil || obs.Pose == nil {
		return nil
	}

	y := obs.Pose.ChestReferenceY(h)
	return &y
}

// handCenters converts detected hands into pixel-space center points,
// preserving detection order.
func handCenters(obs *detector.Observation, w, h int) []engine.Point2D {
	if obs == nil || len(obs.Hands) == 0 {
		return nil
	}

	centers := make([]engine.Point2D, 0, len(obs.Hands))
	for i := range obs.Hands {
		c := obs.Hands[i].Center(w, h)
		centers = append(centers, engine.Point2D{X: c.X, Y: c.Y})
	}
	return centers
}
