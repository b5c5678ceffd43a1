package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/cprcoach/internal/capture"
	"github.com/ayusman/cprcoach/internal/detector"
	"github.com/ayusman/cprcoach/internal/engine"
	"github.com/ayusman/cprcoach/internal/overlay"
)

// StreamHandler serves MJPEG frames from the camera, annotated with the
// coaching overlay when a detector and renderer are configured.
type StreamHandler struct {
	camera   capture.Camera
	detector detector.Detector
	engine   *engine.Engine
	renderer *overlay.Renderer
}

// NewStreamHandler creates a new StreamHandler. Detector, engine, and
// renderer are optional; without them frames stream unannotated.
func NewStreamHandler(camera capture.Camera, d detector.Detector, e *engine.Engine, r *overlay.Renderer) *StreamHandler {
	return &StreamHandler{
		camera:   camera,
		detector: d,
		engine:   e,
		renderer: r,
	}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		h.annotate(frame)

		// Encode as JPEG
		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		// Write MJPEG frame
		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}

// annotate draws the coaching overlay for the current mode onto the frame.
func (h *StreamHandler) annotate(frame *gocv.Mat) {
	if h.renderer == nil || h.engine == nil {
		return
	}

	var obs *detector.Observation
	if h.detector != nil {
		if detected, err := h.detector.Detect(frame); err == nil {
			obs = detected
		}
	}

	snap := h.engine.Snapshot()

	switch snap.Mode {
	case engine.ModeOverhead.String():
		h.renderer.DrawOverhead(frame, obs, snap.Accuracy)
	case engine.ModeSideView.String():
		var baselineY *float64
		if y, ok := h.engine.Baseline(); ok {
			baselineY = &y
		}
		h.renderer.DrawSideView(frame, obs, baselineY, snap.RatePerMin, snap.CompressionCount, snap.AverageDepth)
	}

	if mode, ok := engine.ParseMode(snap.Mode); ok {
		h.renderer.DrawModeIndicator(frame, mode, snap.CompressionCount > 0 || snap.Calibrated)
	}
	h.renderer.DrawFeedback(frame, snap.Feedback)
}
