// Package app provides the main application logic for the CPR coaching system.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/cprcoach/internal/capture"
	"github.com/ayusman/cprcoach/internal/detector"
	"github.com/ayusman/cprcoach/internal/engine"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active practice.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Engine         *engine.Engine
	CameraID       int
	ActivityThresh float64
	// MirrorFrames flips frames horizontally before analysis so the
	// on-screen view matches the trainee's perspective.
	MirrorFrames bool
}

// App is the main application that orchestrates capture, landmark
// detection, and coaching evaluation.
type App struct {
	config   Config
	engine   *engine.Engine
	camera   capture.Camera
	activity *capture.ActivityMonitor
	detector detector.Detector
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}

	// lastFeedback tracks the previous coaching message so transitions are
	// logged once, not per frame.
	lastFeedback string
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	e := config.Engine
	if e == nil {
		e = engine.New()
	}

	a := &App{
		config:   config,
		engine:   e,
		camera:   capture.NewCamera(config.CameraID),
		activity: capture.NewActivityMonitor(config.ActivityThresh),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose and hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables coaching evaluation.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether coaching evaluation is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the landmark detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use. Useful for replaying
// recorded sessions through the pipeline.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start begins the coaching pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Coaching pipeline started")
	return nil
}

// Stop halts the coaching pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close activity monitor
	a.activity.Close()

	// Close the landmark detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Coaching pipeline stopped")
}

// EmergencyCall simulates dialing emergency services, logging the current
// session status a dispatcher would be given.
func (a *App) EmergencyCall() {
	snap := a.engine.Snapshot()

	log.Println("EMERGENCY CALL INITIATED")
	log.Println("Calling emergency services...")
	log.Printf("CPR status: %d compressions delivered", snap.CompressionCount)
	if snap.RatePerMin > 0 {
		log.Printf("Current rate: %.0f/min", snap.RatePerMin)
	}
	log.Println("Location: [GPS coordinates would be sent]")
}

// Engine returns the coaching engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// ActivityMonitor returns the activity monitor instance.
func (a *App) ActivityMonitor() *capture.ActivityMonitor {
	return a.activity
}

// Detector returns the landmark detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
