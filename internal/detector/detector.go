package detector

import "gocv.io/x/gocv"

// Detector defines the interface for pose and hand landmark detection.
type Detector interface {
	// Detect analyzes a video frame and returns the detected person and
	// hands. A frame with no visible person or hands yields an
	// Observation with nil Pose and empty Hands; that is a normal result,
	// not an error.
	Detect(frame *gocv.Mat) (*Observation, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
	}
}
