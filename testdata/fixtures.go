// Package testdata provides synthetic camera frames for tests. Frames are
// generated rather than recorded so tests don't depend on binary assets.
package testdata

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Default synthetic frame size, matching the capture resolution.
const (
	FrameWidth  = 1280
	FrameHeight = 720
)

// BlankFrame returns a black BGR frame at the default capture resolution.
// The caller is responsible for closing the returned Mat.
func BlankFrame() *gocv.Mat {
	mat := gocv.NewMatWithSize(FrameHeight, FrameWidth, gocv.MatTypeCV8UC3)
	return &mat
}

// FrameWithBlock returns a black frame with a white square whose top-left
// corner sits at (x, y). Sequences of these with a moving block exercise
// activity detection.
func FrameWithBlock(x, y, size int) *gocv.Mat {
	mat := gocv.NewMatWithSize(FrameHeight, FrameWidth, gocv.MatTypeCV8UC3)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gocv.Rectangle(&mat, image.Rect(x, y, x+size, y+size), white, -1)
	return &mat
}

// MovingBlockSequence returns n frames with a block descending by step
// pixels per frame, simulating a compressing hand seen from the side.
// The caller is responsible for closing the returned Mats.
func MovingBlockSequence(n, step int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		frames[i] = FrameWithBlock(FrameWidth/2, FrameHeight/3+i*step, 80)
	}
	return frames
}

// StillSequence returns n identical blank frames.
// The caller is responsible for closing the returned Mats.
func StillSequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		frames[i] = BlankFrame()
	}
	return frames
}

// CloseFrames closes every Mat in the slice.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
