package detector

import (
	"errors"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

func TestHand_Center(t *testing.T) {
	hand := HandAt(0.25, 0.5)

	center := hand.Center(1280, 720)

	if math.Abs(center.X-320) > 1e-6 {
		t.Errorf("center X = %f, want 320", center.X)
	}
	if math.Abs(center.Y-360) > 1e-6 {
		t.Errorf("center Y = %f, want 360", center.Y)
	}
}

func TestHand_CenterOfSpreadHand(t *testing.T) {
	hand := SpreadHandAt(0.5, 0.4)

	center := hand.Center(1000, 1000)

	if math.Abs(center.X-500) > 1e-6 {
		t.Errorf("center X = %f, want 500", center.X)
	}
	if math.Abs(center.Y-400) > 1e-6 {
		t.Errorf("center Y = %f, want 400", center.Y)
	}
}

func TestPose_ChestCenter(t *testing.T) {
	pose := &Pose{}
	pose.Points[LeftShoulder] = Point{X: 0.4, Y: 0.3}
	pose.Points[RightShoulder] = Point{X: 0.6, Y: 0.4}

	center, width := pose.ChestCenter(1000, 1000)

	// Midpoint (0.5, 0.35) plus 30% of the 0.1 vertical separation.
	if math.Abs(center.X-500) > 1e-6 {
		t.Errorf("chest X = %f, want 500", center.X)
	}
	wantY := 350 + 0.1*1000*0.3
	if math.Abs(center.Y-wantY) > 1e-6 {
		t.Errorf("chest Y = %f, want %f", center.Y, wantY)
	}
	if math.Abs(width-200) > 1e-6 {
		t.Errorf("chest width = %f, want 200", width)
	}
}

func TestPose_ChestReferenceY(t *testing.T) {
	pose := &Pose{}
	pose.Points[LeftShoulder] = Point{X: 0.4, Y: 0.3}
	pose.Points[RightShoulder] = Point{X: 0.6, Y: 0.4}

	refY := pose.ChestReferenceY(1000)

	// Midpoint y plus 40% of the vertical separation.
	want := 350 + 0.1*1000*0.4
	if math.Abs(refY-want) > 1e-6 {
		t.Errorf("reference Y = %f, want %f", refY, want)
	}
}

func TestPose_LevelShouldersHaveNoDrop(t *testing.T) {
	pose := &Pose{}
	pose.Points[LeftShoulder] = Point{X: 0.3, Y: 0.5}
	pose.Points[RightShoulder] = Point{X: 0.7, Y: 0.5}

	center, width := pose.ChestCenter(100, 100)

	if math.Abs(center.Y-50) > 1e-6 {
		t.Errorf("chest Y = %f, want 50 with level shoulders", center.Y)
	}
	if math.Abs(width-40) > 1e-6 {
		t.Errorf("chest width = %f, want 40", width)
	}
}

func TestMockDetector(t *testing.T) {
	mock := NewMockDetector()
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	t.Run("empty observation by default", func(t *testing.T) {
		obs, err := mock.Detect(&frame)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if obs.Pose != nil || len(obs.Hands) != 0 {
			t.Errorf("expected empty observation, got %+v", obs)
		}
	})

	t.Run("returns configured observation", func(t *testing.T) {
		mock.SetObservation(&Observation{
			Pose:  SupinePose(),
			Hands: []Hand{HandAt(0.5, 0.35)},
		})

		obs, err := mock.Detect(&frame)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if obs.Pose == nil {
			t.Fatal("expected pose")
		}
		if len(obs.Hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(obs.Hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		wantErr := errors.New("detector offline")
		mock.SetError(wantErr)

		if _, err := mock.Detect(&frame); !errors.Is(err, wantErr) {
			t.Errorf("Detect() error = %v, want %v", err, wantErr)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHands != 2 {
		t.Errorf("MaxHands = %d, want 2", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.7 {
		t.Errorf("MinConfidence = %f, want 0.7", cfg.MinConfidence)
	}
}
